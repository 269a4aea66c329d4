package model

import "time"

// PointsRecord stores the per-guild points state for a Discord user.
// A row exists once the user has either received a point or thanked
// someone; it is never deleted by the award pipeline.
type PointsRecord struct {
	GuildID     int64 `json:"guild_id"`
	UserID      int64 `json:"discord_user_id"`
	Points      int64 `json:"points"`
	NumOfThanks int64 `json:"num_of_thanks"`
	// LastThanks is when the user last thanked someone, used for the
	// sender cooldown. Nil until the first thank given.
	LastThanks *time.Time `json:"last_thanks"`
	// LastReceivedPointsDate marks the start of the current 24h
	// receiving window. Nil until the first point received.
	LastReceivedPointsDate   *time.Time `json:"last_received_points_date"`
	CurrentDayReceivedPoints int        `json:"current_day_received_points"`
}
