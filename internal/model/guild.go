package model

// AutoroleRule grants a role when a user's points total reaches the
// threshold exactly. A guild may configure several rules; the pair
// (role, threshold) is unique per guild.
type AutoroleRule struct {
	GuildID   int64 `json:"guild_id"`
	RoleID    int64 `json:"role_id"`
	Threshold int64 `json:"threshold"`
}
