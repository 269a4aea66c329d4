// Package discord holds small helpers around discordgo: snowflake
// conversions, mention formatting and embed delivery.
package discord

import "strconv"

// ParseID converts a Discord snowflake string to int64.
func ParseID(s string) (int64, error) {
	return strconv.ParseInt(s, 10, 64)
}

// FormatID converts an int64 snowflake back to its wire form.
func FormatID(id int64) string {
	return strconv.FormatInt(id, 10)
}

func UserMention(id int64) string {
	return "<@" + FormatID(id) + ">"
}

func RoleMention(id int64) string {
	return "<@&" + FormatID(id) + ">"
}

func ChannelMention(id int64) string {
	return "<#" + FormatID(id) + ">"
}
