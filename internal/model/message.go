package model

// Message is the slice of an inbound chat message the award pipeline
// needs, decoupled from the gateway SDK types.
type Message struct {
	GuildID   int64
	ChannelID int64
	AuthorID  int64
	AuthorBot bool
	Content   string
	// Mentions lists the user IDs explicitly mentioned in the message.
	Mentions []int64
	// ReplyAuthorID is the author of the message this one replies to,
	// or 0 when the message is not a reply or the target did not resolve.
	ReplyAuthorID int64
}
