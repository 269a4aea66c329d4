package discord

import (
	"log"
	"time"

	"github.com/bwmarrin/discordgo"
)

// Embed builds a plain description embed in the bot's color.
func Embed(description string, color int) *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{
		Description: description,
		Color:       color,
	}
}

// SendTemporary sends an embed to a channel and deletes it after the given
// timeout, the Discord equivalent of a delete_after reply. A zero timeout
// leaves the message in place.
func SendTemporary(s *discordgo.Session, channelID string, embed *discordgo.MessageEmbed, timeout time.Duration) error {
	msg, err := s.ChannelMessageSendEmbed(channelID, embed)
	if err != nil {
		return err
	}
	if timeout > 0 {
		time.AfterFunc(timeout, func() {
			if err := s.ChannelMessageDelete(channelID, msg.ID); err != nil {
				log.Printf("delete temporary message %s: %v", msg.ID, err)
			}
		})
	}
	return nil
}
