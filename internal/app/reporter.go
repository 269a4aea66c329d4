package app

import (
	"log"

	"github.com/bwmarrin/discordgo"

	"github.com/enzo405/Thanks/pkg/discord"
)

// Reporter mirrors operational notices to a Discord log channel. Delivery
// failures degrade to the process log only; the reporter is never fatal.
type Reporter struct {
	session   *discordgo.Session
	channelID string
	enabled   bool
}

func NewReporter(session *discordgo.Session, channelID int64) *Reporter {
	return &Reporter{session: session, channelID: discord.FormatID(channelID)}
}

// Setup verifies the configured channel exists; mirroring stays disabled
// when it does not.
func (r *Reporter) Setup() {
	if r.channelID == "0" {
		return
	}
	if _, err := r.session.Channel(r.channelID); err != nil {
		log.Printf("log channel %s unavailable: %v", r.channelID, err)
		return
	}
	r.enabled = true
}

func (r *Reporter) Info(message string) {
	log.Println("[INFO]", message)
	r.send("[INFO] " + message)
}

func (r *Reporter) Warning(message string) {
	log.Println("[WARNING]", message)
	r.send("[WARNING] " + message)
}

func (r *Reporter) Error(message string) {
	log.Println("[ERROR]", message)
	r.send("[ERROR] " + message)
}

func (r *Reporter) send(message string) {
	if !r.enabled {
		return
	}
	if _, err := r.session.ChannelMessageSend(r.channelID, message); err != nil {
		log.Println("log channel send:", err)
	}
}
