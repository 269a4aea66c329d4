package app

import (
	"fmt"
	"log"

	"github.com/bwmarrin/discordgo"
)

func (a *App) commandDefinitions() []*discordgo.ApplicationCommand {
	return []*discordgo.ApplicationCommand{
		{
			Name:        "stats_thanks",
			Description: "Get thank stats for yourself or another member",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionUser,
					Name:        "target",
					Description: "Member to look up",
				},
			},
		},
		{
			Name:        "leaderboard_thanks",
			Description: "See the leaderboard of thanks",
		},
		{
			Name:        "rank_thanks",
			Description: "Get your rank",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionUser,
					Name:        "target",
					Description: "Member to look up",
				},
			},
		},
		{
			Name:        "channel_blacklist",
			Description: "Stop giving points for thanks in a channel",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionChannel,
					Name:        "channel",
					Description: "Channel to blacklist",
					Required:    true,
					ChannelTypes: []discordgo.ChannelType{
						discordgo.ChannelTypeGuildText,
						discordgo.ChannelTypeGuildForum,
					},
				},
			},
		},
		{
			Name:        "channel_whitelist",
			Description: "Resume giving points for thanks in a channel",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionChannel,
					Name:        "channel",
					Description: "Channel to whitelist",
					Required:    true,
					ChannelTypes: []discordgo.ChannelType{
						discordgo.ChannelTypeGuildText,
						discordgo.ChannelTypeGuildForum,
					},
				},
			},
		},
		{
			Name:        "add_autorole",
			Description: "Add an autorole for a certain threshold of thanks",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionRole,
					Name:        "role",
					Description: "Role to grant",
					Required:    true,
				},
				{
					Type:        discordgo.ApplicationCommandOptionInteger,
					Name:        "threshold",
					Description: "Points total at which the role is granted",
					Required:    true,
				},
			},
		},
		{
			Name:        "remove_autorole",
			Description: "Remove all autoroles of a certain role",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionRole,
					Name:        "role",
					Description: "Role to remove",
					Required:    true,
				},
			},
		},
		{
			Name:        "botstats",
			Description: "Show bot and host statistics",
		},
	}
}

func (a *App) registerCommands() error {
	appID := a.session.State.User.ID
	for _, cmd := range a.commandDefinitions() {
		if _, err := a.session.ApplicationCommandCreate(appID, "", cmd); err != nil {
			return fmt.Errorf("register command %s: %w", cmd.Name, err)
		}
	}
	return nil
}

// onInteraction routes slash commands to their handlers.
func (a *App) onInteraction(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if i.Type != discordgo.InteractionApplicationCommand {
		return
	}
	data := i.ApplicationCommandData()

	var err error
	switch data.Name {
	case "stats_thanks":
		err = a.handleStats(s, i)
	case "leaderboard_thanks":
		err = a.handleLeaderboard(s, i)
	case "rank_thanks":
		err = a.handleRank(s, i)
	case "channel_blacklist":
		err = a.handleChannelBlacklist(s, i)
	case "channel_whitelist":
		err = a.handleChannelWhitelist(s, i)
	case "add_autorole":
		err = a.handleAddAutorole(s, i)
	case "remove_autorole":
		err = a.handleRemoveAutorole(s, i)
	case "botstats":
		err = a.handleBotStats(s, i)
	default:
		err = fmt.Errorf("unknown command: %s", data.Name)
	}

	if err != nil {
		log.Printf("command error [%s]: %v", data.Name, err)
		respondText(s, i, "Error: "+err.Error(), true)
	}
}

// isAdmin reports whether the invoking member has the administrator
// permission. Interactions outside guilds have no member and never pass.
func isAdmin(i *discordgo.InteractionCreate) bool {
	return i.Member != nil && i.Member.Permissions&discordgo.PermissionAdministrator != 0
}

func respondText(s *discordgo.Session, i *discordgo.InteractionCreate, content string, ephemeral bool) error {
	data := &discordgo.InteractionResponseData{Content: content}
	if ephemeral {
		data.Flags = discordgo.MessageFlagsEphemeral
	}
	return s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: data,
	})
}

func respondEmbed(s *discordgo.Session, i *discordgo.InteractionCreate, embed *discordgo.MessageEmbed) error {
	return s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Embeds: []*discordgo.MessageEmbed{embed},
		},
	})
}
