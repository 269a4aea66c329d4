package app

import (
	"github.com/bwmarrin/discordgo"

	"github.com/enzo405/Thanks/pkg/discord"
)

// sessionRoleGranter adapts the discordgo session to the autorole
// evaluator's RoleGranter interface.
type sessionRoleGranter struct {
	session *discordgo.Session
}

func (g *sessionRoleGranter) HasRole(guildID, userID, roleID int64) (bool, error) {
	member, err := g.session.State.Member(discord.FormatID(guildID), discord.FormatID(userID))
	if err != nil {
		member, err = g.session.GuildMember(discord.FormatID(guildID), discord.FormatID(userID))
		if err != nil {
			return false, err
		}
	}
	want := discord.FormatID(roleID)
	for _, id := range member.Roles {
		if id == want {
			return true, nil
		}
	}
	return false, nil
}

func (g *sessionRoleGranter) GrantRole(guildID, userID, roleID int64) error {
	return g.session.GuildMemberRoleAdd(discord.FormatID(guildID), discord.FormatID(userID), discord.FormatID(roleID))
}

// NotifyUser sends the user a direct message.
func (g *sessionRoleGranter) NotifyUser(userID int64, content string) error {
	channel, err := g.session.UserChannelCreate(discord.FormatID(userID))
	if err != nil {
		return err
	}
	_, err = g.session.ChannelMessageSend(channel.ID, content)
	return err
}
