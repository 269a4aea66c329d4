package app

import (
	"context"
	"errors"

	"github.com/bwmarrin/discordgo"

	"github.com/enzo405/Thanks/pkg/discord"
)

func (a *App) handleChannelBlacklist(s *discordgo.Session, i *discordgo.InteractionCreate) error {
	if !isAdmin(i) {
		return respondText(s, i, "Only server administrators can use this command", true)
	}
	guildID, channelID, err := channelOption(s, i)
	if err != nil {
		return err
	}
	if a.guildConfig.IsBlacklisted(guildID, channelID) {
		return respondText(s, i, "The channel is already blacklisted", true)
	}

	ctx := context.Background()
	if err := a.guildRepo.AddChannel(ctx, guildID, channelID); err != nil {
		return err
	}
	if err := a.guildConfig.Refresh(ctx); err != nil {
		return err
	}
	msg := "The channel " + discord.ChannelMention(channelID) +
		" will no longer give points when someone thanks another member."
	return respondText(s, i, msg, true)
}

func (a *App) handleChannelWhitelist(s *discordgo.Session, i *discordgo.InteractionCreate) error {
	if !isAdmin(i) {
		return respondText(s, i, "Only server administrators can use this command", true)
	}
	guildID, channelID, err := channelOption(s, i)
	if err != nil {
		return err
	}
	if !a.guildConfig.IsBlacklisted(guildID, channelID) {
		return respondText(s, i, "The channel is already whitelisted", true)
	}

	ctx := context.Background()
	if err := a.guildRepo.RemoveChannel(ctx, guildID, channelID); err != nil {
		return err
	}
	if err := a.guildConfig.Refresh(ctx); err != nil {
		return err
	}
	msg := "The channel " + discord.ChannelMention(channelID) +
		" will now give points when someone thanks another member."
	return respondText(s, i, msg, true)
}

func channelOption(s *discordgo.Session, i *discordgo.InteractionCreate) (guildID, channelID int64, err error) {
	guildID, err = discord.ParseID(i.GuildID)
	if err != nil {
		return 0, 0, errors.New("invalid guild ID")
	}
	for _, opt := range i.ApplicationCommandData().Options {
		if opt.Name == "channel" {
			channel := opt.ChannelValue(s)
			if channel == nil {
				return 0, 0, errors.New("could not resolve the channel")
			}
			channelID, err = discord.ParseID(channel.ID)
			if err != nil {
				return 0, 0, errors.New("invalid channel ID")
			}
			return guildID, channelID, nil
		}
	}
	return 0, 0, errors.New("channel option missing")
}
