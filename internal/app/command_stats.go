package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/bwmarrin/discordgo"

	"github.com/enzo405/Thanks/internal/repository"
	"github.com/enzo405/Thanks/pkg/discord"
)

func (a *App) handleStats(s *discordgo.Session, i *discordgo.InteractionCreate) error {
	target := targetUser(s, i)
	if target == nil {
		return errors.New("could not resolve the target user")
	}

	guildID, err := discord.ParseID(i.GuildID)
	if err != nil {
		return err
	}
	userID, err := discord.ParseID(target.ID)
	if err != nil {
		return err
	}

	var points, thanks int64
	rec, err := a.pointsRepo.Get(context.Background(), guildID, userID)
	switch {
	case errors.Is(err, repository.ErrNotFound):
		// no record yet, report zeroes
	case err != nil:
		return err
	default:
		points = rec.Points
		thanks = rec.NumOfThanks
	}

	desc := fmt.Sprintf("%s has %d point(s) and has thanked %d times", target.Username, points, thanks)
	return respondEmbed(s, i, discord.Embed(desc, a.cfg.EmbedColor))
}

// targetUser returns the "target" option when given, the invoker otherwise.
func targetUser(s *discordgo.Session, i *discordgo.InteractionCreate) *discordgo.User {
	for _, opt := range i.ApplicationCommandData().Options {
		if opt.Name == "target" {
			return opt.UserValue(s)
		}
	}
	if i.Member != nil {
		return i.Member.User
	}
	return i.User
}
