package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/bwmarrin/discordgo"

	"github.com/enzo405/Thanks/internal/repository"
	"github.com/enzo405/Thanks/pkg/discord"
)

func (a *App) handleRank(s *discordgo.Session, i *discordgo.InteractionCreate) error {
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

	rank, err := a.pointsRepo.Rank(context.Background(), guildID, userID)
	if errors.Is(err, repository.ErrNotFound) {
		desc := fmt.Sprintf("%s has no points yet", target.Username)
		return respondEmbed(s, i, discord.Embed(desc, a.cfg.EmbedColor))
	}
	if err != nil {
		return err
	}

	desc := fmt.Sprintf("%s is ranked #%d in this server", target.Username, rank)
	return respondEmbed(s, i, discord.Embed(desc, a.cfg.EmbedColor))
}
