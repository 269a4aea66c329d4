package app

import (
	"context"
	"fmt"

	"github.com/bwmarrin/discordgo"

	"github.com/enzo405/Thanks/pkg/discord"
)

var leaderboardMedals = map[int]string{1: "🥇", 2: "🥈", 3: "🥉"}

func (a *App) handleLeaderboard(s *discordgo.Session, i *discordgo.InteractionCreate) error {
	guildID, err := discord.ParseID(i.GuildID)
	if err != nil {
		return err
	}
	records, err := a.pointsRepo.Top(context.Background(), guildID, 10)
	if err != nil {
		return err
	}

	guildName := i.GuildID
	if guild, err := s.State.Guild(i.GuildID); err == nil {
		guildName = guild.Name
	}

	embed := discord.Embed("", a.cfg.EmbedColor)
	embed.Title = fmt.Sprintf("%s Top 10 Helpers", guildName)
	rank := 0
	for _, rec := range records {
		memberID := discord.FormatID(rec.UserID)
		if _, err := s.State.Member(i.GuildID, memberID); err != nil {
			if _, err := s.GuildMember(i.GuildID, memberID); err != nil {
				// member left the guild, skip
				continue
			}
		}
		rank++
		line := fmt.Sprintf("%d. %s%s - helped %d times and has thanked %d times\n",
			rank, leaderboardMedals[rank], discord.UserMention(rec.UserID), rec.Points, rec.NumOfThanks)
		embed.Description += line
	}
	if embed.Description == "" {
		embed.Description = "No one has been thanked yet."
	}
	return respondEmbed(s, i, embed)
}
