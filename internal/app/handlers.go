package app

import (
	"context"
	"log"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"

	"github.com/enzo405/Thanks/internal/model"
	"github.com/enzo405/Thanks/pkg/discord"
)

func (a *App) onReady(s *discordgo.Session, r *discordgo.Ready) {
	ctx := context.Background()

	for _, guild := range r.Guilds {
		guildID, err := discord.ParseID(guild.ID)
		if err != nil {
			continue
		}
		if err := a.guildRepo.EnsureGuild(ctx, guildID); err != nil {
			log.Printf("ensure guild %s: %v", guild.ID, err)
		}
	}
	if err := a.guildConfig.Refresh(ctx); err != nil {
		log.Println("guild config refresh:", err)
	}
	if err := a.registerCommands(); err != nil {
		log.Println("register commands:", err)
	}
	a.reporter.Setup()

	log.Println("-----------------------------------------")
	log.Printf("%s is ready (ID %s)", r.User.Username, r.User.ID)
	log.Printf("serving %d guild(s)", len(r.Guilds))
	log.Println("-----------------------------------------")
}

// onMessageCreate feeds guild messages into the award pipeline and, when
// points were granted, replies with a temporary embed naming the recipients.
func (a *App) onMessageCreate(s *discordgo.Session, m *discordgo.MessageCreate) {
	if m.Author == nil || m.Author.Bot || m.GuildID == "" {
		return
	}
	msg, err := toModelMessage(m)
	if err != nil {
		return
	}
	if a.guildConfig.IsBlacklisted(msg.GuildID, msg.ChannelID) {
		return
	}

	ctx := context.Background()
	awarded, err := a.points.ProcessMessage(ctx, msg)
	if err != nil {
		log.Printf("process message in guild %s: %v", m.GuildID, err)
		return
	}
	if len(awarded) == 0 {
		return
	}

	mentions := make([]string, len(awarded))
	for i, id := range awarded {
		mentions[i] = discord.UserMention(id)
	}
	embed := discord.Embed(strings.Join(mentions, ", ")+" received a point!", a.cfg.EmbedColor)
	timeout := time.Duration(a.cfg.MessageTimeoutSec) * time.Second
	if err := discord.SendTemporary(s, m.ChannelID, embed, timeout); err != nil {
		log.Printf("send award reply in channel %s: %v", m.ChannelID, err)
	}
}

func (a *App) onGuildCreate(s *discordgo.Session, g *discordgo.GuildCreate) {
	guildID, err := discord.ParseID(g.ID)
	if err != nil {
		return
	}
	ctx := context.Background()
	if err := a.guildRepo.EnsureGuild(ctx, guildID); err != nil {
		log.Printf("ensure guild %s: %v", g.ID, err)
		return
	}
	if err := a.guildConfig.Refresh(ctx); err != nil {
		log.Println("guild config refresh:", err)
	}
	a.reporter.Info("joined guild " + g.Name)
}

func (a *App) onGuildDelete(s *discordgo.Session, g *discordgo.GuildDelete) {
	// gateway outages also deliver GuildDelete, flagged unavailable
	if g.Unavailable {
		return
	}
	guildID, err := discord.ParseID(g.ID)
	if err != nil {
		return
	}
	ctx := context.Background()
	if err := a.autoroleRepo.DeleteGuild(ctx, guildID); err != nil {
		log.Printf("delete autoroles for guild %s: %v", g.ID, err)
	}
	if err := a.pointsRepo.DeleteGuild(ctx, guildID); err != nil {
		log.Printf("delete points for guild %s: %v", g.ID, err)
	}
	if err := a.guildRepo.DeleteGuild(ctx, guildID); err != nil {
		log.Printf("delete guild %s: %v", g.ID, err)
	}
	if err := a.guildConfig.Refresh(ctx); err != nil {
		log.Println("guild config refresh:", err)
	}
	a.reporter.Info("removed from guild " + g.ID)
}

// toModelMessage converts a gateway message into the pipeline's view of it.
func toModelMessage(m *discordgo.MessageCreate) (*model.Message, error) {
	guildID, err := discord.ParseID(m.GuildID)
	if err != nil {
		return nil, err
	}
	channelID, err := discord.ParseID(m.ChannelID)
	if err != nil {
		return nil, err
	}
	authorID, err := discord.ParseID(m.Author.ID)
	if err != nil {
		return nil, err
	}

	msg := &model.Message{
		GuildID:   guildID,
		ChannelID: channelID,
		AuthorID:  authorID,
		AuthorBot: m.Author.Bot,
		Content:   m.Content,
	}
	for _, u := range m.Mentions {
		if id, err := discord.ParseID(u.ID); err == nil {
			msg.Mentions = append(msg.Mentions, id)
		}
	}
	if ref := m.ReferencedMessage; ref != nil && ref.Author != nil {
		if id, err := discord.ParseID(ref.Author.ID); err == nil {
			msg.ReplyAuthorID = id
		}
	}
	return msg, nil
}
