package app

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bwmarrin/discordgo"

	"github.com/enzo405/Thanks/internal/config"
	"github.com/enzo405/Thanks/internal/repository"
	"github.com/enzo405/Thanks/internal/service"
)

// App wires the Discord session to the award pipeline and the operator
// commands.
type App struct {
	cfg *config.Config

	session *discordgo.Session

	guildRepo    repository.GuildRepository
	pointsRepo   repository.PointsRepository
	autoroleRepo repository.AutoroleRepository

	guildConfig *service.GuildConfigStore
	points      *service.PointsService

	reporter  *Reporter
	startedAt time.Time
}

func New(cfg *config.Config, guildRepo repository.GuildRepository, pointsRepo repository.PointsRepository, autoroleRepo repository.AutoroleRepository) (*App, error) {
	session, err := discordgo.New("Bot " + cfg.DiscordToken)
	if err != nil {
		return nil, fmt.Errorf("create discord session: %w", err)
	}
	session.Identify.Intents = discordgo.IntentsGuilds |
		discordgo.IntentsGuildMembers |
		discordgo.IntentsGuildMessages |
		discordgo.IntentMessageContent

	a := &App{
		cfg:          cfg,
		session:      session,
		guildRepo:    guildRepo,
		pointsRepo:   pointsRepo,
		autoroleRepo: autoroleRepo,
		guildConfig:  service.NewGuildConfigStore(guildRepo),
		reporter:     NewReporter(session, cfg.LogChannelID),
		startedAt:    time.Now(),
	}

	granter := &sessionRoleGranter{session: session}
	autorole := service.NewAutoroleService(autoroleRepo, granter)
	detector := service.NewDetector(cfg.ThankWords)
	a.points = service.NewPointsService(pointsRepo, detector, autorole, cfg.CooldownMinutes, cfg.DailyLimit)
	return a, nil
}

// Run opens the gateway connection and blocks until the context is
// cancelled or an interrupt arrives.
func (a *App) Run(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	// handlers must be registered before the connection opens
	a.session.AddHandler(a.onReady)
	a.session.AddHandler(a.onMessageCreate)
	a.session.AddHandler(a.onGuildCreate)
	a.session.AddHandler(a.onGuildDelete)
	a.session.AddHandler(a.onInteraction)

	if err := a.session.Open(); err != nil {
		return fmt.Errorf("open discord connection: %w", err)
	}
	defer a.session.Close()

	if err := a.guildConfig.Refresh(ctx); err != nil {
		log.Println("initial guild config refresh:", err)
	}

	<-ctx.Done()
	log.Println("shutting down")
	return nil
}
