package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/enzo405/Thanks/internal/app"
	"github.com/enzo405/Thanks/internal/config"
	"github.com/enzo405/Thanks/internal/repository"
)

func main() {
	loadEnvFile()

	cfg, err := config.FromEnv()
	if err != nil {
		log.Fatal(err)
	}

	db, err := repository.OpenDB(cfg.DBConnString)
	if err != nil {
		log.Fatal(err)
	}
	defer db.Close()

	guildRepo, err := repository.NewPostgresGuildRepository(db)
	if err != nil {
		log.Fatal(err)
	}
	pointsRepo, err := repository.NewPostgresPointsRepository(db)
	if err != nil {
		log.Fatal(err)
	}
	autoroleRepo, err := repository.NewPostgresAutoroleRepository(db)
	if err != nil {
		log.Fatal(err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go repository.NewKeepAlive(db, 30*time.Second).Run(ctx)

	application, err := app.New(cfg, guildRepo, pointsRepo, autoroleRepo)
	if err != nil {
		log.Fatal(err)
	}
	if err := application.Run(ctx); err != nil {
		log.Fatal(err)
	}
}

// loadEnvFile loads .env.prod when APP_ENV=prod, .env otherwise. A missing
// file is fine; the environment may already be populated.
func loadEnvFile() {
	file := ".env"
	if os.Getenv("APP_ENV") == "prod" {
		file = ".env.prod"
	}
	if err := godotenv.Load(file); err != nil {
		log.Printf("no %s file loaded: %v", file, err)
	}
}
