package main

import (
	"os"

	"github.com/caarlos0/env/v11"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/soycar/hotel-portal/internal/database"
)

// Only the database is needed here, so REDIS_URL is not required.
type migrateConfig struct {
	DatabaseURL string `env:"DATABASE_URL,required"`
}

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	if len(os.Args) < 2 {
		log.Fatal().Msg("usage: migrate up|down|drop|step-up")
	}

	var cfg migrateConfig
	if err := env.Parse(&cfg); err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}

	action := os.Args[1]
	switch action {
	case database.MigrateUp, database.MigrateDown, database.MigrateDrop, database.MigrateStepUp:
	default:
		log.Fatal().Str("action", action).Msg("invalid direction, use up, down, drop or step-up")
	}

	if err := database.Migrate(cfg.DatabaseURL, action); err != nil {
		log.Fatal().Err(err).Msg("migration failed")
	}
}
