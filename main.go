package main

import (
	"context"
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/numduel/internal/game"
	"github.com/robalobadob/numduel/internal/history"
	"github.com/robalobadob/numduel/internal/httpserver"
	"github.com/robalobadob/numduel/internal/idgen"
	"github.com/robalobadob/numduel/internal/store"
)

func main() {
	_ = godotenv.Load()
	if lvl, err := zerolog.ParseLevel(getEnv("LOG_LEVEL", "info")); err == nil {
		zerolog.SetGlobalLevel(lvl)
	}

	db, err := openDB(getEnv("DB_PATH", "./data/app.db"))
	if err != nil {
		log.Fatal().Err(err).Msg("failed to open database")
	}
	if err := history.EnsureSchema(context.Background(), db); err != nil {
		log.Fatal().Err(err).Msg("failed to apply schema")
	}

	reg := store.NewRegistry(idgen.New(), game.CryptoSecrets{})
	srv := httpserver.New(reg, history.NewStore(db))
	port := getEnv("PORT", "5176")
	log.Info().Str("port", port).Msg("starting numduel-go")
	if err := srv.Start(":" + port); err != nil {
		log.Fatal().Err(err).Msg("server exited")
	}
}

func getEnv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
