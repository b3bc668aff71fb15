package main

import (
	"os"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"accountsvc/config"
	"accountsvc/db"
	"accountsvc/handlers"
	"accountsvc/services"
	"accountsvc/store"
)

func main() {
	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("load config")
	}
	log.Info().Stringer("config", cfg).Msg("starting")

	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	d, driver, err := db.Open(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("open database")
	}
	defer d.Close()

	if err := db.EnsureSchema(d, driver); err != nil {
		log.Fatal().Err(err).Msg("ensure schema")
	}
	log.Info().Str("driver", driver).Msg("database schema verified")

	users := store.New(d, driver)
	mailer := services.NewMailer(cfg.SendGridKey, cfg.FromEmail, log)
	accounts := services.NewAccounts(users, cfg.JWTSecret, mailer, cfg.SlackWebhookURL, log)

	r := handlers.Router(accounts, log)

	log.Info().Str("port", cfg.Port).Msg("listening")
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}
