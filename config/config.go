package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

// Config holds all process configuration, sourced from environment variables.
type Config struct {
	Port        string
	Env         string
	DBPath      string
	DatabaseURL string // when set, Postgres is used instead of the SQLite file
	JWTSecret   string

	// Optional integrations; empty means disabled.
	SendGridKey     string
	FromEmail       string
	SlackWebhookURL string
}

// Load reads .env (if present) and the environment. JWT_SECRET is required.
func Load() (Config, error) {
	_ = godotenv.Load(".env", ".env.local")

	c := Config{
		Port:            getenv("PORT", "3333"),
		Env:             getenv("APP_ENV", "development"),
		DBPath:          getenv("DB_PATH", "accounts.db"),
		DatabaseURL:     os.Getenv("DATABASE_URL"),
		JWTSecret:       os.Getenv("JWT_SECRET"),
		SendGridKey:     os.Getenv("SENDGRID_API_KEY"),
		FromEmail:       os.Getenv("FROM_EMAIL"),
		SlackWebhookURL: os.Getenv("SLACK_WEBHOOK_URL"),
	}

	if c.JWTSecret == "" {
		return Config{}, fmt.Errorf("JWT_SECRET environment variable is not set")
	}

	return c, nil
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

// String masks secrets so the config can be logged at startup.
func (c Config) String() string {
	backend := "sqlite:" + c.DBPath
	if c.DatabaseURL != "" {
		backend = "postgres"
	}
	return fmt.Sprintf("Config{env=%s port=%s db=%s secret=***}", c.Env, c.Port, backend)
}
