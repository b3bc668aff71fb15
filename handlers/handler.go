package handlers

import (
	"github.com/rs/zerolog"

	"accountsvc/services"
)

// Handler bundles the HTTP handlers with their dependencies.
type Handler struct {
	accounts *services.Accounts
	log      zerolog.Logger
}

func New(accounts *services.Accounts, log zerolog.Logger) *Handler {
	return &Handler{accounts: accounts, log: log}
}
