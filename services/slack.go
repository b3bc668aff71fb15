package services

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/rs/zerolog"

	"accountsvc/models"
)

// NotifySignup posts a short message to a Slack incoming webhook when a new
// account is created. Best effort, fired from a goroutine.
func NotifySignup(webhookURL string, user models.PublicUser, log zerolog.Logger) {
	defer func() {
		if r := recover(); r != nil {
			log.Error().Msgf("slack panic recovered: %v", r)
		}
	}()

	payload := map[string]string{
		"text": fmt.Sprintf("New signup: %s <%s> (plan: %s)", user.Name, user.Email, user.Plan),
	}
	body, err := json.Marshal(payload)
	if err != nil {
		log.Error().Err(err).Msg("slack payload marshal failed")
		return
	}

	resp, err := http.Post(webhookURL, "application/json", bytes.NewBuffer(body))
	if err != nil {
		log.Error().Err(err).Msg("slack request failed")
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		log.Error().Int("status", resp.StatusCode).Msg("slack webhook rejected")
	}
}
