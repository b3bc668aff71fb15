package services

import (
	"fmt"

	"github.com/rs/zerolog"
	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"

	"accountsvc/models"
)

// Mailer sends transactional email through SendGrid. Delivery is best effort:
// the account is already created by the time any mail goes out, so failures
// are logged and dropped.
type Mailer struct {
	apiKey string
	from   string
	log    zerolog.Logger
}

// NewMailer returns nil when the SendGrid key or sender address is missing,
// which disables mail entirely.
func NewMailer(apiKey, from string, log zerolog.Logger) *Mailer {
	if apiKey == "" || from == "" {
		return nil
	}
	return &Mailer{apiKey: apiKey, from: from, log: log}
}

func (m *Mailer) SendWelcome(user models.PublicUser) {
	defer func() {
		if r := recover(); r != nil {
			m.log.Error().Msgf("welcome mail panic recovered: %v", r)
		}
	}()

	from := mail.NewEmail("Accounts", m.from)
	to := mail.NewEmail(user.Name, user.Email)
	subject := "Welcome aboard"
	body := fmt.Sprintf(
		"Hi %s,\n\nYour account is ready. You are on the %s plan.\n",
		user.Name, user.Plan,
	)
	message := mail.NewSingleEmail(from, subject, to, body, body)

	client := sendgrid.NewSendClient(m.apiKey)
	resp, err := client.Send(message)
	if err != nil {
		m.log.Error().Err(err).Str("email", user.Email).Msg("welcome mail failed")
		return
	}
	if resp.StatusCode >= 400 {
		m.log.Error().Int("status", resp.StatusCode).Str("email", user.Email).Msg("welcome mail rejected")
		return
	}
	m.log.Info().Str("email", user.Email).Msg("welcome mail sent")
}
