package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"accountsvc/auth"
	"accountsvc/models"
	"accountsvc/store"
)

var (
	ErrInvalidInput       = errors.New("invalid input")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrNotFound           = errors.New("user not found")
)

const minPasswordLen = 6

// Accounts implements registration, login, token verification, profile lookup
// and plan upgrade on top of a UserStore.
type Accounts struct {
	store    store.UserStore
	secret   []byte
	tokenTTL time.Duration
	mailer   *Mailer
	slackURL string
	log      zerolog.Logger
}

func NewAccounts(st store.UserStore, secret string, mailer *Mailer, slackURL string, log zerolog.Logger) *Accounts {
	return &Accounts{
		store:    st,
		secret:   []byte(secret),
		tokenTTL: auth.TokenTTL,
		mailer:   mailer,
		slackURL: slackURL,
		log:      log,
	}
}

// Register creates an account and returns a signed session token plus the
// public projection of the new user. The email is stored trimmed and
// lower-cased so lookups are case-insensitive.
func (a *Accounts) Register(ctx context.Context, name, email, password string) (string, *models.PublicUser, error) {
	if name == "" || email == "" || password == "" {
		return "", nil, ErrInvalidInput
	}
	if len(password) < minPasswordLen {
		return "", nil, fmt.Errorf("%w: password must be at least %d characters", ErrInvalidInput, minPasswordLen)
	}

	name = strings.TrimSpace(name)
	email = strings.ToLower(strings.TrimSpace(email))

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", nil, err
	}

	user, err := a.store.CreateUser(ctx, name, email, string(hash))
	if err != nil {
		// store.ErrDuplicateEmail passes through for the handler to map.
		return "", nil, err
	}

	pub := user.Public()
	token, err := auth.Sign(pub, a.secret, a.tokenTTL)
	if err != nil {
		return "", nil, err
	}

	if a.mailer != nil {
		go a.mailer.SendWelcome(pub)
	}
	if a.slackURL != "" {
		go NotifySignup(a.slackURL, pub, a.log)
	}

	return token, &pub, nil
}

// Login checks credentials and issues a fresh token. A missing account and a
// wrong password are deliberately indistinguishable.
func (a *Accounts) Login(ctx context.Context, email, password string) (string, *models.PublicUser, error) {
	if email == "" || password == "" {
		return "", nil, ErrInvalidInput
	}

	email = strings.ToLower(strings.TrimSpace(email))

	user, err := a.store.FindByEmail(ctx, email)
	if err != nil {
		return "", nil, err
	}
	if user == nil {
		return "", nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", nil, ErrInvalidCredentials
	}

	pub := user.Public()
	token, err := auth.Sign(pub, a.secret, a.tokenTTL)
	if err != nil {
		return "", nil, err
	}
	return token, &pub, nil
}

// VerifyToken extracts and validates the bearer credential from an
// Authorization header value.
func (a *Accounts) VerifyToken(header string) (*auth.Claims, error) {
	tokenStr, err := auth.FromHeader(header)
	if err != nil {
		return nil, err
	}
	return auth.Parse(tokenStr, a.secret)
}

// Profile returns the full public row, including created_at.
func (a *Accounts) Profile(ctx context.Context, id int64) (*models.User, error) {
	user, err := a.store.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrNotFound
	}
	return user, nil
}

// Upgrade moves the account to PREMIUM. The update is permissive: an id with
// no matching row is treated as success, mirroring the UPDATE semantics.
func (a *Accounts) Upgrade(ctx context.Context, id int64) (string, error) {
	if err := a.store.UpgradePlan(ctx, id); err != nil {
		return "", err
	}
	return models.PlanPremium, nil
}
