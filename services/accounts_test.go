package services

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"accountsvc/db"
	"accountsvc/models"
	"accountsvc/store"
)

const testSecret = "test-secret"

func newTestAccounts(t *testing.T, name string) (*Accounts, store.UserStore) {
	t.Helper()
	d, driver, err := db.OpenSQLite("file:" + name + "?mode=memory&cache=shared")
	require.NoError(t, err)
	t.Cleanup(func() { _ = d.Close() })
	require.NoError(t, db.EnsureSchema(d, driver))

	users := store.New(d, driver)
	return NewAccounts(users, testSecret, nil, "", zerolog.Nop()), users
}

func TestRegister(t *testing.T) {
	a, _ := newTestAccounts(t, "svc_register")

	token, user, err := a.Register(context.Background(), "Ana", "ana@x.com", "secret1")
	require.NoError(t, err)
	require.NotNil(t, user)
	assert.Equal(t, models.PlanFree, user.Plan)

	claims, err := a.VerifyToken("Bearer " + token)
	require.NoError(t, err)
	id, err := claims.UserID()
	require.NoError(t, err)
	assert.Equal(t, user.ID, id)
	assert.Equal(t, "ana@x.com", claims.Email)
	assert.Equal(t, "Ana", claims.Name)
}

func TestRegisterValidation(t *testing.T) {
	a, users := newTestAccounts(t, "svc_register_validation")
	ctx := context.Background()

	tests := []struct {
		name     string
		userName string
		email    string
		password string
	}{
		{"missing name", "", "ana@x.com", "secret1"},
		{"missing email", "Ana", "", "secret1"},
		{"missing password", "Ana", "ana@x.com", ""},
		{"short password", "Ana", "ana@x.com", "12345"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := a.Register(ctx, tt.userName, tt.email, tt.password)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}

	// No rows were created by any of the rejected attempts.
	u, err := users.FindByEmail(ctx, "ana@x.com")
	require.NoError(t, err)
	assert.Nil(t, u)
}

func TestRegisterDuplicateEmailNormalized(t *testing.T) {
	a, _ := newTestAccounts(t, "svc_register_dup")
	ctx := context.Background()

	_, _, err := a.Register(ctx, "Ana", "Foo@Bar.COM", "secret1")
	require.NoError(t, err)

	_, _, err = a.Register(ctx, "Other", " foo@bar.com ", "different1")
	assert.ErrorIs(t, err, store.ErrDuplicateEmail)
}

func TestLogin(t *testing.T) {
	a, _ := newTestAccounts(t, "svc_login")
	ctx := context.Background()

	_, _, err := a.Register(ctx, "Ana", "ana@x.com", "secret1")
	require.NoError(t, err)

	token, user, err := a.Login(ctx, "ana@x.com", "secret1")
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Equal(t, "ana@x.com", user.Email)
}

func TestLoginFailuresAreIndistinguishable(t *testing.T) {
	a, _ := newTestAccounts(t, "svc_login_fail")
	ctx := context.Background()

	_, _, err := a.Register(ctx, "Ana", "ana@x.com", "secret1")
	require.NoError(t, err)

	_, _, wrongPass := a.Login(ctx, "ana@x.com", "wrongpass")
	_, _, noAccount := a.Login(ctx, "nobody@x.com", "secret1")

	assert.ErrorIs(t, wrongPass, ErrInvalidCredentials)
	assert.ErrorIs(t, noAccount, ErrInvalidCredentials)
	assert.Equal(t, wrongPass, noAccount)
}

func TestLoginNormalizesEmail(t *testing.T) {
	a, _ := newTestAccounts(t, "svc_login_norm")
	ctx := context.Background()

	_, _, err := a.Register(ctx, "Ana", "Foo@Bar.COM", "secret1")
	require.NoError(t, err)

	_, user, err := a.Login(ctx, "foo@bar.com ", "secret1")
	require.NoError(t, err)
	assert.Equal(t, "foo@bar.com", user.Email)
}

func TestVerifyTokenExpiry(t *testing.T) {
	a, _ := newTestAccounts(t, "svc_expiry")
	ctx := context.Background()

	// A token still inside its window verifies; one past expiry does not.
	a.tokenTTL = 24 * time.Hour
	fresh, _, err := a.Register(ctx, "Ana", "ana@x.com", "secret1")
	require.NoError(t, err)
	_, err = a.VerifyToken("Bearer " + fresh)
	assert.NoError(t, err)

	a.tokenTTL = -24 * time.Hour
	stale, _, err := a.Login(ctx, "ana@x.com", "secret1")
	require.NoError(t, err)
	_, err = a.VerifyToken("Bearer " + stale)
	assert.Error(t, err)
}

func TestUpgradeStalePlanInOldToken(t *testing.T) {
	a, _ := newTestAccounts(t, "svc_stale_plan")
	ctx := context.Background()

	oldToken, user, err := a.Register(ctx, "Ana", "ana@x.com", "secret1")
	require.NoError(t, err)

	plan, err := a.Upgrade(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, models.PlanPremium, plan)

	// A fresh login sees the new plan.
	_, fresh, err := a.Login(ctx, "ana@x.com", "secret1")
	require.NoError(t, err)
	assert.Equal(t, models.PlanPremium, fresh.Plan)

	// The token issued before the upgrade still carries the old plan.
	claims, err := a.VerifyToken("Bearer " + oldToken)
	require.NoError(t, err)
	assert.Equal(t, models.PlanFree, claims.Plan)
}

func TestUpgradeMissingUser(t *testing.T) {
	a, _ := newTestAccounts(t, "svc_upgrade_missing")

	plan, err := a.Upgrade(context.Background(), 99999)
	require.NoError(t, err)
	assert.Equal(t, models.PlanPremium, plan)
}

func TestProfile(t *testing.T) {
	a, _ := newTestAccounts(t, "svc_profile")
	ctx := context.Background()

	_, user, err := a.Register(ctx, "Ana", "ana@x.com", "secret1")
	require.NoError(t, err)

	got, err := a.Profile(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "ana@x.com", got.Email)
	assert.Empty(t, got.PasswordHash)
	assert.False(t, got.CreatedAt.IsZero())

	_, err = a.Profile(ctx, 99999)
	assert.ErrorIs(t, err, ErrNotFound)
}
