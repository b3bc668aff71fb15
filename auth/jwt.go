package auth

import (
	"errors"
	"strconv"
	"strings"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"

	"accountsvc/models"
)

// TokenTTL is the fixed session lifetime. There is no refresh or revocation
// mechanism; a token stays valid until it expires.
const TokenTTL = 7 * 24 * time.Hour

var (
	ErrMissingToken = errors.New("missing bearer token")
	ErrInvalidToken = errors.New("invalid token")
)

// Claims is the JWT payload. The registered subject carries the user id in
// decimal. Claims are trusted as issued and are not re-checked against the
// store, so a plan upgrade only shows up after re-authentication.
type Claims struct {
	Email string `json:"email"`
	Plan  string `json:"plan"`
	Name  string `json:"name"`
	jwt.RegisteredClaims
}

// UserID returns the subject parsed as a user id.
func (c *Claims) UserID() (int64, error) {
	return strconv.ParseInt(c.Subject, 10, 64)
}

// Sign issues an HS256 token for the given user, expiring after ttl.
func Sign(u models.PublicUser, secret []byte, ttl time.Duration) (string, error) {
	claims := Claims{
		Email: u.Email,
		Plan:  u.Plan,
		Name:  u.Name,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(u.ID, 10),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secret)
}

// Parse validates signature and expiry and returns the claims. Any failure,
// including a non-HMAC signing method, yields ErrInvalidToken.
func Parse(tokenStr string, secret []byte) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return secret, nil
	})
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

// FromHeader extracts the token from an "Authorization: Bearer <token>"
// header value. An absent header or wrong scheme yields ErrMissingToken.
func FromHeader(header string) (string, error) {
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", ErrMissingToken
	}
	token := strings.TrimSpace(parts[1])
	if token == "" {
		return "", ErrMissingToken
	}
	return token, nil
}
