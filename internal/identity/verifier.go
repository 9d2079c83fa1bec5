// Package identity maps bearer credentials onto an authenticated principal.
package identity

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/golang-jwt/jwt/v5"
	"github.com/reachloop/reachloop/internal/config"
	"go.uber.org/fx"
)

var (
	ErrMissingToken = errors.New("missing_token")
	ErrInvalidToken = errors.New("invalid_token")
)

// Principal is the authenticated caller.
type Principal struct {
	UserID snowflake.ID
}

// Verifier validates a bearer credential and returns the principal it names.
type Verifier interface {
	Verify(ctx context.Context, token string) (Principal, error)
}

// Module provides the JWT verifier.
var Module = fx.Provide(NewVerifier)

type jwtVerifier struct {
	secret []byte
}

// NewVerifier builds an HS256 JWT verifier from the configured secret.
func NewVerifier(cfg config.Config) (Verifier, error) {
	secret := strings.TrimSpace(cfg.AuthJWTSecret)
	if secret == "" {
		return nil, errors.New("auth jwt secret is required")
	}
	return &jwtVerifier{secret: []byte(secret)}, nil
}

func (v *jwtVerifier) Verify(_ context.Context, token string) (Principal, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return Principal{}, ErrMissingToken
	}

	parsed, err := jwt.Parse(token, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return v.secret, nil
	}, jwt.WithValidMethods([]string{"HS256"}))
	if err != nil || !parsed.Valid {
		return Principal{}, ErrInvalidToken
	}

	subject, err := parsed.Claims.GetSubject()
	if err != nil || strings.TrimSpace(subject) == "" {
		return Principal{}, ErrInvalidToken
	}

	userID, err := snowflake.ParseString(strings.TrimSpace(subject))
	if err != nil || userID == 0 {
		return Principal{}, ErrInvalidToken
	}

	return Principal{UserID: userID}, nil
}

// SignForTest mints a short-lived token for the given user. Test helper only.
func SignForTest(secret string, userID snowflake.ID, ttl time.Duration) (string, error) {
	claims := jwt.RegisteredClaims{
		Subject:   userID.String(),
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
}
