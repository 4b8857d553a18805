package jwtauth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"medication-adherence/internal/ports/auth"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrNotConfigured = errors.New("jwt verifier not configured")
	ErrTokenEmpty    = errors.New("token is empty")
	ErrMissingUser   = errors.New("token missing subject")
)

// Config del verificador HS256.
type Config struct {
	Secret   []byte
	Issuer   string // opcional
	Audience string // opcional
	Leeway   time.Duration
}

type tokenClaims struct {
	jwt.RegisteredClaims
	Email string `json:"email,omitempty"`
}

// Verifier implementa auth.AuthVerifier validando JWT firmados con un secreto compartido.
type Verifier struct {
	secret []byte
	opts   []jwt.ParserOption
}

var _ auth.AuthVerifier = (*Verifier)(nil)

func NewVerifier(cfg Config) *Verifier {
	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
	}
	if iss := strings.TrimSpace(cfg.Issuer); iss != "" {
		opts = append(opts, jwt.WithIssuer(iss))
	}
	if aud := strings.TrimSpace(cfg.Audience); aud != "" {
		opts = append(opts, jwt.WithAudience(aud))
	}
	if cfg.Leeway > 0 {
		opts = append(opts, jwt.WithLeeway(cfg.Leeway))
	}
	return &Verifier{secret: cfg.Secret, opts: opts}
}

func (v *Verifier) Verify(_ context.Context, token string) (auth.Claims, error) {
	if v == nil || len(v.secret) == 0 {
		return auth.Claims{}, ErrNotConfigured
	}
	token = strings.TrimSpace(token)
	if token == "" {
		return auth.Claims{}, ErrTokenEmpty
	}

	var c tokenClaims
	_, err := jwt.ParseWithClaims(token, &c, func(*jwt.Token) (any, error) {
		return v.secret, nil
	}, v.opts...)
	if err != nil {
		return auth.Claims{}, fmt.Errorf("jwt verify failed: %w", err)
	}

	uid := strings.TrimSpace(c.Subject)
	if uid == "" {
		return auth.Claims{}, ErrMissingUser
	}

	out := auth.Claims{UserID: uid, Email: strings.TrimSpace(c.Email)}
	if c.ExpiresAt != nil {
		out.ExpiresAt = c.ExpiresAt.Time
	}
	return out, nil
}

// Sign emite un token HS256 para userID; lo usan los tests y herramientas de dev.
func Sign(cfg Config, userID, email string, ttl time.Duration) (string, error) {
	if len(cfg.Secret) == 0 {
		return "", ErrNotConfigured
	}
	now := time.Now()
	c := tokenClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			Issuer:    cfg.Issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
		Email: email,
	}
	if cfg.Audience != "" {
		c.Audience = jwt.ClaimStrings{cfg.Audience}
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, c).SignedString(cfg.Secret)
}
