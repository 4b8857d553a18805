package jwtauth

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testCfg = Config{
	Secret:   []byte("test-secret"),
	Issuer:   "medication-adherence",
	Audience: "api",
}

func TestVerify_OK(t *testing.T) {
	tok, err := Sign(testCfg, "user-1", "a@b.c", time.Hour)
	require.NoError(t, err)

	c, err := NewVerifier(testCfg).Verify(context.Background(), tok)
	require.NoError(t, err)
	assert.Equal(t, "user-1", c.UserID)
	assert.Equal(t, "a@b.c", c.Email)
	assert.WithinDuration(t, time.Now().Add(time.Hour), c.ExpiresAt, 5*time.Second)
}

func TestVerify_Rejects(t *testing.T) {
	good, err := Sign(testCfg, "user-1", "", time.Hour)
	require.NoError(t, err)

	expired, err := Sign(testCfg, "user-1", "", -time.Minute)
	require.NoError(t, err)

	otherSecret := testCfg
	otherSecret.Secret = []byte("nope")
	forged, err := Sign(otherSecret, "user-1", "", time.Hour)
	require.NoError(t, err)

	otherIssuer := testCfg
	otherIssuer.Issuer = "someone-else"
	wrongIss, err := Sign(otherIssuer, "user-1", "", time.Hour)
	require.NoError(t, err)

	noSubject, err := Sign(testCfg, "", "", time.Hour)
	require.NoError(t, err)

	none, err := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.RegisteredClaims{
		Subject:   "user-1",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	v := NewVerifier(testCfg)
	cases := map[string]string{
		"empty":        "  ",
		"garbage":      "not.a.token",
		"expired":      expired,
		"forged":       forged,
		"wrong issuer": wrongIss,
		"alg none":     none,
		"no subject":   noSubject,
	}
	for name, tok := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := v.Verify(context.Background(), tok)
			assert.Error(t, err)
		})
	}

	_, err = v.Verify(context.Background(), good)
	assert.NoError(t, err)
}

func TestVerify_NotConfigured(t *testing.T) {
	_, err := NewVerifier(Config{}).Verify(context.Background(), "x")
	assert.True(t, errors.Is(err, ErrNotConfigured))

	var v *Verifier
	_, err = v.Verify(context.Background(), "x")
	assert.True(t, errors.Is(err, ErrNotConfigured))
}
