package auth_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/paddlespot/paddlespot/internal/auth"
)

const testKey = "test-secret-key-for-testing-only-32b"

func newVerifier(issuer, audience string) *auth.TokenVerifier {
	return auth.NewTokenVerifier(auth.TokenConfig{
		SigningKey: testKey,
		Issuer:     issuer,
		Audience:   audience,
	})
}

func TestTokenVerifier_IssueAndVerify(t *testing.T) {
	v := newVerifier("paddlespot", "paddlespot-api")

	token, expiresAt, err := v.IssueToken(auth.Identity{UserID: "usr_test123", Name: "Marie"})
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.True(t, expiresAt.After(time.Now()))

	id, err := v.Verify(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, "usr_test123", id.UserID)
	assert.Equal(t, "Marie", id.Name)
	assert.False(t, id.Admin)
}

func TestTokenVerifier_AdminClaim(t *testing.T) {
	v := newVerifier("paddlespot", "paddlespot-api")

	token, _, err := v.IssueToken(auth.Identity{UserID: "usr_admin", Admin: true})
	require.NoError(t, err)

	id, err := v.Verify(context.Background(), token)
	require.NoError(t, err)
	assert.True(t, id.Admin)
}

func TestTokenVerifier_InvalidToken(t *testing.T) {
	v := newVerifier("paddlespot", "paddlespot-api")

	tests := []struct {
		name  string
		token string
	}{
		{"empty token", ""},
		{"malformed token", "not.a.valid.jwt"},
		{"invalid base64", "xxx.yyy.zzz"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := v.Verify(context.Background(), tt.token)
			assert.ErrorIs(t, err, auth.ErrInvalidToken)
		})
	}
}

func TestTokenVerifier_WrongSigningKey(t *testing.T) {
	other := auth.NewTokenVerifier(auth.TokenConfig{
		SigningKey: "a-completely-different-signing-key",
		Issuer:     "paddlespot",
		Audience:   "paddlespot-api",
	})
	token, _, err := other.IssueToken(auth.Identity{UserID: "usr_1"})
	require.NoError(t, err)

	_, err = newVerifier("paddlespot", "paddlespot-api").Verify(context.Background(), token)
	assert.ErrorIs(t, err, auth.ErrInvalidToken)
}

func TestTokenVerifier_WrongIssuerOrAudience(t *testing.T) {
	token, _, err := newVerifier("someone-else", "paddlespot-api").IssueToken(auth.Identity{UserID: "usr_1"})
	require.NoError(t, err)
	_, err = newVerifier("paddlespot", "paddlespot-api").Verify(context.Background(), token)
	assert.ErrorIs(t, err, auth.ErrInvalidToken)

	token, _, err = newVerifier("paddlespot", "other-api").IssueToken(auth.Identity{UserID: "usr_1"})
	require.NoError(t, err)
	_, err = newVerifier("paddlespot", "paddlespot-api").Verify(context.Background(), token)
	assert.ErrorIs(t, err, auth.ErrInvalidToken)
}

func TestTokenVerifier_Expired(t *testing.T) {
	issued := time.Now().Add(-48 * time.Hour)
	issuer := auth.NewTokenVerifier(auth.TokenConfig{
		SigningKey: testKey,
		Issuer:     "paddlespot",
		Audience:   "paddlespot-api",
		TTL:        time.Hour,
		Now:        func() time.Time { return issued },
	})
	token, _, err := issuer.IssueToken(auth.Identity{UserID: "usr_1"})
	require.NoError(t, err)

	_, err = newVerifier("paddlespot", "paddlespot-api").Verify(context.Background(), token)
	assert.ErrorIs(t, err, auth.ErrTokenExpired)
}
