// Package auth verifies the bearer tokens presented to the API.
//
// Users sign in with an external identity provider that issues HS256
// tokens with a shared secret. This package only checks those tokens and
// extracts the user; IssueToken exists for tooling and tests.
package auth

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// DefaultTokenTTL is the lifetime of tokens created by IssueToken.
const DefaultTokenTTL = 24 * time.Hour

// Predefined token errors.
var (
	ErrInvalidToken = errors.New("invalid access token")
	ErrTokenExpired = errors.New("access token has expired")
)

// Claims are the claims carried by API access tokens.
type Claims struct {
	jwt.RegisteredClaims

	// UserID is the authenticated user's ID.
	UserID string `json:"uid"`

	// Name is the display name shown on community posts.
	Name string `json:"name,omitempty"`

	// Admin grants catalog moderation.
	Admin bool `json:"admin,omitempty"`
}

// Identity is the verified caller.
type Identity struct {
	UserID string
	Name   string
	Admin  bool
}

// TokenConfig holds configuration for the token verifier.
type TokenConfig struct {
	// SigningKey is the shared HS256 secret.
	SigningKey string

	// Issuer is the expected issuer claim (e.g., "paddlespot").
	Issuer string

	// Audience is the expected audience claim (e.g., "paddlespot-api").
	Audience string

	// TTL is the lifetime of issued tokens.
	TTL time.Duration

	// Now overrides the clock, for tests.
	Now func() time.Time
}

// TokenVerifier validates and issues HS256 access tokens.
type TokenVerifier struct {
	signingKey []byte
	issuer     string
	audience   string
	ttl        time.Duration
	now        func() time.Time
}

// NewTokenVerifier creates a new token verifier.
func NewTokenVerifier(cfg TokenConfig) *TokenVerifier {
	if cfg.TTL <= 0 {
		cfg.TTL = DefaultTokenTTL
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	return &TokenVerifier{
		signingKey: []byte(cfg.SigningKey),
		issuer:     cfg.Issuer,
		audience:   cfg.Audience,
		ttl:        cfg.TTL,
		now:        cfg.Now,
	}
}

// IssueToken creates a signed access token for the user.
func (v *TokenVerifier) IssueToken(id Identity) (string, time.Time, error) {
	now := v.now()
	expiresAt := now.Add(v.ttl)

	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    v.issuer,
			Subject:   id.UserID,
			Audience:  jwt.ClaimStrings{v.audience},
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			NotBefore: jwt.NewNumericDate(now),
			ID:        generateTokenID(),
		},
		UserID: id.UserID,
		Name:   id.Name,
		Admin:  id.Admin,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(v.signingKey)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("signing access token: %w", err)
	}

	return signed, expiresAt, nil
}

// Verify validates a token and returns the caller.
func (v *TokenVerifier) Verify(_ context.Context, tokenString string) (*Identity, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return v.signingKey, nil
	}, jwt.WithValidMethods([]string{"HS256"}),
		jwt.WithIssuer(v.issuer),
		jwt.WithAudience(v.audience),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(v.now),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, fmt.Errorf("%w: %s", ErrInvalidToken, err.Error())
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}

	userID := claims.UserID
	if userID == "" {
		userID = claims.Subject
	}
	if userID == "" {
		return nil, fmt.Errorf("%w: no subject", ErrInvalidToken)
	}

	return &Identity{UserID: userID, Name: claims.Name, Admin: claims.Admin}, nil
}

func generateTokenID() string {
	bytes := make([]byte, 16)
	if _, err := rand.Read(bytes); err != nil {
		return ""
	}
	return base64.RawURLEncoding.EncodeToString(bytes)
}
