// Package token implements the bearer token codec: compact signed tokens
// carrying a principal plus issued-at and expiry claims.
//
// Two token classes exist, signed with distinct secrets: the auth class
// (principal = account email, consulted by the request gate) and the
// user-data class (public profile fields, handed to the client for display).
// Open verifies signature and shape only — it deliberately does not reject
// expired tokens, because the session ledger's own expiry is the
// authoritative revocation signal and callers must check both together.
package token

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/webident/authcore/internal/common"
	"github.com/webident/authcore/internal/server/models"
)

// Claims is the auth-class payload: standard registered claims plus the
// principal in Data.
type Claims struct {
	jwt.RegisteredClaims
	Data string `json:"data"`
}

// ProfileClaims is the user-data-class payload carrying public profile fields.
type ProfileClaims struct {
	jwt.RegisteredClaims
	Data models.Profile `json:"data"`
}

var parser = jwt.NewParser(
	jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
	jwt.WithoutClaimsValidation(),
)

// Mint produces a signed auth-class token embedding principal with
// issuedAt = now and expiresAt = now + ttl. A random jti keeps two tokens
// minted for the same principal in the same second distinct, so every login
// gets its own addressable ledger row.
func Mint(secret []byte, principal string, ttl time.Duration) (string, error) {
	now := time.Now()
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
		Data: principal,
	})
	return t.SignedString(secret)
}

// Open verifies the signature and structure of an auth-class token and
// returns its claims. A signature mismatch, malformed payload, or wrong
// class secret yields common.ErrInvalidToken. Expiry is not checked here.
func Open(secret []byte, tokenString string) (*Claims, error) {
	claims := &Claims{}
	t, err := parser.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return secret, nil
	})
	if err != nil || !t.Valid {
		return nil, common.ErrInvalidToken
	}
	if claims.IssuedAt == nil || claims.ExpiresAt == nil {
		return nil, common.ErrInvalidToken
	}
	return claims, nil
}

// MintProfile produces a signed user-data-class token embedding the given
// public profile.
func MintProfile(secret []byte, p models.Profile, ttl time.Duration) (string, error) {
	now := time.Now()
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, ProfileClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
		Data: p,
	})
	return t.SignedString(secret)
}

// OpenProfile verifies and decodes a user-data-class token.
func OpenProfile(secret []byte, tokenString string) (*ProfileClaims, error) {
	claims := &ProfileClaims{}
	t, err := parser.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return secret, nil
	})
	if err != nil || !t.Valid {
		return nil, common.ErrInvalidToken
	}
	return claims, nil
}
