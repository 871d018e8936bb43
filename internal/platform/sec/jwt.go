// Copyright (c) 2026 F-Students App. All rights reserved.

// Package sec provides cryptographic primitives and token management.
//
// # Architecture
//
// This package isolates security-sensitive code (Hashing, JWT Signing, the
// password strength policy) from the domain logic. It acts as an
// Infrastructure service injected into the Application layer via small
// interfaces defined at the point of use.
package sec

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// SessionClaims represents the payload embedded inside a signed session token.
//
// # Two-Stage Authorization
//
// Every token issued at login or refresh carries IsAuthorized = false. The
// only code path that ever mints IsAuthorized = true is the authorization
// exchange. The session authenticator enforces the distinction on every
// request, so the flag is the single bit the gate trusts from the token.
type SessionClaims struct {
	jwt.RegisteredClaims

	UserID       string   `json:"id"`
	Username     string   `json:"username"`
	Roles        []string `json:"roles"`
	IsAuthorized bool     `json:"isAuthorized"`
}

// TokenCodec signs and verifies session tokens using HS256 in two
// independent signing domains.
//
// # Why two secrets?
//
// Access and refresh tokens have different blast radii. Separate secrets
// guarantee a token from one domain can never verify in the other, even if
// an attacker replays a refresh token on an access-token endpoint.
type TokenCodec struct {
	accessSecret  []byte
	refreshSecret []byte
	issuer        string
	accessTTL     time.Duration
	refreshTTL    time.Duration
}

// NewTokenCodec constructs a [TokenCodec].
func NewTokenCodec(accessSecret, refreshSecret, issuer string, accessTTL, refreshTTL time.Duration) (*TokenCodec, error) {
	if accessSecret == "" || refreshSecret == "" {
		return nil, fmt.Errorf("sec: token secrets must not be empty")
	}
	if accessSecret == refreshSecret {
		return nil, fmt.Errorf("sec: access and refresh secrets must differ")
	}

	return &TokenCodec{
		accessSecret:  []byte(accessSecret),
		refreshSecret: []byte(refreshSecret),
		issuer:        issuer,
		accessTTL:     accessTTL,
		refreshTTL:    refreshTTL,
	}, nil
}

// AccessTokenTTL returns the configured access-token lifetime.
func (codec *TokenCodec) AccessTokenTTL() time.Duration {
	return codec.accessTTL
}

// IssueAccessToken signs a short-lived access token for the given identity.
//
// The IsAuthorized flag is taken from the claims as provided; the zero value
// (false) yields a pre-authorization token.
func (codec *TokenCodec) IssueAccessToken(userID, username string, roles []string, isAuthorized bool) (string, error) {
	return codec.sign(codec.accessSecret, codec.accessTTL, userID, username, roles, isAuthorized)
}

// IssueRefreshToken signs a long-lived refresh token for the given identity.
//
// Refresh tokens are never authorization-bearing. They are exchanged only
// for a fresh pre-authorization access token.
func (codec *TokenCodec) IssueRefreshToken(userID, username string, roles []string) (string, error) {
	return codec.sign(codec.refreshSecret, codec.refreshTTL, userID, username, roles, false)
}

// VerifyAccessToken checks a token against the access signing domain.
//
// Bad signature, malformed structure, wrong domain, and expiry all return an
// error. Expected failures never panic.
func (codec *TokenCodec) VerifyAccessToken(tokenString string) (*SessionClaims, error) {
	return codec.verify(tokenString, codec.accessSecret)
}

// VerifyRefreshToken checks a token against the refresh signing domain.
func (codec *TokenCodec) VerifyRefreshToken(tokenString string) (*SessionClaims, error) {
	return codec.verify(tokenString, codec.refreshSecret)
}

func (codec *TokenCodec) sign(secret []byte, ttl time.Duration, userID, username string, roles []string, isAuthorized bool) (string, error) {
	currentTime := time.Now()
	claims := SessionClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			Issuer:    codec.issuer,
			IssuedAt:  jwt.NewNumericDate(currentTime),
			ExpiresAt: jwt.NewNumericDate(currentTime.Add(ttl)),
		},
		UserID:       userID,
		Username:     username,
		Roles:        roles,
		IsAuthorized: isAuthorized,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signedToken, err := token.SignedString(secret)
	if err != nil {
		return "", fmt.Errorf("sec: failed to sign token: %w", err)
	}

	return signedToken, nil
}

func (codec *TokenCodec) verify(tokenString string, secret []byte) (*SessionClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &SessionClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("sec: unexpected signing method: %v", token.Header["alg"])
		}
		return secret, nil
	})

	if err != nil {
		return nil, fmt.Errorf("sec: invalid token: %w", err)
	}

	claims, ok := token.Claims.(*SessionClaims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("sec: invalid token claims")
	}

	return claims, nil
}
