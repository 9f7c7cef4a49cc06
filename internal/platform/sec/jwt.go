// Copyright (c) 2026 Cinelog. All rights reserved.

// Package sec provides cryptographic primitives and token management.
//
// # Architecture
//
// This package isolates security-sensitive code (hashing, JWT signing) from
// the domain logic. It is injected into the application layer through small
// interfaces defined by the consumers (e.g. auth.TokenProvider).
package sec

import (
	"context"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/sync/errgroup"

	"github.com/cinelog/cinelog/pkg/uuid"
)

// AuthClaims represents the payload embedded inside a Cinelog JWT.
//
// # Why custom claims?
//
// By embedding the email and role next to the registered subject (user id),
// the authentication middleware can reconstruct the caller's identity without
// a database round trip on every request.
type AuthClaims struct {
	jwt.RegisteredClaims

	Email string `json:"email"`
	Role  string `json:"role"`
}

// TokenPair is a freshly signed access/refresh token couple.
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// TokenService signs and verifies HS256 JWTs.
//
// Access and refresh tokens share a claim set but are signed with independent
// secrets and independent lifetimes, both supplied by configuration.
type TokenService struct {
	accessSecret  []byte
	refreshSecret []byte
	accessTTL     time.Duration
	refreshTTL    time.Duration
	issuer        string
}

// NewTokenService creates a TokenService from externally configured secrets.
func NewTokenService(accessSecret, refreshSecret string, accessTTL, refreshTTL time.Duration, issuer string) (*TokenService, error) {
	if accessSecret == "" || refreshSecret == "" {
		return nil, fmt.Errorf("sec: token secrets must not be empty")
	}
	if accessSecret == refreshSecret {
		return nil, fmt.Errorf("sec: access and refresh secrets must differ")
	}

	return &TokenService{
		accessSecret:  []byte(accessSecret),
		refreshSecret: []byte(refreshSecret),
		accessTTL:     accessTTL,
		refreshTTL:    refreshTTL,
		issuer:        issuer,
	}, nil
}

// AccessTTL returns the configured access token lifetime.
func (service *TokenService) AccessTTL() time.Duration { return service.accessTTL }

// GeneratePair signs an access and a refresh token from the same claim set.
//
// The two signatures are independent, so they run concurrently.
func (service *TokenService) GeneratePair(ctx context.Context, userID, email, role string) (*TokenPair, error) {
	pair := &TokenPair{}

	group, _ := errgroup.WithContext(ctx)
	group.Go(func() error {
		token, err := service.sign(userID, email, role, service.accessSecret, service.accessTTL)
		if err != nil {
			return fmt.Errorf("sec: failed to sign access token: %w", err)
		}
		pair.AccessToken = token
		return nil
	})
	group.Go(func() error {
		token, err := service.sign(userID, email, role, service.refreshSecret, service.refreshTTL)
		if err != nil {
			return fmt.Errorf("sec: failed to sign refresh token: %w", err)
		}
		pair.RefreshToken = token
		return nil
	})

	if err := group.Wait(); err != nil {
		return nil, err
	}

	return pair, nil
}

// VerifyAccessToken checks a token string against the access secret.
func (service *TokenService) VerifyAccessToken(tokenString string) (*AuthClaims, error) {
	return service.verify(tokenString, service.accessSecret)
}

// VerifyRefreshToken checks a token string against the refresh secret.
func (service *TokenService) VerifyRefreshToken(tokenString string) (*AuthClaims, error) {
	return service.verify(tokenString, service.refreshSecret)
}

// sign produces a single HS256 token with the standard Cinelog claim set.
func (service *TokenService) sign(userID, email, role string, secret []byte, timeToLive time.Duration) (string, error) {
	currentTime := time.Now()
	claims := AuthClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			Issuer:    service.issuer,
			IssuedAt:  jwt.NewNumericDate(currentTime),
			ExpiresAt: jwt.NewNumericDate(currentTime.Add(timeToLive)),
			// iat/exp only have second resolution; the jti guarantees two
			// tokens issued back to back are still distinct, which the
			// refresh rotation contract depends on.
			ID: uuid.New(),
		},
		Email: email,
		Role:  role,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secret)
}

// verify checks the signature and validity of a JWT string against a secret.
func (service *TokenService) verify(tokenString string, secret []byte) (*AuthClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &AuthClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("sec: unexpected signing method: %v", token.Header["alg"])
		}
		return secret, nil
	})

	if err != nil {
		return nil, fmt.Errorf("sec: invalid token: %w", err)
	}

	claims, ok := token.Claims.(*AuthClaims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("sec: invalid token claims")
	}

	return claims, nil
}
