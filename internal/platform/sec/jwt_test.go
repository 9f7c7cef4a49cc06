// Copyright (c) 2026 Cinelog. All rights reserved.

package sec_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cinelog/cinelog/internal/platform/sec"
)

func newTestTokenService(t *testing.T) *sec.TokenService {
	t.Helper()
	service, err := sec.NewTokenService(
		"access-secret-for-tests",
		"refresh-secret-for-tests",
		15*time.Minute,
		7*24*time.Hour,
		"cinelog.app",
	)
	require.NoError(t, err)
	return service
}

/*
TestNewTokenService_RejectsWeakSetup verifies constructor guard rails.
*/
func TestNewTokenService_RejectsWeakSetup(t *testing.T) {
	_, err := sec.NewTokenService("", "refresh", time.Minute, time.Hour, "cinelog.app")
	assert.Error(t, err, "empty access secret")

	_, err = sec.NewTokenService("access", "", time.Minute, time.Hour, "cinelog.app")
	assert.Error(t, err, "empty refresh secret")

	_, err = sec.NewTokenService("same", "same", time.Minute, time.Hour, "cinelog.app")
	assert.Error(t, err, "shared secret defeats the dual-token design")
}

/*
TestGeneratePair_RoundTrip verifies both tokens verify against their own
secret and carry the full claim set.
*/
func TestGeneratePair_RoundTrip(t *testing.T) {
	service := newTestTokenService(t)

	pair, err := service.GeneratePair(context.Background(), "user-123", "mia@cinelog.app", "USER")
	require.NoError(t, err)
	require.NotEmpty(t, pair.AccessToken)
	require.NotEmpty(t, pair.RefreshToken)
	assert.NotEqual(t, pair.AccessToken, pair.RefreshToken)

	access, err := service.VerifyAccessToken(pair.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "user-123", access.Subject)
	assert.Equal(t, "mia@cinelog.app", access.Email)
	assert.Equal(t, "USER", access.Role)
	assert.Equal(t, "cinelog.app", access.Issuer)

	refresh, err := service.VerifyRefreshToken(pair.RefreshToken)
	require.NoError(t, err)
	assert.Equal(t, "user-123", refresh.Subject)
}

/*
TestVerify_CrossSecretRejection verifies a refresh token never passes as an
access token and vice versa.
*/
func TestVerify_CrossSecretRejection(t *testing.T) {
	service := newTestTokenService(t)

	pair, err := service.GeneratePair(context.Background(), "user-123", "mia@cinelog.app", "USER")
	require.NoError(t, err)

	_, err = service.VerifyAccessToken(pair.RefreshToken)
	assert.Error(t, err)

	_, err = service.VerifyRefreshToken(pair.AccessToken)
	assert.Error(t, err)
}

/*
TestVerify_Expired verifies an expired token is rejected.
*/
func TestVerify_Expired(t *testing.T) {
	service, err := sec.NewTokenService(
		"access-secret-for-tests",
		"refresh-secret-for-tests",
		-1*time.Minute, // already expired at signing time
		time.Hour,
		"cinelog.app",
	)
	require.NoError(t, err)

	pair, err := service.GeneratePair(context.Background(), "user-123", "mia@cinelog.app", "USER")
	require.NoError(t, err)

	_, err = service.VerifyAccessToken(pair.AccessToken)
	assert.Error(t, err)
}

/*
TestVerify_Garbage verifies malformed input is rejected.
*/
func TestVerify_Garbage(t *testing.T) {
	service := newTestTokenService(t)

	for _, token := range []string{"", "not-a-jwt", "a.b.c"} {
		_, err := service.VerifyAccessToken(token)
		assert.Error(t, err)
	}
}
