// Copyright (c) 2026 Cinelog. All rights reserved.

package sec_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cinelog/cinelog/internal/platform/sec"
)

/*
TestHashPassword_RoundTrip verifies hashing and verification agree.
*/
func TestHashPassword_RoundTrip(t *testing.T) {
	hash, err := sec.HashPassword("correct horse battery staple")
	require.NoError(t, err)

	assert.NotEqual(t, "correct horse battery staple", hash)
	assert.True(t, sec.CheckPasswordHash("correct horse battery staple", hash))
	assert.False(t, sec.CheckPasswordHash("wrong password", hash))
	assert.False(t, sec.CheckPasswordHash("correct horse battery staple", "not-a-bcrypt-hash"))
}

/*
TestHashPassword_Salted verifies two hashes of the same input differ.
*/
func TestHashPassword_Salted(t *testing.T) {
	first, err := sec.HashPassword("same input")
	require.NoError(t, err)
	second, err := sec.HashPassword("same input")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}

/*
TestHashToken verifies the digest is deterministic, hex encoded, and safe
for inputs past bcrypt's 72-byte limit (a JWT easily is).
*/
func TestHashToken(t *testing.T) {
	longToken := strings.Repeat("eyJhbGciOiJIUzI1NiJ9.", 20)

	digest := sec.HashToken(longToken)
	assert.Len(t, digest, 64) // sha256 as hex
	assert.Equal(t, digest, sec.HashToken(longToken))
	assert.NotEqual(t, digest, sec.HashToken(longToken+"x"))

	assert.True(t, sec.VerifyTokenHash(longToken, digest))
	assert.False(t, sec.VerifyTokenHash("other token", digest))
	assert.False(t, sec.VerifyTokenHash(longToken, ""))
}
