// Copyright (c) 2026 Cinelog. All rights reserved.

package sec

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// HashPassword hashes a plain-text password using the bcrypt algorithm.
func HashPassword(plainTextPassword string) (string, error) {
	hashedBytes, err := bcrypt.GenerateFromPassword([]byte(plainTextPassword), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("sec: failed to hash password: %w", err)
	}
	return string(hashedBytes), nil
}

// CheckPasswordHash compares a plain-text password with its hashed version.
func CheckPasswordHash(plainTextPassword, existingHash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(existingHash), []byte(plainTextPassword))
	return err == nil
}

// HashToken returns the hex-encoded SHA-256 digest of a token.
//
// Refresh tokens are JWTs and exceed bcrypt's 72-byte input limit, so the
// persisted rotation hash uses SHA-256 instead. The digest is what gets
// stored on the user row; the raw token never touches the database.
func HashToken(token string) string {
	digest := sha256.Sum256([]byte(token))
	return hex.EncodeToString(digest[:])
}

// VerifyTokenHash reports whether token matches the stored digest using a
// constant-time comparison.
func VerifyTokenHash(token, existingHash string) bool {
	return hmac.Equal([]byte(HashToken(token)), []byte(existingHash))
}
