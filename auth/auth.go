// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package auth

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"strings"
)

var (
	ErrInvalidToken     = errors.New("invalid token format")
	ErrInvalidSignature = errors.New("invalid token signature")
)

// GenerateSessionToken creates a signed session token for a user.
// Tokens are issued by the account service; this is the same scheme it uses
// and exists for tooling and tests.
func GenerateSessionToken(userID, secret string) string {
	payload := base64.RawURLEncoding.EncodeToString([]byte(userID))
	return payload + "." + sign(payload, secret)
}

// ValidateSessionToken checks the token signature and returns the user ID
func ValidateSessionToken(token, secret string) (string, error) {
	payload, sig, ok := strings.Cut(token, ".")
	if !ok || payload == "" || sig == "" {
		return "", ErrInvalidToken
	}

	expected := sign(payload, secret)
	if !hmac.Equal([]byte(sig), []byte(expected)) {
		return "", ErrInvalidSignature
	}

	userID, err := base64.RawURLEncoding.DecodeString(payload)
	if err != nil || len(userID) == 0 {
		return "", ErrInvalidToken
	}
	return string(userID), nil
}

// sign returns the URL-safe HMAC-SHA256 of payload without padding
func sign(payload, secret string) string {
	h := hmac.New(sha256.New, []byte(secret))
	h.Write([]byte(payload))
	return base64.RawURLEncoding.EncodeToString(h.Sum(nil))
}
