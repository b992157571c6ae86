// Copyright (c) 2026 Textgate. All rights reserved.
// Author: minh.ngo.dev@gmail.com

package sec_test

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/minhngo/textgate/internal/platform/sec"
)

const testSecret = "test-secret-at-least-32-bytes-long!!"

/*
TestTokenService_RoundTrip verifies that a minted token resolves back to the
same user ID.
*/
func TestTokenService_RoundTrip(t *testing.T) {
	service, err := sec.NewTokenService(testSecret, "textgate", 30*time.Minute)
	require.NoError(t, err)

	token, err := service.Mint(42)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	userID, err := service.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, int64(42), userID)
}

/*
TestTokenService_EmptySecret verifies that construction fails without a secret.
*/
func TestTokenService_EmptySecret(t *testing.T) {
	_, err := sec.NewTokenService("", "textgate", 30*time.Minute)
	assert.Error(t, err)
}

/*
TestTokenService_Expired verifies that a token past its TTL is rejected.
*/
func TestTokenService_Expired(t *testing.T) {
	// A negative TTL mints tokens that are already expired.
	service, err := sec.NewTokenService(testSecret, "textgate", -1*time.Minute)
	require.NoError(t, err)

	token, err := service.Mint(42)
	require.NoError(t, err)

	_, err = service.Verify(token)
	assert.ErrorIs(t, err, sec.ErrInvalidToken)
}

/*
TestTokenService_Tampered verifies that modifying any byte invalidates the token.
*/
func TestTokenService_Tampered(t *testing.T) {
	service, err := sec.NewTokenService(testSecret, "textgate", 30*time.Minute)
	require.NoError(t, err)

	token, err := service.Mint(42)
	require.NoError(t, err)

	// Extend the signature segment so it no longer matches the payload.
	tampered := token + "x"

	_, err = service.Verify(tampered)
	assert.ErrorIs(t, err, sec.ErrInvalidToken)
}

/*
TestTokenService_WrongSecret verifies that tokens signed with another key are rejected.
*/
func TestTokenService_WrongSecret(t *testing.T) {
	minter, err := sec.NewTokenService("another-secret-for-a-different-app", "textgate", 30*time.Minute)
	require.NoError(t, err)

	verifier, err := sec.NewTokenService(testSecret, "textgate", 30*time.Minute)
	require.NoError(t, err)

	token, err := minter.Mint(42)
	require.NoError(t, err)

	_, err = verifier.Verify(token)
	assert.ErrorIs(t, err, sec.ErrInvalidToken)
}

/*
TestTokenService_MissingSubject verifies that structurally valid tokens
without a numeric subject are rejected.
*/
func TestTokenService_MissingSubject(t *testing.T) {
	service, err := sec.NewTokenService(testSecret, "textgate", 30*time.Minute)
	require.NoError(t, err)

	tests := []struct {
		name    string
		subject string
	}{
		{"empty_subject", ""},
		{"non_numeric_subject", "not-a-number"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			now := time.Now()
			claims := jwt.RegisteredClaims{
				Subject:   tt.subject,
				Issuer:    "textgate",
				IssuedAt:  jwt.NewNumericDate(now),
				ExpiresAt: jwt.NewNumericDate(now.Add(30 * time.Minute)),
			}
			token, signErr := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
			require.NoError(t, signErr)

			_, verifyErr := service.Verify(token)
			assert.ErrorIs(t, verifyErr, sec.ErrInvalidToken)
		})
	}
}

/*
TestTokenService_Garbage verifies that non-JWT input is rejected.
*/
func TestTokenService_Garbage(t *testing.T) {
	service, err := sec.NewTokenService(testSecret, "textgate", 30*time.Minute)
	require.NoError(t, err)

	for _, input := range []string{"", "garbage", "a.b.c"} {
		_, err := service.Verify(input)
		assert.ErrorIs(t, err, sec.ErrInvalidToken)
	}
}
