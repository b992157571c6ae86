// Copyright (c) 2026 Textgate. All rights reserved.
// Author: minh.ngo.dev@gmail.com

package sec_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/minhngo/textgate/internal/platform/sec"
)

/*
TestCheckPasswordPolicy verifies that each strength rule is enforced
independently and failures accumulate.
*/
func TestCheckPasswordPolicy(t *testing.T) {
	tests := []struct {
		name         string
		password     string
		failureCount int
	}{
		{"valid_password", "Sup3rSecret", 0},
		{"too_short", "Ab1x", 1},
		{"no_uppercase", "lowercase1", 1},
		{"no_lowercase", "UPPERCASE1", 1},
		{"no_digit", "NoDigitsHere", 1},
		{"short_and_weak", "ab", 3},
		{"empty", "", 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			failures := sec.CheckPasswordPolicy("password", tt.password)
			assert.Len(t, failures, tt.failureCount)

			for _, failure := range failures {
				assert.Equal(t, "password", failure.Field)
				assert.NotEmpty(t, failure.Message)
			}
		})
	}
}

/*
TestHashPassword verifies the bcrypt round trip and mismatch behavior.
*/
func TestHashPassword(t *testing.T) {
	hash, err := sec.HashPassword("Sup3rSecret")
	require.NoError(t, err)
	require.NotEmpty(t, hash)

	// Hash must not be reversible into the plain text.
	assert.NotEqual(t, "Sup3rSecret", hash)

	assert.True(t, sec.CheckPasswordHash("Sup3rSecret", hash))
	assert.False(t, sec.CheckPasswordHash("wrong-password", hash))
	assert.False(t, sec.CheckPasswordHash("Sup3rSecret", "not-a-bcrypt-hash"))
}
