// Copyright (c) 2026 Textgate. All rights reserved.
// Author: minh.ngo.dev@gmail.com

package sec

import (
	"unicode"

	"github.com/minhngo/textgate/internal/platform/apperr"
)

// # Password Policy

// MinPasswordLength is the minimum number of characters a password must have.
const MinPasswordLength = 8

/*
CheckPasswordPolicy validates a candidate password against the strength policy.

Description: Pure, synchronous check — it never touches the store, so policy
failures are rejected before any database round trip.

Rules:
  - At least [MinPasswordLength] characters.
  - At least one uppercase letter.
  - At least one lowercase letter.
  - At least one digit.

Parameters:
  - field: The JSON field name to attribute failures to.
  - password: The plain-text candidate.

Returns:
  - []apperr.FieldError: One entry per violated rule, nil when the policy holds.
*/
func CheckPasswordPolicy(field, password string) []apperr.FieldError {
	var failures []apperr.FieldError

	add := func(message string) {
		failures = append(failures, apperr.FieldError{Field: field, Message: message})
	}

	if len([]rune(password)) < MinPasswordLength {
		add("Password must be at least 8 characters long")
	}

	var hasUpper, hasLower, hasDigit bool
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsDigit(r):
			hasDigit = true
		}
	}

	if !hasUpper {
		add("Password must contain at least one uppercase letter")
	}
	if !hasLower {
		add("Password must contain at least one lowercase letter")
	}
	if !hasDigit {
		add("Password must contain at least one digit")
	}

	return failures
}
