// Copyright (c) 2026 Textgate. All rights reserved.
// Author: minh.ngo.dev@gmail.com

package sec

// Principal is the fully resolved identity of an authenticated request.
//
// # Why a resolved principal, not raw claims?
//
// A bearer token whose signature validates is not enough to authenticate a
// request: its subject must still resolve to an existing user record. The
// authentication middleware performs that resolution once and stores the
// result here, so downstream handlers never act on a subject that has been
// deleted out from under a still-valid token.
type Principal struct {
	UserID   int64
	Username string
	Email    string
	APIKey   string
}
