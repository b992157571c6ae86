// Copyright (c) 2026 Textgate. All rights reserved.
// Author: minh.ngo.dev@gmail.com

package auth

import "context"

// # User Data Access

// UserRepository defines the data access contract for user accounts.
//
// The backing store — not application code — is the final arbiter of
// username/email uniqueness: Create must fail on a duplicate even when the
// pre-checks raced with a concurrent registration.
type UserRepository interface {

	/*
		FindByID returns the account with the given ID.

		Parameters:
		  - context: context.Context
		  - id: int64

		Returns:
		  - *User: Hydrated entity
		  - error: apperr.NotFound or database errors
	*/
	FindByID(context context.Context, id int64) (*User, error)

	/*
		FindByEmail returns the account with the given email.

		Parameters:
		  - context: context.Context
		  - email: string

		Returns:
		  - *User: Hydrated entity
		  - error: apperr.NotFound or database errors
	*/
	FindByEmail(context context.Context, email string) (*User, error)

	/*
		FindByUsername returns the account with the given username.

		Parameters:
		  - context: context.Context
		  - username: string

		Returns:
		  - *User: Hydrated entity
		  - error: apperr.NotFound or database errors
	*/
	FindByUsername(context context.Context, username string) (*User, error)

	/*
		Create persists a brand-new user account and assigns its ID.

		Description: A unique-constraint violation is mapped to the same
		VALIDATION_ERROR taxonomy as the service pre-checks, with the
		colliding field identified from the violated constraint name.

		Parameters:
		  - context: context.Context
		  - user: *User (ID is populated on success)

		Returns:
		  - error: Validation (duplicate) or persistence failures
	*/
	Create(context context.Context, user *User) error
}
