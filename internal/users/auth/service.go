// Copyright (c) 2026 Textgate. All rights reserved.
// Author: minh.ngo.dev@gmail.com

package auth

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/minhngo/textgate/internal/platform/apperr"
	"github.com/minhngo/textgate/internal/platform/sec"
)

// # Contracts & Types

// TokenCodec defines the contract for minting and verifying access tokens.
type TokenCodec interface {
	// Mint creates a signed access token whose subject is the user ID.
	Mint(userID int64) (string, error)

	// Verify checks a token and returns its subject user ID. Any defect —
	// signature, structure, expiry — fails with sec.ErrInvalidToken.
	Verify(token string) (int64, error)
}

// Service implements user authentication use cases.
//
// # Review Process
//
// This service is critical for security. Any changes to hashing, registration,
// or login logic must be reviewed carefully.
type Service struct {
	userRepository UserRepository
	tokenCodec     TokenCodec
}

// NewService constructs a new [Service] with necessary dependencies.
func NewService(userRepo UserRepository, codec TokenCodec) *Service {
	return &Service{
		userRepository: userRepo,
		tokenCodec:     codec,
	}
}

// # Registration Flow

// RegisterInput holds the data required to enroll a new user.
type RegisterInput struct {
	Username string
	Email    string
	Password string
}

/*
Register validates, hashes, and persists a brand new user account.

Description: Password-policy failures are rejected before any store access;
username/email uniqueness is pre-checked against the store and finally
arbitrated by the store's own constraints if two registrations race.

Parameters:
  - context: context.Context
  - input: RegisterInput

Returns:
  - *User: Created entity (password hash excluded from the external projection)
  - error: apperr.ValidationError identifying the violated constraint, or storage errors
*/
func (service *Service) Register(context context.Context, input RegisterInput) (*User, error) {

	// Password policy is pure and runs first: a weak password never costs
	// a database round trip.
	if failures := sec.CheckPasswordPolicy(FieldPassword, input.Password); len(failures) > 0 {
		return nil, apperr.ValidationError("Validation failed", failures...)
	}

	// Verify username uniqueness. Return a client-safe validation error.
	if _, err := service.userRepository.FindByUsername(context, input.Username); err == nil {
		return nil, apperr.ValidationError("Validation failed", apperr.FieldError{
			Field: FieldUsername, Message: "Username already exists",
		})
	}

	// Verify email uniqueness. Return a client-safe validation error.
	if _, err := service.userRepository.FindByEmail(context, input.Email); err == nil {
		return nil, apperr.ValidationError("Validation failed", apperr.FieldError{
			Field: FieldEmail, Message: "Email already exists",
		})
	}

	// Prevent storing plain-text passwords.
	hashedPassword, err := sec.HashPassword(input.Password)
	if err != nil {
		return nil, fmt.Errorf("auth_service_hash_failed: %w", err)
	}

	// Construct the new User entity. The store assigns the ID; the issued
	// api_key is an opaque profile attribute, not used for token signing.
	user := &User{
		Username:     input.Username,
		Email:        input.Email,
		PasswordHash: hashedPassword,
		APIKey:       uuid.NewString(),
	}

	// Persist the user. If a concurrent registration won the race, the
	// repository returns the same ValidationError taxonomy as the pre-checks.
	if err := service.userRepository.Create(context, user); err != nil {
		return nil, err
	}

	return user, nil
}

// # Authentication Flow

// LoginResult represents a successfully issued access token.
type LoginResult struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

/*
Login validates user credentials and issues a stateless access token.

Description: An unknown email and a wrong password produce byte-identical
errors so the endpoint cannot be used to enumerate registered addresses.

Parameters:
  - context: context.Context
  - email: string
  - password: string

Returns:
  - *LoginResult: Transport-ready token payload
  - error: apperr.Unauthorized or internal failures
*/
func (service *Service) Login(context context.Context, email, password string) (*LoginResult, error) {
	user, err := service.userRepository.FindByEmail(context, email)

	// If (err != nil) the user does not exist. Generic message to prevent enumeration.
	if err != nil {
		return nil, apperr.Unauthorized("Invalid credentials")
	}

	// Verify the password hash. Same error as the unknown-email path.
	if !sec.CheckPasswordHash(password, user.PasswordHash) {
		return nil, apperr.Unauthorized("Invalid credentials")
	}

	// Mint the short-lived access token.
	accessToken, err := service.tokenCodec.Mint(user.ID)
	if err != nil {
		return nil, fmt.Errorf("auth_service_token_mint_failed: %w", err)
	}

	return &LoginResult{
		AccessToken: accessToken,
		TokenType:   "bearer",
	}, nil
}

// # Bearer Resolution

/*
ResolveBearer verifies a bearer token and resolves its subject to a stored user.

Description: A token is accepted only when BOTH the cryptographic check and
the store lookup succeed — a valid signature whose subject no longer exists
does not authenticate.

Parameters:
  - context: context.Context
  - token: string

Returns:
  - *sec.Principal: The resolved identity
  - error: apperr.Unauthorized for any invalid or unresolvable token
*/
func (service *Service) ResolveBearer(context context.Context, token string) (*sec.Principal, error) {
	userID, err := service.tokenCodec.Verify(token)
	if err != nil {
		return nil, apperr.Unauthorized("Invalid or expired token")
	}

	user, err := service.userRepository.FindByID(context, userID)
	if err != nil {
		// Structurally valid token, but the principal is gone.
		return nil, apperr.Unauthorized("Invalid or expired token")
	}

	return &sec.Principal{
		UserID:   user.ID,
		Username: user.Username,
		Email:    user.Email,
		APIKey:   user.APIKey,
	}, nil
}

// # Profile Reads

/*
FindByID returns the stored user with the given ID.

Parameters:
  - context: context.Context
  - id: int64

Returns:
  - *User: Hydrated entity
  - error: apperr.NotFound or storage failures
*/
func (service *Service) FindByID(context context.Context, id int64) (*User, error) {
	return service.userRepository.FindByID(context, id)
}
