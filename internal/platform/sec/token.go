// Copyright (c) 2026 Textgate. All rights reserved.
// Author: minh.ngo.dev@gmail.com

// Package sec provides cryptographic primitives and token management.
//
// # Architecture
//
// This package isolates security-sensitive code (Hashing, JWT Signing) from
// the domain logic. It acts as an Infrastructure service injected into the
// Application layer via small interfaces defined by the consumers.
package sec

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrInvalidToken is the single failure signal for token verification.
//
// # Why one error?
//
// No partial acceptance: a bad signature, a malformed payload, a missing
// subject, and an expired token are all equally unauthenticated. Collapsing
// them into one signal also avoids leaking to a caller whether a token they
// hold was tampered with or merely expired.
var ErrInvalidToken = errors.New("sec: invalid token")

// TokenService handles generation and verification of JWT access tokens
// using HS256 with a shared symmetric secret.
//
// Tokens are stateless: validity is determined purely by signature and
// expiry — there is no server-side session table and no revocation list.
type TokenService struct {
	secret []byte
	issuer string
	ttl    time.Duration
}

// NewTokenService creates a new TokenService.
//
// The same secret must be used for minting and verification.
func NewTokenService(secret string, issuer string, ttl time.Duration) (*TokenService, error) {
	if secret == "" {
		return nil, fmt.Errorf("sec: token secret must not be empty")
	}
	return &TokenService{
		secret: []byte(secret),
		issuer: issuer,
		ttl:    ttl,
	}, nil
}

// Mint creates a signed access token for the given user.
//
// The payload carries only the subject (user ID) and standard time claims;
// anything else about the user is resolved from the store at verification time.
func (service *TokenService) Mint(userID int64) (string, error) {
	currentTime := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   strconv.FormatInt(userID, 10),
		Issuer:    service.issuer,
		IssuedAt:  jwt.NewNumericDate(currentTime),
		ExpiresAt: jwt.NewNumericDate(currentTime.Add(service.ttl)),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signedToken, err := token.SignedString(service.secret)
	if err != nil {
		return "", fmt.Errorf("sec: failed to sign token: %w", err)
	}

	return signedToken, nil
}

// Verify checks the signature and validity of a token string and returns
// the subject user ID.
//
// Any structural or cryptographic defect — bad signature, wrong signing
// method, malformed payload, missing or non-numeric subject, missing expiry,
// expired token — fails with [ErrInvalidToken]. The caller is responsible
// for resolving the returned ID to a real user.
func (service *TokenService) Verify(tokenString string) (int64, error) {
	token, err := jwt.ParseWithClaims(
		tokenString,
		&jwt.RegisteredClaims{},
		func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("sec: unexpected signing method: %v", token.Header["alg"])
			}
			return service.secret, nil
		},
		jwt.WithExpirationRequired(),
	)
	if err != nil || !token.Valid {
		return 0, ErrInvalidToken
	}

	claims, ok := token.Claims.(*jwt.RegisteredClaims)
	if !ok || claims.Subject == "" {
		return 0, ErrInvalidToken
	}

	userID, err := strconv.ParseInt(claims.Subject, 10, 64)
	if err != nil {
		return 0, ErrInvalidToken
	}

	return userID, nil
}
