// Copyright (c) 2026 Textgate. All rights reserved.
// Author: minh.ngo.dev@gmail.com

package dberr_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/minhngo/textgate/internal/platform/apperr"
	"github.com/minhngo/textgate/internal/platform/dberr"
)

/*
TestWrap verifies the three classification outcomes: nil passthrough,
empty-result mapping, and catch-all internal wrapping.
*/
func TestWrap(t *testing.T) {
	assert.NoError(t, dberr.Wrap(nil))

	// 1. An empty result anywhere in the chain maps to the not-found error.
	wrapped := dberr.Wrap(fmt.Errorf("lookup failed: %w", pgx.ErrNoRows))
	assert.Same(t, dberr.ErrNotFound, wrapped)
	assert.Equal(t, "NOT_FOUND", apperr.As(wrapped).Code)

	// 2. Anything else becomes an internal error carrying the cause.
	cause := errors.New("connection reset")
	wrapped = dberr.Wrap(cause)

	ae := apperr.As(wrapped)
	require.NotNil(t, ae)
	assert.Equal(t, "INTERNAL_ERROR", ae.Code)
	assert.Same(t, cause, ae.Cause)
}

/*
TestUniqueViolation verifies constraint-name extraction from SQLSTATE 23505
and rejection of everything else.
*/
func TestUniqueViolation(t *testing.T) {
	pgError := &pgconn.PgError{Code: pgerrcode.UniqueViolation, ConstraintName: "users_username_key"}

	constraint, ok := dberr.UniqueViolation(fmt.Errorf("insert failed: %w", pgError))
	require.True(t, ok)
	assert.Equal(t, "users_username_key", constraint)

	_, ok = dberr.UniqueViolation(errors.New("connection reset"))
	assert.False(t, ok)

	_, ok = dberr.UniqueViolation(&pgconn.PgError{Code: pgerrcode.ForeignKeyViolation})
	assert.False(t, ok)
}

/*
TestIsNoRows verifies the empty-result predicate against wrapped chains.
*/
func TestIsNoRows(t *testing.T) {
	assert.True(t, dberr.IsNoRows(pgx.ErrNoRows))
	assert.True(t, dberr.IsNoRows(fmt.Errorf("scan: %w", pgx.ErrNoRows)))
	assert.False(t, dberr.IsNoRows(errors.New("connection reset")))
}
