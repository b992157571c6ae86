// Copyright (c) 2026 Textgate. All rights reserved.
// Author: minh.ngo.dev@gmail.com

package usage

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/minhngo/textgate/internal/platform/dberr"
)

// # PostgreSQL Entry Store

// PostgresEntryStore persists usage entries in the api_usage table.
type PostgresEntryStore struct {
	pool *pgxpool.Pool
}

// NewPostgresEntryStore constructs a new [PostgresEntryStore].
func NewPostgresEntryStore(pool *pgxpool.Pool) *PostgresEntryStore {
	return &PostgresEntryStore{pool: pool}
}

/*
Insert writes one usage entry and backfills its generated identity.

Parameters:
  - context: context.Context
  - entry: *Entry

Returns:
  - error: Wrapped storage failure, or nil
*/
func (store *PostgresEntryStore) Insert(context context.Context, entry *Entry) error {
	entry.CreatedAt = time.Now().UTC()

	query := `
		INSERT INTO api_usage (userid, endpoint, statuscode, responsetimems, requestdata, responsedata, createdat)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id`

	err := store.pool.QueryRow(context, query,
		entry.UserID,
		entry.Endpoint,
		entry.StatusCode,
		entry.ResponseTime,
		entry.RequestData,
		entry.ResponseData,
		entry.CreatedAt,
	).Scan(&entry.ID)
	if err != nil {
		return dberr.Wrap(fmt.Errorf("postgres_usage_store_insert_failed: %w", err))
	}

	return nil
}
