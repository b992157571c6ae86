// Copyright (c) 2026 Textgate. All rights reserved.
// Author: minh.ngo.dev@gmail.com

/*
Package usage meters text generation traffic per user.

Every generation call produces one durable accounting row in PostgreSQL and
bumps a short-lived daily counter in Redis. Metering is strictly best effort:
a failed insert or counter bump is logged and swallowed, never surfaced to
the request that triggered it.
*/
package usage

import (
	"context"
	"time"

	"github.com/minhngo/textgate/internal/platform/ctxutil"
	"github.com/minhngo/textgate/internal/textgen"
)

// # Contracts

// EntryStore persists accounting rows.
type EntryStore interface {
	Insert(ctx context.Context, entry *Entry) error
}

// DailyCounter tracks per-user request counts by calendar day.
type DailyCounter interface {
	Increment(ctx context.Context, userID int64, day time.Time) error
}

// Entry is one persisted accounting row.
type Entry struct {
	ID           int64
	UserID       int64
	Endpoint     string
	StatusCode   int
	ResponseTime int64
	RequestData  []byte
	ResponseData []byte
	CreatedAt    time.Time
}

// # Service

// Service fans one usage record out to the durable store and the counter.
type Service struct {
	entryStore   EntryStore
	dailyCounter DailyCounter
}

// NewService constructs a new [Service] with necessary dependencies.
func NewService(entryStore EntryStore, dailyCounter DailyCounter) *Service {
	return &Service{
		entryStore:   entryStore,
		dailyCounter: dailyCounter,
	}
}

/*
Record persists one usage record and bumps the caller's daily counter.

Description: Both writes are independent and best effort. A failure in either
is logged at warn level and dropped so metering can never take down the
request path it observes.

Parameters:
  - context: context.Context
  - record: textgen.UsageRecord
*/
func (service *Service) Record(context context.Context, record textgen.UsageRecord) {
	logger := ctxutil.GetLogger(context)

	entry := &Entry{
		UserID:       record.UserID,
		Endpoint:     record.Endpoint,
		StatusCode:   record.StatusCode,
		ResponseTime: record.ElapsedMS,
		RequestData:  record.RequestData,
		ResponseData: record.ResponseData,
	}

	if err := service.entryStore.Insert(context, entry); err != nil {
		logger.Warn("usage entry insert failed",
			"user_id", record.UserID,
			"endpoint", record.Endpoint,
			"error", err,
		)
	}

	if err := service.dailyCounter.Increment(context, record.UserID, time.Now().UTC()); err != nil {
		logger.Warn("usage counter increment failed",
			"user_id", record.UserID,
			"error", err,
		)
	}
}
