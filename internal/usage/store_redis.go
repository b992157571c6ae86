// Copyright (c) 2026 Textgate. All rights reserved.
// Author: minh.ngo.dev@gmail.com

package usage

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/minhngo/textgate/internal/platform/constants"
)

// counterTTL keeps yesterday's counter around for a full day after rollover.
const counterTTL = 48 * time.Hour

// # Redis Daily Counter

// RedisDailyCounter keeps per-user daily request counts in Redis.
//
// Keys follow usage:daily:<user_id>:<yyyy-mm-dd> and expire on their own, so
// the counter set never needs manual cleanup.
type RedisDailyCounter struct {
	client *redis.Client
}

// NewRedisDailyCounter constructs a new [RedisDailyCounter].
func NewRedisDailyCounter(client *redis.Client) *RedisDailyCounter {
	return &RedisDailyCounter{client: client}
}

/*
Increment bumps the user's counter for the given calendar day.

Parameters:
  - context: context.Context
  - userID: int64
  - day: time.Time (the UTC date selects the counter key)

Returns:
  - error: Wrapped Redis failure, or nil
*/
func (counter *RedisDailyCounter) Increment(context context.Context, userID int64, day time.Time) error {
	key := counterKey(userID, day)

	pipeline := counter.client.TxPipeline()
	pipeline.Incr(context, key)
	pipeline.Expire(context, key, counterTTL)

	if _, err := pipeline.Exec(context); err != nil {
		return fmt.Errorf("redis_usage_counter_incr_failed: %w", err)
	}

	return nil
}

// counterKey builds the Redis key for one user-day pair.
func counterKey(userID int64, day time.Time) string {
	return constants.RedisPrefixDailyUsage + strconv.FormatInt(userID, 10) + ":" + day.Format("2006-01-02")
}
