// Package cache provides the TTL key-value store backing OTP codes and
// proof tokens. All access goes through the Store interface so the
// verification workflow is testable without a Redis backend.
package cache

import (
	"context"
	"time"
)

// Store is a TTL key-value store. Set overwrites any existing value and
// resets the expiry; Get reports absence (missing or expired) via its
// second return value rather than an error.
type Store interface {
	Set(ctx context.Context, key, value string, ttl time.Duration) error
	Get(ctx context.Context, key string) (string, bool, error)
}
