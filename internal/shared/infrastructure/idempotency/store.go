// Package idempotency remembers the first committed response to a keyed request so a
// retried call replays it instead of running the operation again.
package idempotency

import (
	"context"
	"time"
)

// Record is a stored response.
type Record struct {
	Status      int    `json:"status"`
	ContentType string `json:"contentType"`
	Body        []byte `json:"body"`
}

// Store keeps records for a limited time.
type Store interface {
	// Get returns the record for key, or found=false.
	Get(ctx context.Context, key string) (rec Record, found bool, err error)
	// Put stores rec unless key is already taken and reports whether it stored it.
	Put(ctx context.Context, key string, rec Record, ttl time.Duration) (bool, error)
}
