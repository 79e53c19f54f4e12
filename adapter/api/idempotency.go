package api

import (
	"bytes"
	"log/slog"
	"net/http"
	"time"

	"github.com/felixgeelhaar/slotswap/internal/shared/infrastructure/idempotency"
)

// IdempotencyKeyHeader names the client-chosen key of a retryable request.
const IdempotencyKeyHeader = "Idempotency-Key"

// replayedHeader marks a response served from the idempotency store.
const replayedHeader = "Idempotent-Replayed"

// IdempotencyGuard replays the first completed response for a repeated key.
// Keys are scoped per caller. Server errors are not remembered so they can be retried.
type IdempotencyGuard struct {
	store  idempotency.Store
	ttl    time.Duration
	logger *slog.Logger
}

// NewIdempotencyGuard creates an IdempotencyGuard.
func NewIdempotencyGuard(store idempotency.Store, ttl time.Duration, logger *slog.Logger) *IdempotencyGuard {
	if logger == nil {
		logger = slog.Default()
	}
	return &IdempotencyGuard{store: store, ttl: ttl, logger: logger}
}

// Middleware must run after authentication. A nil guard passes requests through.
func (g *IdempotencyGuard) Middleware(next http.Handler) http.Handler {
	if g == nil {
		return next
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		key := r.Header.Get(IdempotencyKeyHeader)
		callerID, ok := CallerFromContext(r.Context())
		if key == "" || !ok {
			next.ServeHTTP(w, r)
			return
		}
		key = callerID.String() + ":" + r.Method + ":" + r.URL.Path + ":" + key

		rec, found, err := g.store.Get(r.Context(), key)
		if err != nil {
			g.logger.Warn("idempotency lookup failed", "error", err)
		}
		if found {
			if rec.ContentType != "" {
				w.Header().Set("Content-Type", rec.ContentType)
			}
			w.Header().Set(replayedHeader, "true")
			w.WriteHeader(rec.Status)
			_, _ = w.Write(rec.Body)
			return
		}

		capture := &capturingWriter{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(capture, r)

		if capture.status >= http.StatusInternalServerError {
			return
		}
		rec = idempotency.Record{
			Status:      capture.status,
			ContentType: capture.Header().Get("Content-Type"),
			Body:        capture.body.Bytes(),
		}
		if _, err := g.store.Put(r.Context(), key, rec, g.ttl); err != nil {
			g.logger.Warn("idempotency store failed", "error", err)
		}
	})
}

// capturingWriter copies the status and body it forwards.
type capturingWriter struct {
	http.ResponseWriter
	status      int
	wroteHeader bool
	body        bytes.Buffer
}

func (c *capturingWriter) WriteHeader(status int) {
	if !c.wroteHeader {
		c.status = status
		c.wroteHeader = true
	}
	c.ResponseWriter.WriteHeader(status)
}

func (c *capturingWriter) Write(p []byte) (int, error) {
	c.wroteHeader = true
	c.body.Write(p)
	return c.ResponseWriter.Write(p)
}
