package api

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/felixgeelhaar/slotswap/internal/shared/infrastructure/idempotency"
)

func TestIdempotencyGuard(t *testing.T) {
	callerID := uuid.New()

	serve := func(h http.Handler, key string, caller uuid.UUID) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/swaps", nil)
		if key != "" {
			req.Header.Set(IdempotencyKeyHeader, key)
		}
		if caller != uuid.Nil {
			req = req.WithContext(WithCaller(req.Context(), caller))
		}
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		return rec
	}

	t.Run("replays the first response", func(t *testing.T) {
		calls := 0
		guard := NewIdempotencyGuard(idempotency.NewMemoryStore(), time.Hour, nil)
		h := guard.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			calls++
			writeJSON(w, http.StatusCreated, map[string]int{"call": calls})
		}))

		first := serve(h, "k1", callerID)
		second := serve(h, "k1", callerID)

		assert.Equal(t, 1, calls)
		assert.Equal(t, http.StatusCreated, second.Code)
		assert.Equal(t, first.Body.String(), second.Body.String())
		assert.Equal(t, "application/json", second.Header().Get("Content-Type"))
	})

	t.Run("keys are scoped per caller", func(t *testing.T) {
		calls := 0
		guard := NewIdempotencyGuard(idempotency.NewMemoryStore(), time.Hour, nil)
		h := guard.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			calls++
			w.WriteHeader(http.StatusOK)
		}))

		serve(h, "k1", callerID)
		serve(h, "k1", uuid.New())

		assert.Equal(t, 2, calls)
	})

	t.Run("server errors are not remembered", func(t *testing.T) {
		calls := 0
		guard := NewIdempotencyGuard(idempotency.NewMemoryStore(), time.Hour, nil)
		h := guard.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			calls++
			if calls == 1 {
				writeError(w, ErrUnavailable)
				return
			}
			w.WriteHeader(http.StatusOK)
		}))

		first := serve(h, "k1", callerID)
		second := serve(h, "k1", callerID)

		assert.Equal(t, http.StatusServiceUnavailable, first.Code)
		assert.Equal(t, http.StatusOK, second.Code)
		assert.Equal(t, 2, calls)
	})

	t.Run("requests without a key pass through", func(t *testing.T) {
		calls := 0
		guard := NewIdempotencyGuard(idempotency.NewMemoryStore(), time.Hour, nil)
		h := guard.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			calls++
		}))

		serve(h, "", callerID)
		serve(h, "", callerID)

		assert.Equal(t, 2, calls)
	})

	t.Run("nil guard", func(t *testing.T) {
		var guard *IdempotencyGuard
		next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {})
		assert.NotNil(t, guard.Middleware(next))
	})
}
