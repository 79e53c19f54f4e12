package api

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

type callerKey struct{}

// Authenticator verifies HS256 bearer tokens. The token subject is the caller's user ID.
// Issuing tokens belongs to the identity provider.
type Authenticator struct {
	secret []byte
	logger *slog.Logger
}

// NewAuthenticator creates an Authenticator for tokens signed with secret.
func NewAuthenticator(secret []byte, logger *slog.Logger) *Authenticator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Authenticator{secret: secret, logger: logger}
}

// Verify parses a token and returns its subject.
func (a *Authenticator) Verify(tokenStr string) (uuid.UUID, error) {
	claims := &jwt.RegisteredClaims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (any, error) {
		return a.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return uuid.Nil, err
	}
	if !token.Valid {
		return uuid.Nil, errors.New("invalid token")
	}

	callerID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return uuid.Nil, errors.New("token subject is not a user id")
	}
	return callerID, nil
}

// Middleware rejects requests without a valid bearer token and stores the caller in the context.
func (a *Authenticator) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		tokenStr, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || tokenStr == "" {
			writeError(w, ErrUnauthorized)
			return
		}

		callerID, err := a.Verify(strings.TrimSpace(tokenStr))
		if err != nil {
			a.logger.Debug("rejected bearer token", "error", err)
			writeError(w, ErrUnauthorized)
			return
		}

		next.ServeHTTP(w, r.WithContext(WithCaller(r.Context(), callerID)))
	})
}

// WithCaller returns a context carrying the verified caller.
func WithCaller(ctx context.Context, callerID uuid.UUID) context.Context {
	return context.WithValue(ctx, callerKey{}, callerID)
}

// CallerFromContext returns the caller stored by Middleware.
func CallerFromContext(ctx context.Context) (uuid.UUID, bool) {
	callerID, ok := ctx.Value(callerKey{}).(uuid.UUID)
	return callerID, ok
}
