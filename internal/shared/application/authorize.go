package application

import (
	"context"

	"github.com/google/uuid"
)

// Authorize loads the entity with the given id and checks that callerID is the party
// allowed to act on it. Load errors, including not-found, pass through unchanged.
// A party mismatch returns denied, so callers decide how much a refusal reveals.
func Authorize[T any](
	ctx context.Context,
	load func(ctx context.Context, id uuid.UUID) (T, error),
	id uuid.UUID,
	party func(T) uuid.UUID,
	callerID uuid.UUID,
	denied error,
) (T, error) {
	var zero T

	entity, err := load(ctx, id)
	if err != nil {
		return zero, err
	}
	if party(entity) != callerID {
		return zero, denied
	}
	return entity, nil
}
