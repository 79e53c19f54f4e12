package commands

import (
	"errors"
	"fmt"

	"github.com/felixgeelhaar/slotswap/internal/shared/infrastructure/database"
	"github.com/felixgeelhaar/slotswap/internal/swaps/domain"
)

// classify maps whatever aborted a negotiation onto the failure kinds callers act on.
// Lost races become onConflict; anything the caller could not have caused becomes ErrUnavailable.
func classify(err, onConflict error) error {
	switch {
	case errors.Is(err, domain.ErrNotFound),
		errors.Is(err, domain.ErrInvalidSlotState),
		errors.Is(err, domain.ErrSelfSwap),
		errors.Is(err, domain.ErrNotAuthorizedOrStale),
		errors.Is(err, domain.ErrUnavailable):
		return err
	case database.IsConflict(err):
		return fmt.Errorf("%w: %v", onConflict, err)
	default:
		return fmt.Errorf("%w: %w", domain.ErrUnavailable, err)
	}
}

// kind names the failure for logs.
func kind(err error) string {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return "not_found"
	case errors.Is(err, domain.ErrInvalidSlotState):
		return "invalid_slot_state"
	case errors.Is(err, domain.ErrSelfSwap):
		return "self_swap"
	case errors.Is(err, domain.ErrNotAuthorizedOrStale):
		return "not_authorized_or_stale"
	default:
		return "unavailable"
	}
}
