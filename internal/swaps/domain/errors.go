package domain

import (
	"errors"
	"fmt"

	sharedDomain "github.com/felixgeelhaar/slotswap/internal/shared/domain"
)

// Failure kinds returned by the negotiation. Every one of them means nothing was committed.
var (
	ErrNotFound         = errors.New("not found")
	ErrInvalidSlotState = errors.New("slot is not in the required state")
	ErrSelfSwap         = errors.New("cannot swap slots with yourself")
	// ErrNotAuthorizedOrStale covers both "not your request" and "no longer pending",
	// so a caller cannot learn what other users did with a request.
	ErrNotAuthorizedOrStale = errors.New("swap request is not yours to answer or no longer pending")
	ErrUnavailable          = sharedDomain.ErrUnavailable
)

// Store-level errors.
var (
	ErrRequestNotFound   = fmt.Errorf("swap request %w", ErrNotFound)
	ErrRequestNotPending = errors.New("swap request is no longer pending")
	ErrInvalidDecision   = errors.New("decision must be accept or reject")
)
