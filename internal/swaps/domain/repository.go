package domain

import (
	"context"

	"github.com/google/uuid"
)

// Repository is the swap request store. Every method joins the transaction carried by ctx.
type Repository interface {
	// Get returns ErrRequestNotFound when absent.
	Get(ctx context.Context, id uuid.UUID) (*SwapRequest, error)
	// GetForUpdate is Get plus a row lock held until the transaction ends.
	GetForUpdate(ctx context.Context, id uuid.UUID) (*SwapRequest, error)
	// ListIncoming returns requests answered by responderID, oldest first, optionally by status.
	ListIncoming(ctx context.Context, responderID uuid.UUID, status *RequestStatus) ([]*SwapRequest, error)
	// ListOutgoing returns requests made by requesterID, newest first.
	ListOutgoing(ctx context.Context, requesterID uuid.UUID) ([]*SwapRequest, error)
	Create(ctx context.Context, request *SwapRequest) error
	// SetStatus resolves a PENDING request. Anything else returns ErrRequestNotPending.
	SetStatus(ctx context.Context, id uuid.UUID, status RequestStatus) error
	// RejectAllPendingReferencing rejects every PENDING request naming any of slotIDs on
	// either side and returns those requests as rejected.
	RejectAllPendingReferencing(ctx context.Context, slotIDs []uuid.UUID) ([]*SwapRequest, error)
}

// ViewRepository serves the read-only projections that join requests, slots and users.
type ViewRepository interface {
	// Marketplace lists SWAPPABLE slots not owned by callerID, earliest first.
	Marketplace(ctx context.Context, callerID uuid.UUID) ([]MarketplaceEntry, error)
	// Incoming lists PENDING requests answered by callerID, oldest first.
	Incoming(ctx context.Context, callerID uuid.UUID) ([]RequestView, error)
	// Outgoing lists every request made by callerID, newest first.
	Outgoing(ctx context.Context, callerID uuid.UUID) ([]RequestView, error)
}
