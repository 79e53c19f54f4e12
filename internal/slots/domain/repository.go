package domain

import (
	"context"

	"github.com/google/uuid"
)

// Repository is the slot store. Every method joins the transaction carried by ctx, so the
// negotiation can batch several calls into one atomic unit.
type Repository interface {
	// Get returns ErrSlotNotFound when absent.
	Get(ctx context.Context, id uuid.UUID) (*Slot, error)
	// GetForUpdate is Get plus a row lock held until the transaction ends.
	GetForUpdate(ctx context.Context, id uuid.UUID) (*Slot, error)
	// FindByOwner returns the owner's slots ordered by start time.
	FindByOwner(ctx context.Context, ownerID uuid.UUID) ([]*Slot, error)
	// Create returns ErrUnknownOwner when the owner is not a registered user.
	Create(ctx context.Context, slot *Slot) error
	// UpdateFields applies a patch to a slot owned by ownerID that is not locked.
	// Otherwise it returns ErrSlotLocked.
	UpdateFields(ctx context.Context, id, ownerID uuid.UUID, patch Patch) error
	// Delete removes a slot owned by ownerID that is not locked. A slot named by any swap
	// request returns ErrSlotReferenced; anything else missing returns ErrSlotNotFound.
	Delete(ctx context.Context, id, ownerID uuid.UUID) error
	// SetStatus overwrites the status.
	SetStatus(ctx context.Context, id uuid.UUID, status Status) error
	// CompareAndSetStatus moves the slot from one status to another and reports false,
	// without error, when the stored status was not from.
	CompareAndSetStatus(ctx context.Context, id uuid.UUID, from, to Status) (bool, error)
	// SetOwnerAndStatus overwrites owner and status together.
	SetOwnerAndStatus(ctx context.Context, id, ownerID uuid.UUID, status Status) error
}
