package commands

import (
	"context"

	sharedApplication "github.com/felixgeelhaar/slotswap/internal/shared/application"
	"github.com/felixgeelhaar/slotswap/internal/slots/domain"
	"github.com/google/uuid"
)

// UpdateSlotCommand edits a slot the caller owns. Nil fields are left alone.
type UpdateSlotCommand struct {
	SlotID   uuid.UUID
	CallerID uuid.UUID
	Patch    domain.Patch
}

// UpdateSlotHandler handles UpdateSlotCommand.
type UpdateSlotHandler struct {
	repo domain.Repository
	uow  sharedApplication.UnitOfWork
}

// NewUpdateSlotHandler creates an UpdateSlotHandler.
func NewUpdateSlotHandler(repo domain.Repository, uow sharedApplication.UnitOfWork) *UpdateSlotHandler {
	return &UpdateSlotHandler{repo: repo, uow: uow}
}

// Handle applies the patch and returns the updated slot.
// A slot the caller does not own is reported as domain.ErrSlotNotFound.
func (h *UpdateSlotHandler) Handle(ctx context.Context, cmd UpdateSlotCommand) (*domain.Slot, error) {
	return sharedApplication.InUnitOfWork(ctx, h.uow, func(txCtx context.Context) (*domain.Slot, error) {
		slot, err := sharedApplication.Authorize(txCtx, h.repo.GetForUpdate, cmd.SlotID,
			(*domain.Slot).OwnerID, cmd.CallerID, domain.ErrSlotNotFound)
		if err != nil {
			return nil, err
		}
		if cmd.Patch.IsEmpty() {
			return slot, nil
		}

		if err := slot.Apply(cmd.Patch); err != nil {
			return nil, err
		}
		if err := h.repo.UpdateFields(txCtx, slot.ID(), cmd.CallerID, slot.Resolved(cmd.Patch)); err != nil {
			return nil, err
		}
		return slot, nil
	})
}
