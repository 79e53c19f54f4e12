package commands

import (
	"context"

	sharedApplication "github.com/felixgeelhaar/slotswap/internal/shared/application"
	"github.com/felixgeelhaar/slotswap/internal/slots/domain"
	"github.com/google/uuid"
)

// DeleteSlotCommand removes a slot the caller owns.
type DeleteSlotCommand struct {
	SlotID   uuid.UUID
	CallerID uuid.UUID
}

// DeleteSlotHandler handles DeleteSlotCommand.
type DeleteSlotHandler struct {
	repo domain.Repository
	uow  sharedApplication.UnitOfWork
}

// NewDeleteSlotHandler creates a DeleteSlotHandler.
func NewDeleteSlotHandler(repo domain.Repository, uow sharedApplication.UnitOfWork) *DeleteSlotHandler {
	return &DeleteSlotHandler{repo: repo, uow: uow}
}

// Handle deletes the slot. Pending slots return domain.ErrSlotLocked and slots named in
// swap history return domain.ErrSlotReferenced.
func (h *DeleteSlotHandler) Handle(ctx context.Context, cmd DeleteSlotCommand) error {
	return sharedApplication.WithUnitOfWork(ctx, h.uow, func(txCtx context.Context) error {
		slot, err := sharedApplication.Authorize(txCtx, h.repo.GetForUpdate, cmd.SlotID,
			(*domain.Slot).OwnerID, cmd.CallerID, domain.ErrSlotNotFound)
		if err != nil {
			return err
		}
		if slot.IsLocked() {
			return domain.ErrSlotLocked
		}
		return h.repo.Delete(txCtx, slot.ID(), cmd.CallerID)
	})
}
