package commands

import (
	"context"
	"time"

	sharedApplication "github.com/felixgeelhaar/slotswap/internal/shared/application"
	"github.com/felixgeelhaar/slotswap/internal/slots/domain"
	"github.com/google/uuid"
)

// CreateSlotCommand adds a BUSY slot to the caller's calendar.
type CreateSlotCommand struct {
	OwnerID uuid.UUID
	Title   string
	Start   time.Time
	End     time.Time
}

// CreateSlotResult carries the new slot's ID.
type CreateSlotResult struct {
	SlotID uuid.UUID
}

// CreateSlotHandler handles CreateSlotCommand.
type CreateSlotHandler struct {
	repo domain.Repository
	uow  sharedApplication.UnitOfWork
}

// NewCreateSlotHandler creates a CreateSlotHandler.
func NewCreateSlotHandler(repo domain.Repository, uow sharedApplication.UnitOfWork) *CreateSlotHandler {
	return &CreateSlotHandler{repo: repo, uow: uow}
}

// Handle validates and stores the slot.
func (h *CreateSlotHandler) Handle(ctx context.Context, cmd CreateSlotCommand) (*CreateSlotResult, error) {
	slot, err := domain.NewSlot(cmd.OwnerID, cmd.Title, cmd.Start, cmd.End)
	if err != nil {
		return nil, err
	}

	err = sharedApplication.WithUnitOfWork(ctx, h.uow, func(txCtx context.Context) error {
		return h.repo.Create(txCtx, slot)
	})
	if err != nil {
		return nil, err
	}
	return &CreateSlotResult{SlotID: slot.ID()}, nil
}
