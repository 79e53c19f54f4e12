package queries

import (
	"context"
	"time"

	"github.com/felixgeelhaar/slotswap/internal/slots/domain"
	"github.com/google/uuid"
)

// SlotDTO is a slot as seen by its owner.
type SlotDTO struct {
	ID        uuid.UUID `json:"id"`
	OwnerID   uuid.UUID `json:"ownerId"`
	Title     string    `json:"title"`
	StartTime time.Time `json:"startTime"`
	EndTime   time.Time `json:"endTime"`
	Status    string    `json:"status"`
}

// ToSlotDTO converts a slot.
func ToSlotDTO(slot *domain.Slot) SlotDTO {
	return SlotDTO{
		ID:        slot.ID(),
		OwnerID:   slot.OwnerID(),
		Title:     slot.Title(),
		StartTime: slot.Start(),
		EndTime:   slot.End(),
		Status:    slot.Status().String(),
	}
}

// ListMySlotsQuery selects the caller's slots.
type ListMySlotsQuery struct {
	OwnerID uuid.UUID
	Status  *domain.Status
}

// ListMySlotsHandler handles ListMySlotsQuery.
type ListMySlotsHandler struct {
	repo domain.Repository
}

// NewListMySlotsHandler creates a ListMySlotsHandler.
func NewListMySlotsHandler(repo domain.Repository) *ListMySlotsHandler {
	return &ListMySlotsHandler{repo: repo}
}

// Handle returns the owner's slots ordered by start time, optionally filtered by status.
func (h *ListMySlotsHandler) Handle(ctx context.Context, query ListMySlotsQuery) ([]SlotDTO, error) {
	slots, err := h.repo.FindByOwner(ctx, query.OwnerID)
	if err != nil {
		return nil, err
	}

	dtos := make([]SlotDTO, 0, len(slots))
	for _, slot := range slots {
		if query.Status != nil && slot.Status() != *query.Status {
			continue
		}
		dtos = append(dtos, ToSlotDTO(slot))
	}
	return dtos, nil
}
