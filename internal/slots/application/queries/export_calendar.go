package queries

import (
	"context"
	"io"

	"github.com/felixgeelhaar/slotswap/internal/slots/domain"
	"github.com/google/uuid"
)

// CalendarEncoder renders slots as an iCalendar document.
type CalendarEncoder interface {
	Encode(w io.Writer, slots []*domain.Slot) error
}

// ExportCalendarQuery selects whose slots to export.
type ExportCalendarQuery struct {
	OwnerID uuid.UUID
}

// ExportCalendarHandler writes an owner's slots as iCalendar.
type ExportCalendarHandler struct {
	repo    domain.Repository
	encoder CalendarEncoder
}

// NewExportCalendarHandler creates an ExportCalendarHandler.
func NewExportCalendarHandler(repo domain.Repository, encoder CalendarEncoder) *ExportCalendarHandler {
	return &ExportCalendarHandler{repo: repo, encoder: encoder}
}

// Handle writes the calendar to w.
func (h *ExportCalendarHandler) Handle(ctx context.Context, query ExportCalendarQuery, w io.Writer) error {
	slots, err := h.repo.FindByOwner(ctx, query.OwnerID)
	if err != nil {
		return err
	}
	return h.encoder.Encode(w, slots)
}
