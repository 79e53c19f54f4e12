// Package calendar exports slots in iCalendar format.
package calendar

import (
	"io"
	"time"

	ics "github.com/arran4/golang-ical"

	"github.com/felixgeelhaar/slotswap/internal/slots/domain"
)

const productID = "-//slotswap//slots//EN"

// Encoder writes slots as a PUBLISH calendar, one VEVENT per slot.
type Encoder struct {
	now func() time.Time
}

// NewEncoder creates an Encoder.
func NewEncoder() *Encoder {
	return &Encoder{now: time.Now}
}

// Encode serializes slots to w. SWAPPABLE and SWAP_PENDING slots are marked TENTATIVE.
func (e *Encoder) Encode(w io.Writer, slots []*domain.Slot) error {
	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId(productID)

	stamp := e.now().UTC()
	for _, slot := range slots {
		event := cal.AddEvent(slot.ID().String() + "@slotswap")
		event.SetDtStampTime(stamp)
		event.SetCreatedTime(slot.CreatedAt())
		event.SetModifiedAt(slot.UpdatedAt())
		event.SetStartAt(slot.Start())
		event.SetEndAt(slot.End())
		event.SetSummary(slot.Title())
		event.SetProperty(ics.ComponentPropertyCategories, slot.Status().String())
		if slot.Status() == domain.StatusBusy {
			event.SetStatus(ics.ObjectStatusConfirmed)
		} else {
			event.SetStatus(ics.ObjectStatusTentative)
		}
	}

	_, err := io.WriteString(w, cal.Serialize())
	return err
}
