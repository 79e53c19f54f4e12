package domain

import (
	"errors"
	"strings"
	"time"

	sharedDomain "github.com/felixgeelhaar/slotswap/internal/shared/domain"
	"github.com/google/uuid"
)

var (
	ErrSlotNotFound     = errors.New("slot not found")
	ErrEmptyTitle       = errors.New("slot title cannot be empty")
	ErrInvalidTimeRange = errors.New("slot start must be before its end")
	ErrInvalidStatus    = errors.New("invalid slot status")
	ErrStatusNotAllowed = errors.New("slot status can only be set to BUSY or SWAPPABLE")
	ErrSlotLocked       = errors.New("slot is locked by a pending swap")
	ErrSlotReferenced   = errors.New("slot is referenced by swap history")
	ErrTransition       = errors.New("slot is not in the required status")
	ErrUnknownOwner     = errors.New("slot owner does not exist")
)

// Status is where a slot stands in negotiation.
type Status string

const (
	// StatusBusy is ordinary calendar use.
	StatusBusy Status = "BUSY"
	// StatusSwappable is offered on the marketplace.
	StatusSwappable Status = "SWAPPABLE"
	// StatusSwapPending is held by exactly one open swap request.
	StatusSwapPending Status = "SWAP_PENDING"
)

// ParseStatus accepts any casing.
func ParseStatus(value string) (Status, error) {
	s := Status(strings.ToUpper(strings.TrimSpace(value)))
	if !s.IsValid() {
		return "", ErrInvalidStatus
	}
	return s, nil
}

func (s Status) IsValid() bool {
	switch s {
	case StatusBusy, StatusSwappable, StatusSwapPending:
		return true
	default:
		return false
	}
}

func (s Status) String() string { return string(s) }

// Slot is a calendar interval owned by one user.
type Slot struct {
	sharedDomain.BaseEntity
	ownerID uuid.UUID
	title   string
	start   time.Time
	end     time.Time
	status  Status
}

// NewSlot creates a BUSY slot.
func NewSlot(ownerID uuid.UUID, title string, start, end time.Time) (*Slot, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, ErrEmptyTitle
	}
	if !start.Before(end) {
		return nil, ErrInvalidTimeRange
	}

	return &Slot{
		BaseEntity: sharedDomain.NewBaseEntity(),
		ownerID:    ownerID,
		title:      title,
		start:      start.UTC(),
		end:        end.UTC(),
		status:     StatusBusy,
	}, nil
}

// RehydrateSlot rebuilds a slot from storage.
func RehydrateSlot(id, ownerID uuid.UUID, title string, start, end time.Time, status Status, createdAt, updatedAt time.Time) *Slot {
	return &Slot{
		BaseEntity: sharedDomain.RehydrateBaseEntity(id, createdAt, updatedAt),
		ownerID:    ownerID,
		title:      title,
		start:      start.UTC(),
		end:        end.UTC(),
		status:     status,
	}
}

func (s *Slot) OwnerID() uuid.UUID { return s.ownerID }
func (s *Slot) Title() string      { return s.title }
func (s *Slot) Start() time.Time   { return s.start }
func (s *Slot) End() time.Time     { return s.end }
func (s *Slot) Status() Status     { return s.status }

// IsLocked reports whether an open swap request holds the slot.
func (s *Slot) IsLocked() bool { return s.status == StatusSwapPending }

// Patch is an owner edit. Nil fields stay unchanged; a non-nil blank title is an error.
type Patch struct {
	Title  *string
	Start  *time.Time
	End    *time.Time
	Status *Status
}

// IsEmpty reports whether the patch changes nothing.
func (p Patch) IsEmpty() bool {
	return p.Title == nil && p.Start == nil && p.End == nil && p.Status == nil
}

// Resolved returns a patch carrying the slot's current value for every field p sets.
// Call it after Apply to get normalized values for storage.
func (s *Slot) Resolved(p Patch) Patch {
	var out Patch
	if p.Title != nil {
		title := s.title
		out.Title = &title
	}
	if p.Start != nil {
		start := s.start
		out.Start = &start
	}
	if p.End != nil {
		end := s.end
		out.End = &end
	}
	if p.Status != nil {
		status := s.status
		out.Status = &status
	}
	return out
}

// Apply validates p against the slot and applies it.
// Owners may only toggle BUSY and SWAPPABLE, and never while the slot is locked.
func (s *Slot) Apply(p Patch) error {
	if s.IsLocked() {
		return ErrSlotLocked
	}

	title := s.title
	if p.Title != nil {
		title = strings.TrimSpace(*p.Title)
		if title == "" {
			return ErrEmptyTitle
		}
	}
	start, end := s.start, s.end
	if p.Start != nil {
		start = p.Start.UTC()
	}
	if p.End != nil {
		end = p.End.UTC()
	}
	if !start.Before(end) {
		return ErrInvalidTimeRange
	}
	status := s.status
	if p.Status != nil {
		if !p.Status.IsValid() {
			return ErrInvalidStatus
		}
		if *p.Status == StatusSwapPending {
			return ErrStatusNotAllowed
		}
		status = *p.Status
	}

	s.title, s.start, s.end, s.status = title, start, end, status
	s.Touch()
	return nil
}

// The transitions below belong to the swap negotiation. Each one checks the current
// status so a stale read can never move a slot along an edge the state machine lacks.

// Hold moves a SWAPPABLE slot into an open negotiation.
func (s *Slot) Hold() error {
	if s.status != StatusSwappable {
		return ErrTransition
	}
	s.status = StatusSwapPending
	s.Touch()
	return nil
}

// Release returns a held slot to the marketplace with its owner unchanged.
func (s *Slot) Release() error {
	if s.status != StatusSwapPending {
		return ErrTransition
	}
	s.status = StatusSwappable
	s.Touch()
	return nil
}

// HandOver gives a held slot to newOwner as BUSY.
func (s *Slot) HandOver(newOwner uuid.UUID) error {
	if s.status != StatusSwapPending {
		return ErrTransition
	}
	s.ownerID = newOwner
	s.status = StatusBusy
	s.Touch()
	return nil
}
