package sqlite

import (
	"time"

	"github.com/google/uuid"
)

// TimeLayout is how timestamps are stored in TEXT columns. The width is fixed and the zone is
// always UTC, so comparing and ordering the strings matches comparing the instants.
const TimeLayout = "2006-01-02T15:04:05.000000Z"

// FormatTime renders t for storage.
func FormatTime(t time.Time) string {
	return t.UTC().Format(TimeLayout)
}

// ParseTime reads a stored timestamp.
func ParseTime(value string) (time.Time, error) {
	return time.Parse(TimeLayout, value)
}

// Decoder parses TEXT columns and keeps the first error, so a scanned row can be turned
// into a domain value in one expression and checked once.
type Decoder struct {
	Err error
}

// Time parses a stored timestamp.
func (d *Decoder) Time(value string) time.Time {
	t, err := ParseTime(value)
	d.keep(err)
	return t
}

// UUID parses a stored identifier.
func (d *Decoder) UUID(value string) uuid.UUID {
	id, err := uuid.Parse(value)
	d.keep(err)
	return id
}

func (d *Decoder) keep(err error) {
	if err != nil && d.Err == nil {
		d.Err = err
	}
}
