package sqlite

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatTime_OrdersLexically(t *testing.T) {
	base := time.Date(2026, 5, 4, 9, 0, 0, 0, time.FixedZone("CEST", 2*60*60))
	earlier := FormatTime(base)
	later := FormatTime(base.Add(1500 * time.Microsecond))
	muchLater := FormatTime(base.Add(10 * time.Hour))

	assert.Len(t, earlier, len(later))
	assert.Less(t, earlier, later)
	assert.Less(t, later, muchLater)
	assert.Equal(t, "2026-05-04T07:00:00.000000Z", earlier)
}

func TestParseTime_RoundTrip(t *testing.T) {
	original := time.Date(2026, 12, 31, 23, 59, 59, 123456000, time.UTC)

	parsed, err := ParseTime(FormatTime(original))
	require.NoError(t, err)
	assert.True(t, original.Equal(parsed))

	_, err = ParseTime("yesterday")
	assert.Error(t, err)
}

func TestDecoder_KeepsFirstError(t *testing.T) {
	var d Decoder
	id := uuid.New()

	assert.Equal(t, id, d.UUID(id.String()))
	assert.NoError(t, d.Err)

	d.Time("not a time")
	first := d.Err
	require.Error(t, first)

	d.UUID("not a uuid")
	assert.Same(t, first, d.Err)
}
