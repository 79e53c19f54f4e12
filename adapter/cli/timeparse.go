package cli

import (
	"fmt"
	"time"
)

// timeLayouts are accepted for --start and --end. Layouts without an offset are UTC.
var timeLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04",
	"2006-01-02 15:04",
}

// ParseTime reads a user supplied instant.
func ParseTime(value string) (time.Time, error) {
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid time %q (use RFC 3339 or YYYY-MM-DD HH:MM)", value)
}

// FormatRange renders a slot interval for terminal output.
func FormatRange(start, end time.Time) string {
	start, end = start.UTC(), end.UTC()
	if start.Format("2006-01-02") == end.Format("2006-01-02") {
		return fmt.Sprintf("%s %s-%s UTC", start.Format("Mon 2006-01-02"), start.Format("15:04"), end.Format("15:04"))
	}
	return fmt.Sprintf("%s - %s UTC", start.Format("Mon 2006-01-02 15:04"), end.Format("Mon 2006-01-02 15:04"))
}
