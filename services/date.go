package services

import (
	"fmt"
	"time"
)

// LongDateLayout is the display format used for case dates (creation,
// deadline, notes). Matches "January 2, 2006".
const LongDateLayout = "January 2, 2006"

// dateLayouts are the accepted input formats, tried in order. Case dates are
// written long-form; ISO is what HTML date inputs submit.
var dateLayouts = []string{
	LongDateLayout,
	"2006-01-02",
	"1/2/2006",
}

// ParseDate parses a date string in the formats the app writes or receives.
func ParseDate(dateStr string) (time.Time, error) {
	for _, layout := range dateLayouts {
		if parsed, err := time.Parse(layout, dateStr); err == nil {
			return parsed, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid date format: %q", dateStr)
}

// FormatLongDate renders a time as the long-form display date.
func FormatLongDate(t time.Time) string {
	return t.Format(LongDateLayout)
}

// StartOfDay truncates a time to midnight of its calendar day.
func StartOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
