package scanner

import (
	"time"

	"SteadfastScanner/internal/domain"
)

// FilterRange returns the records whose received-at date falls within the
// window [end, start], compared at calendar-date granularity. Input order is
// preserved and input records are not mutated. A reversed window selects
// nothing.
func FilterRange(records []domain.Consignment, start, end time.Time) []domain.Consignment {
	startDay := dateOnly(start)
	endDay := dateOnly(end)

	filtered := make([]domain.Consignment, 0, len(records))
	for _, record := range records {
		day := dateOnly(record.ReceivedAt)
		if day.After(startDay) || day.Before(endDay) {
			continue
		}
		filtered = append(filtered, record)
	}
	return filtered
}

// dateOnly normalizes a timestamp to its calendar date so that bounds
// supplied as plain dates and timestamps carrying a time of day compare
// consistently.
func dateOnly(t time.Time) time.Time {
	year, month, day := t.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}
