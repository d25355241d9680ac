package schedule

import (
	"fmt"
	"time"
)

// LeaveDay is one calendar day of an expanded leave range.
type LeaveDay struct {
	Date   string
	Reason string
}

// ExpandLeaveRange produces one leave entry per calendar day from start
// through end inclusive. An empty end means a single-day leave. Day
// stepping uses local calendar arithmetic (AddDate), never UTC math, so a
// range never gains or loses a day across time zones or DST boundaries.
func ExpandLeaveRange(start, end, reason string) ([]LeaveDay, error) {
	if start == "" {
		return nil, fmt.Errorf("leave start date is required")
	}
	if end == "" {
		end = start
	}

	startDay, err := time.ParseInLocation(dateLayout, start, time.Local)
	if err != nil {
		return nil, fmt.Errorf("invalid leave start date %q: %w", start, err)
	}
	endDay, err := time.ParseInLocation(dateLayout, end, time.Local)
	if err != nil {
		return nil, fmt.Errorf("invalid leave end date %q: %w", end, err)
	}
	if endDay.Before(startDay) {
		return nil, fmt.Errorf("leave end date %s is before start date %s", end, start)
	}

	var days []LeaveDay
	for d := startDay; !d.After(endDay); d = d.AddDate(0, 0, 1) {
		days = append(days, LeaveDay{Date: d.Format(dateLayout), Reason: reason})
	}
	return days, nil
}
