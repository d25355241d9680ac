package schedule

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

const dateLayout = "2006-01-02"

// SlotMinutes converts a 12-hour slot label such as "09:00 AM" or "02:30 PM"
// to minutes since midnight. The 12 o'clock cases are handled explicitly:
// "12:00 AM" is 0 and "12:00 PM" is 720.
func SlotMinutes(label string) (int, error) {
	parts := strings.Fields(strings.TrimSpace(label))
	if len(parts) != 2 {
		return 0, fmt.Errorf("invalid slot label %q", label)
	}

	hm := strings.Split(parts[0], ":")
	if len(hm) != 2 {
		return 0, fmt.Errorf("invalid slot label %q", label)
	}
	hour, err := strconv.Atoi(hm[0])
	if err != nil || hour < 1 || hour > 12 {
		return 0, fmt.Errorf("invalid hour in slot label %q", label)
	}
	minute, err := strconv.Atoi(hm[1])
	if err != nil || minute < 0 || minute > 59 {
		return 0, fmt.Errorf("invalid minute in slot label %q", label)
	}

	switch strings.ToUpper(parts[1]) {
	case "AM":
		if hour == 12 {
			hour = 0
		}
	case "PM":
		if hour != 12 {
			hour += 12
		}
	default:
		return 0, fmt.Errorf("invalid meridiem in slot label %q", label)
	}

	return hour*60 + minute, nil
}

// ShiftMinutes converts a 24-hour "HH:MM" shift bound (the doctor's
// scheduleStart/scheduleEnd format) to minutes since midnight.
func ShiftMinutes(value string) (int, error) {
	hm := strings.Split(strings.TrimSpace(value), ":")
	if len(hm) != 2 {
		return 0, fmt.Errorf("invalid shift time %q", value)
	}
	hour, err := strconv.Atoi(hm[0])
	if err != nil || hour < 0 || hour > 23 {
		return 0, fmt.Errorf("invalid hour in shift time %q", value)
	}
	minute, err := strconv.Atoi(hm[1])
	if err != nil || minute < 0 || minute > 59 {
		return 0, fmt.Errorf("invalid minute in shift time %q", value)
	}
	return hour*60 + minute, nil
}

// SlotBefore reports whether slot label a falls earlier in the day than b.
// The labels are 12-hour strings, so lexicographic order is wrong ("02:00 PM"
// sorts before "09:00 AM" as text); this compares minutes since midnight.
// Labels that do not parse sort after every valid label.
func SlotBefore(a, b string) bool {
	aMin, aErr := SlotMinutes(a)
	bMin, bErr := SlotMinutes(b)
	if aErr != nil {
		return false
	}
	if bErr != nil {
		return true
	}
	return aMin < bMin
}

// DateOf formats a point in time as a local calendar day. All resolver date
// comparisons go through local calendar days, never UTC, to avoid off-by-one
// shifts across time zones.
func DateOf(t time.Time) string {
	return t.Format(dateLayout)
}

// parseDay parses a "2006-01-02" calendar day in the location of the
// reference clock.
func parseDay(date string, now time.Time) (time.Time, error) {
	return time.ParseInLocation(dateLayout, date, now.Location())
}
