package entities

import (
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
)

// ErrInvalidTimeOfDay is returned when a wall-clock string is not a
// zero-padded 24-hour HH:MM value.
var ErrInvalidTimeOfDay = errors.New("invalid time of day, expected HH:MM")

var timeOfDayRe = regexp.MustCompile(`^([01][0-9]|2[0-3]):[0-5][0-9]$`)

// TimeOfDay is a wall-clock time in zero-padded 24-hour "HH:MM" form. The
// fixed width makes plain string comparison equivalent to chronological
// comparison, which the calendar ordering relies on. Construct values with
// NewTimeOfDay so malformed strings cannot break that ordering.
type TimeOfDay string

// NewTimeOfDay validates s and returns it as a TimeOfDay.
func NewTimeOfDay(s string) (TimeOfDay, error) {
	if !timeOfDayRe.MatchString(s) {
		return "", fmt.Errorf("%w: %q", ErrInvalidTimeOfDay, s)
	}
	return TimeOfDay(s), nil
}

// String returns the HH:MM form.
func (t TimeOfDay) String() string { return string(t) }

// IsZero reports whether the value is unset.
func (t TimeOfDay) IsZero() bool { return t == "" }

// Before reports whether t is chronologically before other.
func (t TimeOfDay) Before(other TimeOfDay) bool { return t < other }

// Minutes returns the minute offset from midnight. Zero for unset values.
func (t TimeOfDay) Minutes() int {
	if len(t) != 5 {
		return 0
	}
	hours := int(t[0]-'0')*10 + int(t[1]-'0')
	minutes := int(t[3]-'0')*10 + int(t[4]-'0')
	return hours*60 + minutes
}

// MarshalJSON encodes the value as its HH:MM string.
func (t TimeOfDay) MarshalJSON() ([]byte, error) {
	return json.Marshal(string(t))
}

// UnmarshalJSON decodes and validates an HH:MM string. The empty string is
// accepted as the unset value.
func (t *TimeOfDay) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	if s == "" {
		*t = ""
		return nil
	}
	parsed, err := NewTimeOfDay(s)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}
