package domain

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// TimeOfDay is the canonical in-memory representation of a clock time.
// It is the only form ever persisted; both display conventions (24-hour and
// 12-hour with suffix) are derived from it on the way out.
type TimeOfDay struct {
	Hour   int // 0–23
	Minute int // 0–59
}

// Strict anchored patterns for the two textual encodings.
// The 24-hour form requires two digits in both positions; the 12-hour form
// allows a single-digit hour and an optional space before the suffix.
var (
	re24Hour = regexp.MustCompile(`^([01][0-9]|2[0-3]):([0-5][0-9])$`)
	re12Hour = regexp.MustCompile(`^(1[0-2]|0?[1-9]):([0-5][0-9]) ?([AaPp][Mm])$`)
	reDigits = regexp.MustCompile(`^[0-9]{1,4}$`)
)

// ParseTimeOfDay converts a user-supplied time string into a TimeOfDay.
// Accepted encodings:
//
//   - 24-hour "HH:MM" (the form the 15-minute dropdown emits)
//   - 12-hour "H:MM AM" / "H:MM PM", suffix case-insensitive
//   - compact integer "HMM"/"HHMM", e.g. "545" → 5:45, "1430" → 14:30
//
// Any other input fails with ErrInvalidTime; there is no partial result.
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	s = strings.TrimSpace(s)

	if m := re24Hour.FindStringSubmatch(s); m != nil {
		return TimeOfDay{Hour: atoi(m[1]), Minute: atoi(m[2])}, nil
	}

	if m := re12Hour.FindStringSubmatch(s); m != nil {
		hour := atoi(m[1])
		// 12 AM is midnight, 12 PM is noon; 1–11 PM shift by 12.
		if hour == 12 {
			hour = 0
		}
		if strings.EqualFold(m[3], "PM") {
			hour += 12
		}
		return TimeOfDay{Hour: hour, Minute: atoi(m[2])}, nil
	}

	if reDigits.MatchString(s) {
		v := atoi(s)
		t := TimeOfDay{Hour: v / 100, Minute: v % 100}
		if !t.Valid() {
			return TimeOfDay{}, fmt.Errorf("%w: %q", ErrInvalidTime, s)
		}
		return t, nil
	}

	return TimeOfDay{}, fmt.Errorf("%w: %q", ErrInvalidTime, s)
}

// Valid reports whether the hour and minute are inside the canonical domain.
func (t TimeOfDay) Valid() bool {
	return t.Hour >= 0 && t.Hour <= 23 && t.Minute >= 0 && t.Minute <= 59
}

// String returns the canonical 24-hour "HH:MM" form. This is the stored
// representation; ParseTimeOfDay(t.String()) always returns t.
func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", t.Hour, t.Minute)
}

// Format12Hour returns the display form "H:MM AM"/"H:MM PM".
// Hour 0 renders as 12 AM and hour 12 as 12 PM.
func (t TimeOfDay) Format12Hour() string {
	suffix := "AM"
	hour := t.Hour
	switch {
	case hour == 0:
		hour = 12
	case hour == 12:
		suffix = "PM"
	case hour > 12:
		hour -= 12
		suffix = "PM"
	}
	return fmt.Sprintf("%d:%02d %s", hour, t.Minute, suffix)
}

// MarshalText implements encoding.TextMarshaler using the canonical form,
// so TimeOfDay fields serialize as "HH:MM" in JSON without custom tags.
func (t TimeOfDay) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler via ParseTimeOfDay.
func (t *TimeOfDay) UnmarshalText(b []byte) error {
	parsed, err := ParseTimeOfDay(string(b))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// TimeOptions returns the closed dropdown lattice: every quarter hour from
// 00:00 through 23:45, 96 values in ascending order. Values are canonical
// "HH:MM" strings, so the dropdown path can never produce a parse failure.
func TimeOptions() []string {
	options := make([]string, 0, 24*4)
	for hour := 0; hour < 24; hour++ {
		for minute := 0; minute < 60; minute += 15 {
			options = append(options, TimeOfDay{Hour: hour, Minute: minute}.String())
		}
	}
	return options
}

// atoi converts a digits-only string already vetted by a pattern above.
func atoi(s string) int {
	n, _ := strconv.Atoi(s)
	return n
}
