package domain_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Harishumapathy08/tripdata/internal/domain"
)

// TestParseTimeOfDay_24Hour_RoundTrip walks the entire canonical domain:
// every valid "HH:MM" string must parse, format back to itself, and re-parse
// to the identical pair.
func TestParseTimeOfDay_24Hour_RoundTrip(t *testing.T) {
	for hour := 0; hour < 24; hour++ {
		for minute := 0; minute < 60; minute++ {
			s := fmt.Sprintf("%02d:%02d", hour, minute)

			got, err := domain.ParseTimeOfDay(s)
			require.NoError(t, err, "parse %q", s)
			require.Equal(t, domain.TimeOfDay{Hour: hour, Minute: minute}, got)
			require.Equal(t, s, got.String())

			again, err := domain.ParseTimeOfDay(got.String())
			require.NoError(t, err)
			require.Equal(t, got, again)
		}
	}
}

// TestParseTimeOfDay_12Hour_RoundTrip verifies the 12-hour display form is a
// lossless inverse of parsing for every value in the canonical domain.
func TestParseTimeOfDay_12Hour_RoundTrip(t *testing.T) {
	for hour := 0; hour < 24; hour++ {
		for minute := 0; minute < 60; minute++ {
			want := domain.TimeOfDay{Hour: hour, Minute: minute}

			got, err := domain.ParseTimeOfDay(want.Format12Hour())
			require.NoError(t, err, "parse %q", want.Format12Hour())
			require.Equal(t, want, got)
		}
	}
}

func TestParseTimeOfDay_12Hour(t *testing.T) {
	cases := []struct {
		in   string
		want domain.TimeOfDay
	}{
		{"12:00 AM", domain.TimeOfDay{Hour: 0, Minute: 0}},  // midnight
		{"12:00 PM", domain.TimeOfDay{Hour: 12, Minute: 0}}, // noon
		{"12:30 am", domain.TimeOfDay{Hour: 0, Minute: 30}}, // suffix is case-insensitive
		{"1:05 pm", domain.TimeOfDay{Hour: 13, Minute: 5}},
		{"11:59 PM", domain.TimeOfDay{Hour: 23, Minute: 59}},
		{"9:15AM", domain.TimeOfDay{Hour: 9, Minute: 15}}, // space before suffix is optional
	}
	for _, tc := range cases {
		got, err := domain.ParseTimeOfDay(tc.in)
		require.NoError(t, err, "parse %q", tc.in)
		assert.Equal(t, tc.want, got, "parse %q", tc.in)
	}
}

func TestParseTimeOfDay_Compact(t *testing.T) {
	cases := []struct {
		in   string
		want domain.TimeOfDay
	}{
		{"1430", domain.TimeOfDay{Hour: 14, Minute: 30}},
		{"545", domain.TimeOfDay{Hour: 5, Minute: 45}},
		{"0", domain.TimeOfDay{Hour: 0, Minute: 0}},
		{"59", domain.TimeOfDay{Hour: 0, Minute: 59}},
		{"2359", domain.TimeOfDay{Hour: 23, Minute: 59}},
	}
	for _, tc := range cases {
		got, err := domain.ParseTimeOfDay(tc.in)
		require.NoError(t, err, "parse %q", tc.in)
		assert.Equal(t, tc.want, got, "parse %q", tc.in)
	}
}

// TestParseTimeOfDay_CompactRange sweeps every compact integer up to 2359:
// values whose minute part exceeds 59 must fail, everything else must format
// to the zero-padded "HH:MM" equivalent.
func TestParseTimeOfDay_CompactRange(t *testing.T) {
	for v := 0; v <= 2359; v++ {
		s := fmt.Sprintf("%d", v)
		got, err := domain.ParseTimeOfDay(s)
		if v%100 > 59 {
			assert.ErrorIs(t, err, domain.ErrInvalidTime, "compact %d", v)
			continue
		}
		require.NoError(t, err, "compact %d", v)
		assert.Equal(t, fmt.Sprintf("%02d:%02d", v/100, v%100), got.String())
	}
}

func TestParseTimeOfDay_Rejects(t *testing.T) {
	bad := []string{
		"",
		"24:00",   // hour out of range
		"12:60",   // minute 60 never allowed
		"7:5",     // minute must be two digits
		"0:30 PM", // 12-hour hour is 1–12
		"13:00 PM",
		"1460",  // compact with minute > 59
		"12345", // too many digits
		"12.30",
		"noon",
	}
	for _, s := range bad {
		_, err := domain.ParseTimeOfDay(s)
		assert.ErrorIs(t, err, domain.ErrInvalidTime, "input %q", s)
	}
}

func TestFormat12Hour_EdgeHours(t *testing.T) {
	assert.Equal(t, "12:00 AM", domain.TimeOfDay{Hour: 0, Minute: 0}.Format12Hour())
	assert.Equal(t, "12:01 PM", domain.TimeOfDay{Hour: 12, Minute: 1}.Format12Hour())
	assert.Equal(t, "11:45 PM", domain.TimeOfDay{Hour: 23, Minute: 45}.Format12Hour())
	assert.Equal(t, "1:00 AM", domain.TimeOfDay{Hour: 1, Minute: 0}.Format12Hour())
}

// TestTimeOptions verifies the dropdown lattice: 96 quarter-hour values,
// ascending, each one canonical and therefore guaranteed to re-parse.
func TestTimeOptions(t *testing.T) {
	options := domain.TimeOptions()

	require.Len(t, options, 96)
	assert.Equal(t, "00:00", options[0])
	assert.Equal(t, "23:45", options[95])

	for i, s := range options {
		got, err := domain.ParseTimeOfDay(s)
		require.NoError(t, err, "option %q", s)
		assert.Equal(t, s, got.String())
		if i > 0 {
			assert.Less(t, options[i-1], s, "options must ascend")
		}
	}
}

func TestTimeOfDay_TextMarshalling(t *testing.T) {
	b, err := domain.TimeOfDay{Hour: 6, Minute: 5}.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "06:05", string(b))

	var got domain.TimeOfDay
	require.NoError(t, got.UnmarshalText([]byte("18:20")))
	assert.Equal(t, domain.TimeOfDay{Hour: 18, Minute: 20}, got)

	assert.Error(t, got.UnmarshalText([]byte("25:00")))
}
