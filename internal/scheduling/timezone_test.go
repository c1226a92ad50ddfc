package scheduling

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTimeOfDayToInstant_Bangkok(t *testing.T) {
	// 05:00 in Bangkok (UTC+7) is 22:00 UTC of the previous day.
	ref := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

	got, err := TimeOfDayToInstant("05:00", "Asia/Bangkok", ref)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 3, 9, 22, 0, 0, 0, time.UTC), got)
}

func TestTimeOfDayToInstant_FractionalOffset(t *testing.T) {
	// Kathmandu is UTC+5:45; 07:45 local is 02:00 UTC.
	ref := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	got, err := TimeOfDayToInstant("07:45", "Asia/Kathmandu", ref)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 6, 1, 2, 0, 0, 0, time.UTC), got)
}

func TestTimeOfDayToInstant_ReferenceDayInZone(t *testing.T) {
	// At 20:00 UTC it is already the next calendar day in Bangkok; the base
	// time must land on that Bangkok day, not the UTC one.
	ref := time.Date(2025, 3, 10, 20, 0, 0, 0, time.UTC) // Mar 11 03:00 Bangkok

	got, err := TimeOfDayToInstant("10:00", "Asia/Bangkok", ref)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 3, 11, 3, 0, 0, 0, time.UTC), got)
}

func TestTimeOfDayToInstant_InvalidZone(t *testing.T) {
	_, err := TimeOfDayToInstant("05:00", "Asia/Nowhere", time.Now())
	assert.ErrorIs(t, err, ErrInvalidTimezone)

	_, err = TimeOfDayToInstant("05:00", "", time.Now())
	assert.ErrorIs(t, err, ErrInvalidTimezone)
}

func TestTimeOfDayToInstant_InvalidTimeOfDay(t *testing.T) {
	for _, bad := range []string{"25:00", "12:60", "noon", "12", "12:3x"} {
		_, err := TimeOfDayToInstant(bad, "UTC", time.Now())
		assert.ErrorIs(t, err, ErrInvalidTimeOfDay, bad)
	}
}

func TestFormatInstant(t *testing.T) {
	instant := time.Date(2025, 3, 9, 22, 0, 0, 0, time.UTC)

	got, err := FormatInstant(instant, "Asia/Bangkok", false)
	require.NoError(t, err)
	assert.Equal(t, "5:00 AM", got)

	got, err = FormatInstant(instant, "Asia/Bangkok", true)
	require.NoError(t, err)
	assert.Equal(t, "Mar 10, 5:00 AM", got)

	_, err = FormatInstant(instant, "Not/AZone", false)
	assert.ErrorIs(t, err, ErrInvalidTimezone)
}

// Converting a wall-clock time to an instant and formatting it back in the
// same zone must reproduce the original time of day.
func TestRoundTripZoneConversion(t *testing.T) {
	cases := []struct {
		hhmm string
		zone string
		want string
	}{
		{"05:00", "Asia/Bangkok", "5:00 AM"},
		{"19:30", "Asia/Bangkok", "7:30 PM"},
		{"00:15", "America/New_York", "12:15 AM"},
		{"12:00", "America/New_York", "12:00 PM"},
		{"23:59", "Asia/Kathmandu", "11:59 PM"},
		{"14:05", "Australia/Eucla", "2:05 PM"}, // UTC+8:45
	}

	ref := time.Date(2025, 7, 20, 12, 0, 0, 0, time.UTC)
	for _, tc := range cases {
		instant, err := TimeOfDayToInstant(tc.hhmm, tc.zone, ref)
		require.NoError(t, err, tc.zone)

		got, err := FormatInstant(instant, tc.zone, false)
		require.NoError(t, err, tc.zone)
		assert.Equal(t, tc.want, got, "%s in %s", tc.hhmm, tc.zone)
	}
}

func TestMinutesUntil(t *testing.T) {
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

	assert.Equal(t, 90, MinutesUntil(now, now.Add(90*time.Minute)))
	assert.Equal(t, -30, MinutesUntil(now, now.Add(-30*time.Minute)))
	assert.Equal(t, 0, MinutesUntil(now, now.Add(30*time.Second)))
}

func TestIsPast(t *testing.T) {
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

	assert.True(t, IsPast(now, now.Add(-time.Minute)))
	assert.False(t, IsPast(now, now))
	assert.False(t, IsPast(now, now.Add(time.Minute)))
}

func TestDateKey(t *testing.T) {
	bangkok, err := LoadZone("Asia/Bangkok")
	require.NoError(t, err)

	// 22:00 UTC on Mar 9 is already Mar 10 in Bangkok.
	instant := time.Date(2025, 3, 9, 22, 0, 0, 0, time.UTC)
	assert.Equal(t, "2025-03-10", DateKey(instant, bangkok))
	assert.Equal(t, "2025-03-09", DateKey(instant, time.UTC))
}

func TestIsValidZone(t *testing.T) {
	assert.True(t, IsValidZone("Asia/Bangkok"))
	assert.True(t, IsValidZone("UTC"))
	assert.False(t, IsValidZone("Mars/OlympusMons"))
	assert.False(t, IsValidZone(""))
}
