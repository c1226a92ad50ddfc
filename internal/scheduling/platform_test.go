package scheduling

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPolicyTable(t *testing.T) {
	tiktok, ok := PolicyFor(PlatformTikTok)
	require.True(t, ok)
	assert.Len(t, tiktok.BaseTimes, 4)
	assert.False(t, tiktok.UsesCreatorZone)
	assert.Equal(t, 120, tiktok.CooldownMinutes)
	assert.Equal(t, 3, tiktok.MaxPostsPerShift)

	threads, ok := PolicyFor(PlatformThreads)
	require.True(t, ok)
	assert.Len(t, threads.BaseTimes, 6)
	assert.False(t, threads.UsesCreatorZone)
	assert.Equal(t, 120, threads.CooldownMinutes)
	assert.Equal(t, 3, threads.MaxPostsPerShift)

	instagram, ok := PolicyFor(PlatformInstagram)
	require.True(t, ok)
	assert.Len(t, instagram.BaseTimes, 2)
	assert.True(t, instagram.UsesCreatorZone)
	assert.Equal(t, 0, instagram.CooldownMinutes)
	assert.Equal(t, 1, instagram.MaxPostsPerShift)

	facebook, ok := PolicyFor(PlatformFacebook)
	require.True(t, ok)
	assert.Len(t, facebook.BaseTimes, 2)
	assert.True(t, facebook.UsesCreatorZone)
	assert.Equal(t, 0, facebook.CooldownMinutes)

	_, ok = PolicyFor(Platform("myspace"))
	assert.False(t, ok)
}

func TestPlatformPriorityOrder(t *testing.T) {
	order := Platforms()
	require.Equal(t, []Platform{PlatformTikTok, PlatformThreads, PlatformInstagram, PlatformFacebook}, order)

	prev := -1
	for _, p := range order {
		policy, ok := PolicyFor(p)
		require.True(t, ok)
		assert.Greater(t, policy.Priority, prev)
		prev = policy.Priority
	}
}

func TestReferenceZone(t *testing.T) {
	tiktok, _ := PolicyFor(PlatformTikTok)
	assert.Equal(t, BangkokZone, tiktok.ReferenceZone("America/New_York"))

	instagram, _ := PolicyFor(PlatformInstagram)
	assert.Equal(t, "America/New_York", instagram.ReferenceZone("America/New_York"))
}

func TestShiftOf(t *testing.T) {
	bangkok, err := LoadZone(BangkokZone)
	require.NoError(t, err)

	// 06:59 UTC is 13:59 in Bangkok: still morning there, evening nowhere yet.
	instant := time.Date(2025, 3, 10, 6, 59, 0, 0, time.UTC)
	assert.Equal(t, ShiftMorning, ShiftOf(instant, bangkok))

	// One minute later Bangkok crosses the 14:00 boundary.
	assert.Equal(t, ShiftEvening, ShiftOf(instant.Add(time.Minute), bangkok))

	// Same instants on the UTC clock stay morning.
	assert.Equal(t, ShiftMorning, ShiftOf(instant.Add(time.Minute), time.UTC))
}

func TestShiftAnchor(t *testing.T) {
	tiktok, _ := PolicyFor(PlatformTikTok)

	anchor, ok := tiktok.ShiftAnchor(ShiftMorning)
	require.True(t, ok)
	assert.Equal(t, "05:00", anchor)

	anchor, ok = tiktok.ShiftAnchor(ShiftEvening)
	require.True(t, ok)
	assert.Equal(t, "19:00", anchor)
}

func TestShiftOfBaseTime(t *testing.T) {
	assert.Equal(t, ShiftMorning, ShiftOfBaseTime("05:00"))
	assert.Equal(t, ShiftMorning, ShiftOfBaseTime("13:59"))
	assert.Equal(t, ShiftEvening, ShiftOfBaseTime("14:00"))
	assert.Equal(t, ShiftEvening, ShiftOfBaseTime("19:30"))
}
