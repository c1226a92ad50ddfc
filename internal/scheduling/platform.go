package scheduling

import "time"

type Platform string

const (
	PlatformTikTok    Platform = "tiktok"
	PlatformThreads   Platform = "threads"
	PlatformInstagram Platform = "instagram"
	PlatformFacebook  Platform = "facebook"
)

type Shift string

const (
	ShiftMorning Shift = "morning"
	ShiftEvening Shift = "evening"
)

const (
	// BangkokZone anchors TikTok and Threads base times regardless of where
	// the creator lives.
	BangkokZone = "Asia/Bangkok"

	// ShiftBoundaryHour splits the day into morning/evening shifts. The
	// boundary is evaluated on the operator's clock everywhere.
	ShiftBoundaryHour = 14

	// StaggerIntervalMinutes separates slots that share a nominal base time
	// across accounts.
	StaggerIntervalMinutes = 10

	// PerfectWindowMinutes is the tolerance around a recommended instant
	// inside which a post still counts as on time.
	PerfectWindowMinutes = 15
)

// Policy holds everything the engine knows about a platform: its nominal
// posting times, where those times are anchored, and its spacing rules.
// These numbers live here and nowhere else.
type Policy struct {
	BaseTimes        []string // ordered "HH:mm" entries, one per expected post
	UsesCreatorZone  bool     // false = base times are Bangkok wall-clock
	CooldownMinutes  int
	MaxPostsPerShift int
	Priority         int // workflow order, lower first
}

var policies = map[Platform]Policy{
	PlatformTikTok: {
		BaseTimes:        []string{"05:00", "10:00", "19:00", "19:30"},
		UsesCreatorZone:  false,
		CooldownMinutes:  120,
		MaxPostsPerShift: 3,
		Priority:         0,
	},
	PlatformThreads: {
		BaseTimes:        []string{"06:00", "09:00", "12:00", "16:00", "19:00", "21:00"},
		UsesCreatorZone:  false,
		CooldownMinutes:  120,
		MaxPostsPerShift: 3,
		Priority:         1,
	},
	PlatformInstagram: {
		BaseTimes:        []string{"11:00", "19:00"},
		UsesCreatorZone:  true,
		CooldownMinutes:  0,
		MaxPostsPerShift: 1,
		Priority:         2,
	},
	PlatformFacebook: {
		BaseTimes:        []string{"10:00", "18:00"},
		UsesCreatorZone:  true,
		CooldownMinutes:  0,
		MaxPostsPerShift: 1,
		Priority:         3,
	},
}

func PolicyFor(p Platform) (Policy, bool) {
	policy, ok := policies[p]
	return policy, ok
}

// Platforms returns the known platforms in workflow priority order.
func Platforms() []Platform {
	return []Platform{PlatformTikTok, PlatformThreads, PlatformInstagram, PlatformFacebook}
}

// ReferenceZone returns the zone a platform's base times are defined in for a
// creator with the given home zone.
func (p Policy) ReferenceZone(creatorZone string) string {
	if p.UsesCreatorZone {
		return creatorZone
	}
	return BangkokZone
}

func (p Policy) Cooldown() time.Duration {
	return time.Duration(p.CooldownMinutes) * time.Minute
}

// ShiftAnchor returns the first base time belonging to the given shift, the
// time a fresh shift recommendation starts from. ok is false when the
// platform has no base time in that shift.
func (p Policy) ShiftAnchor(shift Shift) (string, bool) {
	return shiftAnchor(p.BaseTimes, shift)
}

func shiftAnchor(baseTimes []string, shift Shift) (string, bool) {
	for _, bt := range baseTimes {
		if ShiftOfBaseTime(bt) == shift {
			return bt, true
		}
	}
	return "", false
}

// ShiftOf classifies an instant into morning or evening on the clock of loc.
func ShiftOf(t time.Time, loc *time.Location) Shift {
	if t.In(loc).Hour() < ShiftBoundaryHour {
		return ShiftMorning
	}
	return ShiftEvening
}

// ShiftOfBaseTime classifies an "HH:mm" base time by its reference wall clock.
func ShiftOfBaseTime(hhmm string) Shift {
	hour, _, err := parseTimeOfDay(hhmm)
	if err != nil || hour < ShiftBoundaryHour {
		return ShiftMorning
	}
	return ShiftEvening
}
