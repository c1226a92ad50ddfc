package scheduling

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pattadon/socialshift/internal/models"
)

func sequentialIDs() IDFunc {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("slot-%d", n)
	}
}

func testCreator(id int64, zone string) models.Creator {
	return models.Creator{ID: id, Name: fmt.Sprintf("creator-%d", id), Timezone: zone}
}

func testAccount(id, creatorID int64, platform Platform, sortIndex int) models.Account {
	return models.Account{
		ID:        id,
		CreatorID: creatorID,
		Platform:  string(platform),
		Handle:    fmt.Sprintf("@acct%d", id),
		SortIndex: sortIndex,
		Active:    true,
	}
}

func TestGenerateDailyPlan_SingleTikTokAccount(t *testing.T) {
	date := time.Date(2025, 3, 10, 8, 0, 0, 0, time.UTC)

	slots, err := GenerateDailyPlan(GenerateInput{
		Accounts:     []models.Account{testAccount(1, 10, PlatformTikTok, 0)},
		Creators:     []models.Creator{testCreator(10, "America/New_York")},
		OperatorZone: "UTC",
		Date:         date,
		Now:          date,
		NewID:        sequentialIDs(),
	})
	require.NoError(t, err)
	require.Len(t, slots, 4)

	// 05:00 Bangkok on Mar 10 is 22:00 UTC on Mar 9.
	assert.Equal(t, time.Date(2025, 3, 9, 22, 0, 0, 0, time.UTC), slots[0].ScheduledAt)
	assert.Equal(t, time.Date(2025, 3, 10, 3, 0, 0, 0, time.UTC), slots[1].ScheduledAt)
	assert.Equal(t, time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC), slots[2].ScheduledAt)
	assert.Equal(t, time.Date(2025, 3, 10, 12, 30, 0, 0, time.UTC), slots[3].ScheduledAt)

	for _, s := range slots {
		assert.Equal(t, models.SlotStatusPending, s.Status)
		assert.Equal(t, int64(1), s.AccountID)
		assert.NotEmpty(t, s.ID)
		assert.NotEmpty(t, s.CreatorTime)
		assert.NotEmpty(t, s.LocalTime)
	}
}

func TestGenerateDailyPlan_StaggerSameBaseTime(t *testing.T) {
	date := time.Date(2025, 3, 10, 8, 0, 0, 0, time.UTC)

	slots, err := GenerateDailyPlan(GenerateInput{
		Accounts: []models.Account{
			testAccount(1, 10, PlatformTikTok, 0), // account A
			testAccount(2, 10, PlatformTikTok, 1), // account B
		},
		Creators:     []models.Creator{testCreator(10, "Asia/Bangkok")},
		OperatorZone: "UTC",
		Date:         date,
		Now:          date,
		NewID:        sequentialIDs(),
	})
	require.NoError(t, err)
	require.Len(t, slots, 8)

	// A takes 05:00 Bangkok, B is staggered to 05:10, A sorted first.
	assert.Equal(t, int64(1), slots[0].AccountID)
	assert.Equal(t, time.Date(2025, 3, 9, 22, 0, 0, 0, time.UTC), slots[0].ScheduledAt)
	assert.Equal(t, int64(2), slots[1].AccountID)
	assert.Equal(t, time.Date(2025, 3, 9, 22, 10, 0, 0, time.UTC), slots[1].ScheduledAt)
}

func TestGenerateDailyPlan_StaggerUniqueness(t *testing.T) {
	date := time.Date(2025, 3, 10, 8, 0, 0, 0, time.UTC)

	// Enough same-base-time accounts that the 19:00 group staggers past the
	// 19:30 base time.
	var accounts []models.Account
	for i := int64(1); i <= 5; i++ {
		accounts = append(accounts, testAccount(i, 10, PlatformTikTok, int(i-1)))
		accounts = append(accounts, testAccount(i+100, 10, PlatformThreads, int(i-1)))
	}

	slots, err := GenerateDailyPlan(GenerateInput{
		Accounts:     accounts,
		Creators:     []models.Creator{testCreator(10, "Asia/Bangkok")},
		OperatorZone: "UTC",
		Date:         date,
		Now:          date,
		NewID:        sequentialIDs(),
	})
	require.NoError(t, err)
	require.Len(t, slots, 5*4+5*6)

	assertUniqueInstants(t, slots)
}

func TestGenerateDailyPlan_StaggerUniquenessAcrossZones(t *testing.T) {
	date := time.Date(2025, 3, 10, 8, 0, 0, 0, time.UTC)

	// Threads 12:00 Bangkok and Instagram 11:00 for a Dhaka creator both
	// resolve to 05:00Z; Instagram's 19:00 Dhaka lands inside the staggered
	// Bangkok 19:00 group. Base times from different reference zones must
	// still never share an instant.
	var accounts []models.Account
	for i := int64(1); i <= 5; i++ {
		accounts = append(accounts, testAccount(i, 10, PlatformTikTok, int(i-1)))
		accounts = append(accounts, testAccount(i+100, 10, PlatformThreads, int(i-1)))
	}
	accounts = append(accounts, testAccount(201, 20, PlatformInstagram, 10))

	slots, err := GenerateDailyPlan(GenerateInput{
		Accounts: accounts,
		Creators: []models.Creator{
			testCreator(10, "Asia/Bangkok"),
			testCreator(20, "Asia/Dhaka"),
		},
		OperatorZone: "UTC",
		Date:         date,
		Now:          date,
		NewID:        sequentialIDs(),
	})
	require.NoError(t, err)
	require.Len(t, slots, 5*4+5*6+2)

	assertUniqueInstants(t, slots)
}

func assertUniqueInstants(t *testing.T, slots []models.Slot) {
	t.Helper()
	seen := make(map[int64]string)
	for _, s := range slots {
		key := s.ScheduledAt.Unix()
		assert.NotContains(t, seen, key, "slot %s collides with %s at %s", s.ID, seen[key], s.ScheduledAt)
		seen[key] = s.ID
	}
}

func TestGenerateDailyPlan_PlatformPriorityWithinGroup(t *testing.T) {
	date := time.Date(2025, 3, 10, 8, 0, 0, 0, time.UTC)

	// TikTok and Threads share the 19:00 Bangkok base time; TikTok must take
	// the earlier staggered position even with a higher account index.
	slots, err := GenerateDailyPlan(GenerateInput{
		Accounts: []models.Account{
			testAccount(1, 10, PlatformThreads, 0),
			testAccount(2, 10, PlatformTikTok, 1),
		},
		Creators:     []models.Creator{testCreator(10, "Asia/Bangkok")},
		OperatorZone: "UTC",
		Date:         date,
		Now:          date,
		NewID:        sequentialIDs(),
	})
	require.NoError(t, err)

	nineteen := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC) // 19:00 Bangkok
	var first, second *models.Slot
	for i := range slots {
		switch slots[i].ScheduledAt {
		case nineteen:
			first = &slots[i]
		case nineteen.Add(StaggerIntervalMinutes * time.Minute):
			second = &slots[i]
		}
	}
	require.NotNil(t, first)
	require.NotNil(t, second)
	assert.Equal(t, string(PlatformTikTok), first.Platform)
	assert.Equal(t, string(PlatformThreads), second.Platform)
}

func TestGenerateDailyPlan_MissingCreatorSkipsAccount(t *testing.T) {
	date := time.Date(2025, 3, 10, 8, 0, 0, 0, time.UTC)

	slots, err := GenerateDailyPlan(GenerateInput{
		Accounts: []models.Account{
			testAccount(1, 10, PlatformTikTok, 0),
			testAccount(2, 99, PlatformTikTok, 1), // creator 99 does not exist
		},
		Creators:     []models.Creator{testCreator(10, "Asia/Bangkok")},
		OperatorZone: "UTC",
		Date:         date,
		Now:          date,
		NewID:        sequentialIDs(),
	})
	require.NoError(t, err)
	require.Len(t, slots, 4)
	for _, s := range slots {
		assert.Equal(t, int64(1), s.AccountID)
	}
}

func TestGenerateDailyPlan_ZeroAccounts(t *testing.T) {
	slots, err := GenerateDailyPlan(GenerateInput{
		OperatorZone: "UTC",
		Date:         time.Now(),
		Now:          time.Now(),
		NewID:        sequentialIDs(),
	})
	require.NoError(t, err)
	assert.Empty(t, slots)
}

func TestGenerateDailyPlan_CooldownSnapshot(t *testing.T) {
	date := time.Date(2025, 3, 10, 8, 0, 0, 0, time.UTC)
	now := time.Date(2025, 3, 10, 3, 30, 0, 0, time.UTC)

	logs := []models.PostLogEntry{{
		ID:        "log-1",
		AccountID: 1,
		Platform:  string(PlatformTikTok),
		PostedAt:  now.Add(-30 * time.Minute),
	}}

	slots, err := GenerateDailyPlan(GenerateInput{
		Accounts:     []models.Account{testAccount(1, 10, PlatformTikTok, 0)},
		Creators:     []models.Creator{testCreator(10, "Asia/Bangkok")},
		OperatorZone: "UTC",
		Date:         date,
		Logs:         logs,
		Now:          now,
		NewID:        sequentialIDs(),
	})
	require.NoError(t, err)
	require.Len(t, slots, 4)

	wantEligible := logs[0].PostedAt.Add(120 * time.Minute)
	for _, s := range slots {
		assert.Equal(t, models.SlotStatusCooldown, s.Status)
		require.NotNil(t, s.NextEligibleAt)
		assert.Equal(t, wantEligible, *s.NextEligibleAt)
	}
}

func TestGenerateDailyPlan_PastSlotsStayPending(t *testing.T) {
	date := time.Date(2025, 3, 10, 8, 0, 0, 0, time.UTC)
	// Well after every base time of the day; no auto-skip happens.
	now := time.Date(2025, 3, 10, 23, 0, 0, 0, time.UTC)

	slots, err := GenerateDailyPlan(GenerateInput{
		Accounts:     []models.Account{testAccount(1, 10, PlatformTikTok, 0)},
		Creators:     []models.Creator{testCreator(10, "Asia/Bangkok")},
		OperatorZone: "UTC",
		Date:         date,
		Now:          now,
		NewID:        sequentialIDs(),
	})
	require.NoError(t, err)
	for _, s := range slots {
		assert.Equal(t, models.SlotStatusPending, s.Status)
	}
}

func TestGenerateDailyPlan_InactiveAccountExcluded(t *testing.T) {
	date := time.Date(2025, 3, 10, 8, 0, 0, 0, time.UTC)

	inactive := testAccount(1, 10, PlatformTikTok, 0)
	inactive.Active = false

	slots, err := GenerateDailyPlan(GenerateInput{
		Accounts:     []models.Account{inactive},
		Creators:     []models.Creator{testCreator(10, "Asia/Bangkok")},
		OperatorZone: "UTC",
		Date:         date,
		Now:          date,
		NewID:        sequentialIDs(),
	})
	require.NoError(t, err)
	assert.Empty(t, slots)
}

func TestGenerateDailyPlan_AccountBaseTimeOverride(t *testing.T) {
	date := time.Date(2025, 3, 10, 8, 0, 0, 0, time.UTC)

	acc := testAccount(1, 10, PlatformTikTok, 0)
	acc.BaseTimes = []string{"08:00", "20:00"}

	slots, err := GenerateDailyPlan(GenerateInput{
		Accounts:     []models.Account{acc},
		Creators:     []models.Creator{testCreator(10, "Asia/Bangkok")},
		OperatorZone: "UTC",
		Date:         date,
		Now:          date,
		NewID:        sequentialIDs(),
	})
	require.NoError(t, err)
	require.Len(t, slots, 2)

	// Overrides stay in the platform's reference zone (Bangkok, UTC+7).
	assert.Equal(t, time.Date(2025, 3, 10, 1, 0, 0, 0, time.UTC), slots[0].ScheduledAt)
	assert.Equal(t, time.Date(2025, 3, 10, 13, 0, 0, 0, time.UTC), slots[1].ScheduledAt)
}

func TestGenerateDailyPlan_InvalidOperatorZone(t *testing.T) {
	date := time.Date(2025, 3, 10, 8, 0, 0, 0, time.UTC)

	_, err := GenerateDailyPlan(GenerateInput{
		Accounts:     []models.Account{testAccount(1, 10, PlatformTikTok, 0)},
		Creators:     []models.Creator{testCreator(10, "Asia/Bangkok")},
		OperatorZone: "Bad/Zone",
		Date:         date,
		Now:          date,
		NewID:        sequentialIDs(),
	})
	assert.ErrorIs(t, err, ErrInvalidTimezone)
}
