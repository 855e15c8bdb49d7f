package selection

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/cryptogram/internal/content"
)

const friendlyText = "The quick brown fox jumps over the lazy dog and runs far away into hills"

// unfriendly on purpose: digits are never cipher-friendly.
const noisyText = "Top 10 reasons #1 will shock you!!!"

func friendlyPool(ids ...string) []content.Candidate {
	pool := make([]content.Candidate, 0, len(ids))
	for _, id := range ids {
		pool = append(pool, content.Candidate{ID: id, Text: friendlyText, SourceTag: "quotes"})
	}
	return pool
}

// =============================================================================
// DailySelect
// =============================================================================

func TestDailySelect_Deterministic(t *testing.T) {
	ctx := context.Background()
	pool := friendlyPool("alpha", "bravo", "charlie", "delta", "echo")

	// hash("daily-2026-02-05") mod 5 == 4 -> "echo" in id order.
	a, err := DailySelect(ctx, pool, "2026-02-05", NewMemoryTracker())
	require.NoError(t, err)
	b, err := DailySelect(ctx, pool, "2026-02-05", NewMemoryTracker())
	require.NoError(t, err)

	assert.Equal(t, "echo", a.ID)
	assert.Equal(t, a.ID, b.ID, "same date and snapshot must select the same candidate")
}

func TestDailySelect_InsertionOrderIndependent(t *testing.T) {
	ctx := context.Background()

	// Same candidates, three different array orders.
	orders := [][]string{
		{"alpha", "bravo", "charlie", "delta", "echo"},
		{"echo", "delta", "charlie", "bravo", "alpha"},
		{"charlie", "alpha", "echo", "bravo", "delta"},
	}
	var picked []string
	for _, ids := range orders {
		c, err := DailySelect(ctx, friendlyPool(ids...), "2026-02-05", NewMemoryTracker())
		require.NoError(t, err)
		picked = append(picked, c.ID)
	}
	assert.Equal(t, picked[0], picked[1])
	assert.Equal(t, picked[0], picked[2])
}

func TestDailySelect_HonorsUsedIDs(t *testing.T) {
	ctx := context.Background()
	pool := friendlyPool("alpha", "bravo", "charlie", "delta", "echo")
	tracker := NewMemoryTracker()

	first, err := DailySelect(ctx, pool, "2026-02-05", tracker)
	require.NoError(t, err)
	assert.Equal(t, "echo", first.ID)

	// Next day must not repeat: echo is on the ledger, 4 remain,
	// hash("daily-2026-02-06") mod 4 == 2 -> "charlie".
	second, err := DailySelect(ctx, pool, "2026-02-06", tracker)
	require.NoError(t, err)
	assert.Equal(t, "charlie", second.ID)
	assert.NotEqual(t, first.ID, second.ID)
}

func TestDailySelect_NeverRepeatsUntilReset(t *testing.T) {
	ctx := context.Background()
	pool := friendlyPool("alpha", "bravo", "charlie", "delta", "echo")
	tracker := NewMemoryTracker()

	seen := make(map[string]bool)
	for day := 1; day <= 4; day++ {
		c, err := DailySelect(ctx, pool, fmt.Sprintf("2026-02-%02d", day), tracker)
		require.NoError(t, err)
		assert.False(t, seen[c.ID], "candidate %s repeated before reset", c.ID)
		seen[c.ID] = true
	}
}

func TestDailySelect_CipherFriendlyPreference(t *testing.T) {
	ctx := context.Background()
	pool := []content.Candidate{
		{ID: "noisy-a", Text: noisyText},
		{ID: "friendly-a", Text: friendlyText},
		{ID: "noisy-b", Text: noisyText},
		{ID: "friendly-b", Text: friendlyText},
		{ID: "noisy-c", Text: noisyText},
	}

	// Friendly subset is non-empty, so selection is restricted to it:
	// hash("daily-2026-02-05") mod 2 == 1 -> "friendly-b".
	c, err := DailySelect(ctx, pool, "2026-02-05", NewMemoryTracker())
	require.NoError(t, err)
	assert.Equal(t, "friendly-b", c.ID)
}

func TestDailySelect_FallsBackWhenNoFriendly(t *testing.T) {
	ctx := context.Background()
	pool := []content.Candidate{
		{ID: "u-a", Text: noisyText},
		{ID: "u-b", Text: noisyText},
		{ID: "u-c", Text: noisyText},
	}

	// hash("daily-2026-02-05") mod 3 == 2 -> "u-c".
	c, err := DailySelect(ctx, pool, "2026-02-05", NewMemoryTracker())
	require.NoError(t, err)
	assert.Equal(t, "u-c", c.ID)
}

func TestDailySelect_PoolExhausted(t *testing.T) {
	ctx := context.Background()

	_, err := DailySelect(ctx, nil, "2026-02-05", NewMemoryTracker())
	require.Error(t, err)
	assert.True(t, IsPoolExhausted(err))

	// Blank texts are not eligible either.
	pool := []content.Candidate{{ID: "blank", Text: "   "}}
	_, err = DailySelect(ctx, pool, "2026-02-05", NewMemoryTracker())
	require.Error(t, err)
	assert.True(t, IsPoolExhausted(err))
}

func TestDailySelect_ResetBelowThreshold(t *testing.T) {
	ctx := context.Background()

	ids := make([]string, 20)
	for i := range ids {
		ids[i] = fmt.Sprintf("c-%02d", i)
	}
	pool := friendlyPool(ids...)

	tracker := NewMemoryTracker()
	for i, id := range ids {
		if i != 7 {
			_, err := tracker.MarkUsed(ctx, id)
			require.NoError(t, err)
		}
	}

	// Unused fraction is 1/20 = 0.05 < 0.10: the tracker resets and
	// selection runs over the full pool.
	// hash("daily-2026-02-05") mod 20 == 9 -> "c-09".
	c, err := DailySelect(ctx, pool, "2026-02-05", tracker)
	require.NoError(t, err)
	assert.Equal(t, "c-09", c.ID)

	used, err := tracker.UsedIDs(ctx)
	require.NoError(t, err)
	assert.Equal(t, map[string]bool{"c-09": true}, used, "ledger restarts with only the fresh pick")
}

func TestDailySelect_NoResetAtExactThreshold(t *testing.T) {
	ctx := context.Background()

	ids := make([]string, 10)
	for i := range ids {
		ids[i] = fmt.Sprintf("c-%d", i)
	}
	pool := friendlyPool(ids...)

	tracker := NewMemoryTracker()
	for _, id := range ids[:9] {
		_, err := tracker.MarkUsed(ctx, id)
		require.NoError(t, err)
	}

	// Unused fraction is exactly 0.10, which is not below the
	// threshold: no reset, and the single remaining candidate wins.
	c, err := DailySelect(ctx, pool, "2026-02-05", tracker)
	require.NoError(t, err)
	assert.Equal(t, "c-9", c.ID)
}

func TestDailySelect_MarksChosenUsed(t *testing.T) {
	ctx := context.Background()
	tracker := NewMemoryTracker()

	c, err := DailySelect(ctx, friendlyPool("alpha", "bravo"), "2026-02-05", tracker)
	require.NoError(t, err)

	used, err := tracker.UsedIDs(ctx)
	require.NoError(t, err)
	assert.True(t, used[c.ID])
}

// =============================================================================
// PracticeSelect
// =============================================================================

func TestPracticeSelect_Deterministic(t *testing.T) {
	ctx := context.Background()
	pool := friendlyPool("alpha", "bravo", "charlie", "delta", "echo")

	a, err := PracticeSelect(ctx, pool, "42", content.Filter{})
	require.NoError(t, err)
	b, err := PracticeSelect(ctx, pool, "42", content.Filter{})
	require.NoError(t, err)

	// hash("practice-42-") mod 5 == 3 -> "delta".
	assert.Equal(t, "delta", a.ID)
	assert.Equal(t, a.ID, b.ID)
}

func TestPracticeSelect_SeedChangesSelection(t *testing.T) {
	ctx := context.Background()
	pool := friendlyPool("alpha", "bravo", "charlie", "delta", "echo")

	picks := make(map[string]bool)
	for i := 0; i < 30; i++ {
		c, err := PracticeSelect(ctx, pool, fmt.Sprintf("seed-%d", i), content.Filter{})
		require.NoError(t, err)
		picks[c.ID] = true
	}
	assert.Greater(t, len(picks), 1, "different seeds should reach different candidates")
}

func TestPracticeSelect_SourceFilter(t *testing.T) {
	ctx := context.Background()
	pool := []content.Candidate{
		{ID: "g-a", Text: friendlyText, SourceTag: "golang"},
		{ID: "g-b", Text: friendlyText, SourceTag: "golang"},
		{ID: "g-c", Text: friendlyText, SourceTag: "golang"},
		{ID: "g-d", Text: friendlyText, SourceTag: "golang"},
		{ID: "q-a", Text: friendlyText, SourceTag: "quotes"},
	}

	// hash("practice-42-golang") mod 4 == 3 -> "g-d".
	c, err := PracticeSelect(ctx, pool, "42", content.Filter{SourceTag: "golang"})
	require.NoError(t, err)
	assert.Equal(t, "g-d", c.ID)
}

func TestPracticeSelect_FilterExhaustion(t *testing.T) {
	ctx := context.Background()
	pool := friendlyPool("alpha")

	_, err := PracticeSelect(ctx, pool, "42", content.Filter{SourceTag: "nosuch"})
	require.Error(t, err)
	assert.True(t, IsPoolExhausted(err))

	var pe *PoolExhaustedError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, "practice", pe.Mode)
	assert.Equal(t, "nosuch", pe.FilterKey)
}

func TestPracticeSelect_DoesNotTouchSharedState(t *testing.T) {
	ctx := context.Background()
	pool := friendlyPool("alpha", "bravo", "charlie")
	tracker := NewMemoryTracker()

	_, err := PracticeSelect(ctx, pool, "42", content.Filter{})
	require.NoError(t, err)

	used, err := tracker.UsedIDs(ctx)
	require.NoError(t, err)
	assert.Empty(t, used)
}
