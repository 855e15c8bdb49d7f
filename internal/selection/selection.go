package selection

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"github.com/roach88/cryptogram/internal/cipher"
	"github.com/roach88/cryptogram/internal/content"
)

// ResetThreshold is the unused fraction of the full pool below which the
// anti-repeat tracker is reset before selecting.
const ResetThreshold = 0.10

// DailySelect deterministically picks the candidate for one calendar
// date.
//
// Pipeline: drop used and ineligible candidates, restrict to the
// cipher-friendly subset when it is non-empty, order by candidate id
// lexicographically, then index with hash("daily-"+dateKey) mod size.
//
// ORDERING INVARIANT: selection for a past date must not change when new
// candidates are later appended to the pool. Ordering therefore depends
// only on candidate ids, never on pool insertion order or pool size at
// read time.
//
// When the unused fraction of the full pool has fallen below
// ResetThreshold, the tracker is reset first and selection runs over the
// pool unrestricted by used ids.
//
// The chosen id is marked used through the tracker's atomic add-if-absent
// primitive. DailySelect performs no widening and no retry: an empty
// eligible pool is a PoolExhaustedError for the caller to handle.
func DailySelect(ctx context.Context, pool []content.Candidate, dateKey string, tracker UsedTracker) (content.Candidate, error) {
	used, err := tracker.UsedIDs(ctx)
	if err != nil {
		return content.Candidate{}, fmt.Errorf("read used pool tracker: %w", err)
	}

	if shouldReset(pool, used) {
		slog.Info("used pool nearly exhausted, resetting tracker",
			"pool_size", len(pool),
			"used", len(used),
			"threshold", ResetThreshold,
		)
		if err := tracker.Reset(ctx); err != nil {
			return content.Candidate{}, fmt.Errorf("reset used pool tracker: %w", err)
		}
		used = nil
	}

	candidates := eligible(pool, used, content.Filter{})
	if len(candidates) == 0 {
		return content.Candidate{}, &PoolExhaustedError{Mode: "daily", PoolSize: len(pool)}
	}

	chosen := pick(candidates, "daily-"+dateKey)

	inserted, err := tracker.MarkUsed(ctx, chosen.ID)
	if err != nil {
		return content.Candidate{}, fmt.Errorf("mark candidate used: %w", err)
	}
	if !inserted {
		// A concurrent first-of-day caller got here first. Both computed
		// the same candidate from the same snapshot, so this is benign.
		slog.Debug("candidate already marked used", "candidate_id", chosen.ID, "date", dateKey)
	}

	slog.Info("daily candidate selected",
		"date", dateKey,
		"candidate_id", chosen.ID,
		"source", chosen.SourceTag,
		"eligible", len(candidates),
		"pool_size", len(pool),
	)
	return chosen, nil
}

// PracticeSelect picks a candidate for one practice request.
//
// Same eligibility rules and cipher-friendly preference as DailySelect,
// but no anti-repeat constraint and no mutation of shared state: the
// index is hash("practice-"+seed+"-"+filterKey) mod size over the
// id-ordered eligible pool.
func PracticeSelect(_ context.Context, pool []content.Candidate, seed string, filter content.Filter) (content.Candidate, error) {
	candidates := eligible(pool, nil, filter)
	if len(candidates) == 0 {
		return content.Candidate{}, &PoolExhaustedError{Mode: "practice", FilterKey: filter.Key(), PoolSize: len(pool)}
	}

	chosen := pick(candidates, fmt.Sprintf("practice-%s-%s", seed, filter.Key()))

	slog.Debug("practice candidate selected",
		"seed", seed,
		"filter", filter.Key(),
		"candidate_id", chosen.ID,
		"eligible", len(candidates),
	)
	return chosen, nil
}

// shouldReset reports whether the unused fraction of the full pool has
// dropped below ResetThreshold. An empty pool never triggers a reset;
// it surfaces as pool exhaustion instead.
func shouldReset(pool []content.Candidate, used map[string]bool) bool {
	if len(pool) == 0 {
		return false
	}
	unused := 0
	for _, c := range pool {
		if !used[c.ID] {
			unused++
		}
	}
	return float64(unused)/float64(len(pool)) < ResetThreshold
}

// eligible filters the pool to usable candidates and applies the
// cipher-friendly preference: when the friendly subset of the filtered
// pool is non-empty, selection is restricted to it.
func eligible(pool []content.Candidate, used map[string]bool, filter content.Filter) []content.Candidate {
	var all, friendly []content.Candidate
	for _, c := range pool {
		if used[c.ID] {
			continue
		}
		if filter.SourceTag != "" && c.SourceTag != filter.SourceTag {
			continue
		}
		if strings.TrimSpace(c.Text) == "" {
			continue
		}
		all = append(all, c)
		if c.Friendly() {
			friendly = append(friendly, c)
		}
	}
	if len(friendly) > 0 {
		return friendly
	}
	return all
}

// pick orders candidates by id and indexes them with the seeded hash.
// Ties are impossible by construction: the hash mod pool size yields
// exactly one index.
func pick(candidates []content.Candidate, indexSeed string) content.Candidate {
	sort.Slice(candidates, func(i, j int) bool {
		return candidates[i].ID < candidates[j].ID
	})
	idx := int(cipher.Hash32(indexSeed) % uint32(len(candidates)))
	return candidates[idx]
}
