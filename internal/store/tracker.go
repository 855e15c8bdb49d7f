package store

import (
	"context"
	"fmt"

	"github.com/roach88/cryptogram/internal/selection"
)

// Store implements selection.UsedTracker on the used_candidates table.
var _ selection.UsedTracker = (*Store)(nil)

// UsedIDs returns a snapshot of the anti-repeat ledger.
func (s *Store) UsedIDs(ctx context.Context) (map[string]bool, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT candidate_id FROM used_candidates`)
	if err != nil {
		return nil, fmt.Errorf("read used candidates: %w", err)
	}
	defer rows.Close()

	used := make(map[string]bool)
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan used candidate: %w", err)
		}
		used[id] = true
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read used candidates: %w", err)
	}
	return used, nil
}

// MarkUsed records a candidate id on the ledger with an atomic
// add-if-absent: INSERT ... ON CONFLICT DO NOTHING, reporting via
// RowsAffected whether this call inserted the row. Two concurrent
// first-of-day callers both succeed; exactly one observes true.
func (s *Store) MarkUsed(ctx context.Context, id string) (bool, error) {
	res, err := s.db.ExecContext(ctx, `
		INSERT INTO used_candidates (candidate_id)
		VALUES (?)
		ON CONFLICT(candidate_id) DO NOTHING
	`, id)
	if err != nil {
		return false, fmt.Errorf("mark candidate used %s: %w", id, err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("mark candidate used %s: %w", id, err)
	}
	return n > 0, nil
}

// Reset wipes the ledger. Called by selection when the unused fraction
// of the pool falls below the reset threshold.
func (s *Store) Reset(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM used_candidates`); err != nil {
		return fmt.Errorf("reset used candidates: %w", err)
	}
	return nil
}
