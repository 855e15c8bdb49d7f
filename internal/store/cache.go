package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/roach88/cryptogram/internal/puzzle"
)

// PutDailyPuzzle caches an assembled daily puzzle under its date key.
//
// ON CONFLICT DO NOTHING: the first writer wins, and because assembly is
// a pure function of the date and pool snapshot, every concurrent writer
// was carrying the identical record. Returns true when this call wrote
// the row.
func (s *Store) PutDailyPuzzle(ctx context.Context, p puzzle.Puzzle) (bool, error) {
	data, err := json.Marshal(p)
	if err != nil {
		return false, fmt.Errorf("marshal daily puzzle %s: %w", p.Date, err)
	}

	res, err := s.db.ExecContext(ctx, `
		INSERT INTO daily_puzzles (date_key, puzzle)
		VALUES (?, ?)
		ON CONFLICT(date_key) DO NOTHING
	`, p.Date, string(data))
	if err != nil {
		return false, fmt.Errorf("cache daily puzzle %s: %w", p.Date, err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("cache daily puzzle %s: %w", p.Date, err)
	}
	return n > 0, nil
}

// GetDailyPuzzle returns the cached puzzle for a date key.
// The boolean reports whether a cached record exists.
func (s *Store) GetDailyPuzzle(ctx context.Context, dateKey string) (puzzle.Puzzle, bool, error) {
	var data string
	err := s.db.QueryRowContext(ctx,
		`SELECT puzzle FROM daily_puzzles WHERE date_key = ?`, dateKey,
	).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return puzzle.Puzzle{}, false, nil
	}
	if err != nil {
		return puzzle.Puzzle{}, false, fmt.Errorf("read daily puzzle %s: %w", dateKey, err)
	}

	var p puzzle.Puzzle
	if err := json.Unmarshal([]byte(data), &p); err != nil {
		return puzzle.Puzzle{}, false, fmt.Errorf("unmarshal daily puzzle %s: %w", dateKey, err)
	}
	return p, true, nil
}
