package store

import (
	"context"
	"fmt"

	"github.com/roach88/cryptogram/internal/content"
)

// Store doubles as the engine's content provider.
var _ content.Provider = (*Store)(nil)

// UpsertCandidate inserts a candidate into the pool.
// Uses ON CONFLICT(id) DO NOTHING for idempotency: a candidate id is
// immutable once ingested, so a duplicate insert is silently ignored
// rather than overwriting the original text.
// Returns true when the row was newly inserted.
func (s *Store) UpsertCandidate(ctx context.Context, c content.Candidate) (bool, error) {
	res, err := s.db.ExecContext(ctx, `
		INSERT INTO candidates
		(id, text, source_tag, popularity, cipher_friendly, difficulty)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO NOTHING
	`,
		c.ID,
		c.Text,
		c.SourceTag,
		c.Popularity,
		boolToInt(c.CipherFriendly),
		string(c.Difficulty),
	)
	if err != nil {
		return false, fmt.Errorf("upsert candidate %s: %w", c.ID, err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("upsert candidate %s: %w", c.ID, err)
	}
	return n > 0, nil
}

// BackfillClassification updates only the derived flags of an existing
// candidate. The text itself is never touched.
func (s *Store) BackfillClassification(ctx context.Context, id string, cl content.Classification) error {
	_, err := s.db.ExecContext(ctx, `
		UPDATE candidates
		SET cipher_friendly = ?, difficulty = ?
		WHERE id = ?
	`,
		boolToInt(cl.CipherFriendly),
		string(cl.Difficulty),
		id,
	)
	if err != nil {
		return fmt.Errorf("backfill classification for %s: %w", id, err)
	}
	return nil
}

// Name identifies the store when used as a content provider.
func (s *Store) Name() string { return "sqlite" }

// Ping reports whether the database is reachable. Part of the
// content.Provider capability interface; called once at resolution.
func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// ListCandidates returns the candidates matching the filter, ordered by
// id. The ordering is cosmetic - selection re-sorts by id anyway - but a
// stable listing keeps diagnostics and tests readable.
func (s *Store) ListCandidates(ctx context.Context, f content.Filter) ([]content.Candidate, error) {
	query := `
		SELECT id, text, source_tag, popularity, cipher_friendly, difficulty
		FROM candidates
	`
	var args []any
	if f.SourceTag != "" {
		query += ` WHERE source_tag = ?`
		args = append(args, f.SourceTag)
	}
	query += ` ORDER BY id`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list candidates: %w", err)
	}
	defer rows.Close()

	var out []content.Candidate
	for rows.Next() {
		var c content.Candidate
		var friendly int
		var difficulty string
		if err := rows.Scan(&c.ID, &c.Text, &c.SourceTag, &c.Popularity, &friendly, &difficulty); err != nil {
			return nil, fmt.Errorf("scan candidate: %w", err)
		}
		c.CipherFriendly = friendly != 0
		c.Difficulty = content.Difficulty(difficulty)
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list candidates: %w", err)
	}
	return out, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
