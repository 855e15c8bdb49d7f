package puzzle

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/roach88/cryptogram/internal/cipher"
	"github.com/roach88/cryptogram/internal/content"
	"github.com/roach88/cryptogram/internal/selection"
)

// Assembler builds immutable Puzzle records from a candidate pool.
//
// Assembly is pure computation plus the tracker reads/writes owned by
// selection: there is no internal concurrency, nothing to cancel, and no
// partial result. The contract is a fully-formed puzzle or an explicit
// error, never both.
type Assembler struct {
	idGen IDGenerator
	now   func() time.Time
}

// AssemblerOption configures an Assembler.
type AssemblerOption func(*Assembler)

// WithNow overrides the clock used to stamp practice puzzles.
// Daily puzzles are stamped with their date key, not with the clock.
func WithNow(now func() time.Time) AssemblerOption {
	return func(a *Assembler) {
		a.now = now
	}
}

// NewAssembler creates an Assembler. idGen supplies practice puzzle ids;
// daily ids are derived from the date key.
func NewAssembler(idGen IDGenerator, opts ...AssemblerOption) *Assembler {
	a := &Assembler{
		idGen: idGen,
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// DailySeed derives the cipher seed for a date key.
// The format is frozen: changing it changes every historical puzzle.
func DailySeed(dateKey string) string {
	return fmt.Sprintf("cryptogram-%s-daily-%s", dateKey, dateKey)
}

// PracticeSeed derives the cipher seed for a practice request seed.
func PracticeSeed(requestSeed string) string {
	return fmt.Sprintf("cryptogram-practice-%s", requestSeed)
}

// AssembleDaily assembles the shared puzzle for one calendar date.
//
// Idempotent: calling it twice for the same dateKey against the same
// pool and tracker snapshot yields the identical record. External
// memoization (the daily cache) is an efficiency measure only.
func (a *Assembler) AssembleDaily(ctx context.Context, dateKey string, pool []content.Candidate, tracker selection.UsedTracker) (Puzzle, error) {
	if dateKey == "" {
		return Puzzle{}, fmt.Errorf("assemble daily: date key must be non-empty")
	}

	candidate, err := selection.DailySelect(ctx, pool, dateKey, tracker)
	if err != nil {
		return Puzzle{}, fmt.Errorf("assemble daily %s: %w", dateKey, err)
	}

	seed := DailySeed(dateKey)
	p, err := a.assemble("daily-"+dateKey, seed, dateKey, ModeDaily, candidate)
	if err != nil {
		return Puzzle{}, fmt.Errorf("assemble daily %s: %w", dateKey, err)
	}

	slog.Info("daily puzzle assembled",
		"date", dateKey,
		"puzzle_id", p.ID,
		"candidate_id", candidate.ID,
		"length", len(p.CipherText),
	)
	return p, nil
}

// AssemblePractice assembles an unscored practice puzzle for one
// request. Never memoized by the engine, and never touches the
// anti-repeat tracker.
func (a *Assembler) AssemblePractice(ctx context.Context, requestSeed string, pool []content.Candidate, filter content.Filter) (Puzzle, error) {
	if requestSeed == "" {
		return Puzzle{}, fmt.Errorf("assemble practice: %w", cipher.ErrInvalidSeed)
	}

	candidate, err := selection.PracticeSelect(ctx, pool, requestSeed, filter)
	if err != nil {
		return Puzzle{}, fmt.Errorf("assemble practice: %w", err)
	}

	seed := PracticeSeed(requestSeed)
	date := a.now().UTC().Format("2006-01-02")
	p, err := a.assemble(a.idGen.Generate(), seed, date, ModePractice, candidate)
	if err != nil {
		return Puzzle{}, fmt.Errorf("assemble practice: %w", err)
	}

	slog.Debug("practice puzzle assembled",
		"puzzle_id", p.ID,
		"candidate_id", candidate.ID,
		"filter", filter.Key(),
	)
	return p, nil
}

// assemble derives the map, encodes the candidate text, and freezes the
// record.
func (a *Assembler) assemble(id, seed, date string, mode Mode, candidate content.Candidate) (Puzzle, error) {
	m, err := cipher.Generate(seed)
	if err != nil {
		return Puzzle{}, fmt.Errorf("derive substitution map: %w", err)
	}

	plain := strings.ToUpper(content.Normalize(candidate.Text))
	return Puzzle{
		ID:                id,
		CipherText:        cipher.Encode(plain, m),
		PlainText:         plain,
		Seed:              seed,
		Date:              date,
		Mode:              mode,
		SourceCandidateID: candidate.ID,
	}, nil
}
