package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/roach88/cryptogram/internal/content"
	"github.com/roach88/cryptogram/internal/puzzle"
	"github.com/roach88/cryptogram/internal/selection"
)

// NewDailyCommand creates the daily command.
func NewDailyCommand(rootOpts *RootOptions) *cobra.Command {
	var (
		date   string
		reveal bool
	)

	cmd := &cobra.Command{
		Use:   "daily",
		Short: "Produce the daily puzzle",
		Long: `Produce the substitution-cipher puzzle for a calendar date.

The puzzle is a pure function of the date: the same date always yields
the same cipher and the same candidate. The first computed result for a
date is cached in the database and returned verbatim thereafter, even if
new candidates are ingested later.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDaily(rootOpts, date, reveal, cmd)
		},
	}

	cmd.Flags().StringVar(&date, "date", "", "date key in YYYY-MM-DD form (default: today, UTC)")
	cmd.Flags().BoolVar(&reveal, "reveal", false, "include the plaintext in text output")

	return cmd
}

func runDaily(opts *RootOptions, date string, reveal bool, cmd *cobra.Command) error {
	formatter := newFormatter(opts, cmd)
	ctx := cmd.Context()

	dateKey := date
	if dateKey == "" {
		dateKey = time.Now().UTC().Format("2006-01-02")
	}
	if _, err := time.Parse("2006-01-02", dateKey); err != nil {
		_ = formatter.Error(ErrCodeInvalidInput, fmt.Sprintf("invalid date %q: want YYYY-MM-DD", dateKey), nil)
		return NewExitError(ExitCommandError, "invalid date")
	}

	st, err := openStore(ctx, opts)
	if err != nil {
		_ = formatter.Error(ErrCodeStore, err.Error(), nil)
		return err
	}
	defer st.Close()

	// Cached result wins: the first puzzle computed for a date is final.
	if cached, ok, err := st.GetDailyPuzzle(ctx, dateKey); err != nil {
		_ = formatter.Error(ErrCodeStore, "failed to read puzzle cache", err.Error())
		return WrapExitError(ExitCommandError, "cache read failed", err)
	} else if ok {
		formatter.VerboseLog("Serving cached puzzle for %s", dateKey)
		return outputPuzzle(formatter, cached, reveal)
	}

	p, err := assembleDaily(ctx, st, dateKey, formatter)
	if err != nil {
		return err
	}

	inserted, err := st.PutDailyPuzzle(ctx, p)
	if err != nil {
		_ = formatter.Error(ErrCodeStore, "failed to cache puzzle", err.Error())
		return WrapExitError(ExitCommandError, "cache write failed", err)
	}
	if !inserted {
		// Another writer got there first; their puzzle is canonical.
		cached, ok, err := st.GetDailyPuzzle(ctx, dateKey)
		if err != nil || !ok {
			_ = formatter.Error(ErrCodeStore, "failed to re-read cached puzzle", nil)
			return WrapExitError(ExitCommandError, "cache re-read failed", err)
		}
		p = cached
	}

	return outputPuzzle(formatter, p, reveal)
}

func assembleDaily(ctx context.Context, provider content.Provider, dateKey string, formatter *OutputFormatter) (puzzle.Puzzle, error) {
	resolved, err := content.Resolve(ctx, provider)
	if err != nil {
		_ = formatter.Error(ErrCodeStore, "no reachable candidate provider", err.Error())
		return puzzle.Puzzle{}, WrapExitError(ExitCommandError, "provider unavailable", err)
	}

	pool, err := resolved.ListCandidates(ctx, content.Filter{})
	if err != nil {
		_ = formatter.Error(ErrCodeStore, "failed to list candidates", err.Error())
		return puzzle.Puzzle{}, WrapExitError(ExitCommandError, "candidate listing failed", err)
	}
	formatter.VerboseLog("Loaded %d candidate(s) from %s", len(pool), resolved.Name())

	tracker, ok := resolved.(selection.UsedTracker)
	if !ok {
		tracker = selection.NewMemoryTracker()
	}

	asm := puzzle.NewAssembler(puzzle.UUIDv7Generator{})
	p, err := asm.AssembleDaily(ctx, dateKey, pool, tracker)
	if err != nil {
		if selection.IsPoolExhausted(err) {
			_ = formatter.Error(ErrCodePoolExhausted, "no eligible candidate for the daily puzzle", err.Error())
			return puzzle.Puzzle{}, WrapExitError(ExitFailure, "pool exhausted", err)
		}
		_ = formatter.Error(ErrCodeInvalidInput, "failed to assemble puzzle", err.Error())
		return puzzle.Puzzle{}, WrapExitError(ExitCommandError, "assembly failed", err)
	}
	return p, nil
}

// outputPuzzle prints a puzzle in the configured format.
// Text output hides the plaintext unless reveal is set.
func outputPuzzle(formatter *OutputFormatter, p puzzle.Puzzle, reveal bool) error {
	if formatter.Format == "json" {
		return formatter.Success(p)
	}

	fmt.Fprintf(formatter.Writer, "Puzzle %s (%s, %s)\n", p.ID, p.Mode, p.Date)
	fmt.Fprintf(formatter.Writer, "  %s\n", p.CipherText)
	if reveal {
		fmt.Fprintf(formatter.Writer, "  = %s\n", p.PlainText)
	}
	return nil
}
