package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/cryptogram/internal/content"
	"github.com/roach88/cryptogram/internal/puzzle"
	"github.com/roach88/cryptogram/internal/selection"
)

// NewPracticeCommand creates the practice command.
func NewPracticeCommand(rootOpts *RootOptions) *cobra.Command {
	var (
		seed   string
		source string
		widen  bool
		reveal bool
	)

	cmd := &cobra.Command{
		Use:   "practice",
		Short: "Produce a practice puzzle for a caller-chosen seed",
		Long: `Produce a substitution-cipher puzzle from an arbitrary seed.

Practice puzzles never touch the anti-repeat ledger: the same seed and
filter always reproduce the same puzzle content, and playing a practice
puzzle has no effect on future daily selections.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPractice(rootOpts, seed, source, widen, reveal, cmd)
		},
	}

	cmd.Flags().StringVar(&seed, "seed", "", "seed for the practice puzzle (required)")
	cmd.Flags().StringVar(&source, "source", "", "restrict candidates to this source tag")
	cmd.Flags().BoolVar(&widen, "widen", false, "on an exhausted source filter, retry without it")
	cmd.Flags().BoolVar(&reveal, "reveal", false, "include the plaintext in text output")
	_ = cmd.MarkFlagRequired("seed")

	return cmd
}

func runPractice(opts *RootOptions, seed, source string, widen, reveal bool, cmd *cobra.Command) error {
	formatter := newFormatter(opts, cmd)
	ctx := cmd.Context()

	if seed == "" {
		_ = formatter.Error(ErrCodeInvalidInput, "seed must not be empty", nil)
		return NewExitError(ExitCommandError, "empty seed")
	}

	st, err := openStore(ctx, opts)
	if err != nil {
		_ = formatter.Error(ErrCodeStore, err.Error(), nil)
		return err
	}
	defer st.Close()

	provider, err := content.Resolve(ctx, st)
	if err != nil {
		_ = formatter.Error(ErrCodeStore, "no reachable candidate provider", err.Error())
		return WrapExitError(ExitCommandError, "provider unavailable", err)
	}

	filter := content.Filter{SourceTag: source}
	pool, err := provider.ListCandidates(ctx, filter)
	if err != nil {
		_ = formatter.Error(ErrCodeStore, "failed to list candidates", err.Error())
		return WrapExitError(ExitCommandError, "candidate listing failed", err)
	}
	formatter.VerboseLog("Loaded %d candidate(s) for filter %q", len(pool), filter.Key())

	asm := puzzle.NewAssembler(puzzle.UUIDv7Generator{})
	p, err := asm.AssemblePractice(ctx, seed, pool, filter)
	if err != nil {
		// The engine never widens a filter on its own; retrying without
		// the source tag is a caller decision, opted into with --widen.
		if selection.IsPoolExhausted(err) && widen && filter.SourceTag != "" {
			formatter.VerboseLog("Source %q exhausted, retrying without the filter", filter.SourceTag)
			filter = content.Filter{}
			pool, err = provider.ListCandidates(ctx, filter)
			if err != nil {
				_ = formatter.Error(ErrCodeStore, "failed to list candidates", err.Error())
				return WrapExitError(ExitCommandError, "candidate listing failed", err)
			}
			p, err = asm.AssemblePractice(ctx, seed, pool, filter)
		}
	}
	if err != nil {
		if selection.IsPoolExhausted(err) {
			_ = formatter.Error(ErrCodePoolExhausted,
				fmt.Sprintf("no eligible candidate for filter %q", filter.Key()), err.Error())
			return WrapExitError(ExitFailure, "pool exhausted", err)
		}
		_ = formatter.Error(ErrCodeInvalidInput, "failed to assemble puzzle", err.Error())
		return WrapExitError(ExitCommandError, "assembly failed", err)
	}

	return outputPuzzle(formatter, p, reveal)
}
