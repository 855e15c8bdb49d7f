package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/cryptogram/internal/scoring"
)

// ScoreResult is the JSON payload for the score command.
type ScoreResult struct {
	Score          int     `json:"score"`
	ElapsedSeconds float64 `json:"elapsedSeconds"`
	HintsUsed      int     `json:"hintsUsed"`
	Mistakes       int     `json:"mistakes"`
}

// NewScoreCommand creates the score command.
func NewScoreCommand(rootOpts *RootOptions) *cobra.Command {
	var (
		elapsed  float64
		hints    int
		mistakes int
	)

	cmd := &cobra.Command{
		Use:   "score",
		Short: "Compute the score for a completed solve",
		Long: `Compute the score for a completed solve.

Scoring is deterministic: a base of 10000 points plus a speed bonus that
decays exponentially with elapsed time, minus flat penalties per hint
and per mistake, floored at 100.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runScore(rootOpts, elapsed, hints, mistakes, cmd)
		},
	}

	cmd.Flags().Float64Var(&elapsed, "elapsed", 0, "elapsed solve time in seconds")
	cmd.Flags().IntVar(&hints, "hints", 0, "number of hints used")
	cmd.Flags().IntVar(&mistakes, "mistakes", 0, "number of mistakes made")

	return cmd
}

func runScore(opts *RootOptions, elapsed float64, hints, mistakes int, cmd *cobra.Command) error {
	formatter := newFormatter(opts, cmd)

	if elapsed < 0 || hints < 0 || mistakes < 0 {
		_ = formatter.Error(ErrCodeInvalidInput, "elapsed, hints, and mistakes must be non-negative", nil)
		return NewExitError(ExitCommandError, "invalid score inputs")
	}

	result := ScoreResult{
		Score:          scoring.Score(elapsed, hints, mistakes),
		ElapsedSeconds: elapsed,
		HintsUsed:      hints,
		Mistakes:       mistakes,
	}

	if formatter.Format == "json" {
		return formatter.Success(result)
	}

	fmt.Fprintf(formatter.Writer, "Score: %d\n", result.Score)
	return nil
}
