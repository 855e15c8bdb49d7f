package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/roach88/cryptogram/internal/puzzle"
)

// NewValidateCommand creates the validate command.
func NewValidateCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate <puzzle.json> <guesses.json>",
		Short: "Check a solver's guesses against a puzzle",
		Long: `Check a solver's letter-mapping guesses against a puzzle.

The puzzle file is a JSON puzzle as emitted by the daily or practice
commands. The guesses file is a JSON object mapping cipher letters to
plaintext guesses, e.g. {"Z": "H", "Q": "E"}. The substitution map is
re-derived from the puzzle's seed; the guesses are never trusted as a
map.

Exits 0 when the puzzle is solved, 1 when it is not.`,
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(rootOpts, args[0], args[1], cmd)
		},
	}

	return cmd
}

func runValidate(opts *RootOptions, puzzlePath, guessesPath string, cmd *cobra.Command) error {
	formatter := newFormatter(opts, cmd)

	var p puzzle.Puzzle
	if err := readJSONFile(puzzlePath, &p); err != nil {
		_ = formatter.Error(ErrCodeInvalidInput, fmt.Sprintf("failed to read puzzle file %s", puzzlePath), err.Error())
		return WrapExitError(ExitCommandError, "unreadable puzzle file", err)
	}

	var guesses map[string]string
	if err := readJSONFile(guessesPath, &guesses); err != nil {
		_ = formatter.Error(ErrCodeInvalidInput, fmt.Sprintf("failed to read guesses file %s", guessesPath), err.Error())
		return WrapExitError(ExitCommandError, "unreadable guesses file", err)
	}

	result, err := puzzle.Validate(p, guesses)
	if err != nil {
		_ = formatter.Error(ErrCodeInvalidInput, "puzzle record is corrupt", err.Error())
		return WrapExitError(ExitCommandError, "corrupt puzzle", err)
	}

	if formatter.Format == "json" {
		if err := formatter.Success(result); err != nil {
			return err
		}
	} else if result.IsSolved {
		fmt.Fprintf(formatter.Writer, "✓ Solved (%d/%d letters)\n", result.CorrectCount, result.TotalCount)
	} else {
		fmt.Fprintf(formatter.Writer, "✗ Not solved (%d/%d letters)\n", result.CorrectCount, result.TotalCount)
	}

	if !result.IsSolved {
		return NewExitError(ExitFailure, fmt.Sprintf("not solved: %d/%d letters", result.CorrectCount, result.TotalCount))
	}
	return nil
}

func readJSONFile(path string, v interface{}) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, v)
}
