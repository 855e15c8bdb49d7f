package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/cryptogram/internal/content"
)

// ClassifyResult is the JSON payload for classifying a single text.
type ClassifyResult struct {
	Text           string `json:"text"`
	CipherFriendly bool   `json:"cipherFriendly"`
	Difficulty     string `json:"difficulty"`
}

// BackfillResult is the JSON payload for --backfill.
type BackfillResult struct {
	Examined   int `json:"examined"`
	Classified int `json:"classified"`
}

// NewClassifyCommand creates the classify command.
func NewClassifyCommand(rootOpts *RootOptions) *cobra.Command {
	var backfill bool

	cmd := &cobra.Command{
		Use:   "classify [text...]",
		Short: "Classify candidate text",
		Long: `Classify candidate text for cipher-friendliness and difficulty.

With text arguments, the joined text is normalized and classified
without touching the database. With --backfill, every stored candidate
that is missing a classification is classified and updated in place;
candidates ingested before the classifier existed become selectable
this way.`,
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if backfill {
				return runBackfill(rootOpts, cmd)
			}
			return runClassify(rootOpts, strings.Join(args, " "), cmd)
		},
	}

	cmd.Flags().BoolVar(&backfill, "backfill", false, "classify stored candidates that lack a classification")

	return cmd
}

func runClassify(opts *RootOptions, text string, cmd *cobra.Command) error {
	formatter := newFormatter(opts, cmd)

	normalized := content.Normalize(text)
	if normalized == "" {
		_ = formatter.Error(ErrCodeInvalidInput, "no text to classify", nil)
		return NewExitError(ExitCommandError, "empty text")
	}

	cl := content.Classify(normalized)
	result := ClassifyResult{
		Text:           normalized,
		CipherFriendly: cl.CipherFriendly,
		Difficulty:     string(cl.Difficulty),
	}

	if formatter.Format == "json" {
		return formatter.Success(result)
	}

	friendly := "not cipher-friendly"
	if cl.CipherFriendly {
		friendly = "cipher-friendly"
	}
	fmt.Fprintf(formatter.Writer, "%s, difficulty %s\n", friendly, cl.Difficulty)
	return nil
}

func runBackfill(opts *RootOptions, cmd *cobra.Command) error {
	formatter := newFormatter(opts, cmd)
	ctx := cmd.Context()

	st, err := openStore(ctx, opts)
	if err != nil {
		_ = formatter.Error(ErrCodeStore, err.Error(), nil)
		return err
	}
	defer st.Close()

	pool, err := st.ListCandidates(ctx, content.Filter{})
	if err != nil {
		_ = formatter.Error(ErrCodeStore, "failed to list candidates", err.Error())
		return WrapExitError(ExitCommandError, "candidate listing failed", err)
	}

	result := BackfillResult{Examined: len(pool)}
	for _, c := range pool {
		if c.Classified() {
			continue
		}
		cl := content.Classify(content.Normalize(c.Text))
		if err := st.BackfillClassification(ctx, c.ID, cl); err != nil {
			_ = formatter.Error(ErrCodeStore, fmt.Sprintf("failed to update candidate %s", c.ID), err.Error())
			return WrapExitError(ExitCommandError, "backfill failed", err)
		}
		formatter.VerboseLog("Classified %s: friendly=%t difficulty=%s", c.ID, cl.CipherFriendly, cl.Difficulty)
		result.Classified++
	}

	if formatter.Format == "json" {
		return formatter.Success(result)
	}

	fmt.Fprintf(formatter.Writer, "Backfilled %d of %d candidate(s)\n", result.Classified, result.Examined)
	return nil
}
