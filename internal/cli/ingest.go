package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/roach88/cryptogram/internal/ingest"
)

// IngestResult is the JSON payload for the ingest command.
type IngestResult struct {
	SourceTag    string `json:"sourceTag"`
	Submitted    int    `json:"submitted"`
	Accepted     int    `json:"accepted"`
	Duplicates   int    `json:"duplicates"`
	RejectedGate int    `json:"rejectedGate"`
	Failed       int    `json:"failed"`
}

// NewIngestCommand creates the ingest command.
func NewIngestCommand(rootOpts *RootOptions) *cobra.Command {
	var (
		htmlPath string
		pageURL  string
		source   string
		workers  int
	)

	cmd := &cobra.Command{
		Use:   "ingest [document.yaml]",
		Short: "Admit candidate texts into the pool",
		Long: `Admit candidate texts into the pool.

With a YAML document argument, the file is schema-validated and each
candidate runs through the quality gate before insertion. With --html,
readable prose is extracted from a saved HTML page and split into
sentence candidates instead; --source labels them and --url records
where the page came from.

Ingestion is idempotent: re-running the same document counts the
already-present candidates as duplicates and changes nothing.`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			docPath := ""
			if len(args) == 1 {
				docPath = args[0]
			}
			return runIngest(rootOpts, docPath, htmlPath, pageURL, source, workers, cmd)
		},
	}

	cmd.Flags().StringVar(&htmlPath, "html", "", "extract candidates from this saved HTML page")
	cmd.Flags().StringVar(&pageURL, "url", "", "original URL of the HTML page (used to resolve links)")
	cmd.Flags().StringVar(&source, "source", "", "source tag for extracted candidates (required with --html)")
	cmd.Flags().IntVar(&workers, "workers", 4, "ingestion parallelism")

	return cmd
}

func runIngest(opts *RootOptions, docPath, htmlPath, pageURL, source string, workers int, cmd *cobra.Command) error {
	formatter := newFormatter(opts, cmd)
	ctx := cmd.Context()

	doc, err := loadIngestDocument(docPath, htmlPath, pageURL, source, formatter)
	if err != nil {
		return err
	}
	formatter.VerboseLog("Parsed %d candidate(s) from source %q", len(doc.Candidates), doc.SourceTag)

	st, err := openStore(ctx, opts)
	if err != nil {
		_ = formatter.Error(ErrCodeStore, err.Error(), nil)
		return err
	}
	defer st.Close()

	ing := ingest.NewIngester(st, workers)
	report, err := ing.Run(ctx, doc)
	if err != nil {
		_ = formatter.Error(ErrCodeIngest, "ingestion aborted", err.Error())
		return WrapExitError(ExitCommandError, "ingestion aborted", err)
	}

	result := IngestResult{
		SourceTag:    doc.SourceTag,
		Submitted:    len(doc.Candidates),
		Accepted:     report.Accepted,
		Duplicates:   report.Duplicates,
		RejectedGate: report.RejectedGate,
		Failed:       report.Failed,
	}

	if formatter.Format == "json" {
		if err := formatter.Success(result); err != nil {
			return err
		}
	} else {
		fmt.Fprintf(formatter.Writer, "Ingested %s: %d accepted, %d duplicate(s), %d rejected, %d failed\n",
			result.SourceTag, result.Accepted, result.Duplicates, result.RejectedGate, result.Failed)
	}

	if report.Failed > 0 {
		return NewExitError(ExitFailure, fmt.Sprintf("%d candidate(s) failed to ingest", report.Failed))
	}
	return nil
}

// loadIngestDocument builds the ingestion document from either a YAML
// file or an HTML page; exactly one of the two must be given.
func loadIngestDocument(docPath, htmlPath, pageURL, source string, formatter *OutputFormatter) (*ingest.Document, error) {
	switch {
	case docPath != "" && htmlPath != "":
		_ = formatter.Error(ErrCodeInvalidInput, "give either a YAML document or --html, not both", nil)
		return nil, NewExitError(ExitCommandError, "conflicting inputs")

	case docPath != "":
		data, err := os.ReadFile(docPath)
		if err != nil {
			_ = formatter.Error(ErrCodeInvalidInput, fmt.Sprintf("failed to read %s", docPath), err.Error())
			return nil, WrapExitError(ExitCommandError, "unreadable document", err)
		}
		doc, err := ingest.ParseDocument(data)
		if err != nil {
			_ = formatter.Error(ErrCodeIngest, "document failed schema validation", err.Error())
			return nil, WrapExitError(ExitCommandError, "invalid document", err)
		}
		return doc, nil

	case htmlPath != "":
		if source == "" {
			_ = formatter.Error(ErrCodeInvalidInput, "--source is required with --html", nil)
			return nil, NewExitError(ExitCommandError, "missing source tag")
		}
		f, err := os.Open(htmlPath)
		if err != nil {
			_ = formatter.Error(ErrCodeInvalidInput, fmt.Sprintf("failed to open %s", htmlPath), err.Error())
			return nil, WrapExitError(ExitCommandError, "unreadable HTML file", err)
		}
		defer f.Close()
		doc, err := ingest.ExtractDocument(f, pageURL, source)
		if err != nil {
			_ = formatter.Error(ErrCodeIngest, "HTML extraction failed", err.Error())
			return nil, WrapExitError(ExitCommandError, "extraction failed", err)
		}
		return doc, nil

	default:
		_ = formatter.Error(ErrCodeInvalidInput, "give a YAML document argument or --html", nil)
		return nil, NewExitError(ExitCommandError, "no input")
	}
}
