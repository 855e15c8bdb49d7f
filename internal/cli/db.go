package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/roach88/cryptogram/internal/store"
)

// newFormatter builds an OutputFormatter wired to the command's streams.
// Verbose logs go to stderr so they never corrupt JSON output.
func newFormatter(opts *RootOptions, cmd *cobra.Command) *OutputFormatter {
	return &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}
}

// openStore opens the SQLite database and applies the schema.
func openStore(ctx context.Context, opts *RootOptions) (*store.Store, error) {
	st, err := store.Open(opts.DBPath)
	if err != nil {
		return nil, WrapExitError(ExitCommandError, "failed to open database", err)
	}
	if err := store.EnsureInitialized(ctx, st); err != nil {
		st.Close()
		return nil, WrapExitError(ExitCommandError, "failed to initialize database", err)
	}
	return st, nil
}
