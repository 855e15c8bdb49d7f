package content

import (
	"context"
	"log/slog"
)

// Filter narrows a candidate listing. The zero value matches everything.
type Filter struct {
	// SourceTag restricts results to candidates from one source
	// community (empty = all sources).
	SourceTag string
}

// Key returns a stable string form of the filter for use in selection
// seeds. Must be deterministic: it participates in index derivation.
func (f Filter) Key() string {
	return f.SourceTag
}

// Provider supplies candidate texts to the engine.
//
// The engine treats one ListCandidates result as an immutable snapshot
// for the duration of a single selection call. Implementations must not
// mutate returned slices after handing them out.
type Provider interface {
	// Name identifies the provider in logs and diagnostics.
	Name() string

	// Ping reports whether the provider is currently usable.
	// Called once at resolution time, never per selection call.
	Ping(ctx context.Context) error

	// ListCandidates returns the candidates matching the filter.
	ListCandidates(ctx context.Context, f Filter) ([]Candidate, error)
}

// Resolve walks a priority-ordered provider list and returns the first
// reachable provider.
//
// Resolution happens exactly once at startup. Per-call capability
// probing is deliberately absent: re-probing on every selection made
// behavior dependent on transient provider health, which is the kind of
// hidden nondeterminism this engine exists to avoid.
func Resolve(ctx context.Context, providers ...Provider) (Provider, error) {
	for _, p := range providers {
		if p == nil {
			continue
		}
		if err := p.Ping(ctx); err != nil {
			slog.Warn("content provider unavailable, trying next",
				"provider", p.Name(),
				"error", err,
			)
			continue
		}
		slog.Info("content provider resolved", "provider", p.Name())
		return p, nil
	}
	return nil, ErrNoProvider
}
