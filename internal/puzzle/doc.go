// Package puzzle composes cipher generation, candidate selection, and
// content classification into immutable Puzzle records, and validates
// solver submissions against them.
//
// A daily puzzle is a pure function of its date key: any number of
// stateless instances that assemble the same date against the same pool
// and tracker snapshot produce the identical record, so regeneration is
// idempotent and a shared cache is an efficiency measure, never a
// correctness requirement.
//
// Validation re-derives the substitution map from the puzzle's stored
// seed. A client-supplied map is never trusted.
package puzzle
