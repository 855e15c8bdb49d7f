// Package store provides durable SQLite storage for the puzzle engine's
// external state: the candidate pool, the anti-repeat ledger, the daily
// puzzle cache, and a small scalar key-value surface.
//
// The engine itself is pure; everything stateful lives here, behind the
// interfaces the engine consumes (content.Provider, selection.UsedTracker).
// Writes use ON CONFLICT DO NOTHING so that concurrent stateless
// instances converge: the first writer wins and every later writer was
// about to write the same value anyway.
package store
