// Package ingest admits new candidate texts into the puzzle pool.
//
// Candidates arrive either as YAML documents or as saved HTML pages
// (readable text is extracted with go-readability). Every candidate is
// validated against a CUE schema, then pushed through the ingestion
// quality gate, which is deliberately stricter than selection-time
// eligibility: the pool should hold only texts that make satisfying
// puzzles. Accepted candidates are classified, then upserted through a
// fixed-size worker pool; candidate ids are content-addressed so
// re-ingesting the same document is idempotent end to end.
package ingest
