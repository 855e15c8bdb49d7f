// Package content defines the candidate model for puzzle source texts,
// the eligibility classifier that decides whether a text can be turned
// into a playable cryptogram, and the provider capability interface the
// engine consumes candidates through.
//
// Classification is a pure function of the text, so derived flags stored
// on a candidate are an optimization, never a source of truth.
package content
