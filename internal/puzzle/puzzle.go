package puzzle

import (
	"sync"

	"github.com/google/uuid"
)

// Mode distinguishes the shared daily puzzle from unscored practice
// puzzles.
type Mode string

const (
	// ModeDaily is the one puzzle per calendar date shared by all
	// players, deterministically computed from the date.
	ModeDaily Mode = "daily"

	// ModePractice is a seeded-random, repeatable puzzle with no
	// repeat-avoidance requirement.
	ModePractice Mode = "practice"
)

// Puzzle is an assembled, playable cryptogram.
//
// Immutable after assembly. CipherText and PlainText contain only A-Z
// plus the original whitespace and punctuation at unchanged positions.
// The seed is stored so that validation can re-derive the substitution
// map instead of trusting anything a client sends.
type Puzzle struct {
	ID                string `json:"id"`
	CipherText        string `json:"cipherText"`
	PlainText         string `json:"plainText"`
	Seed              string `json:"seed"`
	Date              string `json:"date"` // ISO-8601 date (2006-01-02)
	Mode              Mode   `json:"mode"`
	SourceCandidateID string `json:"sourceCandidateId"`
}

// IDGenerator generates puzzle ids for practice mode.
// Implemented by UUIDv7Generator (production) and FixedGenerator (tests).
// Daily puzzle ids are derived from the date and never generated.
type IDGenerator interface {
	Generate() string
}

// UUIDv7Generator generates time-sortable UUIDv7 puzzle ids.
//
// Thread-safety: stateless and safe for concurrent use.
type UUIDv7Generator struct{}

// Generate creates a new UUIDv7 as a hyphenated string.
// Panics if UUID generation fails (should never happen in practice).
func (g UUIDv7Generator) Generate() string {
	return uuid.Must(uuid.NewV7()).String()
}

// FixedGenerator returns predetermined ids for testing, enabling exact
// assertions on assembled practice puzzles.
type FixedGenerator struct {
	mu  sync.Mutex
	ids []string
	idx int
}

// NewFixedGenerator creates a generator that returns ids in order.
// Generate panics once all ids are consumed: a test drawing more ids
// than it declared is a test bug worth failing loudly on.
func NewFixedGenerator(ids ...string) *FixedGenerator {
	return &FixedGenerator{ids: ids}
}

// Generate returns the next predetermined id.
func (g *FixedGenerator) Generate() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.idx >= len(g.ids) {
		panic("puzzle: FixedGenerator exhausted")
	}
	id := g.ids[g.idx]
	g.idx++
	return id
}
