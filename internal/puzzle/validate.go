package puzzle

import (
	"fmt"
	"strings"

	"github.com/roach88/cryptogram/internal/cipher"
)

// ValidationResult is the structured outcome of checking a solver's
// guesses. A wrong guess is expected input, not an error: IsSolved is
// simply false and CorrectCount tells the caller how close the solver
// is.
type ValidationResult struct {
	IsSolved     bool `json:"isSolved"`
	CorrectCount int  `json:"correctCount"`
	TotalCount   int  `json:"totalCount"`
}

// Validate checks a solver's letter-mapping guesses against a puzzle.
//
// The substitution map is RE-DERIVED from the puzzle's stored seed; a
// client-supplied map is never trusted. TotalCount is the number of
// distinct cipher letters appearing in the cipher text, CorrectCount is
// how many of those have a guess matching the re-derived decode map, and
// IsSolved requires every distinct cipher letter to be guessed
// correctly.
//
// Guess keys are cipher letters, values are plaintext guesses; both are
// case-insensitive and only the first byte of each is considered.
//
// The only error path is a corrupt puzzle record (empty seed); guess
// content never produces an error.
func Validate(p Puzzle, guesses map[string]string) (ValidationResult, error) {
	m, err := cipher.Generate(p.Seed)
	if err != nil {
		return ValidationResult{}, fmt.Errorf("validate puzzle %s: %w", p.ID, err)
	}

	norm := make(map[byte]byte, len(guesses))
	for k, v := range guesses {
		ck, ok := firstLetter(k)
		if !ok {
			continue
		}
		gv, ok := firstLetter(v)
		if !ok {
			continue
		}
		norm[ck] = gv
	}

	var distinct [26]bool
	total := 0
	for i := 0; i < len(p.CipherText); i++ {
		c := p.CipherText[i]
		if c >= 'A' && c <= 'Z' && !distinct[c-'A'] {
			distinct[c-'A'] = true
			total++
		}
	}

	correct := 0
	for i := 0; i < 26; i++ {
		if !distinct[i] {
			continue
		}
		c := byte('A' + i)
		want, _ := m.DecodeLetter(c)
		if got, ok := norm[c]; ok && got == want {
			correct++
		}
	}

	return ValidationResult{
		IsSolved:     total > 0 && correct == total,
		CorrectCount: correct,
		TotalCount:   total,
	}, nil
}

// firstLetter extracts an uppercase A-Z letter from the first byte of s.
func firstLetter(s string) (byte, bool) {
	s = strings.ToUpper(strings.TrimSpace(s))
	if s == "" {
		return 0, false
	}
	c := s[0]
	if c < 'A' || c > 'Z' {
		return 0, false
	}
	return c, true
}
