package content

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// Eligibility thresholds. A text is cipher-friendly when it is long
// enough to be solvable, contains no digits (digits are not enciphered
// and clutter the puzzle), and is made almost entirely of letters and
// spaces.
const (
	minFriendlyLength   = 20
	minLetterSpaceRatio = 0.88
)

// Difficulty thresholds on trimmed length (runes) and word count.
const (
	easyMaxLength   = 120
	easyMaxWords    = 12
	mediumMaxLength = 220
	mediumMaxWords  = 22
)

// Ingestion quality gate bounds. Stricter than eligibility: applied only
// when accepting new candidates into the pool, never during selection.
const (
	gateMinLength        = 50
	gateMaxLength        = 300
	gateMinWords         = 10
	gateMaxWords         = 40
	gateMaxNonAlnumRatio = 0.3
)

// Classification is the derived suitability verdict for a text.
type Classification struct {
	CipherFriendly bool
	Difficulty     Difficulty
}

// Normalize prepares raw text for classification and encoding: NFC
// normalization followed by whitespace trimming. NFC keeps rune counts
// stable across providers that deliver decomposed accents.
func Normalize(text string) string {
	return strings.TrimSpace(norm.NFC.String(text))
}

// Classify derives the cipher-friendly flag and difficulty bucket for a
// text. Pure and deterministic: same text, same verdict, always.
func Classify(text string) Classification {
	trimmed := Normalize(text)
	runes := []rune(trimmed)
	length := len(runes)
	words := len(strings.Fields(trimmed))

	return Classification{
		CipherFriendly: isCipherFriendly(runes),
		Difficulty:     bucketDifficulty(length, words),
	}
}

// isCipherFriendly applies the three eligibility rules to trimmed runes.
func isCipherFriendly(runes []rune) bool {
	if len(runes) < minFriendlyLength {
		return false
	}

	letterOrSpace := 0
	for _, r := range runes {
		if unicode.IsDigit(r) {
			// Disallowed outright, regardless of ratio.
			return false
		}
		if unicode.IsLetter(r) || r == ' ' {
			letterOrSpace++
		}
	}

	return float64(letterOrSpace)/float64(len(runes)) >= minLetterSpaceRatio
}

func bucketDifficulty(length, words int) Difficulty {
	switch {
	case length <= easyMaxLength && words <= easyMaxWords:
		return DifficultyEasy
	case length <= mediumMaxLength && words <= mediumMaxWords:
		return DifficultyMedium
	default:
		return DifficultyHard
	}
}

// IngestionGate applies the stricter pool-admission rules to a text.
// Returns nil when the text may enter the candidate pool, or a
// GateError naming the first rule it violates.
//
// The gate is deliberately harsher than Classify: the pool should hold
// only texts that make satisfying puzzles, while selection-time
// eligibility merely avoids unplayable ones.
func IngestionGate(text string) error {
	trimmed := Normalize(text)
	runes := []rune(trimmed)
	length := len(runes)

	if length < gateMinLength || length > gateMaxLength {
		return &GateError{Rule: "length", Detail: "length must be within [50,300] characters", Length: length}
	}

	words := len(strings.Fields(trimmed))
	if words < gateMinWords || words > gateMaxWords {
		return &GateError{Rule: "words", Detail: "word count must be within [10,40]", Length: length}
	}

	nonAlnum := 0
	for _, r := range runes {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			nonAlnum++
		}
	}
	if float64(nonAlnum)/float64(length) > gateMaxNonAlnumRatio {
		return &GateError{Rule: "ratio", Detail: "too many non-alphanumeric characters", Length: length}
	}

	return nil
}
