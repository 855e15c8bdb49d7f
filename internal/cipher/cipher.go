package cipher

import (
	"strings"
)

// Alphabet is the plaintext alphabet the cipher permutes.
const Alphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"

// alphabetSize is the number of letters in Alphabet.
const alphabetSize = 26

// SubstitutionMap is a bijective letter-for-letter mapping over A-Z.
//
// INVARIANTS:
//   - Bijection: every letter appears exactly once on each side.
//   - Derangement: no letter maps to itself.
//   - Immutable after Generate; maps are safe to share across goroutines.
type SubstitutionMap struct {
	encode [alphabetSize]byte
	decode [alphabetSize]byte
}

// Generate derives a substitution map from a seed string.
//
// The derivation is fully deterministic: the same seed always yields the
// byte-identical map, across processes and across independent
// implementations that pin the same constants.
//
// Steps:
//  1. Fold the seed to a 32-bit integer (Hash32).
//  2. Drive the counter-based generator from that integer.
//  3. Fisher-Yates shuffle the alphabet.
//  4. Fixup pass: any position still mapping a letter to itself is
//     swapped with the next index (wrapping), guaranteeing a derangement.
//
// An empty seed is rejected with ErrInvalidSeed. Silently substituting a
// default seed would break the reproducibility guarantee, so the engine
// fails fast instead.
func Generate(seed string) (*SubstitutionMap, error) {
	if seed == "" {
		return nil, ErrInvalidSeed
	}

	g := newGenerator(Hash32(seed))

	var shuffled [alphabetSize]byte
	copy(shuffled[:], Alphabet)

	// Fisher-Yates, descending. Draw order is part of the pinned fixture.
	for i := alphabetSize - 1; i > 0; i-- {
		j := g.intn(i + 1)
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	}

	// Derangement fixup: a fixed point swaps with the next index
	// (wrapping). A single left-to-right pass is sufficient: the swap
	// moves a non-matching letter into position i, and position i+1
	// receives a letter that cannot equal Alphabet[i+1] because it was
	// just found equal to Alphabet[i].
	for i := 0; i < alphabetSize; i++ {
		if shuffled[i] == Alphabet[i] {
			next := (i + 1) % alphabetSize
			shuffled[i], shuffled[next] = shuffled[next], shuffled[i]
		}
	}

	m := &SubstitutionMap{encode: shuffled}
	for i := 0; i < alphabetSize; i++ {
		m.decode[shuffled[i]-'A'] = Alphabet[i]
	}
	return m, nil
}

// EncodeTable returns the cipher alphabet as a 26-character string: the
// i-th character is what plaintext letter 'A'+i encodes to. Used for
// fixtures and diagnostics.
func (m *SubstitutionMap) EncodeTable() string {
	return string(m.encode[:])
}

// DecodeLetter returns the plaintext letter for a cipher letter.
// The second return is false when c is not an uppercase A-Z letter.
func (m *SubstitutionMap) DecodeLetter(c byte) (byte, bool) {
	if c < 'A' || c > 'Z' {
		return 0, false
	}
	return m.decode[c-'A'], true
}

// Encode applies the map to text. Input is uppercased first; letters A-Z
// are substituted and every other character passes through unchanged at
// the same position. Encode is total: any string is valid input.
func Encode(text string, m *SubstitutionMap) string {
	return substitute(text, m.encode)
}

// Decode inverts Encode. Non-letter characters pass through unchanged.
// Decode(Encode(text, m), m) equals strings.ToUpper(text).
func Decode(cipherText string, m *SubstitutionMap) string {
	return substitute(cipherText, m.decode)
}

func substitute(text string, table [alphabetSize]byte) string {
	upper := strings.ToUpper(text)
	var b strings.Builder
	b.Grow(len(upper))
	for i := 0; i < len(upper); i++ {
		c := upper[i]
		if c >= 'A' && c <= 'Z' {
			b.WriteByte(table[c-'A'])
		} else {
			b.WriteByte(c)
		}
	}
	return b.String()
}
