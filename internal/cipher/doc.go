// Package cipher generates seeded substitution ciphers for cryptogram
// puzzles.
//
// Reproducibility is the core contract: every instance that derives a map
// from the same seed string must produce the byte-identical map, with no
// coordination. The seed is reduced to a 32-bit integer by an additive
// polynomial hash, that integer drives a counter-based pseudo-random
// generator, and a Fisher-Yates shuffle followed by a fixed-point fixup
// pass yields a derangement of the alphabet (no letter ever maps to
// itself).
//
// The hash and generator constants are load-bearing. They are frozen by
// golden fixtures under testdata/golden and must never change — two
// implementations are interchangeable only if they agree byte-for-byte on
// every map, not merely on the algorithm family.
package cipher
