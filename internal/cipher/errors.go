package cipher

import "errors"

// ErrInvalidSeed is returned when a map is requested for an empty seed.
//
// The engine never substitutes a default seed: a silent default would
// produce a valid-looking map that no other instance could reproduce.
var ErrInvalidSeed = errors.New("cipher: seed must be non-empty")

// IsInvalidSeed reports whether the error is a seed rejection.
// Uses errors.Is to handle wrapped errors.
func IsInvalidSeed(err error) bool {
	return errors.Is(err, ErrInvalidSeed)
}
