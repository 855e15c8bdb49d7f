package selection

import (
	"errors"
	"fmt"
)

// PoolExhaustedError reports that no eligible candidate remained for a
// selection request.
//
// The engine never widens the pool or retries on its own: whether to
// broaden the filter, fetch more candidates, or surface a user-facing
// failure is the calling orchestration layer's decision.
type PoolExhaustedError struct {
	// Mode is "daily" or "practice".
	Mode string

	// FilterKey is the source filter in effect (practice only, may be
	// empty).
	FilterKey string

	// PoolSize is the size of the pool before eligibility filtering.
	PoolSize int
}

func (e *PoolExhaustedError) Error() string {
	if e.FilterKey != "" {
		return fmt.Sprintf("pool exhausted: no eligible candidates for %s selection (filter=%s, pool=%d)",
			e.Mode, e.FilterKey, e.PoolSize)
	}
	return fmt.Sprintf("pool exhausted: no eligible candidates for %s selection (pool=%d)", e.Mode, e.PoolSize)
}

// IsPoolExhausted reports whether the error is a pool exhaustion.
// Uses errors.As to handle wrapped errors.
func IsPoolExhausted(err error) bool {
	var pe *PoolExhaustedError
	return errors.As(err, &pe)
}
