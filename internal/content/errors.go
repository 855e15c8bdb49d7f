package content

import (
	"errors"
	"fmt"
)

// GateError reports which ingestion rule a rejected text violated.
type GateError struct {
	Rule   string // "length" | "words" | "ratio"
	Detail string
	Length int // trimmed length in runes, for diagnostics
}

func (e *GateError) Error() string {
	return fmt.Sprintf("ingestion gate (%s): %s", e.Rule, e.Detail)
}

// IsGateError reports whether the error is an ingestion gate rejection.
// Uses errors.As to handle wrapped errors.
func IsGateError(err error) bool {
	var ge *GateError
	return errors.As(err, &ge)
}

// ErrNoProvider is returned by Resolve when no provider in the priority
// list is reachable.
var ErrNoProvider = errors.New("content: no usable provider")
