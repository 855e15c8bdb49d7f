// Package scoring turns play telemetry into a numeric score.
package scoring

import "math"

// Scoring constants. Base plus a time bonus that decays exponentially,
// minus flat penalties per hint and per mistake, floored so every
// finished puzzle is worth something.
const (
	baseScore       = 10000
	timeBonus       = 5000
	timeConstantSec = 300
	hintPenalty     = 750
	mistakePenalty  = 100
	minScore        = 100
)

// Score computes the final score for a completed puzzle.
//
//	raw = 10000 + 5000*e^(-elapsed/300) - 750*hints - 100*mistakes
//	score = max(round(raw), 100)
//
// Pure and deterministic, with no error conditions: every numeric input
// is accepted. Keeping negative inputs out is the caller's job; the
// engine does not police telemetry.
func Score(elapsedSeconds float64, hintsUsed, mistakes int) int {
	raw := baseScore +
		timeBonus*math.Exp(-elapsedSeconds/timeConstantSec) -
		float64(hintPenalty*hintsUsed) -
		float64(mistakePenalty*mistakes)

	score := int(math.Round(raw))
	if score < minScore {
		return minScore
	}
	return score
}
