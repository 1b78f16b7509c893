package alg

import (
	"fmt"
	"math"
	"sort"
)

// Borda ranking modes.
const (
	BordaLinear      = "linear"
	BordaFractional  = "fractional"
	BordaExponential = "exponential"
)

// Borda tallies preferences using the Borda count. n is taken from the
// length of the first ballot; every ballot is assumed to have that same
// length. Result is sorted by score descending, ties
// broken by candidate label descending.
func Borda(preferences [][]string, mode string) ([]ScoredCandidate, error) {
	switch mode {
	case BordaLinear, BordaFractional, BordaExponential:
	default:
		return nil, fmt.Errorf("%w: %q", ErrInvalidMode, mode)
	}
	if len(preferences) == 0 {
		return nil, nil
	}

	n := len(preferences[0])
	scores := make(map[string]float64)
	for _, preference := range preferences {
		if err := assertValid(preference); err != nil {
			return nil, err
		}
		for k, item := range preference {
			var delta float64
			switch mode {
			case BordaLinear:
				delta = float64(n - k)
			case BordaFractional:
				delta = 1.0 / float64(k+1)
			case BordaExponential:
				delta = math.Pow(float64(n), float64(n-k-1))
			}
			scores[item] += delta
		}
	}

	result := make([]ScoredCandidate, 0, len(scores))
	for candidate, score := range scores {
		result = append(result, ScoredCandidate{Score: score, Candidate: candidate})
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].Score != result[j].Score {
			return result[i].Score > result[j].Score
		}
		return result[i].Candidate > result[j].Candidate
	})
	return result, nil
}
