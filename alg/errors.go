// Package alg implements the ranked-preference tallying algorithms: simple
// majority, instant runoff, Borda count and Schulze. Every function here is
// pure: given the same preferences it always returns the same ranking.
package alg

import "errors"

// ErrInvalidPreference is returned when a ballot lists the same candidate
// more than once.
var ErrInvalidPreference = errors.New("alg: candidate name is repeated in preference")

// ErrInvalidMode is returned by Borda when mode is not one of
// "linear", "fractional" or "exponential".
var ErrInvalidMode = errors.New("alg: unsupported borda mode")

// assertValid checks that preference contains no repeated candidate.
func assertValid(preference []string) error {
	seen := make(map[string]struct{}, len(preference))
	for _, c := range preference {
		if _, ok := seen[c]; ok {
			return ErrInvalidPreference
		}
		seen[c] = struct{}{}
	}
	return nil
}
