package alg

import "sort"

// SimpleMajority counts first-choice occurrences across all ballots.
// The result is sorted by score descending, ties broken by candidate label
// descending; candidates with zero first-choice votes are omitted.
func SimpleMajority(preferences [][]string) ([]ScoredCandidate, error) {
	votes := make(map[string]int)
	for _, preference := range preferences {
		if err := assertValid(preference); err != nil {
			return nil, err
		}
		if len(preference) > 0 {
			votes[preference[0]]++
		}
	}

	result := make([]ScoredCandidate, 0, len(votes))
	for candidate, count := range votes {
		result = append(result, ScoredCandidate{Score: float64(count), Candidate: candidate})
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].Score != result[j].Score {
			return result[i].Score > result[j].Score
		}
		return result[i].Candidate > result[j].Candidate
	})
	return result, nil
}
