package alg

import "sort"

// InstantRunoff performs an instant-runoff tally over the union of all
// candidate labels appearing in any ballot. Each round eliminates every
// option tied at the minimum first-choice count among still-alive options;
// the result is ordered best-first: the last surviving option comes first
// and the first eliminated (lowest count) comes last.
func InstantRunoff(preferences [][]string) ([]ScoredCandidate, error) {
	for _, preference := range preferences {
		if err := assertValid(preference); err != nil {
			return nil, err
		}
	}

	allowed := map[string]struct{}{}
	for _, preference := range preferences {
		for _, c := range preference {
			allowed[c] = struct{}{}
		}
	}
	n := len(allowed)

	losers := map[string]struct{}{}
	winners := make([]ScoredCandidate, 0, n)

	for len(winners) < n {
		options := make(map[string]int, len(allowed))
		for item := range allowed {
			if _, out := losers[item]; !out {
				options[item] = 0
			}
		}
		for _, preference := range preferences {
			for _, item := range preference {
				if _, out := losers[item]; out {
					continue
				}
				options[item]++
				break
			}
		}

		type optionCount struct {
			count int
			label string
		}
		optionsList := make([]optionCount, 0, len(options))
		for label, count := range options {
			optionsList = append(optionsList, optionCount{count, label})
		}
		sort.Slice(optionsList, func(i, j int) bool {
			if optionsList[i].count != optionsList[j].count {
				return optionsList[i].count < optionsList[j].count
			}
			return optionsList[i].label < optionsList[j].label
		})

		minCount := optionsList[0].count
		round := make([]ScoredCandidate, 0)
		for _, oc := range optionsList {
			if oc.count == minCount {
				losers[oc.label] = struct{}{}
				round = append(round, ScoredCandidate{Score: float64(oc.count), Candidate: oc.label})
			}
		}
		// The source inserts each eliminated option at index 0 one at a
		// time, which reverses the round's internal order; reverse here
		// before prepending the whole block to match that.
		for i, j := 0, len(round)-1; i < j; i, j = i+1, j-1 {
			round[i], round[j] = round[j], round[i]
		}
		winners = append(round, winners...)
	}
	return winners, nil
}
