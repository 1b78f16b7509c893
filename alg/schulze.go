package alg

import "sort"

// Schulze computes the Schulze (Condorcet beatpath) ranking. The candidate
// set is the intersection of labels across all ballots; a label missing
// from any one ballot is silently dropped. Result is ordered best-first:
// the winner appears first with rank n-1, the last-place candidate appears
// last with rank 0.
func Schulze(preferences [][]string) ([]ScoredCandidate, error) {
	for _, preference := range preferences {
		if err := assertValid(preference); err != nil {
			return nil, err
		}
	}
	if len(preferences) == 0 {
		return nil, nil
	}

	candidateSet := map[string]struct{}{}
	for _, c := range preferences[0] {
		candidateSet[c] = struct{}{}
	}
	for _, preference := range preferences[1:] {
		present := map[string]struct{}{}
		for _, c := range preference {
			present[c] = struct{}{}
		}
		for c := range candidateSet {
			if _, ok := present[c]; !ok {
				delete(candidateSet, c)
			}
		}
	}

	candidates := make([]string, 0, len(candidateSet))
	for c := range candidateSet {
		candidates = append(candidates, c)
	}
	sort.Strings(candidates)
	n := len(candidates)
	index := make(map[string]int, n)
	for i, c := range candidates {
		index[c] = i
	}

	d := make([][]int, n)
	p := make([][]int, n)
	for i := range d {
		d[i] = make([]int, n)
		p[i] = make([]int, n)
	}

	for _, preference := range preferences {
		pos := make(map[string]int, n)
		rank := 0
		for _, c := range preference {
			if _, ok := candidateSet[c]; ok {
				pos[c] = rank
				rank++
			}
		}
		for a := 0; a < n; a++ {
			for b := 0; b < n; b++ {
				if a == b {
					continue
				}
				pa, aok := pos[candidates[a]]
				pb, bok := pos[candidates[b]]
				if aok && bok && pa < pb {
					d[a][b]++
				}
			}
		}
	}

	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			if i != j && d[i][j] > d[j][i] {
				p[i][j] = d[i][j]
			}
		}
	}
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			if j == i {
				continue
			}
			for k := 0; k < n; k++ {
				if k == i || k == j {
					continue
				}
				if m := min(p[j][i], p[i][k]); m > p[j][k] {
					p[j][k] = m
				}
			}
		}
	}

	order := make([]int, n)
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(x, y int) bool {
		i, j := order[x], order[y]
		return p[i][j] < p[j][i]
	})

	result := make([]ScoredCandidate, n)
	for rank, candidateIdx := range order {
		result[n-1-rank] = ScoredCandidate{Score: float64(rank), Candidate: candidates[candidateIdx]}
	}
	return result, nil
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
