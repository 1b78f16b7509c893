package alg

// ScoredCandidate pairs a candidate label with its score in a ranking. The
// meaning of Score depends on the algorithm that produced it: a vote count
// for SimpleMajority and Borda, an elimination-round count for
// InstantRunoff, or a rank index for Schulze.
type ScoredCandidate struct {
	Score     float64
	Candidate string
}
