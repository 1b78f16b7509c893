package alg

import (
	"strings"
	"testing"

	qt "github.com/frankban/quicktest"
)

// seedPreferences builds the 45-ballot preference multiset used throughout
// spec scenarios: candidates {A,B,C,D,E}.
func seedPreferences() [][]string {
	groups := []struct {
		count int
		order string
	}{
		{5, "A C B E D"},
		{5, "A D E C B"},
		{8, "B E D A C"},
		{3, "C A B E D"},
		{7, "C A E B D"},
		{2, "C B A D E"},
		{7, "D C E B A"},
		{8, "E B A D C"},
	}
	var preferences [][]string
	for _, g := range groups {
		preference := strings.Fields(g.order)
		for i := 0; i < g.count; i++ {
			preferences = append(preferences, append([]string(nil), preference...))
		}
	}
	return preferences
}

func scored(score float64, candidate string) ScoredCandidate {
	return ScoredCandidate{Score: score, Candidate: candidate}
}

func TestSimpleMajoritySeed(t *testing.T) {
	c := qt.New(t)
	result, err := SimpleMajority(seedPreferences())
	c.Assert(err, qt.IsNil)
	c.Assert(result, qt.DeepEquals, []ScoredCandidate{
		scored(12, "C"),
		scored(10, "A"),
		scored(8, "E"),
		scored(8, "B"),
		scored(7, "D"),
	})
}

func TestInstantRunoffSeed(t *testing.T) {
	c := qt.New(t)
	result, err := InstantRunoff(seedPreferences())
	c.Assert(err, qt.IsNil)
	c.Assert(result, qt.DeepEquals, []ScoredCandidate{
		scored(45, "A"),
		scored(19, "C"),
		scored(8, "E"),
		scored(8, "B"),
		scored(7, "D"),
	})
}

func TestBordaLinearSeed(t *testing.T) {
	c := qt.New(t)
	result, err := Borda(seedPreferences(), BordaLinear)
	c.Assert(err, qt.IsNil)
	c.Assert(result, qt.DeepEquals, []ScoredCandidate{
		scored(147, "E"),
		scored(143, "A"),
		scored(137, "B"),
		scored(134, "C"),
		scored(114, "D"),
	})
}

func TestBordaLinearSumInvariant(t *testing.T) {
	c := qt.New(t)
	preferences := seedPreferences()
	result, err := Borda(preferences, BordaLinear)
	c.Assert(err, qt.IsNil)
	var total float64
	for _, sc := range result {
		total += sc.Score
	}
	n := len(preferences[0])
	expected := float64(len(preferences)) * float64(n*(n+1)/2)
	c.Assert(total, qt.Equals, expected)
}

func TestSchulzeSeed(t *testing.T) {
	c := qt.New(t)
	result, err := Schulze(seedPreferences())
	c.Assert(err, qt.IsNil)
	c.Assert(result, qt.DeepEquals, []ScoredCandidate{
		scored(4, "E"),
		scored(3, "A"),
		scored(2, "C"),
		scored(1, "B"),
		scored(0, "D"),
	})
}

func TestBordaInvalidMode(t *testing.T) {
	c := qt.New(t)
	_, err := Borda(seedPreferences(), "nonsense")
	c.Assert(err, qt.ErrorIs, ErrInvalidMode)
}

func TestInvalidPreferenceRejected(t *testing.T) {
	c := qt.New(t)
	preferences := [][]string{{"A", "B", "A"}}
	_, err := SimpleMajority(preferences)
	c.Assert(err, qt.ErrorIs, ErrInvalidPreference)

	_, err = InstantRunoff(preferences)
	c.Assert(err, qt.ErrorIs, ErrInvalidPreference)

	_, err = Borda(preferences, BordaLinear)
	c.Assert(err, qt.ErrorIs, ErrInvalidPreference)

	_, err = Schulze(preferences)
	c.Assert(err, qt.ErrorIs, ErrInvalidPreference)
}

func TestSimpleMajorityPermutationInvariant(t *testing.T) {
	c := qt.New(t)
	preferences := seedPreferences()
	shuffled := append([][]string(nil), preferences...)
	shuffled[0], shuffled[len(shuffled)-1] = shuffled[len(shuffled)-1], shuffled[0]

	a, err := SimpleMajority(preferences)
	c.Assert(err, qt.IsNil)
	b, err := SimpleMajority(shuffled)
	c.Assert(err, qt.IsNil)
	c.Assert(b, qt.DeepEquals, a)
}
