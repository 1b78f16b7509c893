package wf

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// VotedCount returns the number of registered voters whose voted flag is
// true. Used to check the invariant count(voters with voted=true) ==
// |encrypted_ballots| after any sequence of committed casts.
func (w *Workflow) VotedCount() (int, error) {
	dir := filepath.Join(w.workdir, dirVoters)
	entries, err := os.ReadDir(dir)
	if err != nil {
		return 0, fmt.Errorf("%w: list voters: %v", ErrStorage, err)
	}

	count := 0
	for _, e := range entries {
		if e.IsDir() || !reVoter.MatchString(e.Name()) {
			continue
		}
		data, err := os.ReadFile(filepath.Join(dir, e.Name()))
		if err != nil {
			return 0, fmt.Errorf("%w: read voter %s: %v", ErrStorage, e.Name(), err)
		}
		var record VoterRecord
		if err := json.Unmarshal(data, &record); err != nil {
			return 0, fmt.Errorf("wf: unmarshal voter %s: %w", e.Name(), err)
		}
		if record.Voted {
			count++
		}
	}
	return count, nil
}
