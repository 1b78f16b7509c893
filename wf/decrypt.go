package wf

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rawblock/evote-ranking/alg"
	"github.com/rawblock/evote-ranking/crypto/keys"
)

// DecryptBallots decrypts every file in encrypted_ballots matching the
// encrypted filename grammar, using decryptionPrivateKey, and writes each
// plaintext to decrypted_ballots. A failure on any individual ballot
// aborts the whole call.
func (w *Workflow) DecryptBallots(decryptionPrivateKey []byte) error {
	w.logger.Info().Msg("decrypting ballots")
	dir := filepath.Join(w.workdir, dirEncryptedBallots)
	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("%w: list encrypted ballots: %v", ErrStorage, err)
	}

	priv, err := w.keys.LoadPrivateKey(decryptionPrivateKey)
	if err != nil {
		return fmt.Errorf("%w: load decryption key: %v", ErrCrypto, err)
	}

	for _, e := range entries {
		if e.IsDir() || !reEncrypted.MatchString(e.Name()) {
			continue
		}
		if err := w.decryptOne(e.Name(), priv); err != nil {
			return err
		}
	}
	return nil
}

func (w *Workflow) decryptOne(name string, priv keys.PrivateKey) error {
	ciphertext, err := os.ReadFile(w.path(dirEncryptedBallots, name))
	if err != nil {
		return fmt.Errorf("%w: read encrypted ballot %s: %v", ErrStorage, name, err)
	}
	if err := verifyIntegrity(name, ciphertext); err != nil {
		return err
	}

	plaintext, err := w.keys.Decrypt(priv, ciphertext)
	if err != nil {
		return fmt.Errorf("%w: decrypt ballot %s: %v", ErrCrypto, name, err)
	}

	number, err := ballotNumber(name)
	if err != nil {
		return err
	}
	decryptedName := decryptedBallotName(number, plaintext)
	if err := os.WriteFile(w.path(dirDecryptedBallots, decryptedName), plaintext, 0o644); err != nil {
		return fmt.Errorf("%w: write decrypted ballot %s: %v", ErrStorage, decryptedName, err)
	}
	w.logger.Info().Str("ballot", decryptedName).Msg("decrypted ballot")
	return nil
}

// CountVotes reads every file in decrypted_ballots matching the decrypted
// filename grammar, extracts its preference list and passes the resulting
// slice to tally (one of alg.SimpleMajority, alg.InstantRunoff, alg.Borda
// bound to a mode, or alg.Schulze).
func (w *Workflow) CountVotes(tally func(preferences [][]string) ([]alg.ScoredCandidate, error)) ([]alg.ScoredCandidate, error) {
	w.logger.Info().Msg("counting votes")
	dir := filepath.Join(w.workdir, dirDecryptedBallots)
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("%w: list decrypted ballots: %v", ErrStorage, err)
	}

	var preferences [][]string
	for _, e := range entries {
		if e.IsDir() || !reDecrypted.MatchString(e.Name()) {
			continue
		}
		data, err := os.ReadFile(filepath.Join(dir, e.Name()))
		if err != nil {
			return nil, fmt.Errorf("%w: read decrypted ballot %s: %v", ErrStorage, e.Name(), err)
		}
		if err := verifyIntegrity(e.Name(), data); err != nil {
			return nil, err
		}
		var ballot Ballot
		if err := json.Unmarshal(data, &ballot); err != nil {
			return nil, fmt.Errorf("wf: unmarshal decrypted ballot %s: %w", e.Name(), err)
		}
		preferences = append(preferences, ballot.Preference)
	}
	return tally(preferences)
}
