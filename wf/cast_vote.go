package wf

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/rawblock/evote-ranking/filelock"
)

// CastVote records a vote for voterID. It picks a random blank ballot,
// records preference on it, encrypts and signs the result, deletes the
// voting-stage file and marks the voter as having voted — or, if any step
// after the ballot pick fails, rolls back via rollbackCastVote (ballot back
// to blank, encrypted file removed, voted flag cleared; a written signature
// file stays) and re-surfaces the original error. An error from
// PickRandomBallot itself is returned as is, without rollback.
//
// AlreadyVoted bypasses rollback entirely: no state is mutated before that
// check fails.
//
// The encrypted ballot is the whole marshaled Ballot — including its
// Metadata field — passed through RSA-OAEP(SHA-256) in one shot, which
// caps it at keySizeBytes-66 bytes (190 bytes for a 2048-bit key, see
// crypto/keys.Provider.MaxPlaintextLen). CastVote checks the serialized
// ballot against that ceiling before encrypting and fails with ErrCrypto
// rather than silently truncating; callers whose per-ballot Metadata (see
// CreateBallots) may not fit a 2048-bit key should configure a larger
// encryption key.
func (w *Workflow) CastVote(voterID string, preference []string) (string, []byte, []byte, error) {
	voterCode := hashHex([]byte(voterID))
	lock := filelock.New(w.lockPath(voterCode))
	if err := lock.Lock(); err != nil {
		return "", nil, nil, fmt.Errorf("%w: acquire voter lock: %v", ErrStorage, err)
	}
	defer lock.Unlock()

	// Preconditions, checked in order, all under the voter lock.
	if _, err := os.Stat(filepath.Join(w.workdir, candidatesFile)); err != nil {
		return "", nil, nil, fmt.Errorf("%w: candidates not registered: %v", ErrStorage, err)
	}
	record, err := w.readVoterRecord(voterCode)
	if err != nil {
		return "", nil, nil, err
	}
	if record.Voted {
		return "", nil, nil, ErrAlreadyVoted
	}

	votingName, ballot, err := w.PickRandomBallot()
	if err != nil {
		return "", nil, nil, err
	}
	ballot.Preference = preference

	newName, serialized, signature, saveErr := w.saveVotedBallot(ballot)
	if saveErr != nil {
		w.rollbackCastVote(votingName, newName, voterCode, record)
		return "", nil, nil, saveErr
	}

	if err := os.Remove(w.path(dirVotingBallots, votingName)); err != nil {
		w.rollbackCastVote(votingName, newName, voterCode, record)
		return "", nil, nil, fmt.Errorf("%w: remove voting ballot: %v", ErrStorage, err)
	}

	record.Voted = true
	if err := w.writeVoterRecord(voterCode, record); err != nil {
		w.rollbackCastVote(votingName, newName, voterCode, record)
		return "", nil, nil, err
	}

	w.logger.Info().Str("ballot", newName).Str("voter_code", voterCode).Msg("vote cast")
	return newName, serialized, signature, nil
}

// saveVotedBallot encrypts and saves a ballot and its detached signature.
func (w *Workflow) saveVotedBallot(ballot Ballot) (name string, serialized []byte, signature []byte, err error) {
	serialized, err = marshalBallot(ballot)
	if err != nil {
		return "", nil, nil, err
	}

	pub, err := w.keys.LoadPublicKey(w.encryptionPublicKey)
	if err != nil {
		return "", nil, nil, fmt.Errorf("%w: load encryption key: %v", ErrCrypto, err)
	}
	if max, maxErr := w.keys.MaxPlaintextLen(pub); maxErr == nil && len(serialized) > max {
		return "", nil, nil, fmt.Errorf("%w: serialized ballot is %d bytes, exceeds %d-byte limit for the configured encryption key; use a larger key or smaller metadata",
			ErrCrypto, len(serialized), max)
	}
	ciphertext, err := w.keys.Encrypt(pub, serialized)
	if err != nil {
		return "", nil, nil, fmt.Errorf("%w: encrypt ballot: %v", ErrCrypto, err)
	}

	name = encryptedBallotName(ballot.Number, ciphertext)
	if err := os.WriteFile(w.path(dirEncryptedBallots, name), ciphertext, 0o644); err != nil {
		return "", nil, nil, fmt.Errorf("%w: write encrypted ballot: %v", ErrStorage, err)
	}

	// From here on the encrypted file already exists on disk: any error
	// path below must still return `name` so the caller's rollback can
	// find and remove it.
	priv, err := w.keys.LoadPrivateKey(w.signingPrivateKey)
	if err != nil {
		return name, nil, nil, fmt.Errorf("%w: load signing key: %v", ErrCrypto, err)
	}
	signature, err = w.keys.Sign(priv, ciphertext)
	if err != nil {
		return name, nil, nil, fmt.Errorf("%w: sign ballot: %v", ErrCrypto, err)
	}

	sigName := signatureName(ballot.Number, ciphertext)
	if err := os.WriteFile(filepath.Join(w.workdir, dirSignatures, sigName), signature, 0o644); err != nil {
		return name, nil, nil, fmt.Errorf("%w: write signature: %v", ErrStorage, err)
	}

	return name, serialized, signature, nil
}

// rollbackCastVote undoes a partially-committed cast_vote transaction: the
// voting-stage ballot (if it still exists) is moved back to blank_ballots,
// the encrypted ballot (if it was written) is deleted, and the voter's
// voted flag is cleared. The signature file, if written, is intentionally
// left in place — see DESIGN.md's open question on dangling signatures.
func (w *Workflow) rollbackCastVote(votingName, encryptedName, voterCode string, original VoterRecord) {
	votingPath := w.path(dirVotingBallots, votingName)
	blankPath := w.path(dirBlankBallots, votingName)
	if _, err := os.Stat(votingPath); err == nil {
		if err := os.Rename(votingPath, blankPath); err != nil {
			w.logger.Error().Err(err).Str("ballot", votingName).Msg("rollback: failed to restore blank ballot")
		}
	}

	if encryptedName != "" {
		encryptedPath := w.path(dirEncryptedBallots, encryptedName)
		if _, err := os.Stat(encryptedPath); err == nil {
			if err := os.Remove(encryptedPath); err != nil {
				w.logger.Error().Err(err).Str("ballot", encryptedName).Msg("rollback: failed to remove encrypted ballot")
			}
		}
	}

	original.Voted = false
	if err := w.writeVoterRecord(voterCode, original); err != nil {
		w.logger.Error().Err(err).Str("voter_code", voterCode).Msg("rollback: failed to clear voted flag")
	}
}
