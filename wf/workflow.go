// Package wf implements the content-addressed, filesystem-backed ballot
// workflow: a state machine moving each ballot through
// {blank -> voting -> encrypted -> decrypted} while guaranteeing each
// registered voter votes at most once, voted ballots cannot be linked back
// to a voter, and every ballot's integrity is verifiable by hash after
// every transition.
package wf

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/rawblock/evote-ranking/crypto/keys"
	"github.com/rawblock/evote-ranking/log"
	"github.com/rawblock/evote-ranking/util"
)

const (
	dirBlankBallots     = "blank_ballots"
	dirVotingBallots    = "voting_ballots"
	dirEncryptedBallots = "encrypted_ballots"
	dirDecryptedBallots = "decrypted_ballots"
	dirSignatures       = "signatures"
	dirVoters           = "voters"
	candidatesFile      = "candidates.json"
)

// Workflow coordinates one election's ballot lifecycle against a single
// working directory. It holds no cached state: every operation re-reads
// from disk, so a Workflow value is safe to reconstruct freely and safe to
// share across goroutines (concurrency safety across voters is provided by
// per-voter file locks, not by in-process synchronization).
type Workflow struct {
	workdir             string
	encryptionPublicKey []byte
	signingPrivateKey   []byte
	keys                keys.Provider
	logger              zerolog.Logger
}

// New constructs a Workflow. workdir must already exist and be writable.
// keyProvider may be nil, in which case the default RSA provider is used.
func New(workdir string, encryptionPublicKey, signingPrivateKey []byte, keyProvider keys.Provider, logger *zerolog.Logger) *Workflow {
	if keyProvider == nil {
		keyProvider = keys.NewRSAProvider()
	}
	l := log.Logger()
	if logger != nil {
		l = logger
	}
	return &Workflow{
		workdir:             workdir,
		encryptionPublicKey: encryptionPublicKey,
		signingPrivateKey:   signingPrivateKey,
		keys:                keyProvider,
		logger:              *l,
	}
}

// Setup creates all six subdirectories. Fails if any already exists.
func (w *Workflow) Setup() error {
	w.logger.Info().Msg("creating required subdirectories")
	for _, dir := range []string{dirBlankBallots, dirVotingBallots, dirEncryptedBallots, dirDecryptedBallots, dirSignatures, dirVoters} {
		path := filepath.Join(w.workdir, dir)
		if err := os.Mkdir(path, 0o755); err != nil {
			return fmt.Errorf("%w: setup: mkdir %s: %v", ErrStorage, path, err)
		}
	}
	return nil
}

func (w *Workflow) path(dir, name string) string {
	return filepath.Join(w.workdir, dir, name)
}

// RegisterCandidates writes candidates.json. Idempotent via overwrite;
// callers must call this at most once per election.
func (w *Workflow) RegisterCandidates(candidates []string) error {
	w.logger.Info().Int("count", len(candidates)).Msg("registering candidates")
	data, err := json.Marshal(candidates)
	if err != nil {
		return fmt.Errorf("wf: marshal candidates: %w", err)
	}
	if err := os.WriteFile(filepath.Join(w.workdir, candidatesFile), data, 0o644); err != nil {
		return fmt.Errorf("%w: register candidates: %v", ErrStorage, err)
	}
	return nil
}

func (w *Workflow) loadCandidates() ([]string, error) {
	data, err := os.ReadFile(filepath.Join(w.workdir, candidatesFile))
	if err != nil {
		return nil, fmt.Errorf("%w: load candidates: %v", ErrStorage, err)
	}
	var candidates []string
	if err := json.Unmarshal(data, &candidates); err != nil {
		return nil, fmt.Errorf("wf: unmarshal candidates: %w", err)
	}
	return candidates, nil
}

// RegisterVoter derives voter_code = Hash(voterID) and writes
// voters/<code>.json with voted=false. Overwriting an existing voter
// silently resets their voted state; callers must not register the same
// voter twice.
func (w *Workflow) RegisterVoter(voterID string) (string, error) {
	voterCode := hashHex([]byte(voterID))
	record := VoterRecord{VoterCode: voterCode, Voted: false}
	if err := w.writeVoterRecord(voterCode, record); err != nil {
		return "", err
	}
	w.logger.Info().Str("voter_code", voterCode).Msg("registered voter")
	return voterCode, nil
}

func (w *Workflow) voterPath(voterCode string) string {
	return filepath.Join(w.workdir, dirVoters, voterCode+".json")
}

func (w *Workflow) lockPath(voterCode string) string {
	return w.voterPath(voterCode) + ".lock"
}

func (w *Workflow) writeVoterRecord(voterCode string, record VoterRecord) error {
	data, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("wf: marshal voter record: %w", err)
	}
	if err := os.WriteFile(w.voterPath(voterCode), data, 0o644); err != nil {
		return fmt.Errorf("%w: write voter record: %v", ErrStorage, err)
	}
	return nil
}

func (w *Workflow) readVoterRecord(voterCode string) (VoterRecord, error) {
	data, err := os.ReadFile(w.voterPath(voterCode))
	if err != nil {
		if os.IsNotExist(err) {
			return VoterRecord{}, ErrNotRegistered
		}
		return VoterRecord{}, fmt.Errorf("%w: read voter record: %v", ErrStorage, err)
	}
	var record VoterRecord
	if err := json.Unmarshal(data, &record); err != nil {
		return VoterRecord{}, fmt.Errorf("wf: unmarshal voter record: %w", err)
	}
	return record, nil
}

// CreateBallots writes `number` blank ballot files with sequence numbers
// start..start+number-1. metadata is carried on every ballot and survives
// into the encrypted ballot CastVote produces, so it is subject to that
// step's RSA-OAEP plaintext ceiling — see CastVote's doc comment — even
// though CreateBallots itself does not encrypt anything.
func (w *Workflow) CreateBallots(number, start int, metadata any) error {
	w.logger.Info().Int("count", number).Int("start", start).Msg("creating blank ballots")
	for k := start; k < start+number; k++ {
		ballot := Ballot{
			Number:            k,
			CreationTimestamp: time.Now().UTC().Format(time.RFC3339Nano),
			UUID:              uuid.NewString(),
			Preference:        []string{},
			Metadata:          metadata,
		}
		serialized, err := marshalBallot(ballot)
		if err != nil {
			return err
		}
		name := blankBallotName(k, serialized)
		if err := os.WriteFile(w.path(dirBlankBallots, name), serialized, 0o644); err != nil {
			return fmt.Errorf("%w: create ballot %d: %v", ErrStorage, k, err)
		}
	}
	return nil
}

// PickRandomBallot lists blank_ballots, uniformly samples one, atomically
// renames it into voting_ballots, verifies its integrity and returns its
// name and parsed body. Fails with ErrNoBallotsAvailable if no blank
// ballots remain, or if a concurrent caller raced this one for the same
// file.
func (w *Workflow) PickRandomBallot() (string, Ballot, error) {
	entries, err := os.ReadDir(filepath.Join(w.workdir, dirBlankBallots))
	if err != nil {
		return "", Ballot{}, fmt.Errorf("%w: list blank ballots: %v", ErrStorage, err)
	}
	var names []string
	for _, e := range entries {
		if !e.IsDir() && reBlank.MatchString(e.Name()) {
			names = append(names, e.Name())
		}
	}
	if len(names) == 0 {
		return "", Ballot{}, ErrNoBallotsAvailable
	}
	idx, err := util.RandomInt(len(names))
	if err != nil {
		return "", Ballot{}, fmt.Errorf("%w: pick random ballot: %v", ErrStorage, err)
	}
	name := names[idx]

	sourcePath := w.path(dirBlankBallots, name)
	destPath := w.path(dirVotingBallots, name)
	if err := os.Rename(sourcePath, destPath); err != nil {
		// The second voter to race for this ballot observes ENOENT
		// (or similar) here; the spec treats this as a transient,
		// caller-retried condition rather than an automatic retry.
		return "", Ballot{}, fmt.Errorf("%w: %v", ErrNoBallotsAvailable, err)
	}

	data, err := os.ReadFile(destPath)
	if err != nil {
		return "", Ballot{}, fmt.Errorf("%w: read voting ballot: %v", ErrStorage, err)
	}
	if err := verifyIntegrity(name, data); err != nil {
		return "", Ballot{}, err
	}
	var ballot Ballot
	if err := json.Unmarshal(data, &ballot); err != nil {
		return "", Ballot{}, fmt.Errorf("wf: unmarshal ballot: %w", err)
	}
	w.logger.Info().Str("ballot", name).Msg("picked a random ballot")
	return name, ballot, nil
}

// ValidatePreferenceAgainstCandidates checks that every label in
// preference is a registered candidate. CastVote does not call this
// automatically — see DESIGN.md for why preference<->candidate membership
// is left as an opt-in check rather than an enforced invariant.
func (w *Workflow) ValidatePreferenceAgainstCandidates(preference []string) error {
	candidates, err := w.loadCandidates()
	if err != nil {
		return err
	}
	allowed := make(map[string]struct{}, len(candidates))
	for _, c := range candidates {
		allowed[c] = struct{}{}
	}
	for _, p := range preference {
		if _, ok := allowed[p]; !ok {
			return fmt.Errorf("wf: %q is not a registered candidate", p)
		}
	}
	return nil
}
