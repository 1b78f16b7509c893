package wf

import "errors"

// Error taxonomy for workflow operations. Callers should use errors.Is
// against these sentinels; concrete errors returned by this package wrap
// one of them with call-site context.
var (
	// ErrNotRegistered is returned by CastVote for an unknown voter.
	ErrNotRegistered = errors.New("wf: voter is not registered")
	// ErrAlreadyVoted is returned by CastVote for a voter who has already
	// cast a ballot. No state is mutated; callers may retry with a
	// different voter but must not retry this voter.
	ErrAlreadyVoted = errors.New("wf: voter has already voted")
	// ErrNoBallotsAvailable is returned when the blank ballot pool is
	// exhausted, or when a concurrent PickRandomBallot raced this call
	// for the same blank ballot.
	ErrNoBallotsAvailable = errors.New("wf: no blank ballots available")
	// ErrIntegrity is returned when a file's content hash does not match
	// the hash segment of its filename. Always fatal at the call level.
	ErrIntegrity = errors.New("wf: integrity check failed")
	// ErrCrypto wraps any failure surfaced by the configured key provider.
	ErrCrypto = errors.New("wf: cryptographic operation failed")
	// ErrStorage wraps any I/O failure against the working directory.
	ErrStorage = errors.New("wf: storage operation failed")
)
