// Package game sequences a provably-fair dice match between the computer and
// a player.
//
// # Core Types
//
// Match: Drives a single match through its stages, asking the player for
// input through a PeerInput and reporting every public artifact to an
// Observer and an optional Recorder.
//
// Result: The complete, verifiable record of a finished match: the coin flip
// that decided the first mover, both dice, both throws and the outcome.
//
// # Game Flow
//
// A match progresses through DetermineFirstMover → SelectDice →
// ComputerThrow → PlayerThrow → Compare → Done.
//
// Every random decision that involves the player is a commit-reveal exchange:
// the computer publishes a commitment, the player answers with a value of
// their own and only then the computer reveals. The computer chooses its own
// die with plain unbiased randomness since that choice is visible as soon as
// it is made.
//
// A PeerInput that returns ErrAborted, or a cancelled context, moves the
// match to Aborted. Pending commitments are discarded without being revealed
// and no outcome is produced.
package game
