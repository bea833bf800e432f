// Package fairness implements the commit-reveal primitives that make a dice
// match provably fair.
//
// # Core Types
//
// Random: Draws unbiased integers in [0, max) and secret keys from a
// cryptographically strong entropy reader.
//
// Exchange: A single commit-reveal round. The committing side samples a
// value, binds it with an HMAC-SHA3-256 digest under a fresh key and
// publishes only the digest. Once the peer supplies its own contribution the
// two values are combined as (value + peer) mod n, and the value and key are
// revealed so that the digest can be recomputed by anyone.
//
// # Protocol
//
// An exchange moves through Committed → AwaitingPeerValue → Revealed. The
// committed value cannot change after the peer has answered, and the peer
// cannot see the committed value before answering, so the combined result is
// uniform as long as either side draws uniformly.
//
// Calling the methods out of order returns an error wrapping
// ErrProtocolSequence. Such an error signals a defect in the caller and is
// not meant to be retried.
package fairness
