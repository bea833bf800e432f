// Package ledger implements an append-only, hash-chained transcript of the
// public artifacts of a dice match.
//
// # Core Components
//
// Transcript: An in-memory log of entries. Each entry carries the hash of the
// previous one, so any later modification breaks the chain.
//
// Entry: One published artifact (a commitment, a reveal, a chosen die, a
// throw or the outcome) together with its position and link.
//
// Signer: The computer's Schnorr key over the Ed25519 group, used to seal
// the head of a finished transcript.
//
// # Security Properties
//
// The transcript provides:
//   - Verifiability: anyone can recompute the whole chain with Verify
//   - Tamper detection: changing any entry invalidates every later hash
//   - Non-repudiation: a sealed head is signed by the computer's key
//
// The transcript is never persisted; it lives as long as the match it
// records and can be printed as JSON for offline checks.
package ledger
