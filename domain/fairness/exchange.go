package fairness

import (
	"encoding/hex"
	"errors"
	"fmt"
)

// ErrProtocolSequence is returned when an exchange method is called out of
// order or with a value outside the exchange range.
var ErrProtocolSequence = errors.New("protocol sequence violation")

// State is the position of an Exchange in the commit-reveal protocol.
type State int

const (
	Committed State = iota
	AwaitingPeerValue
	Revealed
)

func (s State) String() string {
	switch s {
	case Committed:
		return "committed"
	case AwaitingPeerValue:
		return "awaiting peer value"
	case Revealed:
		return "revealed"
	default:
		return "unknown"
	}
}

// Exchange is a single commit-reveal round over [0, Range).
// An Exchange must not be reused: every round gets a fresh value and key.
type Exchange struct {
	n          int
	value      int
	key        []byte
	commitment string
	peer       int
	result     int
	state      State
}

// Reveal is the public record of a completed exchange.
type Reveal struct {
	Range      int    `json:"range"`
	Value      int    `json:"value"`
	Key        []byte `json:"key"`
	Peer       int    `json:"peer"`
	Result     int    `json:"result"`
	Commitment string `json:"hmac"`
}

// Commit samples a secret value in [0, n) and a fresh key from src and binds
// them in a digest. Only the digest is exposed until Reveal.
func Commit(src Source, n int) (*Exchange, error) {
	value, err := src.Sample(n)
	if err != nil {
		return nil, err
	}
	key, err := src.Key()
	if err != nil {
		return nil, err
	}
	if len(key) != KeySize {
		return nil, fmt.Errorf("key of %d bytes, expected %d", len(key), KeySize)
	}
	e := &Exchange{
		n:     n,
		value: value,
		key:   key,
		state: Committed,
	}
	e.commitment = Digest(e.value, e.key)
	e.state = AwaitingPeerValue
	return e, nil
}

// Range returns the exclusive upper bound of the exchange.
func (e *Exchange) Range() int {
	return e.n
}

// State returns the current protocol state.
func (e *Exchange) State() State {
	return e.state
}

// Commitment returns the published digest.
func (e *Exchange) Commitment() string {
	return e.commitment
}

// SupplyPeerValue combines the peer contribution with the committed value
// and returns (value + peer) mod Range.
//
// The peer value must already be validated by the caller: a value outside
// [0, Range) or a second call is a protocol sequence violation.
func (e *Exchange) SupplyPeerValue(peer int) (int, error) {
	if e.state != AwaitingPeerValue {
		return 0, fmt.Errorf("supply peer value in state %s: %w", e.state, ErrProtocolSequence)
	}
	if peer < 0 || peer >= e.n {
		return 0, fmt.Errorf("peer value %d outside [0, %d): %w", peer, e.n, ErrProtocolSequence)
	}
	e.peer = peer
	e.result = (e.value + peer) % e.n
	e.state = Revealed
	return e.result, nil
}

// Reveal discloses the committed value and key together with the combined
// result. It fails until the peer value has been supplied.
func (e *Exchange) Reveal() (Reveal, error) {
	if e.state != Revealed {
		return Reveal{}, fmt.Errorf("reveal in state %s: %w", e.state, ErrProtocolSequence)
	}
	key := make([]byte, len(e.key))
	copy(key, e.key)
	return Reveal{
		Range:      e.n,
		Value:      e.value,
		Key:        key,
		Peer:       e.peer,
		Result:     e.result,
		Commitment: e.commitment,
	}, nil
}

// KeyHex returns the revealed key in the hex form shown to players.
func (r Reveal) KeyHex() string {
	return hex.EncodeToString(r.Key)
}

// Verify recomputes the commitment and the combined result from the
// disclosed values.
func (r Reveal) Verify() bool {
	if r.Range < 1 || r.Value < 0 || r.Value >= r.Range || r.Peer < 0 || r.Peer >= r.Range {
		return false
	}
	if (r.Value+r.Peer)%r.Range != r.Result {
		return false
	}
	return Verify(r.Value, r.Key, r.Commitment)
}
