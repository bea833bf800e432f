package game

import (
	"context"
	"errors"

	"github.com/luca-patrignani/fair-dice/domain/dice"
	"github.com/luca-patrignani/fair-dice/domain/fairness"
)

// ErrAborted is returned by a PeerInput when the player quits the match.
var ErrAborted = errors.New("match aborted")

type Side string

const (
	Computer Side = "computer"
	Player   Side = "player"
)

// Other returns the opposite side.
func (s Side) Other() Side {
	if s == Computer {
		return Player
	}
	return Computer
}

// Outcome is the result of a match from the player's point of view.
type Outcome string

const (
	Win  Outcome = "win"
	Loss Outcome = "loss"
	Draw Outcome = "draw"
)

// PeerInput supplies the player's decisions. Implementations block until the
// player answers and return ErrAborted when the player quits.
type PeerInput interface {
	// Value asks for the player's contribution in [0, n) to the exchange
	// of the given stage.
	Value(ctx context.Context, stage Stage, n int) (int, error)
	// Die asks the player to pick one of options and returns its index.
	Die(ctx context.Context, options []dice.Die) (int, error)
}

// Observer is notified of every public artifact of a match, in order.
type Observer interface {
	Observe(Event)
}

// Recorder persists public artifacts. ledger.Transcript implements it.
type Recorder interface {
	Append(kind string, payload any) error
}

type EventKind string

const (
	EventCommit  EventKind = "commit"
	EventReveal  EventKind = "reveal"
	EventDie     EventKind = "die"
	EventThrow   EventKind = "throw"
	EventOutcome EventKind = "outcome"
)

// Event carries the public artifact produced at a stage. Only the fields
// relevant to Kind are set.
type Event struct {
	Kind       EventKind        `json:"kind"`
	Stage      Stage            `json:"stage"`
	Side       Side             `json:"side,omitempty"`
	Commitment string           `json:"hmac,omitempty"`
	Reveal     *fairness.Reveal `json:"reveal,omitempty"`
	Die        *dice.Die        `json:"die,omitempty"`
	Throw      *Throw           `json:"throw,omitempty"`
	Outcome    Outcome          `json:"outcome,omitempty"`
}

// Throw is a die roll decided by a range-6 exchange.
type Throw struct {
	Side   Side            `json:"side"`
	Die    dice.Die        `json:"die"`
	Reveal fairness.Reveal `json:"reveal"`
	Face   int             `json:"face"`
}

// Result is the record of a completed match.
type Result struct {
	Coin          fairness.Reveal `json:"coin"`
	FirstMover    Side            `json:"first_mover"`
	PlayerDie     dice.Die        `json:"player_die"`
	ComputerDie   dice.Die        `json:"computer_die"`
	ComputerThrow Throw           `json:"computer_throw"`
	PlayerThrow   Throw           `json:"player_throw"`
	Outcome       Outcome         `json:"outcome"`
}

// Compare returns the outcome for the player given both faces.
func Compare(player, computer int) Outcome {
	switch {
	case player > computer:
		return Win
	case player < computer:
		return Loss
	default:
		return Draw
	}
}
