package game

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/luca-patrignani/fair-dice/domain/dice"
	"github.com/luca-patrignani/fair-dice/domain/fairness"
)

// Match is a single game between the computer and a player. A Match is used
// by one goroutine and cannot be replayed.
type Match struct {
	Dice     *dice.Set
	Source   fairness.Source
	Input    PeerInput
	Observer Observer // optional
	Recorder Recorder // optional
	Logger   *slog.Logger

	stage  Stage
	result Result
}

// NewMatch returns a match ready to be played with the given dice, entropy
// source and player input.
func NewMatch(set *dice.Set, src fairness.Source, input PeerInput) *Match {
	return &Match{
		Dice:   set,
		Source: src,
		Input:  input,
		stage:  StageDetermineFirstMover,
	}
}

// Stage returns the current stage of the match.
func (m *Match) Stage() Stage {
	if m.stage == "" {
		return StageDetermineFirstMover
	}
	return m.stage
}

// Play drives the match from the coin flip to the comparison of both throws.
//
// Any error ends the match in StageAborted. When the player quits or ctx is
// cancelled the returned error wraps ErrAborted; peer input outside the
// offered bounds wraps fairness.ErrProtocolSequence.
func (m *Match) Play(ctx context.Context) (Result, error) {
	if m.Stage() != StageDetermineFirstMover {
		return Result{}, fmt.Errorf("play in stage %s: %w", m.Stage(), fairness.ErrProtocolSequence)
	}
	if m.Dice == nil || m.Source == nil || m.Input == nil {
		return Result{}, fmt.Errorf("match requires dice, an entropy source and a player input")
	}
	m.stage = StageDetermineFirstMover

	for !m.stage.Terminal() {
		if err := ctx.Err(); err != nil {
			return Result{}, m.abort(fmt.Errorf("%w: %w", ErrAborted, err))
		}
		if err := m.step(ctx); err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil && !errors.Is(err, ErrAborted) {
				err = fmt.Errorf("%w: %w", ErrAborted, err)
			}
			return Result{}, m.abort(err)
		}
		next := nextStage(m.stage)
		m.logger().Debug("stage transition", "from", m.stage, "to", next)
		m.stage = next
	}
	return m.result, nil
}

func (m *Match) step(ctx context.Context) error {
	var err error
	switch m.stage {
	case StageDetermineFirstMover:
		err = m.determineFirstMover(ctx)
	case StageSelectDice:
		err = m.selectDice(ctx)
	case StageComputerThrow:
		m.result.ComputerThrow, err = m.throw(ctx, Computer, m.result.ComputerDie)
	case StagePlayerThrow:
		m.result.PlayerThrow, err = m.throw(ctx, Player, m.result.PlayerDie)
	case StageCompare:
		err = m.compare()
	default:
		err = fmt.Errorf("unexpected stage %s: %w", m.stage, fairness.ErrProtocolSequence)
	}
	return err
}

func (m *Match) abort(err error) error {
	m.logger().Debug("match aborted", "stage", m.stage, "error", err)
	m.stage = StageAborted
	m.result = Result{}
	return err
}

// determineFirstMover flips a fair coin: the player moves first when the
// guess matches the committed bit.
func (m *Match) determineFirstMover(ctx context.Context) error {
	rev, err := m.exchange(ctx, Computer, 2)
	if err != nil {
		return err
	}
	m.result.Coin = rev
	if rev.Peer == rev.Value {
		m.result.FirstMover = Player
	} else {
		m.result.FirstMover = Computer
	}
	m.logger().Debug("first mover decided", "side", m.result.FirstMover)
	return nil
}

func (m *Match) selectDice(ctx context.Context) error {
	first := m.result.FirstMover
	firstDie, err := m.choose(ctx, first, nil)
	if err != nil {
		return err
	}
	secondDie, err := m.choose(ctx, first.Other(), &firstDie)
	if err != nil {
		return err
	}
	if first == Player {
		m.result.PlayerDie, m.result.ComputerDie = firstDie, secondDie
	} else {
		m.result.PlayerDie, m.result.ComputerDie = secondDie, firstDie
	}
	return nil
}

func (m *Match) choose(ctx context.Context, side Side, excluding *dice.Die) (dice.Die, error) {
	var (
		d   dice.Die
		err error
	)
	if side == Computer {
		d, err = m.Dice.ChooseRandom(m.Source, excluding)
		if err != nil {
			return dice.Die{}, err
		}
	} else {
		options := m.Dice.Available(excluding)
		i, err := m.Input.Die(ctx, options)
		if err != nil {
			return dice.Die{}, err
		}
		if i < 0 || i >= len(options) {
			return dice.Die{}, fmt.Errorf("die choice %d outside [0, %d): %w", i, len(options), fairness.ErrProtocolSequence)
		}
		d = options[i]
	}
	if err := m.emit(Event{Kind: EventDie, Side: side, Die: &d}); err != nil {
		return dice.Die{}, err
	}
	return d, nil
}

func (m *Match) throw(ctx context.Context, side Side, die dice.Die) (Throw, error) {
	rev, err := m.exchange(ctx, side, dice.Faces)
	if err != nil {
		return Throw{}, err
	}
	t := Throw{
		Side:   side,
		Die:    die,
		Reveal: rev,
		Face:   die.Face(rev.Result),
	}
	if err := m.emit(Event{Kind: EventThrow, Side: side, Throw: &t}); err != nil {
		return Throw{}, err
	}
	return t, nil
}

// exchange runs a full commit-reveal round over [0, n). The commitment is
// published before the player is asked for a value.
func (m *Match) exchange(ctx context.Context, side Side, n int) (fairness.Reveal, error) {
	ex, err := fairness.Commit(m.Source, n)
	if err != nil {
		return fairness.Reveal{}, err
	}
	if err := m.emit(Event{Kind: EventCommit, Side: side, Commitment: ex.Commitment()}); err != nil {
		return fairness.Reveal{}, err
	}
	peer, err := m.Input.Value(ctx, m.stage, n)
	if err != nil {
		return fairness.Reveal{}, err
	}
	if _, err := ex.SupplyPeerValue(peer); err != nil {
		return fairness.Reveal{}, err
	}
	rev, err := ex.Reveal()
	if err != nil {
		return fairness.Reveal{}, err
	}
	if err := m.emit(Event{Kind: EventReveal, Side: side, Reveal: &rev}); err != nil {
		return fairness.Reveal{}, err
	}
	return rev, nil
}

func (m *Match) compare() error {
	m.result.Outcome = Compare(m.result.PlayerThrow.Face, m.result.ComputerThrow.Face)
	m.logger().Info("match finished",
		"outcome", m.result.Outcome,
		"player", m.result.PlayerThrow.Face,
		"computer", m.result.ComputerThrow.Face,
	)
	return m.emit(Event{Kind: EventOutcome, Outcome: m.result.Outcome})
}

func (m *Match) emit(ev Event) error {
	ev.Stage = m.stage
	if m.Observer != nil {
		m.Observer.Observe(ev)
	}
	if m.Recorder != nil {
		if err := m.Recorder.Append(string(ev.Kind), ev); err != nil {
			return fmt.Errorf("record %s: %w", ev.Kind, err)
		}
	}
	return nil
}

func (m *Match) logger() *slog.Logger {
	if m.Logger == nil {
		m.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return m.Logger
}
