package dice

import (
	"errors"
	"fmt"
	"slices"

	"github.com/luca-patrignani/fair-dice/domain/fairness"
)

// MinDice is the smallest valid number of dice in a Set.
const MinDice = 3

var (
	// ErrTooFewDice is returned when fewer than MinDice dice are configured.
	ErrTooFewDice = errors.New("at least 3 dice are required")
	// ErrDuplicateDice is returned when two configured dice are equal.
	ErrDuplicateDice = errors.New("duplicate dice")
	// ErrNoDiceAvailable is returned when every die is excluded.
	ErrNoDiceAvailable = errors.New("no dice available")
)

// Validate checks that dice form a valid configuration: at least MinDice
// dice, no negative face and no two dice equal.
func Validate(dice []Die) error {
	if len(dice) < MinDice {
		return fmt.Errorf("got %d: %w", len(dice), ErrTooFewDice)
	}
	var errs []error
	for i, d := range dice {
		if slices.ContainsFunc(d[:], func(f int) bool { return f < 0 }) {
			errs = append(errs, fmt.Errorf("die %d [%s]: %w", i+1, d, ErrNegativeFace))
		}
		for j := 0; j < i; j++ {
			if dice[j] == d {
				errs = append(errs, fmt.Errorf("die %d and die %d are both [%s]: %w", j+1, i+1, d, ErrDuplicateDice))
				break
			}
		}
	}
	return errors.Join(errs...)
}

// Set is a validated, read-only collection of dice.
type Set struct {
	dice []Die
}

// NewSet validates dice and returns a Set holding a copy of them.
func NewSet(dice []Die) (*Set, error) {
	if err := Validate(dice); err != nil {
		return nil, err
	}
	return &Set{dice: slices.Clone(dice)}, nil
}

// Len returns the number of dice in the set.
func (s *Set) Len() int {
	return len(s.dice)
}

// Dice returns a copy of the dice in configuration order.
func (s *Set) Dice() []Die {
	return slices.Clone(s.dice)
}

// Available returns the dice that are not equal to excluding, in
// configuration order. A nil excluding returns every die.
func (s *Set) Available(excluding *Die) []Die {
	if excluding == nil {
		return s.Dice()
	}
	available := make([]Die, 0, len(s.dice))
	for _, d := range s.dice {
		if d != *excluding {
			available = append(available, d)
		}
	}
	return available
}

// ChooseRandom picks a die uniformly among Available(excluding).
func (s *Set) ChooseRandom(sampler fairness.Sampler, excluding *Die) (Die, error) {
	available := s.Available(excluding)
	if len(available) == 0 {
		return Die{}, ErrNoDiceAvailable
	}
	i, err := sampler.Sample(len(available))
	if err != nil {
		return Die{}, fmt.Errorf("choose die: %w", err)
	}
	return available[i], nil
}
