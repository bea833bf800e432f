package dice

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Faces is the number of faces of every die.
const Faces = 6

// ErrInvalidDie is returned for a die configuration that cannot be parsed.
var ErrInvalidDie = errors.New("invalid die")

// ErrNegativeFace is returned for a die with a face below zero.
var ErrNegativeFace = errors.New("faces must be non-negative")

// Die is an ordered, immutable vector of face values.
type Die [Faces]int

// Face returns the value shown when the die lands on index.
func (d Die) Face(index int) int {
	return d[index]
}

// String renders the die the way configurations are written, e.g. 2,2,4,4,9,9.
func (d Die) String() string {
	faces := make([]string, Faces)
	for i, f := range d {
		faces[i] = strconv.Itoa(f)
	}
	return strings.Join(faces, ",")
}

// ParseDie parses a comma-separated list of exactly six integers.
func ParseDie(s string) (Die, error) {
	parts := strings.Split(s, ",")
	if len(parts) != Faces {
		return Die{}, fmt.Errorf("%w: %q has %d faces, expected %d", ErrInvalidDie, s, len(parts), Faces)
	}
	var d Die
	for i, p := range parts {
		v, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return Die{}, fmt.Errorf("%w: face %q is not an integer", ErrInvalidDie, strings.TrimSpace(p))
		}
		if v < 0 {
			return Die{}, fmt.Errorf("%w: face %d: %w", ErrInvalidDie, v, ErrNegativeFace)
		}
		d[i] = v
	}
	return d, nil
}

// ParseDice parses every configuration in args. Errors name the 1-based
// position of the offending die.
func ParseDice(args []string) ([]Die, error) {
	dice := make([]Die, 0, len(args))
	for i, arg := range args {
		d, err := ParseDie(arg)
		if err != nil {
			return nil, fmt.Errorf("die %d: %w", i+1, err)
		}
		dice = append(dice, d)
	}
	return dice, nil
}
