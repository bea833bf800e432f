package fairness

import (
	"crypto/rand"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
)

// ErrInvalidRange is returned when a sample is requested over an empty range.
var ErrInvalidRange = errors.New("range must be at least 1")

// sampleSpace is 2^32, the number of distinct 32-bit draws.
const sampleSpace = uint64(1) << 32

// Sampler draws uniformly distributed integers in [0, max).
type Sampler interface {
	Sample(max int) (int, error)
}

// Source is everything an exchange needs from its entropy provider.
type Source interface {
	Sampler
	Key() ([]byte, error)
}

// Random is the default Source. It reads from crypto/rand unless another
// reader is injected.
type Random struct {
	reader io.Reader
}

// NewRandom returns a Random reading from r. A nil reader selects
// crypto/rand.Reader.
func NewRandom(r io.Reader) *Random {
	if r == nil {
		r = rand.Reader
	}
	return &Random{reader: r}
}

// Sample returns a uniformly distributed integer in [0, max).
//
// Draws are 32-bit big-endian integers. Any draw at or above the largest
// multiple of max that fits in 2^32 is rejected and redrawn, so the result is
// free of modulo bias for every max.
func (g *Random) Sample(max int) (int, error) {
	if max < 1 || uint64(max) > sampleSpace {
		return 0, fmt.Errorf("sample over %d: %w", max, ErrInvalidRange)
	}
	n := uint64(max)
	threshold := (sampleSpace / n) * n
	var buf [4]byte
	for {
		if _, err := io.ReadFull(g.reader, buf[:]); err != nil {
			return 0, fmt.Errorf("read entropy: %w", err)
		}
		draw := uint64(binary.BigEndian.Uint32(buf[:]))
		if draw < threshold {
			return int(draw % n), nil
		}
	}
}

// Key returns a fresh KeySize-byte secret key.
func (g *Random) Key() ([]byte, error) {
	return GenerateKey(g.reader)
}
