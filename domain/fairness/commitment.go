package fairness

import (
	"crypto/hmac"
	"encoding/hex"
	"fmt"
	"io"
	"strconv"

	"golang.org/x/crypto/sha3"
)

// KeySize is the length in bytes of every commitment key.
const KeySize = 32

// GenerateKey reads a KeySize-byte key from r.
func GenerateKey(r io.Reader) ([]byte, error) {
	key := make([]byte, KeySize)
	if _, err := io.ReadFull(r, key); err != nil {
		return nil, fmt.Errorf("generate key: %w", err)
	}
	return key, nil
}

// Digest returns the hex encoded HMAC-SHA3-256 of the decimal representation
// of value under key.
func Digest(value int, key []byte) string {
	return hex.EncodeToString(mac(value, key))
}

// Verify reports whether digest is the commitment to value under key.
func Verify(value int, key []byte, digest string) bool {
	expected, err := hex.DecodeString(digest)
	if err != nil {
		return false
	}
	return hmac.Equal(expected, mac(value, key))
}

func mac(value int, key []byte) []byte {
	h := hmac.New(sha3.New256, key)
	h.Write([]byte(strconv.Itoa(value)))
	return h.Sum(nil)
}
