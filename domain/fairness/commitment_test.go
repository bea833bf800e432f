package fairness

import (
	"bytes"
	"encoding/hex"
	"testing"
)

func TestDigestIsDeterministic(t *testing.T) {
	key := bytes.Repeat([]byte{0x42}, KeySize)
	first := Digest(3, key)
	for i := 0; i < 10; i++ {
		if got := Digest(3, key); got != first {
			t.Fatalf("digest changed between calls: %s != %s", got, first)
		}
	}
	if len(first) != 64 {
		t.Fatalf("expected 64 hex chars, got %d", len(first))
	}
	if _, err := hex.DecodeString(first); err != nil {
		t.Fatalf("digest is not hex: %v", err)
	}
}

func TestDigestChangesWithValueAndKey(t *testing.T) {
	key := bytes.Repeat([]byte{0x01}, KeySize)
	other := bytes.Repeat([]byte{0x02}, KeySize)
	if Digest(1, key) == Digest(2, key) {
		t.Fatal("different values produced the same digest")
	}
	if Digest(1, key) == Digest(1, other) {
		t.Fatal("different keys produced the same digest")
	}
}

// TestDigestNoCollisions spot checks 10,000 distinct (value, key) pairs.
func TestDigestNoCollisions(t *testing.T) {
	g := NewRandom(nil)
	seen := make(map[string]struct{}, 10000)
	for k := 0; k < 100; k++ {
		key, err := g.Key()
		if err != nil {
			t.Fatalf("key: %v", err)
		}
		for v := 0; v < 100; v++ {
			d := Digest(v, key)
			if _, ok := seen[d]; ok {
				t.Fatalf("collision for value %d, key %d", v, k)
			}
			seen[d] = struct{}{}
		}
	}
}

func TestVerify(t *testing.T) {
	key := bytes.Repeat([]byte{0x07}, KeySize)
	d := Digest(5, key)
	if !Verify(5, key, d) {
		t.Fatal("expected digest to verify")
	}
	if Verify(4, key, d) {
		t.Fatal("digest verified with the wrong value")
	}
	if Verify(5, key[1:], d) {
		t.Fatal("digest verified with the wrong key")
	}
	if Verify(5, key, "not-hex") {
		t.Fatal("malformed digest verified")
	}
}

func TestGenerateKeyShortReader(t *testing.T) {
	if _, err := GenerateKey(bytes.NewReader(make([]byte, KeySize-1))); err == nil {
		t.Fatal("expected error for short reader")
	}
}
