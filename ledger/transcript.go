package ledger

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"time"
)

// Transcript maintains an append-only log of match artifacts.
type Transcript struct {
	mu      sync.RWMutex // Protects concurrent access to entries
	entries []Entry
	now     func() time.Time
}

// NewTranscript creates a transcript initialized with a genesis entry.
//
// The genesis entry has index 0, previous hash "0" and no payload. The
// optional label is stored as its payload so that transcripts of different
// matches never share a genesis hash.
func NewTranscript(label string) (*Transcript, error) {
	t := &Transcript{
		entries: make([]Entry, 0),
		now:     time.Now,
	}
	payload, err := json.Marshal(label)
	if err != nil {
		return nil, fmt.Errorf("failed to encode genesis label: %w", err)
	}
	genesis := Entry{
		Index:     0,
		Timestamp: t.now().UnixNano(),
		PrevHash:  "0",
		Kind:      KindGenesis,
		Payload:   payload,
	}
	genesis.Hash = calculateHash(genesis)
	t.entries = append(t.entries, genesis)
	return t, nil
}

// Append encodes payload as JSON and links it after the latest entry.
//
// Returns an error if the kind is empty, the payload cannot be encoded or
// the resulting entry does not validate against its predecessor.
func (t *Transcript) Append(kind string, payload any) error {
	if strings.TrimSpace(kind) == "" {
		return fmt.Errorf("entry kind is required")
	}
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to encode %s payload: %w", kind, err)
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	latest := t.entries[len(t.entries)-1]
	entry := Entry{
		Index:     latest.Index + 1,
		Timestamp: t.now().UnixNano(),
		PrevHash:  latest.Hash,
		Kind:      kind,
		Payload:   data,
	}
	entry.Hash = calculateHash(entry)

	if err := validateEntry(entry, latest); err != nil {
		return fmt.Errorf("invalid entry: %w", err)
	}
	t.entries = append(t.entries, entry)
	return nil
}

// GetLatest returns the most recently appended entry.
func (t *Transcript) GetLatest() (Entry, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	if len(t.entries) == 0 {
		return Entry{}, fmt.Errorf("transcript is empty")
	}
	return t.entries[len(t.entries)-1], nil
}

// GetByIndex returns the entry at index.
func (t *Transcript) GetByIndex(index int) (Entry, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	if index < 0 || index >= len(t.entries) {
		return Entry{}, fmt.Errorf("index out of range")
	}
	return t.entries[index], nil
}

// Len returns the number of entries, genesis included.
func (t *Transcript) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.entries)
}

// Entries returns a copy of every entry in order.
func (t *Transcript) Entries() []Entry {
	t.mu.RLock()
	defer t.mu.RUnlock()

	out := make([]Entry, len(t.entries))
	copy(out, t.entries)
	return out
}

// Verify validates the integrity of the whole transcript: the genesis entry
// and, for every later entry, its index, previous hash and own hash.
func (t *Transcript) Verify() error {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return verifyEntries(t.entries)
}

// MarshalJSON encodes the entries as a JSON array.
func (t *Transcript) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.Entries())
}

func verifyEntries(entries []Entry) error {
	if len(entries) == 0 {
		return fmt.Errorf("empty transcript")
	}
	genesis := entries[0]
	if genesis.Index != 0 || genesis.PrevHash != "0" || genesis.Kind != KindGenesis {
		return fmt.Errorf("invalid genesis entry")
	}
	if genesis.Hash != calculateHash(genesis) {
		return fmt.Errorf("invalid genesis hash")
	}
	for i := 1; i < len(entries); i++ {
		if err := validateEntry(entries[i], entries[i-1]); err != nil {
			return fmt.Errorf("entry %d invalid: %w", i, err)
		}
	}
	return nil
}

// validateEntry verifies that an entry is valid relative to the previous one.
func validateEntry(current, previous Entry) error {
	if current.Index != previous.Index+1 {
		return fmt.Errorf("invalid index: expected %d, got %d", previous.Index+1, current.Index)
	}
	if current.PrevHash != previous.Hash {
		return fmt.Errorf("invalid prev hash: expected %s, got %s", previous.Hash, current.PrevHash)
	}
	expectedHash := calculateHash(current)
	if current.Hash != expectedHash {
		return fmt.Errorf("invalid hash: expected %s, got %s", expectedHash, current.Hash)
	}
	return nil
}

// calculateHash computes the SHA256 of an entry's index, timestamp,
// previous hash, kind and compacted payload. Compacting keeps the hash stable
// when the transcript is re-encoded with indentation.
func calculateHash(e Entry) string {
	payload := e.Payload
	var compact bytes.Buffer
	if err := json.Compact(&compact, e.Payload); err == nil {
		payload = compact.Bytes()
	}
	data := fmt.Sprintf("%d|%d|%s|%s|%s",
		e.Index,
		e.Timestamp,
		e.PrevHash,
		e.Kind,
		string(payload),
	)
	hash := sha256.Sum256([]byte(data))
	return hex.EncodeToString(hash[:])
}
