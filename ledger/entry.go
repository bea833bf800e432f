package ledger

import "encoding/json"

// Entry is a single link of a Transcript.
type Entry struct {
	Index     int             `json:"index"`
	Timestamp int64           `json:"timestamp"`
	PrevHash  string          `json:"prev_hash"`
	Hash      string          `json:"hash"`
	Kind      string          `json:"kind"`
	Payload   json.RawMessage `json:"payload,omitempty"`
}

// KindGenesis is the kind of the first entry of every transcript.
const KindGenesis = "genesis"
