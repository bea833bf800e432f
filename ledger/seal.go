package ledger

import (
	"encoding/hex"
	"encoding/json"
	"fmt"

	"go.dedis.ch/kyber/v4"
	"go.dedis.ch/kyber/v4/sign/schnorr"
	"go.dedis.ch/kyber/v4/suites"
)

var suite suites.Suite = suites.MustFind("Ed25519")

// Signer holds the key pair used to seal transcripts.
type Signer struct {
	private kyber.Scalar
	public  kyber.Point
}

// NewSigner picks a fresh private scalar and derives its public point.
func NewSigner() *Signer {
	x := suite.Scalar().Pick(suite.RandomStream())
	return &Signer{
		private: x,
		public:  suite.Point().Mul(x, nil),
	}
}

// Public returns the public key that verifies the signer's seals.
func (s *Signer) Public() kyber.Point {
	return s.public
}

// Seal binds the head of a transcript to the signer's key.
type Seal struct {
	Head      string `json:"head"`
	Signature []byte `json:"signature"`
}

// Sealed is the JSON form of a finished, signed transcript.
type Sealed struct {
	Entries   []Entry `json:"entries"`
	Seal      Seal    `json:"seal"`
	PublicKey string  `json:"public_key"`
}

// Seal verifies the chain and signs the hash of its latest entry.
func (t *Transcript) Seal(s *Signer) (Seal, error) {
	if err := t.Verify(); err != nil {
		return Seal{}, err
	}
	latest, err := t.GetLatest()
	if err != nil {
		return Seal{}, err
	}
	sig, err := schnorr.Sign(suite, s.private, []byte(latest.Hash))
	if err != nil {
		return Seal{}, fmt.Errorf("failed to sign transcript head: %w", err)
	}
	return Seal{Head: latest.Hash, Signature: sig}, nil
}

// VerifySeal checks that the transcript is intact, that seal covers its
// latest entry and that the signature was made by pub.
func (t *Transcript) VerifySeal(pub kyber.Point, seal Seal) error {
	if err := t.Verify(); err != nil {
		return err
	}
	latest, err := t.GetLatest()
	if err != nil {
		return err
	}
	if latest.Hash != seal.Head {
		return fmt.Errorf("seal covers %s, transcript head is %s", seal.Head, latest.Hash)
	}
	if err := schnorr.Verify(suite, pub, []byte(seal.Head), seal.Signature); err != nil {
		return fmt.Errorf("invalid seal signature: %w", err)
	}
	return nil
}

// Export seals the transcript with s and returns its JSON form.
func (t *Transcript) Export(s *Signer) ([]byte, error) {
	seal, err := t.Seal(s)
	if err != nil {
		return nil, err
	}
	pub, err := s.public.MarshalBinary()
	if err != nil {
		return nil, err
	}
	return json.MarshalIndent(Sealed{
		Entries:   t.Entries(),
		Seal:      seal,
		PublicKey: hex.EncodeToString(pub),
	}, "", "  ")
}

// ParsePublicKey decodes a hex encoded public key as produced by Export.
func ParsePublicKey(s string) (kyber.Point, error) {
	b, err := hex.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("decode public key: %w", err)
	}
	p := suite.Point()
	if err := p.UnmarshalBinary(b); err != nil {
		return nil, fmt.Errorf("decode public key: %w", err)
	}
	return p, nil
}

// VerifySealed checks an exported transcript on its own: the hash chain,
// the seal over its head and the signature under its embedded public key.
func VerifySealed(data []byte) error {
	var sealed Sealed
	if err := json.Unmarshal(data, &sealed); err != nil {
		return fmt.Errorf("decode transcript: %w", err)
	}
	pub, err := ParsePublicKey(sealed.PublicKey)
	if err != nil {
		return err
	}
	t := &Transcript{entries: sealed.Entries}
	return t.VerifySeal(pub, sealed.Seal)
}
