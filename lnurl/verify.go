package lnurl

import (
	"encoding/hex"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"
	"github.com/decred/dcrd/dcrec/secp256k1/v4/ecdsa"
	"github.com/pkg/errors"
)

// Verifier checks that a wallet signature proves possession of the private
// key behind a public key. Implementations must be safe for concurrent use.
type Verifier interface {
	Verify(k1, pubkey, sig string) error
}

// AuthVerifier verifies lnurl-auth signatures: a DER-encoded secp256k1 ECDSA
// signature by pubkey over the raw bytes of the challenge (LUD-04).
type AuthVerifier struct{}

var _ Verifier = AuthVerifier{}

// NewAuthVerifier returns the production signature verifier.
func NewAuthVerifier() AuthVerifier {
	return AuthVerifier{}
}

func (AuthVerifier) Verify(k1, pubkey, sig string) error {
	k1Bytes, err := hex.DecodeString(k1)
	if err != nil {
		return errors.Wrap(err, "[Verify] k1 is not valid hex")
	}
	if len(k1Bytes) != K1Length {
		return errors.Errorf("[Verify] k1 must be %d bytes, got %d", K1Length, len(k1Bytes))
	}

	keyBytes, err := hex.DecodeString(pubkey)
	if err != nil {
		return errors.Wrap(err, "[Verify] pubkey is not valid hex")
	}
	key, err := secp256k1.ParsePubKey(keyBytes)
	if err != nil {
		return errors.Wrap(err, "[Verify] ParsePubKey")
	}

	sigBytes, err := hex.DecodeString(sig)
	if err != nil {
		return errors.Wrap(err, "[Verify] sig is not valid hex")
	}
	signature, err := ecdsa.ParseDERSignature(sigBytes)
	if err != nil {
		return errors.Wrap(err, "[Verify] ParseDERSignature")
	}

	if !signature.Verify(k1Bytes, key) {
		return errors.New("[Verify] signature does not match key and challenge")
	}

	return nil
}
