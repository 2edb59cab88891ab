// Package lnurl implements the wire-level pieces of the lnurl-auth protocol:
// bech32 encoding of callback URLs (LUD-01), challenge generation and
// secp256k1 signature verification (LUD-04).
package lnurl

import (
	"crypto/rand"
	"encoding/hex"
	"strings"

	"github.com/btcsuite/btcd/btcutil/bech32"
	"github.com/pkg/errors"
)

// HRP is the human-readable prefix of every bech32-encoded lnurl.
const HRP = "lnurl"

// K1Length is the byte length of a challenge before hex encoding.
const K1Length = 32

// NewK1 generates a fresh challenge: 32 cryptographically random bytes,
// hex-encoded.
func NewK1() (string, error) {
	b := make([]byte, K1Length)
	if _, err := rand.Read(b); err != nil {
		return "", errors.Wrap(err, "[NewK1] rand.Read")
	}
	return hex.EncodeToString(b), nil
}

// Encode converts a callback URL into its shareable bech32 form. The result
// is upper-cased, which produces smaller QR codes (alphanumeric mode).
func Encode(url string) (string, error) {
	data, err := bech32.ConvertBits([]byte(url), 8, 5, true)
	if err != nil {
		return "", errors.Wrap(err, "[Encode] ConvertBits")
	}

	encoded, err := bech32.Encode(HRP, data)
	if err != nil {
		return "", errors.Wrap(err, "[Encode] bech32.Encode")
	}

	return strings.ToUpper(encoded), nil
}

// Decode recovers the callback URL from a bech32-encoded lnurl. Case is
// normalized before decoding; lnurls routinely exceed the 90 character
// bech32 limit, so the unlimited decoder is used.
func Decode(encoded string) (string, error) {
	hrp, data, err := bech32.DecodeNoLimit(strings.ToLower(encoded))
	if err != nil {
		return "", errors.Wrap(err, "[Decode] bech32.DecodeNoLimit")
	}

	if hrp != HRP {
		return "", errors.Errorf("[Decode] unexpected human-readable prefix %q", hrp)
	}

	converted, err := bech32.ConvertBits(data, 5, 8, false)
	if err != nil {
		return "", errors.Wrap(err, "[Decode] ConvertBits")
	}

	return string(converted), nil
}
