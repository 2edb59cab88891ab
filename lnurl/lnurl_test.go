package lnurl_test

import (
	"encoding/hex"
	"strings"
	"testing"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"
	"github.com/decred/dcrd/dcrec/secp256k1/v4/ecdsa"
	"github.com/stretchr/testify/require"

	"github.com/lnward/go-lnauth-server/lnurl"
)

// Reference vector from LUD-01.
const (
	vectorURL   = "https://service.com/api?q=3fc3645b439ce8e7f2553a69e5267081d96dcd340693afabe04be7b0ccd178df"
	vectorLNURL = "LNURL1DP68GURN8GHJ7UM9WFMXJCM99E3K7MF0V9CXJ0M385EKVCENXC6R2C35XVUKXEFCV5MKVV34X5EKZD3EV56NYD3HXQURZEPEXEJXXEPNXSCRVWFNV9NXZCN9XQ6XYEFHVGCXXCMYXYMNSERXFQ5FNS"
)

func TestEncodeKnownVector(t *testing.T) {
	encoded, err := lnurl.Encode(vectorURL)
	require.NoError(t, err)
	require.Equal(t, vectorLNURL, encoded)
}

func TestDecodeKnownVector(t *testing.T) {
	decoded, err := lnurl.Decode(vectorLNURL)
	require.NoError(t, err)
	require.Equal(t, vectorURL, decoded)
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	url := "https://auth.example.com/api/lnauth/callback?k1=0000111122223333&tag=login"

	encoded, err := lnurl.Encode(url)
	require.NoError(t, err)
	require.Equal(t, strings.ToUpper(encoded), encoded, "encoded lnurl should be upper-cased")

	decoded, err := lnurl.Decode(encoded)
	require.NoError(t, err)
	require.Equal(t, url, decoded)
}

func TestDecodeRejectsWrongPrefix(t *testing.T) {
	_, err := lnurl.Decode("BC1QW508D6QEJXTDG4Y5R3ZARVARY0C5XW7KV8F3T4")
	require.Error(t, err)
}

func TestNewK1(t *testing.T) {
	k1, err := lnurl.NewK1()
	require.NoError(t, err)
	require.Len(t, k1, lnurl.K1Length*2)

	decoded, err := hex.DecodeString(k1)
	require.NoError(t, err)
	require.Len(t, decoded, lnurl.K1Length)

	other, err := lnurl.NewK1()
	require.NoError(t, err)
	require.NotEqual(t, k1, other)
}

func signChallenge(t *testing.T, priv *secp256k1.PrivateKey, k1 string) string {
	t.Helper()

	k1Bytes, err := hex.DecodeString(k1)
	require.NoError(t, err)

	sig := ecdsa.Sign(priv, k1Bytes)
	return hex.EncodeToString(sig.Serialize())
}

func TestVerifyAcceptsValidSignature(t *testing.T) {
	priv, err := secp256k1.GeneratePrivateKey()
	require.NoError(t, err)

	k1, err := lnurl.NewK1()
	require.NoError(t, err)

	pubkey := hex.EncodeToString(priv.PubKey().SerializeCompressed())
	sig := signChallenge(t, priv, k1)

	require.NoError(t, lnurl.NewAuthVerifier().Verify(k1, pubkey, sig))
}

func TestVerifyRejectsWrongKey(t *testing.T) {
	priv, err := secp256k1.GeneratePrivateKey()
	require.NoError(t, err)
	other, err := secp256k1.GeneratePrivateKey()
	require.NoError(t, err)

	k1, err := lnurl.NewK1()
	require.NoError(t, err)

	otherPubkey := hex.EncodeToString(other.PubKey().SerializeCompressed())
	sig := signChallenge(t, priv, k1)

	require.Error(t, lnurl.NewAuthVerifier().Verify(k1, otherPubkey, sig))
}

func TestVerifyRejectsWrongChallenge(t *testing.T) {
	priv, err := secp256k1.GeneratePrivateKey()
	require.NoError(t, err)

	k1, err := lnurl.NewK1()
	require.NoError(t, err)
	otherK1, err := lnurl.NewK1()
	require.NoError(t, err)

	pubkey := hex.EncodeToString(priv.PubKey().SerializeCompressed())
	sig := signChallenge(t, priv, k1)

	require.Error(t, lnurl.NewAuthVerifier().Verify(otherK1, pubkey, sig))
}

func TestVerifyRejectsMalformedInputs(t *testing.T) {
	priv, err := secp256k1.GeneratePrivateKey()
	require.NoError(t, err)

	k1, err := lnurl.NewK1()
	require.NoError(t, err)

	pubkey := hex.EncodeToString(priv.PubKey().SerializeCompressed())
	sig := signChallenge(t, priv, k1)

	verifier := lnurl.NewAuthVerifier()
	require.Error(t, verifier.Verify("not-hex", pubkey, sig))
	require.Error(t, verifier.Verify("abcd", pubkey, sig), "k1 must be 32 bytes")
	require.Error(t, verifier.Verify(k1, "not-hex", sig))
	require.Error(t, verifier.Verify(k1, pubkey, "not-hex"))
	require.Error(t, verifier.Verify(k1, pubkey, "abcd"), "sig must be DER")
}
