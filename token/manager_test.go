package token_test

import (
	"testing"
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"

	"github.com/lnward/go-lnauth-server/token"
)

const (
	secretStr  = "test-secret-1234"
	issuer     = "https://auth.example.com"
	audience   = "https://auth.example.com"
	testPubkey = "02c3b2b8c1c2a1e0d9f8e7d6c5b4a3928170605040302010ffeeddccbbaa9988"
)

func newManager(t *testing.T, options ...token.ManagerOption) *token.Manager {
	t.Helper()

	opts := append([]token.ManagerOption{
		token.WithIssuer(issuer),
		token.WithAudience(audience),
	}, options...)

	return token.New(token.NewHMACSigner(secretStr), opts...)
}

func parseClaims(t *testing.T, rawToken string) jwtlib.MapClaims {
	t.Helper()

	parsed, err := jwtlib.Parse(rawToken, func(tok *jwtlib.Token) (any, error) {
		return []byte(secretStr), nil
	})
	require.NoError(t, err)
	require.True(t, parsed.Valid)

	claims, ok := parsed.Claims.(jwtlib.MapClaims)
	require.True(t, ok)
	return claims
}

func TestCreateIDTokenClaims(t *testing.T) {
	now := time.Now()
	m := newManager(t,
		token.WithTokenExpiry(4*time.Hour, 30*24*time.Hour),
		token.WithNowFunc(func() time.Time { return now }),
	)

	rawToken, err := m.CreateIDToken(testPubkey, "crimson-olive-panda", "https://auth.example.com/api/lnauth/avatar/"+testPubkey+".svg")
	require.NoError(t, err)

	claims := parseClaims(t, rawToken)
	require.Equal(t, testPubkey, claims["sub"])
	require.Equal(t, testPubkey, claims["id"])
	require.Equal(t, issuer, claims["iss"])
	require.Equal(t, audience, claims["aud"])
	require.Equal(t, "crimson-olive-panda", claims["name"])
	require.NotEmpty(t, claims["image"])
	require.NotEmpty(t, claims["jti"])
	require.EqualValues(t, now.Unix(), claims["iat"])
	require.EqualValues(t, now.Add(4*time.Hour).Unix(), claims["exp"])
}

func TestCreateIDTokenOmitsEmptyDisplayClaims(t *testing.T) {
	m := newManager(t)

	rawToken, err := m.CreateIDToken(testPubkey, "", "")
	require.NoError(t, err)

	claims := parseClaims(t, rawToken)
	_, hasName := claims["name"]
	_, hasImage := claims["image"]
	require.False(t, hasName)
	require.False(t, hasImage)
}

func TestRefreshTokenRoundTrip(t *testing.T) {
	m := newManager(t)

	rawToken, err := m.CreateRefreshToken(testPubkey)
	require.NoError(t, err)

	pubkey, err := m.VerifyRefreshToken(rawToken)
	require.NoError(t, err)
	require.Equal(t, testPubkey, pubkey)
}

func TestRefreshTokenHasNoDisplayClaims(t *testing.T) {
	m := newManager(t)

	rawToken, err := m.CreateRefreshToken(testPubkey)
	require.NoError(t, err)

	claims := parseClaims(t, rawToken)
	_, hasName := claims["name"]
	_, hasImage := claims["image"]
	require.False(t, hasName)
	require.False(t, hasImage)
}

func TestVerifyRefreshTokenRejectsExpired(t *testing.T) {
	issuedAt := time.Now().Add(-48 * time.Hour)
	issuing := newManager(t,
		token.WithTokenExpiry(time.Hour, 24*time.Hour),
		token.WithNowFunc(func() time.Time { return issuedAt }),
	)

	rawToken, err := issuing.CreateRefreshToken(testPubkey)
	require.NoError(t, err)

	verifying := newManager(t)
	_, err = verifying.VerifyRefreshToken(rawToken)
	require.Error(t, err)
}

func TestVerifyRefreshTokenRejectsWrongSecret(t *testing.T) {
	other := token.New(token.NewHMACSigner("a-different-secret"),
		token.WithIssuer(issuer),
		token.WithAudience(audience),
	)

	rawToken, err := other.CreateRefreshToken(testPubkey)
	require.NoError(t, err)

	m := newManager(t)
	_, err = m.VerifyRefreshToken(rawToken)
	require.Error(t, err)
}

func TestVerifyRefreshTokenRejectsGarbage(t *testing.T) {
	m := newManager(t)
	_, err := m.VerifyRefreshToken("not-a-jwt")
	require.Error(t, err)
}

func TestGenerateResponse(t *testing.T) {
	now := time.Now()
	m := newManager(t,
		token.WithTokenExpiry(4*time.Hour, 30*24*time.Hour),
		token.WithNowFunc(func() time.Time { return now }),
	)

	resp, err := m.GenerateResponse(testPubkey, "name", "image")
	require.NoError(t, err)

	require.True(t, resp.Success)
	require.Equal(t, "Bearer", resp.TokenType)
	require.Equal(t, "user", resp.Scope)
	require.Equal(t, int((4 * time.Hour).Seconds()), resp.ExpiresIn)
	require.Equal(t, now.Add(4*time.Hour).Unix(), resp.ExpiresAt)
	require.NotEmpty(t, resp.IDToken)
	require.NotEmpty(t, resp.RefreshToken)

	claims := parseClaims(t, resp.IDToken)
	require.Equal(t, testPubkey, claims["sub"])
}
