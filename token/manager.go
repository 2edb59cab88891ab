package token

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// Manager creates and verifies the bearer credentials handed out after a
// successful login: a short-lived identity token carrying display claims and
// a longer-lived refresh token kept minimal to avoid claim staleness.
type Manager struct {
	signer             Signer
	issuer             string
	audience           string
	idTokenExpiry      time.Duration
	refreshTokenExpiry time.Duration
	nowFunc            func() time.Time
}

type ManagerOption func(*Manager)

// WithTokenExpiry sets the lifetimes of issued identity and refresh tokens.
func WithTokenExpiry(idTokenExpiry, refreshTokenExpiry time.Duration) ManagerOption {
	return func(m *Manager) {
		m.idTokenExpiry = idTokenExpiry
		m.refreshTokenExpiry = refreshTokenExpiry
	}
}

// WithNowFunc sets the now time function (primarily for testing)
func WithNowFunc(now func() time.Time) ManagerOption {
	return func(m *Manager) {
		m.nowFunc = now
	}
}

func WithIssuer(issuer string) ManagerOption {
	return func(m *Manager) {
		m.issuer = issuer
	}
}

func WithAudience(audience string) ManagerOption {
	return func(m *Manager) {
		m.audience = audience
	}
}

func New(signer Signer, options ...ManagerOption) *Manager {
	m := &Manager{
		signer: signer,
	}

	for _, opt := range options {
		opt(m)
	}

	if m.idTokenExpiry == 0 {
		m.idTokenExpiry = 4 * time.Hour
	}
	if m.refreshTokenExpiry == 0 {
		m.refreshTokenExpiry = 30 * 24 * time.Hour
	}
	if m.nowFunc == nil {
		m.nowFunc = time.Now
	}
	return m
}

// CreateIDToken signs an identity token for the given subject. Name and image
// are optional display claims and are omitted when empty.
func (m *Manager) CreateIDToken(pubkey, name, image string) (string, error) {
	now := m.nowFunc()

	claims := jwt.MapClaims{
		"id":  pubkey,
		"sub": pubkey,
		"iss": m.issuer,
		"aud": m.audience,
		"iat": now.Unix(),
		"exp": now.Add(m.idTokenExpiry).Unix(),
		"jti": uuid.New().String(),
	}

	if name != "" {
		claims["name"] = name
	}
	if image != "" {
		claims["image"] = image
	}

	signed, err := m.signer.Sign(claims)
	if err != nil {
		return "", errors.Wrap(err, "[CreateIDToken] Sign")
	}
	return signed, nil
}

// CreateRefreshToken signs a refresh token for the given subject. Display
// claims are deliberately left out so a refreshed identity token always
// carries fresh ones.
func (m *Manager) CreateRefreshToken(pubkey string) (string, error) {
	now := m.nowFunc()

	claims := jwt.MapClaims{
		"id":  pubkey,
		"sub": pubkey,
		"iss": m.issuer,
		"aud": m.audience,
		"iat": now.Unix(),
		"exp": now.Add(m.refreshTokenExpiry).Unix(),
		"jti": uuid.New().String(),
	}

	signed, err := m.signer.Sign(claims)
	if err != nil {
		return "", errors.Wrap(err, "[CreateRefreshToken] Sign")
	}
	return signed, nil
}

// VerifyRefreshToken checks signature and expiry of a refresh token and
// returns the subject it was issued to.
func (m *Manager) VerifyRefreshToken(rawToken string) (string, error) {
	claims, err := m.parse(rawToken)
	if err != nil {
		return "", errors.Wrap(err, "[VerifyRefreshToken] parse")
	}

	pubkey, _ := claims["id"].(string)
	if pubkey == "" {
		pubkey, _ = claims["sub"].(string)
	}
	if pubkey == "" {
		return "", errors.New("[VerifyRefreshToken] token has no subject")
	}
	return pubkey, nil
}

// ParseIDToken verifies an identity token and returns its claims, for mapping
// into a host framework user profile.
func (m *Manager) ParseIDToken(rawToken string) (jwt.MapClaims, error) {
	claims, err := m.parse(rawToken)
	if err != nil {
		return nil, errors.Wrap(err, "[ParseIDToken] parse")
	}
	return claims, nil
}

func (m *Manager) parse(rawToken string) (jwt.MapClaims, error) {
	parsed, err := jwt.Parse(rawToken, m.signer.GetVerificationKey,
		jwt.WithTimeFunc(m.nowFunc),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return nil, err
	}
	if !parsed.Valid {
		return nil, errors.New("token is not valid")
	}

	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return nil, errors.New("error extracting claims from token")
	}
	return claims, nil
}

// GenerateResponse issues a full token bundle for the given subject.
func (m *Manager) GenerateResponse(pubkey, name, image string) (*Response, error) {
	idToken, err := m.CreateIDToken(pubkey, name, image)
	if err != nil {
		return nil, errors.Wrap(err, "[GenerateResponse] CreateIDToken")
	}

	refreshToken, err := m.CreateRefreshToken(pubkey)
	if err != nil {
		return nil, errors.Wrap(err, "[GenerateResponse] CreateRefreshToken")
	}

	return &Response{
		Success:      true,
		TokenType:    "Bearer",
		Scope:        "user",
		ExpiresIn:    int(m.idTokenExpiry.Seconds()),
		ExpiresAt:    m.nowFunc().Add(m.idTokenExpiry).Unix(),
		IDToken:      idToken,
		RefreshToken: refreshToken,
	}, nil
}
