package lnauth

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	"github.com/lnward/go-lnauth-server/generators"
	"github.com/lnward/go-lnauth-server/lnurl"
	"github.com/lnward/go-lnauth-server/token"
)

// Protocol tag appended to every callback URL (LUD-04).
const loginTag = "login"

// Default client timing hints, matching the protocol's hard config.
const (
	defaultPollInterval   = time.Second
	defaultCreateInterval = 5 * time.Minute
)

// Deps holds the injected collaborators of the protocol engine.
type Deps struct {
	Store      SessionRepo           // Session persistence (required)
	Verifier   lnurl.Verifier        // Wallet signature verification (required)
	Tokens     *token.Manager        // Bearer credential issuance (required)
	Generators generators.Generators // Display data collaborators (optional)
}

// Service is the lnurl-auth protocol engine. It owns no state of its own;
// everything lives in the injected SessionRepo.
type Service struct {
	store          SessionRepo
	verifier       lnurl.Verifier
	tokens         *token.Manager
	gen            generators.Generators
	baseURL        *url.URL
	callbackPath   string
	avatarPath     string
	pollInterval   time.Duration
	createInterval time.Duration
	newK1          func() (string, error)
	logger         zerolog.Logger
}

// ServiceOption defines a function type to modify the Service instance.
type ServiceOption func(*Service)

// WithIntervals sets the poll and challenge-refresh timing hints handed to
// clients.
func WithIntervals(pollInterval, createInterval time.Duration) ServiceOption {
	return func(s *Service) {
		s.pollInterval = pollInterval
		s.createInterval = createInterval
	}
}

// WithCallbackPath sets the path of the wallet callback endpoint embedded in
// issued challenges.
func WithCallbackPath(path string) ServiceOption {
	return func(s *Service) {
		s.callbackPath = path
	}
}

// WithAvatarPath sets the path under which avatar references are issued.
func WithAvatarPath(path string) ServiceOption {
	return func(s *Service) {
		s.avatarPath = path
	}
}

// WithChallengeFunc sets the challenge generator (primarily for testing).
func WithChallengeFunc(newK1 func() (string, error)) ServiceOption {
	return func(s *Service) {
		s.newK1 = newK1
	}
}

// WithLogger sets the logger used for swallowed cleanup failures.
func WithLogger(logger zerolog.Logger) ServiceOption {
	return func(s *Service) {
		s.logger = logger
	}
}

// NewService initializes the protocol engine with its dependencies.
// baseURL is the externally reachable root of this service, used to build
// callback URLs and avatar references.
func NewService(deps Deps, baseURL string, options ...ServiceOption) (*Service, error) {
	if deps.Store == nil {
		return nil, errors.New("[NewService] Store is required")
	}
	if deps.Verifier == nil {
		return nil, errors.New("[NewService] Verifier is required")
	}
	if deps.Tokens == nil {
		return nil, errors.New("[NewService] Tokens manager is required")
	}

	parsed, err := url.Parse(baseURL)
	if err != nil {
		return nil, errors.Wrap(err, "[NewService] invalid base URL")
	}
	if parsed.Scheme == "" || parsed.Host == "" {
		return nil, errors.Errorf("[NewService] base URL %q must be absolute", baseURL)
	}

	s := &Service{
		store:          deps.Store,
		verifier:       deps.Verifier,
		tokens:         deps.Tokens,
		gen:            deps.Generators,
		baseURL:        parsed,
		callbackPath:   "/api/lnauth/callback",
		avatarPath:     "/api/lnauth/avatar",
		pollInterval:   defaultPollInterval,
		createInterval: defaultCreateInterval,
		newK1:          lnurl.NewK1,
		logger:         zerolog.Nop(),
	}

	for _, opt := range options {
		opt(s)
	}

	return s, nil
}

// Challenge is the result of issuing a new login challenge. The intervals
// tell the client how often to poll and when to proactively request a
// replacement before the challenge can go stale.
type Challenge struct {
	K1               string `json:"k1"`
	LNURL            string `json:"lnurl"`
	PollIntervalMs   int    `json:"pollIntervalMs"`
	CreateIntervalMs int    `json:"createIntervalMs"`
}

// CreateChallenge issues a fresh challenge bound to the client-supplied
// state. A previous challenge may be passed in priorK1; it is deleted best
// effort and never blocks issuing the new one.
func (s *Service) CreateChallenge(ctx context.Context, state, priorK1 string) (*Challenge, error) {
	if err := validateCreate(state); err != nil {
		return nil, err
	}

	if priorK1 != "" {
		if err := s.store.Delete(ctx, priorK1); err != nil {
			s.logger.Warn().Err(err).Str("k1", priorK1).
				Msg("failed to delete superseded challenge")
		}
	}

	k1, err := s.newK1()
	if err != nil {
		return nil, WrapError(CodeDefault, err, "challenge generation failed")
	}

	callback := *s.baseURL
	callback.Path = s.callbackPath
	query := callback.Query()
	query.Set("k1", k1)
	query.Set("tag", loginTag)
	callback.RawQuery = query.Encode()

	encoded, err := lnurl.Encode(callback.String())
	if err != nil {
		return nil, WrapError(CodeDefault, err, "challenge encoding failed")
	}

	if err := s.store.Set(ctx, k1, &Session{K1: k1, State: state}); err != nil {
		return nil, WrapError(CodeDefault, err, "failed to persist session")
	}

	return &Challenge{
		K1:               k1,
		LNURL:            encoded,
		PollIntervalMs:   int(s.pollInterval.Milliseconds()),
		CreateIntervalMs: int(s.createInterval.Milliseconds()),
	}, nil
}

// CallbackAck is the acknowledgement returned to the wallet after a
// verified callback.
type CallbackAck struct {
	K1      string `json:"k1"`
	Success bool   `json:"success"`
}

// HandleCallback verifies an out-of-band wallet signature over the challenge
// and flips the session to authenticated. No browser session is expected or
// trusted here.
func (s *Service) HandleCallback(ctx context.Context, k1, pubkey, sig string) (*CallbackAck, error) {
	if err := validateCallback(k1, pubkey, sig); err != nil {
		return nil, err
	}

	if err := s.verify(k1, pubkey, sig); err != nil {
		// A failed attempt leaves an unusable pending session behind;
		// drop it so the client restarts instead of polling forever.
		if delErr := s.store.Delete(ctx, k1); delErr != nil {
			s.logger.Warn().Err(delErr).Str("k1", k1).
				Msg("failed to delete session after rejected signature")
		}
		return nil, WrapError(CodeUnauthorized, err, "signature verification failed")
	}

	patch := &SessionPatch{Pubkey: pubkey, Sig: sig, Success: true}
	if err := s.store.Update(ctx, k1, patch); err != nil {
		// The signature was valid but could not be durably recorded; the
		// client would otherwise poll forever, so surface the failure.
		return nil, WrapError(CodeDefault, err, "failed to record authenticated session")
	}

	return &CallbackAck{K1: k1, Success: true}, nil
}

// verify runs the injected verifier, treating a panicking verifier the same
// as a failed verification.
func (s *Service) verify(k1, pubkey, sig string) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = errors.Errorf("verifier panic: %v", r)
		}
	}()
	return s.verifier.Verify(k1, pubkey, sig)
}

// PollStatus reports whether a login attempt has completed.
type PollStatus struct {
	Success bool `json:"success"`
}

// Poll is a cheap, side-effect-free read of session status for client-side
// long polling. A missing session is reported as Gone so the client knows to
// restart with a fresh challenge rather than keep waiting.
func (s *Service) Poll(ctx context.Context, k1 string) (*PollStatus, error) {
	if err := validatePoll(k1); err != nil {
		return nil, err
	}

	session, err := s.store.Get(ctx, k1)
	if errors.Is(err, ErrSessionNotFound) {
		return nil, WrapError(CodeGone, err, "session expired or deleted")
	}
	if err != nil {
		return nil, WrapError(CodeDefault, err, "session lookup failed")
	}

	return &PollStatus{Success: session.Success}, nil
}

// TokenRequest is a grant request to the token exchange.
type TokenRequest struct {
	GrantType    string `json:"grant_type"`
	Code         string `json:"code"`
	RefreshToken string `json:"refresh_token"`
}

// Token exchanges an authenticated challenge, or a valid refresh token, for
// a signed identity token plus refresh token.
func (s *Service) Token(ctx context.Context, req *TokenRequest) (*token.Response, error) {
	if err := validateTokenRequest(req); err != nil {
		return nil, err
	}

	var pubkey string
	switch req.GrantType {
	case GrantAuthorizationCode:
		consumed, err := s.consumeSession(ctx, req.Code)
		if err != nil {
			return nil, err
		}
		pubkey = consumed
	case GrantRefreshToken:
		verified, err := s.tokens.VerifyRefreshToken(req.RefreshToken)
		if err != nil {
			return nil, WrapError(CodeUnauthorized, err, "invalid refresh token")
		}
		pubkey = verified
	}

	name, image := s.displayData(pubkey)

	resp, err := s.tokens.GenerateResponse(pubkey, name, image)
	if err != nil {
		return nil, WrapError(CodeDefault, err, "token issuance failed")
	}
	return resp, nil
}

// consumeSession reads an authenticated session and deletes it, enforcing
// single use of the challenge.
func (s *Service) consumeSession(ctx context.Context, k1 string) (string, error) {
	session, err := s.store.Get(ctx, k1)
	if errors.Is(err, ErrSessionNotFound) {
		return "", WrapError(CodeGone, err, "session expired or deleted")
	}
	if err != nil {
		return "", WrapError(CodeDefault, err, "session lookup failed")
	}

	if !session.Success {
		return "", NewError(CodeUnauthorized, "login was not successful")
	}
	if session.Pubkey == "" {
		return "", NewError(CodeUnauthorized, "session has no pubkey")
	}

	if err := s.store.Delete(ctx, k1); err != nil {
		// The exchange must still succeed; until the store's own TTL
		// expires this record it remains a known replay window.
		s.logger.Error().Err(err).Str("k1", k1).
			Msg("failed to delete consumed session")
	}

	return session.Pubkey, nil
}

// displayData resolves optional display collaborators for an identity token.
// Generator failures are logged and degrade into absent display data.
func (s *Service) displayData(pubkey string) (name, image string) {
	if s.gen.Name != nil {
		generated, err := s.gen.Name(pubkey)
		if err != nil {
			s.logger.Warn().Err(err).Msg("name generation failed")
		} else {
			name = generated
		}
	}

	if s.gen.Avatar != nil {
		avatar := *s.baseURL
		avatar.Path = fmt.Sprintf("%s/%s.svg", s.avatarPath, pubkey)
		image = avatar.String()
	}

	return name, image
}
