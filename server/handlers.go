package server

import (
	"net/http"

	"github.com/lnward/go-lnauth-server/lnauth"
)

// CreateHandler issues a fresh login challenge. A caller already holding a
// host session has nothing to gain here and is turned away.
func (s *Server) CreateHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		req, err := normalizeRequest(r)
		if err != nil {
			s.writeError(w, r, err, modeJSON)
			return
		}

		if req.Cookies[s.config.GetSessionCookieName()] != "" {
			s.writeError(w, r, lnauth.NewError(lnauth.CodeForbidden, "create called with active host session"), modeJSON)
			return
		}

		challenge, err := s.svc.CreateChallenge(r.Context(), req.Arg("state"), req.Arg("k1"))
		if err != nil {
			s.writeError(w, r, err, modeJSON)
			return
		}

		s.writeJSON(w, http.StatusOK, challenge)
	}
}

// PollHandler is the cheap read side of the client's long poll.
func (s *Server) PollHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		req, err := normalizeRequest(r)
		if err != nil {
			s.writeError(w, r, err, modeJSON)
			return
		}

		status, err := s.svc.Poll(r.Context(), req.Arg("k1"))
		if err != nil {
			s.writeError(w, r, err, modeJSON)
			return
		}

		s.writeJSON(w, http.StatusOK, status)
	}
}

// CallbackHandler receives the out-of-band signed callback from the wallet.
// The signer's public key arrives in the "key" parameter (LUD-04).
func (s *Server) CallbackHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		req, err := normalizeRequest(r)
		if err != nil {
			s.writeError(w, r, err, modeRedirect)
			return
		}

		ack, err := s.svc.HandleCallback(r.Context(), req.Arg("k1"), req.Arg("key"), req.Arg("sig"))
		if err != nil {
			s.writeError(w, r, err, modeRedirect)
			return
		}

		s.writeJSON(w, http.StatusOK, ack)
	}
}

// TokenHandler exchanges an authenticated challenge or a refresh token for
// bearer credentials. Called by back-channel code, so failures are always
// structured JSON.
func (s *Server) TokenHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		req, err := normalizeRequest(r)
		if err != nil {
			s.writeError(w, r, err, modeJSON)
			return
		}

		tokenReq := &lnauth.TokenRequest{
			GrantType:    req.Arg("grant_type"),
			Code:         req.Arg("code"),
			RefreshToken: req.Arg("refresh_token"),
		}

		resp, err := s.svc.Token(r.Context(), tokenReq)
		if err != nil {
			s.writeError(w, r, err, modeJSON)
			return
		}

		w.Header().Set("Cache-Control", "no-store")
		w.Header().Set("Pragma", "no-cache")
		s.writeJSON(w, http.StatusOK, resp)
	}
}

// NotFoundHandler covers unknown paths under the lnauth API prefix.
func (s *Server) NotFoundHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.writeError(w, r, lnauth.NewError(lnauth.CodeNotFound, "no handler for "+r.URL.Path), modeJSON)
	}
}
