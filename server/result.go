package server

import (
	"encoding/json"
	"net/http"

	"github.com/lnward/go-lnauth-server/lnauth"
)

// errorMode selects how a failed operation is surfaced: structured JSON for
// back-channel callers, or a redirect to the configured error page for
// browser-facing paths.
type errorMode int

const (
	modeJSON errorMode = iota
	modeRedirect
)

type errorBody struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	URL     string `json:"url,omitempty"`
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

// errorURL builds the error page URL with the taxonomy code and user-safe
// message as query parameters. Internal diagnostics never travel here.
func (s *Server) errorURL(code lnauth.ErrorCode) string {
	errorPage := *s.baseURL
	errorPage.Path = s.config.GetErrorPage()

	query := errorPage.Query()
	query.Set("error", string(code))
	query.Set("message", code.Message())
	errorPage.RawQuery = query.Encode()

	return errorPage.String()
}

// writeError logs the internal detail of a failure and surfaces only the
// closed-taxonomy code and its user-safe message.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error, mode errorMode) {
	protoErr := lnauth.AsError(err)

	event := s.logger.Error().Str("code", string(protoErr.Code)).Str("path", r.URL.Path)
	if cause := protoErr.Unwrap(); cause != nil {
		event = event.Err(cause)
	}
	event.Msg(protoErr.Log)

	if mode == modeRedirect {
		http.Redirect(w, r, s.errorURL(protoErr.Code), http.StatusFound)
		return
	}

	status := protoErr.Status
	if status == 0 {
		status = protoErr.Code.HTTPStatus()
	}

	s.writeJSON(w, status, errorBody{
		Error:   string(protoErr.Code),
		Message: protoErr.Code.Message(),
		URL:     s.errorURL(protoErr.Code),
	})
}
