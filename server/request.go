package server

import (
	"encoding/json"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/lnward/go-lnauth-server/lnauth"
)

// Request is the transport-neutral shape the handlers consume. The protocol
// engine never sees an *http.Request; everything it needs arrives through
// this normalization.
type Request struct {
	Query   url.Values
	Body    url.Values
	Cookies map[string]string
	Path    string
}

// Arg looks up a named argument in the body first, then the query string.
func (r *Request) Arg(name string) string {
	if v := r.Body.Get(name); v != "" {
		return v
	}
	return r.Query.Get(name)
}

// normalizeRequest flattens query, body (form-encoded or JSON) and cookies
// into a Request. A malformed body is a BadRequest before anything else runs.
func normalizeRequest(r *http.Request) (*Request, error) {
	req := &Request{
		Query:   r.URL.Query(),
		Body:    url.Values{},
		Cookies: map[string]string{},
		Path:    r.URL.Path,
	}

	for _, cookie := range r.Cookies() {
		req.Cookies[cookie.Name] = cookie.Value
	}

	if r.Body == nil || r.Method == http.MethodGet {
		return req, nil
	}

	contentType := r.Header.Get("Content-Type")
	switch {
	case strings.HasPrefix(contentType, "application/json"):
		var body map[string]any
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			return nil, lnauth.WrapError(lnauth.CodeBadRequest, err, "malformed JSON body")
		}
		for key, value := range body {
			switch v := value.(type) {
			case string:
				req.Body.Set(key, v)
			case bool:
				if v {
					req.Body.Set(key, "true")
				} else {
					req.Body.Set(key, "false")
				}
			case float64:
				req.Body.Set(key, strconv.FormatFloat(v, 'f', -1, 64))
			}
		}
	default:
		if err := r.ParseForm(); err != nil {
			return nil, lnauth.WrapError(lnauth.CodeBadRequest, err, "malformed form body")
		}
		req.Body = r.PostForm
	}

	return req, nil
}
