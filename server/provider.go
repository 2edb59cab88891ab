package server

import (
	"net/http"

	"golang.org/x/oauth2"
)

// Metadata describes this provider to a host authentication framework: where
// its endpoints live and how to identify against it.
type Metadata struct {
	ID       string          `json:"id"`
	Name     string          `json:"name"`
	Issuer   string          `json:"issuer"`
	ClientID string          `json:"client_id"`
	Endpoint oauth2.Endpoint `json:"-"`
}

// Profile is the generic user shape a host framework consumes, mapped from
// identity token claims.
type Profile struct {
	ID    string `json:"id"`
	Name  string `json:"name,omitempty"`
	Image string `json:"image,omitempty"`
}

// ProfileFromClaims maps identity token claims onto a host framework user
// profile. The subject is preferred under "id", falling back to "sub".
func ProfileFromClaims(claims map[string]any) Profile {
	id, _ := claims["id"].(string)
	if id == "" {
		id, _ = claims["sub"].(string)
	}
	name, _ := claims["name"].(string)
	image, _ := claims["image"].(string)

	return Profile{ID: id, Name: name, Image: image}
}

// ProviderMetadata returns this provider's description for host frameworks.
func (s *Server) ProviderMetadata() Metadata {
	base := s.config.GetBaseURL()

	return Metadata{
		ID:       "lightning",
		Name:     "Lightning",
		Issuer:   base,
		ClientID: base,
		Endpoint: oauth2.Endpoint{
			AuthURL:  base + s.config.GetCreatePath(),
			TokenURL: base + s.config.GetTokenPath(),
		},
	}
}

// ProviderConfigHandler serves the provider discovery document.
func (s *Server) ProviderConfigHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		base := s.config.GetBaseURL()

		resp := map[string]any{
			"issuer":                 base,
			"authorization_endpoint": base + s.config.GetCreatePath(),
			"token_endpoint":         base + s.config.GetTokenPath(),
			"grant_types_supported": []string{
				"authorization_code",
				"refresh_token",
			},
			"token_endpoint_auth_methods_supported": []string{"none"},
			"id_token_signing_alg_values_supported": []string{"HS256"},
			"scopes_supported":                      []string{"user"},
		}

		w.Header().Set("Cache-Control", "public, max-age=3600")
		s.writeJSON(w, http.StatusOK, resp)
	}
}
