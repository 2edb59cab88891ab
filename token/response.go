package token

// Response is the bundle returned from the token endpoint for both the
// authorization_code and refresh_token grants.
type Response struct {
	Success bool `json:"success"`

	// TokenType indicates how to use the identity token (always "Bearer").
	TokenType string `json:"token_type"`

	// Scope is the space-separated list of granted scopes.
	Scope string `json:"scope"`

	// ExpiresIn is the identity token lifetime in seconds.
	ExpiresIn int `json:"expires_in"`

	// ExpiresAt is the identity token expiry as a unix timestamp.
	ExpiresAt int64 `json:"expires_at"`

	// IDToken is the signed JWT asserting the authenticated subject's
	// identity, consumed by the host framework.
	IDToken string `json:"id_token"`

	// RefreshToken mints new identity tokens without repeating the
	// challenge/signature flow.
	RefreshToken string `json:"refresh_token"`
}
