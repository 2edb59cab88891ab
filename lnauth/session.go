// Package lnauth implements the lnurl-auth protocol engine: challenge
// issuance, signed-callback verification, polling and token exchange. All
// session state lives in an injected SessionRepo, so the engine itself is
// stateless per request and safe to run behind any number of concurrent
// server instances.
package lnauth

// Session is one in-flight login attempt, keyed by its challenge.
type Session struct {
	// K1 is the single-use random challenge identifying this attempt.
	K1 string `json:"k1"`

	// State is a client-supplied opaque string, echoed back at token
	// exchange time to bind the exchange to the original request.
	State string `json:"state"`

	// Pubkey and Sig are absent until a wallet callback has been verified.
	Pubkey string `json:"pubkey,omitempty"`
	Sig    string `json:"sig,omitempty"`

	// Success transitions false to true exactly once, never back.
	Success bool `json:"success"`
}

// SessionPatch is the set of fields merged onto a session when a wallet
// callback has been verified.
type SessionPatch struct {
	Pubkey  string
	Sig     string
	Success bool
}
