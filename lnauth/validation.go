package lnauth

import (
	"fmt"
	"strings"
)

// Grant types recognized by the token exchange.
const (
	GrantAuthorizationCode = "authorization_code"
	GrantRefreshToken      = "refresh_token"
)

// Input validation fails fast, before any store access, so a malformed
// request never touches the session store.

func requireField(name, value string) error {
	if strings.TrimSpace(value) == "" {
		return NewError(CodeBadRequest, fmt.Sprintf("missing required argument %q", name))
	}
	return nil
}

func validateCreate(state string) error {
	return requireField("state", state)
}

func validatePoll(k1 string) error {
	return requireField("k1", k1)
}

func validateCallback(k1, pubkey, sig string) error {
	if err := requireField("k1", k1); err != nil {
		return err
	}
	if err := requireField("key", pubkey); err != nil {
		return err
	}
	return requireField("sig", sig)
}

func validateTokenRequest(req *TokenRequest) error {
	switch req.GrantType {
	case GrantAuthorizationCode:
		return requireField("code", req.Code)
	case GrantRefreshToken:
		return requireField("refresh_token", req.RefreshToken)
	default:
		return NewError(CodeBadRequest, fmt.Sprintf("invalid grant type %q", req.GrantType))
	}
}
