package config

type PathsConfig interface {
	GetCreatePath() string
	GetPollPath() string
	GetCallbackPath() string
	GetTokenPath() string
	GetQRPath() string
	GetAvatarPath() string
	GetErrorPage() string
}

// Paths holds the API route constants. They are fixed at startup and passed
// explicitly; host-framework-specific mounting is configuration, not
// protocol.
type Paths struct{}

var _ PathsConfig = Paths{}

func (Paths) GetCreatePath() string {
	return "/api/lnauth/create"
}

func (Paths) GetPollPath() string {
	return "/api/lnauth/poll"
}

func (Paths) GetCallbackPath() string {
	return "/api/lnauth/callback"
}

func (Paths) GetTokenPath() string {
	return "/api/lnauth/token"
}

func (Paths) GetQRPath() string {
	return "/api/lnauth/qr"
}

func (Paths) GetAvatarPath() string {
	return "/api/lnauth/avatar"
}

// GetErrorPage is where browser-facing failures are redirected, with the
// error code and user-safe message appended as query parameters.
func (Paths) GetErrorPage() string {
	return GetEnv("LNAUTH_ERROR_PAGE", "/login/error")
}
