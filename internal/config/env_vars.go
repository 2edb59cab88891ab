package config

import (
	"fmt"
	"os"
)

const (
	portEnvVar    = "PORT"
	appNameVar    = "APP_NAME"
	baseURLVar    = "BASE_URL"
	secretVar     = "LNAUTH_SECRET"
	storeVar      = "LNAUTH_STORE"
	dbPathVar     = "LNAUTH_DB_PATH"
	sessionTTLVar = "LNAUTH_SESSION_TTL"
)

type EnvConfig interface {
	GetPort() string
	GetAppName() string
	GetBaseURL() string
	GetSecret() string
	GetStoreKind() string
	GetDBPath() string
	GetSessionCookieName() string
	GetEnv() string
}

type EnvVars struct{}

var _ EnvConfig = EnvVars{}

func (EnvVars) GetPort() string {
	port := GetEnv(portEnvVar, "8080")
	if port != "" && port[0] != ':' {
		port = fmt.Sprintf(":%s", port)
	}
	return port
}

func (EnvVars) GetAppName() string {
	return GetEnv(appNameVar, "Lightning Auth Server")
}

// GetBaseURL returns the externally reachable root of this service. It is
// embedded in callback URLs, used as token issuer/audience and prefixed to
// avatar references.
func (EnvVars) GetBaseURL() string {
	return GetEnv(baseURLVar, "http://localhost:8080")
}

// GetSecret returns the HMAC secret used to sign identity and refresh tokens.
func (EnvVars) GetSecret() string {
	return GetEnv(secretVar, "")
}

// GetStoreKind selects the session store backend: "memory" or "sqlite".
func (EnvVars) GetStoreKind() string {
	return GetEnv(storeVar, "memory")
}

func (EnvVars) GetDBPath() string {
	return GetEnv(dbPathVar, "./data/lnauth.db")
}

// GetSessionCookieName names the host framework's session cookie. Its
// presence on the create endpoint means the caller is already logged in.
func (EnvVars) GetSessionCookieName() string {
	return GetEnv("SESSION_COOKIE_NAME", "next-auth.session-token")
}

func (EnvVars) GetEnv() string {
	env := os.Getenv("ENV")
	if env == "" {
		return "DEV"
	}
	return env
}

func GetEnv(envVar, defaultValue string) string {
	value := os.Getenv(envVar)
	if value == "" {
		return defaultValue
	}
	return value
}
