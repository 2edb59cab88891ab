package config

import "time"

type IntervalsConfig interface {
	GetPollInterval() time.Duration
	GetCreateInterval() time.Duration
	GetIDTokenExpiry() time.Duration
	GetRefreshTokenExpiry() time.Duration
	GetSessionTTL() time.Duration
}

type Intervals struct{}

var _ IntervalsConfig = Intervals{}

// GetPollInterval is how often clients should check for login completion.
func (Intervals) GetPollInterval() time.Duration {
	return time.Second
}

// GetCreateInterval is how often clients should proactively replace an
// unconsumed challenge before it can go stale.
func (Intervals) GetCreateInterval() time.Duration {
	return 5 * time.Minute
}

func (Intervals) GetIDTokenExpiry() time.Duration {
	return 4 * time.Hour
}

func (Intervals) GetRefreshTokenExpiry() time.Duration {
	return 30 * 24 * time.Hour
}

// GetSessionTTL is how long an unconsumed session survives in stores that
// support expiry. Kept well above the create interval so clients replace
// challenges before the store drops them.
func (Intervals) GetSessionTTL() time.Duration {
	if v := GetEnv(sessionTTLVar, ""); v != "" {
		if ttl, err := time.ParseDuration(v); err == nil {
			return ttl
		}
	}
	return 15 * time.Minute
}
