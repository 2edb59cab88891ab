package config

type Config interface {
	EnvConfig
	IntervalsConfig
	PathsConfig
}

type mainConfig struct {
	EnvVars
	Intervals
	Paths
}

func New() Config {
	return mainConfig{}
}
