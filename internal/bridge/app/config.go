package app

import (
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config is the bridge's environment configuration. Every field reads from a
// BRIDGE_* variable, e.g. BRIDGE_PORT or BRIDGE_DATABASE_FILE.
type Config struct {
	Env       string `default:"dev"`
	LogLevel  string `split_words:"true" default:"info"`
	LogFormat string `split_words:"true" default:"json"`

	Port         int    `default:"8080"`
	DatabaseFile string `split_words:"true" default:"bridge.db"`

	ShutdownGracePeriod  time.Duration `split_words:"true" default:"10s"`
	HousekeepingInterval time.Duration `split_words:"true" default:"1h"`
}

func LoadConfig() (Config, error) {
	var cfg Config
	if err := envconfig.Process("bridge", &cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
