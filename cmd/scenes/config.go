package main

import (
	"time"

	"go.llib.dev/frameless/pkg/env"
)

// Config is read from the environment.
// The log level follows the LOG_LEVEL variable of the logger.
type Config struct {
	ServiceLatency time.Duration `env:"SCENES_SERVICE_LATENCY" default:"0s"`
	DemoEmail      string        `env:"SCENES_DEMO_EMAIL" default:"test@example.com"`
	DemoPassword   string        `env:"SCENES_DEMO_PASSWORD" default:"password123"`
}

func LoadConfig() (Config, error) {
	var c Config
	return c, env.Load(&c)
}
