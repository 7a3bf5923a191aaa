package config

// loader.go - configuration overrides from environment variables.
//
// Precedence order (highest wins):
//   1. Environment variables  (this file)
//   2. CLI flags  (internal/cli)
//   3. Config file  (file.go)
//   4. Defaults  (defaults.go)
//
// Unlike most tools, the environment outranks the flags here: the
// overrides exist so a wrapping ssh_config can crank up logging or
// stretch timeouts without editing every ProxyCommand line.

import (
	"os"
	"strconv"
	"time"
)

// Environment variable names.  Only these two are honored.
const (
	EnvDebug   = "SSH_GATEWAY_DEBUG"
	EnvTimeout = "SSH_GATEWAY_TIMEOUT"
)

// LoadFromEnv overlays the two supported environment variables onto
// cfg.  Call it AFTER flag parsing; a set, well-formed variable wins
// over every other source.
func LoadFromEnv(cfg *Config) {
	if v, ok := envInt(EnvDebug); ok && v >= 0 {
		cfg.Verbose = v
	}
	if v, ok := envInt(EnvTimeout); ok && v >= 0 {
		cfg.Timeout = time.Duration(v) * time.Second
	}
}

func envInt(key string) (int, bool) {
	v := os.Getenv(key)
	if v == "" {
		return 0, false
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, false
	}
	return n, true
}
