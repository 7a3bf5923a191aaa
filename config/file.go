package config

// file.go - optional YAML configuration file.
//
// ssh-gateway reads $XDG_CONFIG_HOME/ssh-gateway/config.yaml (falling
// back to ~/.config/ssh-gateway/config.yaml) when present.  The file
// supplies defaults; flags and the environment override it.  It is
// never created automatically.

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// FileConfig mirrors the YAML schema.  Proxy and relay use the same
// spec strings as their flags.
type FileConfig struct {
	Timeout      *int   `yaml:"timeout"` // seconds, 0 = none
	Debug        int    `yaml:"debug"`
	Proxy        string `yaml:"proxy"`
	Relay        string `yaml:"relay"`
	ProxyCommand string `yaml:"proxy_command"`
	KnownHosts   string `yaml:"known_hosts"`
	ProbeURL     string `yaml:"probe_url"`
	Builtin      bool   `yaml:"builtin"`
	Scanner      string `yaml:"scanner"`
	RelayTool    string `yaml:"relay_tool"`
	ConnectTool  string `yaml:"connect_tool"`
	SSHTool      string `yaml:"ssh_tool"`
}

// ConfigDir returns the directory searched for config.yaml.  Uses
// XDG_CONFIG_HOME if set, otherwise ~/.config/ssh-gateway.
func ConfigDir() (string, error) {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "ssh-gateway"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home: %w", err)
	}
	return filepath.Join(home, ".config", "ssh-gateway"), nil
}

// LoadFile overlays config.yaml onto cfg.  A missing file (or an
// unresolvable home directory) is not an error; a malformed file is.
func LoadFile(cfg *Config) error {
	dir, err := ConfigDir()
	if err != nil {
		return nil
	}
	path := filepath.Join(dir, "config.yaml")
	b, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("read %s: %w", path, err)
	}
	var fc FileConfig
	if err := yaml.Unmarshal(b, &fc); err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}
	return fc.apply(cfg)
}

// apply copies set values onto cfg, parsing spec strings with the same
// parsers the flags use.
func (fc *FileConfig) apply(cfg *Config) error {
	if fc.Timeout != nil && *fc.Timeout >= 0 {
		cfg.Timeout = time.Duration(*fc.Timeout) * time.Second
	}
	if fc.Debug > 0 {
		cfg.Verbose = fc.Debug
	}
	if fc.Proxy != "" {
		p, err := ParseProxySpec(fc.Proxy)
		if err != nil {
			return fmt.Errorf("config file: %w", err)
		}
		cfg.Proxy = &p
	}
	if fc.Relay != "" {
		r, err := ParseHostPort(fc.Relay, DefaultSSHPort)
		if err != nil {
			return fmt.Errorf("config file: %w", err)
		}
		cfg.Relay = &r
	}
	if fc.ProxyCommand != "" {
		cfg.ProxyCommand = fc.ProxyCommand
	}
	if fc.KnownHosts != "" {
		cfg.KnownHosts = ExpandHome(fc.KnownHosts)
	}
	if fc.ProbeURL != "" {
		cfg.ProbeURL = fc.ProbeURL
	}
	if fc.Builtin {
		cfg.Builtin = true
	}
	if fc.Scanner != "" {
		cfg.Scanner = fc.Scanner
	}
	if fc.RelayTool != "" {
		cfg.RelayTool = fc.RelayTool
	}
	if fc.ConnectTool != "" {
		cfg.ConnectTool = fc.ConnectTool
	}
	if fc.SSHTool != "" {
		cfg.SSHTool = fc.SSHTool
	}
	return nil
}

// ExpandHome replaces a leading ~/ with the user's home directory.
// The shell does this for flag values; the config file gets no shell.
func ExpandHome(path string) string {
	if !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[2:])
}
