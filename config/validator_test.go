package config

import (
	"strings"
	"testing"
	"time"

	gwerr "github.com/book/ssh-gadgets/internal/errors"
)

// TestValidate_ErrorMessages verifies that Validate returns actionable
// error messages with hints.
func TestValidate_ErrorMessages(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantSub string // substring expected in error
	}{
		{
			name:    "both address families",
			cfg:     Config{Target: Endpoint{Host: "x", Port: 22}, IPv4: true, IPv6: true},
			wantSub: "mutually exclusive",
		},
		{
			name:    "missing target",
			cfg:     Config{},
			wantSub: "target host is required",
		},
		{
			name:    "port out of range",
			cfg:     Config{Target: Endpoint{Host: "x", Port: 0}},
			wantSub: "out of range",
		},
		{
			name:    "negative timeout",
			cfg:     Config{Target: Endpoint{Host: "x", Port: 22}, Timeout: -time.Second},
			wantSub: "zero or positive",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.wantSub) {
				t.Errorf("error %q should contain %q", err.Error(), tt.wantSub)
			}
			var ce *gwerr.ConfigError
			if !gwerr.As(err, &ce) {
				t.Errorf("error should be a ConfigError, got %T", err)
			}
		})
	}
}

func TestValidate_OK(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
	}{
		{"minimal", Config{Target: Endpoint{Host: "example.com", Port: 22}}},
		{"ipv4 only", Config{Target: Endpoint{Host: "example.com", Port: 22}, IPv4: true}},
		{"zero timeout", Config{Target: Endpoint{Host: "example.com", Port: 2222}, Timeout: 0}},
		{"everything", Config{
			Target:       Endpoint{Host: "example.com", Port: 22},
			Local:        &Endpoint{Host: "example.internal", Port: 22},
			Proxy:        &Proxy{Host: "proxy", Port: 8080},
			Relay:        &Endpoint{Host: "relay", Port: 22},
			ProxyCommand: "connect %h %p",
			Timeout:      10 * time.Second,
			IPv6:         true,
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.cfg.Validate(); err != nil {
				t.Errorf("Validate() = %v, want nil", err)
			}
		})
	}
}
