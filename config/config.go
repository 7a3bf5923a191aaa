// Package config defines the runtime configuration for ssh-gateway and
// provides helpers for parsing target, proxy, and relay address strings.
package config

import (
	"fmt"
	"net"
	"net/url"
	"regexp"
	"strconv"
	"time"

	gwerr "github.com/book/ssh-gadgets/internal/errors"
)

// ── Address family ───────────────────────────────────────────────────

// IPVersion constrains probes and tunnels to one address family.
type IPVersion int

const (
	IPAny IPVersion = iota
	IPv4Only
	IPv6Only
)

// Flag returns the command-line form ("-4", "-6") understood by the
// external tools, or "" when unconstrained.
func (v IPVersion) Flag() string {
	switch v {
	case IPv4Only:
		return "-4"
	case IPv6Only:
		return "-6"
	}
	return ""
}

// Network returns the net package dial network for TCP connections.
func (v IPVersion) Network() string {
	switch v {
	case IPv4Only:
		return "tcp4"
	case IPv6Only:
		return "tcp6"
	}
	return "tcp"
}

// ── Endpoints ────────────────────────────────────────────────────────

// Endpoint is a host/port pair.
type Endpoint struct {
	Host string
	Port int
}

// Addr returns the endpoint in dialable host:port form.
func (e Endpoint) Addr() string {
	return net.JoinHostPort(e.Host, strconv.Itoa(e.Port))
}

func (e Endpoint) String() string { return e.Addr() }

// Proxy describes a candidate HTTP proxy.
type Proxy struct {
	Host     string
	Port     int
	User     string
	Password string
}

// Addr returns the proxy in host:port form.
func (p Proxy) Addr() string {
	return net.JoinHostPort(p.Host, strconv.Itoa(p.Port))
}

// URL returns the proxy as an http:// URL, with userinfo when set,
// suitable for http.ProxyURL.
func (p Proxy) URL() *url.URL {
	u := &url.URL{Scheme: "http", Host: p.Addr()}
	if p.User != "" {
		if p.Password != "" {
			u.User = url.UserPassword(p.User, p.Password)
		} else {
			u.User = url.User(p.User)
		}
	}
	return u
}

// ── Configuration ────────────────────────────────────────────────────

// Config holds every tuneable for a single ssh-gateway run.
type Config struct {
	// ── Connection ───────────────────────────────────────────────────
	Target       Endpoint  // positional host [port]
	Local        *Endpoint // -l: alternate name tried before the target
	Proxy        *Proxy    // -x: HTTP proxy candidate
	Relay        *Endpoint // -r: SSH relay of last resort
	ProxyCommand string    // -c: command template, %h/%p expanded

	// ── Probing ──────────────────────────────────────────────────────
	ReferenceKey string        // -k: key material a scanned key must equal
	KnownHosts   string        // --known-hosts: derive ReferenceKey from here
	Timeout      time.Duration // -w: probe/connect timeout, 0 = none
	IPv4         bool          // -4
	IPv6         bool          // -6

	// ── Execution ────────────────────────────────────────────────────
	Builtin bool // relay direct connections in-process
	DryRun  bool // print the tunnel command instead of executing it

	// ── Tools ────────────────────────────────────────────────────────
	Scanner     string // host-key scanner binary
	RelayTool   string // generic TCP relay binary
	ConnectTool string // minimal connect binary run on the relay
	SSHTool     string // ssh client binary
	ProbeURL    string // well-known URL fetched through the proxy

	// ── Output ───────────────────────────────────────────────────────
	Verbose int
}

// IPVersion folds the two mutually exclusive flags into one constraint.
// Validate rejects the case where both are set.
func (c *Config) IPVersion() IPVersion {
	switch {
	case c.IPv4:
		return IPv4Only
	case c.IPv6:
		return IPv6Only
	}
	return IPAny
}

// TimeoutSeconds returns the timeout as whole seconds for tools that
// take second-granularity flags.
func (c *Config) TimeoutSeconds() int {
	return int(c.Timeout / time.Second)
}

// ── Spec parsers ─────────────────────────────────────────────────────

// hostPortRe matches host[:port].
var hostPortRe = regexp.MustCompile(`^([^:@]+)(?::(\d+))?$`)

// ParseHostPort extracts host and port from a string such as
// "bastion.example.com:2222".  Port defaults to defPort.
func ParseHostPort(spec string, defPort int) (Endpoint, error) {
	m := hostPortRe.FindStringSubmatch(spec)
	if m == nil {
		return Endpoint{}, fmt.Errorf("invalid address %q – expected host[:port]", spec)
	}
	ep := Endpoint{Host: m[1], Port: defPort}
	if m[2] != "" {
		port, err := strconv.Atoi(m[2])
		if err != nil || port < 1 || port > 65535 {
			return Endpoint{}, fmt.Errorf("invalid port %q", m[2])
		}
		ep.Port = port
	}
	return ep, nil
}

// proxyRe matches [user[:pass]@]host[:port].
var proxyRe = regexp.MustCompile(`^(?:([^:@]+)(?::([^@]*))?@)?([^:@]+)(?::(\d+))?$`)

// ParseProxySpec extracts credentials, host, and port from a string
// such as "alice:secret@proxy.example.com:3128".  Port defaults to
// DefaultProxyPort.
func ParseProxySpec(spec string) (Proxy, error) {
	m := proxyRe.FindStringSubmatch(spec)
	if m == nil {
		return Proxy{}, fmt.Errorf("invalid proxy %q – expected [user[:pass]@]host[:port]", spec)
	}
	p := Proxy{User: m[1], Password: m[2], Host: m[3], Port: DefaultProxyPort}
	if m[4] != "" {
		port, err := strconv.Atoi(m[4])
		if err != nil || port < 1 || port > 65535 {
			return Proxy{}, fmt.Errorf("invalid proxy port %q", m[4])
		}
		p.Port = port
	}
	return p, nil
}

// ── Validation ───────────────────────────────────────────────────────

// Validate checks that the configuration is internally consistent.
// It must pass before any probe runs.
func (c *Config) Validate() error {
	if c.IPv4 && c.IPv6 {
		return &gwerr.ConfigError{
			Field:   "ipv6",
			Message: "mutually exclusive with --ipv4",
			Hint:    "pick one address family or neither",
		}
	}
	if c.Target.Host == "" {
		return &gwerr.ConfigError{
			Field:   "target",
			Message: "target host is required",
			Hint:    "usage: ssh-gateway [options] host [port]",
		}
	}
	if c.Target.Port < 1 || c.Target.Port > 65535 {
		return &gwerr.ConfigError{
			Field:   "port",
			Value:   c.Target.Port,
			Message: "out of range 1-65535",
		}
	}
	if c.Timeout < 0 {
		return &gwerr.ConfigError{
			Field:   "timeout",
			Value:   c.TimeoutSeconds(),
			Message: "must be zero or positive",
		}
	}
	return nil
}
