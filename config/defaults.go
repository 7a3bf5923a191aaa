package config

import "time"

// ── Default values ───────────────────────────────────────────────────
//
// All tuneable defaults live here so they are easy to audit and reuse
// across CLI flags, config file parsing, and environment variable
// loading.

const (
	// DefaultSSHPort is the standard SSH port, used for the target and
	// the relay when no port is given.
	DefaultSSHPort = 22

	// DefaultProxyPort is the conventional HTTP proxy port.  It matches
	// the relay tool's own PROXY default, so the builder can omit the
	// proxyport option when the proxy listens here.
	DefaultProxyPort = 8080

	// DefaultTimeout bounds each probe and the tunnel connect.
	DefaultTimeout = 5 * time.Second

	// DefaultProbeURL is the well-known URL fetched through a candidate
	// HTTP proxy.  Any 2xx/3xx answer proves the proxy forwards traffic.
	DefaultProbeURL = "http://example.com/"

	// DefaultScanner retrieves host keys.
	DefaultScanner = "ssh-keyscan"

	// DefaultRelayTool is the generic TCP relay handed the data plane
	// for direct and proxied connections.
	DefaultRelayTool = "socat"

	// DefaultConnectTool is the minimal TCP-connect tool assumed to
	// exist on a relay host.
	DefaultConnectTool = "nc"

	// DefaultSSHTool reaches the relay host.
	DefaultSSHTool = "ssh"

	// ScanGrace pads the scanner subprocess deadline past the scan
	// timeout handed to the tool itself.
	ScanGrace = 1 * time.Second
)

// Default returns a Config populated with every default, ready to be
// overlaid by the config file, flags, and environment.
func Default() *Config {
	return &Config{
		Timeout:     DefaultTimeout,
		Scanner:     DefaultScanner,
		RelayTool:   DefaultRelayTool,
		ConnectTool: DefaultConnectTool,
		SSHTool:     DefaultSSHTool,
		ProbeURL:    DefaultProbeURL,
	}
}
