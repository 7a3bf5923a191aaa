package core

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/book/ssh-gadgets/config"
)

// Build constructs the argument vector of the external program that
// becomes the live transport for the selected outcome.  This is the
// single point mapping strategies to tunnel commands.
func Build(cfg *config.Config, o Outcome) []string {
	switch o.Method {
	case DirectLocal, DirectPublic:
		return buildDirect(cfg, o.Target)
	case HTTPProxy:
		return buildProxy(cfg, o)
	case ProxyCommand:
		return strings.Fields(o.Command)
	case Relay:
		return buildRelay(cfg, o)
	}
	return nil
}

// ── argv builders ────────────────────────────────────────────────────

// buildDirect produces, for example,
//
//	socat -4 - TCP:host:22,connect-timeout=5
func buildDirect(cfg *config.Config, target config.Endpoint) []string {
	argv := []string{cfg.RelayTool}
	if flag := cfg.IPVersion().Flag(); flag != "" {
		argv = append(argv, flag)
	}
	addr := fmt.Sprintf("TCP:%s:%d", target.Host, target.Port)
	if cfg.Timeout > 0 {
		addr += fmt.Sprintf(",connect-timeout=%d", cfg.TimeoutSeconds())
	}
	return append(argv, "-", addr)
}

// buildProxy produces, for example,
//
//	socat - PROXY:proxy:host:22,proxyport=3128,proxyauth=user:pass
//
// The proxyport option is omitted when the proxy listens on the relay
// tool's own default.
func buildProxy(cfg *config.Config, o Outcome) []string {
	addr := fmt.Sprintf("PROXY:%s:%s:%d", o.Proxy.Host, o.Target.Host, o.Target.Port)
	if o.Proxy.Port != config.DefaultProxyPort {
		addr += fmt.Sprintf(",proxyport=%d", o.Proxy.Port)
	}
	if o.Proxy.User != "" {
		addr += fmt.Sprintf(",proxyauth=%s:%s", o.Proxy.User, o.Proxy.Password)
	}
	if cfg.Timeout > 0 {
		addr += fmt.Sprintf(",connect-timeout=%d", cfg.TimeoutSeconds())
	}
	return []string{cfg.RelayTool, "-", addr}
}

// buildRelay produces, for example,
//
//	ssh -p 2222 relay nc host 22
//
// The far end runs the minimal connect tool rather than the full relay
// binary, which cannot be assumed to exist on the relay host.
func buildRelay(cfg *config.Config, o Outcome) []string {
	argv := []string{cfg.SSHTool}
	if o.Relay.Port != config.DefaultSSHPort {
		argv = append(argv, "-p", strconv.Itoa(o.Relay.Port))
	}
	return append(argv,
		o.Relay.Host,
		cfg.ConnectTool, o.Target.Host, strconv.Itoa(o.Target.Port))
}
