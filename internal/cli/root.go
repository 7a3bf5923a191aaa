// Package cli wires the flags, the config file, and the environment
// into a Config, runs the strategy cascade, and dispatches the
// selected outcome.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	flag "github.com/spf13/pflag"

	"github.com/book/ssh-gadgets/config"
	"github.com/book/ssh-gadgets/internal/command"
	"github.com/book/ssh-gadgets/internal/core"
	gwerr "github.com/book/ssh-gadgets/internal/errors"
	"github.com/book/ssh-gadgets/internal/hostkeys"
	"github.com/book/ssh-gadgets/internal/metrics"
	"github.com/book/ssh-gadgets/internal/probe"
	"github.com/book/ssh-gadgets/internal/relay"
	"github.com/book/ssh-gadgets/util"
)

// version is overridable at link time:
//
//	go build -ldflags "-X github.com/book/ssh-gadgets/internal/cli.version=2.0.0"
var version = "1.0.0" //nolint:gochecknoglobals

// stdout is where --dry-run and --version write.  Swappable so tests
// can capture it; every diagnostic goes to stderr instead, because
// stdout belongs to the tunnel.
var stdout io.Writer = os.Stdout //nolint:gochecknoglobals

// Execute parses args, selects a connection strategy, and either hands
// the process to the tunnel command or relays in-process.
func Execute(ctx context.Context, args []string) error {
	cfg := config.Default()
	if err := config.LoadFile(cfg); err != nil {
		return err
	}

	fs := flag.NewFlagSet("ssh-gateway", flag.ContinueOnError)

	var (
		localSpec, proxySpec, relaySpec string
		timeoutSec                      = cfg.TimeoutSeconds()
		verbose                         int
		showVersion, showHelp           bool
	)

	// ── strategies ───────────────────────────────────────────────
	fs.StringVarP(&localSpec, "local", "l", "", "Alternate local name tried first (host[:port])")
	fs.StringVarP(&proxySpec, "proxy", "x", "", "HTTP proxy candidate ([user[:pass]@]host[:port])")
	fs.StringVarP(&relaySpec, "relay", "r", "", "SSH relay of last resort (host[:port])")
	fs.StringVarP(&cfg.ProxyCommand, "proxy-command", "c", cfg.ProxyCommand, "Proxy command template, %h/%p expanded")

	// ── probing ──────────────────────────────────────────────────
	fs.StringVarP(&cfg.ReferenceKey, "accept-key", "k", "", "Key material a scanned host key must equal")
	fs.StringVar(&cfg.KnownHosts, "known-hosts", cfg.KnownHosts, "Derive the reference key from this known_hosts file")
	fs.IntVarP(&timeoutSec, "timeout", "w", timeoutSec, "Probe/connect timeout in seconds (0 = none)")
	fs.BoolVarP(&cfg.IPv4, "ipv4", "4", false, "Force IPv4")
	fs.BoolVarP(&cfg.IPv6, "ipv6", "6", false, "Force IPv6")

	// ── execution ────────────────────────────────────────────────
	fs.BoolVar(&cfg.Builtin, "builtin", cfg.Builtin, "Relay direct connections in-process")
	fs.BoolVar(&cfg.DryRun, "dry-run", false, "Print the tunnel command instead of executing it")

	// ── output ───────────────────────────────────────────────────
	fs.CountVarP(&verbose, "verbose", "v", "Increase verbosity (repeatable)")
	fs.BoolVar(&showVersion, "version", false, "Print version and exit")
	fs.BoolVarP(&showHelp, "help", "h", false, "Show this help")

	fs.Usage = func() { printUsage(fs) }

	// ── parse ────────────────────────────────────────────────────
	if err := fs.Parse(args); err != nil {
		return err
	}

	if showHelp || len(args) == 0 {
		printUsage(fs)
		return nil
	}
	if showVersion {
		fmt.Fprintf(stdout, "ssh-gateway %s\n", version)
		return nil
	}

	cfg.Timeout = time.Duration(timeoutSec) * time.Second
	if fs.Changed("verbose") {
		cfg.Verbose = verbose
	}

	// ── positional arguments ─────────────────────────────────────
	if err := parsePositional(cfg, fs.Args()); err != nil {
		return err
	}

	// ── strategy specs ───────────────────────────────────────────
	if localSpec != "" {
		ep, err := config.ParseHostPort(localSpec, cfg.Target.Port)
		if err != nil {
			return &gwerr.ConfigError{Field: "local", Value: localSpec, Message: err.Error()}
		}
		cfg.Local = &ep
	}
	if proxySpec != "" {
		p, err := config.ParseProxySpec(proxySpec)
		if err != nil {
			return &gwerr.ConfigError{Field: "proxy", Value: proxySpec, Message: err.Error()}
		}
		cfg.Proxy = &p
	}
	if relaySpec != "" {
		r, err := config.ParseHostPort(relaySpec, config.DefaultSSHPort)
		if err != nil {
			return &gwerr.ConfigError{Field: "relay", Value: relaySpec, Message: err.Error()}
		}
		cfg.Relay = &r
	}

	// ── environment & validation ─────────────────────────────────
	config.LoadFromEnv(cfg)
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger := util.NewLogger(cfg.Verbose)

	if cfg.Proxy != nil && cfg.Proxy.User != "" && cfg.Proxy.Password == "" {
		promptProxyPassword(cfg.Proxy, logger)
	}
	if cfg.ReferenceKey == "" && cfg.KnownHosts != "" {
		loadReferenceKey(cfg, logger)
	}

	// ── cascade ──────────────────────────────────────────────────
	cascade := &core.Cascade{
		Config: cfg,
		Probes: &probe.Runner{Config: cfg, Logger: logger},
		Logger: logger,
	}
	outcome, err := cascade.Select(ctx)
	if err != nil {
		return err
	}

	argv := core.Build(cfg, outcome)

	// ── dispatch ─────────────────────────────────────────────────
	if cfg.DryRun {
		fmt.Fprintln(stdout, strings.Join(argv, " "))
		return nil
	}
	if cfg.Builtin {
		return runBuiltin(ctx, cfg, outcome, logger)
	}

	logger.Verbose("exec: %s", strings.Join(argv, " "))
	return command.Exec(argv)
}

// ── helpers ──────────────────────────────────────────────────────────

func parsePositional(cfg *config.Config, remaining []string) error {
	if len(remaining) > 2 {
		return &gwerr.ConfigError{
			Field:   "target",
			Message: fmt.Sprintf("unexpected arguments %q", remaining[2:]),
			Hint:    "usage: ssh-gateway [options] host [port]",
		}
	}
	if len(remaining) >= 1 {
		cfg.Target = config.Endpoint{Host: remaining[0], Port: config.DefaultSSHPort}
	}
	if len(remaining) == 2 {
		port, err := strconv.Atoi(remaining[1])
		if err != nil {
			return &gwerr.ConfigError{Field: "port", Value: remaining[1], Message: "not a number"}
		}
		// Validate checks the range.
		cfg.Target.Port = port
	}
	return nil
}

// loadReferenceKey fills cfg.ReferenceKey from the known_hosts file.
// Lookup problems are logged and otherwise ignored: without a
// reference the scan accepts any key, it does not fail the run.
func loadReferenceKey(cfg *config.Config, logger *util.Logger) {
	material, err := hostkeys.Lookup(cfg.KnownHosts, cfg.Target)
	switch {
	case err != nil:
		logger.Warn("%v", err)
	case material == "":
		logger.Verbose("no known_hosts entry for %s, any key accepted", cfg.Target)
	default:
		logger.Verbose("reference key for %s loaded from %s", cfg.Target, cfg.KnownHosts)
		cfg.ReferenceKey = material
	}
}

// runBuiltin relays a direct connection in-process.  Every other
// outcome needs its external tunnel program.
func runBuiltin(ctx context.Context, cfg *config.Config, outcome core.Outcome, logger *util.Logger) error {
	switch outcome.Method {
	case core.DirectLocal, core.DirectPublic:
	default:
		return &gwerr.ConfigError{
			Field:   "builtin",
			Message: fmt.Sprintf("the %s method needs its external tunnel program", outcome.Method),
			Hint:    "in-process relaying supports direct connections only",
		}
	}

	r := &relay.Relay{
		Target:    outcome.Target,
		IPVersion: cfg.IPVersion(),
		Timeout:   cfg.Timeout,
		Logger:    logger,
		Metrics:   metrics.New(),
	}
	return r.Run(ctx)
}

func printUsage(fs *flag.FlagSet) {
	fmt.Fprintf(os.Stderr, `ssh-gateway – connection strategy prober v%s

Figures out how a host can be reached (directly, through an HTTP proxy,
via a proxy command, or over an SSH relay) and replaces itself with the
matching tunnel program.  Designed as an ssh ProxyCommand helper.

Usage:
  ssh-gateway [options] <host> [port]

Options:
`, version)
	fs.PrintDefaults()
	fmt.Fprintf(os.Stderr, `
Examples:
  ssh-gateway db.example.com                     Probe, then connect to port 22
  ssh-gateway -l db.internal db.example.com      Try an internal name first
  ssh-gateway -x alice@proxy:3128 db.example.com Fall back to an HTTP proxy
  ssh-gateway -r bastion db.example.com          Last-resort SSH relay
  ssh-gateway --dry-run -v db.example.com 2222   Show the chosen command

ssh_config:
  Host *.example.com
    ProxyCommand ssh-gateway -x proxy:3128 -r bastion %%h %%p
`)
}
