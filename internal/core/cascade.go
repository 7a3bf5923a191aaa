// Package core implements the strategy cascade: an ordered set of
// reachability probes whose first success decides how the tunnel to
// the target is established.
//
// Architecture layers (bottom → top):
//
//	probe, command  →  core  →  cli  →  cmd/ssh-gateway
//
// The cascade is the single decision point.  It runs exactly once per
// invocation; a probe failure moves it to the next strategy and never
// aborts it.  Only exhausting every strategy is an error.
package core

import (
	"context"

	"github.com/book/ssh-gadgets/config"
	"github.com/book/ssh-gadgets/internal/command"
	gwerr "github.com/book/ssh-gadgets/internal/errors"
	"github.com/book/ssh-gadgets/util"
)

// Prober answers the reachability questions the cascade asks.  The
// real implementation is probe.Runner; tests substitute a scripted
// fake.
type Prober interface {
	ScanKeys(ctx context.Context, target config.Endpoint) bool
	CheckProxy(ctx context.Context, proxy config.Proxy) bool
	CheckCommand(ctx context.Context, cmd string) bool
}

// Cascade evaluates connection strategies in fixed priority order:
// local name, public name, HTTP proxy, proxy command, relay.  Cheaper
// and more direct transports come first; the relay comes last because
// it costs an extra network hop.
type Cascade struct {
	Config *config.Config
	Probes Prober
	Logger *util.Logger
}

// Select tries each configured strategy in order, short-circuiting on
// the first success.  Strategies without configuration are skipped,
// except the public-name scan, which always runs.
func (c *Cascade) Select(ctx context.Context) (Outcome, error) {
	cfg := c.Config

	if cfg.Local != nil {
		c.Logger.Info("trying local name %s", cfg.Local)
		if c.Probes.ScanKeys(ctx, *cfg.Local) {
			return c.selected(Outcome{Method: DirectLocal, Target: *cfg.Local})
		}
	}

	c.Logger.Info("trying %s directly", cfg.Target)
	if c.Probes.ScanKeys(ctx, cfg.Target) {
		return c.selected(Outcome{Method: DirectPublic, Target: cfg.Target})
	}

	if cfg.Proxy != nil {
		c.Logger.Info("trying HTTP proxy %s", cfg.Proxy.Addr())
		if c.Probes.CheckProxy(ctx, *cfg.Proxy) {
			return c.selected(Outcome{Method: HTTPProxy, Target: cfg.Target, Proxy: cfg.Proxy})
		}
	}

	if cfg.ProxyCommand != "" {
		expanded := command.Expand(cfg.ProxyCommand, cfg.Target)
		c.Logger.Info("trying proxy command %q", expanded)
		if c.Probes.CheckCommand(ctx, expanded) {
			return c.selected(Outcome{Method: ProxyCommand, Target: cfg.Target, Command: expanded})
		}
	}

	if cfg.Relay != nil {
		// The relay is accepted as configured, not probed: verifying it
		// would cost an SSH round trip on the path that is already the
		// last resort.
		return c.selected(Outcome{Method: Relay, Target: cfg.Target, Relay: cfg.Relay})
	}

	return Outcome{}, gwerr.ErrNoMethod
}

func (c *Cascade) selected(o Outcome) (Outcome, error) {
	c.Logger.Info("connection method: %s", o.Method)
	return o, nil
}
