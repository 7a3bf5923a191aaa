// Package probe implements the reachability checks behind the strategy
// cascade.  Each probe answers one question with a bare yes/no: a
// failure is never an error, only a reason to try the next strategy.
// Diagnostic detail goes to the logger at debug level.
package probe

import (
	"context"

	"github.com/book/ssh-gadgets/config"
	"github.com/book/ssh-gadgets/util"
)

// Runner assembles per-probe inputs from the shared configuration and
// executes the real probes.  It satisfies core.Prober; tests swap in a
// fake instead.
type Runner struct {
	Config *config.Config
	Logger *util.Logger
}

// ScanKeys runs the host-key scan against target.
func (r *Runner) ScanKeys(ctx context.Context, target config.Endpoint) bool {
	p := &KeyScan{
		Scanner:      r.Config.Scanner,
		Target:       target,
		IPVersion:    r.Config.IPVersion(),
		Timeout:      r.Config.Timeout,
		ReferenceKey: r.Config.ReferenceKey,
		Logger:       r.Logger,
	}
	return p.Run(ctx)
}

// CheckProxy runs the HTTP proxy check against proxy.
func (r *Runner) CheckProxy(ctx context.Context, proxy config.Proxy) bool {
	p := &ProxyCheck{
		Proxy:   proxy,
		URL:     r.Config.ProbeURL,
		Timeout: r.Config.Timeout,
		Logger:  r.Logger,
	}
	return p.Run(ctx)
}

// CheckCommand validates an already-expanded proxy command.
func (r *Runner) CheckCommand(ctx context.Context, command string) bool {
	p := &CommandCheck{
		Command: command,
		Timeout: r.Config.Timeout,
		Logger:  r.Logger,
	}
	return p.Run(ctx)
}
