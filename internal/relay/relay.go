// Package relay carries the tunnel byte stream in-process.  It stands
// in for the external relay tool when --builtin is set and a direct
// strategy won the cascade.
package relay

import (
	"context"
	"io"
	"net"
	"os"
	"time"

	"github.com/book/ssh-gadgets/config"
	gwerr "github.com/book/ssh-gadgets/internal/errors"
	"github.com/book/ssh-gadgets/internal/metrics"
	"github.com/book/ssh-gadgets/util"
)

// Relay dials the target and shuttles bytes between the connection and
// the local standard streams until both directions are drained.
type Relay struct {
	Target    config.Endpoint
	IPVersion config.IPVersion
	Timeout   time.Duration // connect timeout, 0 = none
	Logger    *util.Logger
	Metrics   *metrics.Collector

	// Stdin/Stdout default to os.Stdin/os.Stdout when nil.
	// Override in tests for deterministic I/O.
	Stdin  io.Reader
	Stdout io.Writer
}

func (r *Relay) stdin() io.Reader {
	if r.Stdin != nil {
		return r.Stdin
	}
	return os.Stdin
}

func (r *Relay) stdout() io.Writer {
	if r.Stdout != nil {
		return r.Stdout
	}
	return os.Stdout
}

// Run dials the target and relays until EOF in both directions or the
// context is cancelled.  Unlike the external handoff, Run returns, so
// the caller still owns shutdown.
func (r *Relay) Run(ctx context.Context) error {
	addr := r.Target.Addr()
	r.Logger.Verbose("relaying to %s (%s)", addr, r.IPVersion.Network())

	dialer := net.Dialer{Timeout: r.Timeout}
	conn, err := dialer.DialContext(ctx, r.IPVersion.Network(), addr)
	if err != nil {
		return gwerr.Wrap("dial", addr, err)
	}
	defer conn.Close()

	r.Logger.Verbose("connected to %s", conn.RemoteAddr())

	err = util.BidirectionalCopy(ctx, r.Metrics.Conn(conn), r.stdin(), r.stdout())
	r.Logger.Verbose("%s", r.Metrics.Summary())
	return err
}
