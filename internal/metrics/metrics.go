// Package metrics provides lightweight counters for the built-in
// relay's transfer statistics.
//
// All methods are safe for concurrent use.  A nil *Collector is a
// valid no-op receiver, so callers never need to nil-check.
package metrics

import (
	"errors"
	"fmt"
	"net"
	"sync/atomic"
	"time"
)

// Collector tracks bytes moved through the tunnel in each direction.
// A nil Collector is safe to use; all methods become no-ops.
type Collector struct {
	bytesIn  atomic.Int64 // network → stdout
	bytesOut atomic.Int64 // stdin → network
	start    time.Time
}

// New creates a collector with the start time set to now.
func New() *Collector {
	return &Collector{start: time.Now()}
}

// ── Counters ─────────────────────────────────────────────────────────

// BytesReceived records n bytes read from the network.
func (c *Collector) BytesReceived(n int64) {
	if c == nil {
		return
	}
	c.bytesIn.Add(n)
}

// BytesSent records n bytes written to the network.
func (c *Collector) BytesSent(n int64) {
	if c == nil {
		return
	}
	c.bytesOut.Add(n)
}

// TotalBytesIn returns total bytes received from the network.
func (c *Collector) TotalBytesIn() int64 {
	if c == nil {
		return 0
	}
	return c.bytesIn.Load()
}

// TotalBytesOut returns total bytes sent to the network.
func (c *Collector) TotalBytesOut() int64 {
	if c == nil {
		return 0
	}
	return c.bytesOut.Load()
}

// Uptime returns the time elapsed since New.
func (c *Collector) Uptime() time.Duration {
	if c == nil {
		return 0
	}
	return time.Since(c.start)
}

// ── Connection wrapping ──────────────────────────────────────────────

// Conn wraps conn so that every read and write updates the counters.
func (c *Collector) Conn(conn net.Conn) net.Conn {
	if c == nil {
		return conn
	}
	return &countedConn{Conn: conn, c: c}
}

type countedConn struct {
	net.Conn
	c *Collector
}

func (cc *countedConn) Read(p []byte) (int, error) {
	n, err := cc.Conn.Read(p)
	cc.c.BytesReceived(int64(n))
	return n, err
}

func (cc *countedConn) Write(p []byte) (int, error) {
	n, err := cc.Conn.Write(p)
	cc.c.BytesSent(int64(n))
	return n, err
}

// CloseWrite forwards the half-close when the underlying connection
// supports it, so EOF propagation survives the wrapping.
func (cc *countedConn) CloseWrite() error {
	if hc, ok := cc.Conn.(interface{ CloseWrite() error }); ok {
		return hc.CloseWrite()
	}
	return errors.ErrUnsupported
}

// ── Reporting ────────────────────────────────────────────────────────

// Summary returns a one-line transfer report for logging.
func (c *Collector) Summary() string {
	if c == nil {
		return "no transfer recorded"
	}
	return fmt.Sprintf("rx %d B, tx %d B in %s",
		c.bytesIn.Load(), c.bytesOut.Load(), c.Uptime().Truncate(time.Millisecond))
}
