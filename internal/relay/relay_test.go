package relay

import (
	"bytes"
	"context"
	"io"
	"net"
	"strings"
	"testing"
	"time"

	"github.com/book/ssh-gadgets/config"
	gwerr "github.com/book/ssh-gadgets/internal/errors"
	"github.com/book/ssh-gadgets/internal/metrics"
	"github.com/book/ssh-gadgets/util"
)

// echoServer accepts a single connection and echoes everything back.
func echoServer(t *testing.T) config.Endpoint {
	t.Helper()

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { ln.Close() })

	go func() {
		conn, err := ln.Accept()
		if err != nil {
			return
		}
		io.Copy(conn, conn) //nolint:errcheck
		conn.Close()
	}()

	return config.Endpoint{
		Host: "127.0.0.1",
		Port: ln.Addr().(*net.TCPAddr).Port,
	}
}

// TestRelay_RoundTrip verifies the builtin relay moves bytes in both
// directions and counts them.
func TestRelay_RoundTrip(t *testing.T) {
	var out bytes.Buffer
	r := &Relay{
		Target:  echoServer(t),
		Timeout: 5 * time.Second,
		Logger:  util.NewLogger(0),
		Metrics: metrics.New(),
		Stdin:   strings.NewReader("ping\n"),
		Stdout:  &out,
	}

	if err := r.Run(context.Background()); err != nil {
		t.Fatal(err)
	}
	if got := out.String(); got != "ping\n" {
		t.Errorf("stdout = %q, want %q", got, "ping\n")
	}
	if n := r.Metrics.TotalBytesOut(); n != 5 {
		t.Errorf("bytes out = %d, want 5", n)
	}
	if n := r.Metrics.TotalBytesIn(); n != 5 {
		t.Errorf("bytes in = %d, want 5", n)
	}
}

// TestRelay_DialFailure verifies a dead target surfaces as a
// NetworkError rather than a panic or a hang.
func TestRelay_DialFailure(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatal(err)
	}
	target := config.Endpoint{
		Host: "127.0.0.1",
		Port: ln.Addr().(*net.TCPAddr).Port,
	}
	ln.Close() // free the port so the dial is refused

	r := &Relay{
		Target:  target,
		Timeout: 2 * time.Second,
		Logger:  util.NewLogger(0),
		Stdin:   strings.NewReader(""),
		Stdout:  io.Discard,
	}

	err = r.Run(context.Background())
	if err == nil {
		t.Fatal("Run() should fail when the target is unreachable")
	}
	var nerr *gwerr.NetworkError
	if !gwerr.As(err, &nerr) {
		t.Fatalf("err = %T, want *NetworkError", err)
	}
	if nerr.Op != "dial" {
		t.Errorf("op = %q, want %q", nerr.Op, "dial")
	}
}

// TestRelay_NilMetrics verifies the relay works without a collector.
func TestRelay_NilMetrics(t *testing.T) {
	var out bytes.Buffer
	r := &Relay{
		Target:  echoServer(t),
		Timeout: 5 * time.Second,
		Logger:  util.NewLogger(0),
		Stdin:   strings.NewReader("hello"),
		Stdout:  &out,
	}

	if err := r.Run(context.Background()); err != nil {
		t.Fatal(err)
	}
	if got := out.String(); got != "hello" {
		t.Errorf("stdout = %q, want %q", got, "hello")
	}
}
