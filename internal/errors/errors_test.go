package errors

import (
	"fmt"
	"io"
	"testing"
)

func TestNetworkError_Format(t *testing.T) {
	tests := []struct {
		name string
		err  NetworkError
		want string
	}{
		{
			name: "dial",
			err:  NetworkError{Op: "dial", Addr: "example.com:22", Err: io.EOF},
			want: "dial example.com:22: EOF",
		},
		{
			name: "read",
			err:  NetworkError{Op: "read", Addr: "10.0.0.1:22", Err: fmt.Errorf("connection reset")},
			want: "read 10.0.0.1:22: connection reset",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestNetworkError_Unwrap(t *testing.T) {
	err := &NetworkError{Op: "dial", Addr: "x", Err: io.EOF}
	if !Is(err, io.EOF) {
		t.Error("should unwrap to io.EOF")
	}
}

func TestConfigError_Format(t *testing.T) {
	tests := []struct {
		name string
		err  ConfigError
		want string
	}{
		{
			name: "with value and hint",
			err: ConfigError{
				Field:   "proxy",
				Value:   "bad@@spec",
				Message: "expected [user[:pass]@]host[:port]",
				Hint:    "see --help for examples",
			},
			want: "config: --proxy=bad@@spec: expected [user[:pass]@]host[:port]\n  hint: see --help for examples",
		},
		{
			name: "missing value no hint",
			err: ConfigError{
				Field:   "ipv6",
				Message: "mutually exclusive with --ipv4",
			},
			want: "config: --ipv6: mutually exclusive with --ipv4",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("got:\n%s\nwant:\n%s", got, tt.want)
			}
		})
	}
}

func TestWrap(t *testing.T) {
	inner := fmt.Errorf("connection refused")
	err := Wrap("dial", "10.0.0.1:22", inner)

	if err.Op != "dial" || err.Addr != "10.0.0.1:22" {
		t.Errorf("wrong fields: Op=%q Addr=%q", err.Op, err.Addr)
	}
	if !Is(err, inner) {
		t.Error("should unwrap to inner error")
	}
}

func TestErrNoMethod(t *testing.T) {
	wrapped := fmt.Errorf("probing done: %w", ErrNoMethod)
	if !Is(wrapped, ErrNoMethod) {
		t.Error("wrapped sentinel should match ErrNoMethod")
	}
	if got := ErrNoMethod.Error(); got != "no suitable connection method" {
		t.Errorf("message = %q", got)
	}
}
