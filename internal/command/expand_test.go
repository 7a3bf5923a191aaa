package command

import (
	"testing"

	"github.com/book/ssh-gadgets/config"
)

func TestExpand(t *testing.T) {
	target := config.Endpoint{Host: "example.com", Port: 22}

	tests := []struct {
		name     string
		template string
		want     string
	}{
		{"host and port", "nc %h %p", "nc example.com 22"},
		{"host only", "connect-via %h", "connect-via example.com"},
		{"port only", "dial --port=%p", "dial --port=22"},
		{"repeated markers", "%h %h %p %p", "example.com example.com 22 22"},
		{"adjacent markers", "%h%p", "example.com22"},
		{"no markers", "plain command -x", "plain command -x"},
		{"unknown marker kept", "ssh -W %h:%p %r", "ssh -W example.com:22 %r"},
		{"lone percent kept", "100% %h", "100% example.com"},
		{"trailing percent kept", "nc %h %", "nc example.com %"},
		{"empty template", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Expand(tt.template, target); got != tt.want {
				t.Errorf("Expand(%q) = %q, want %q", tt.template, got, tt.want)
			}
		})
	}
}

// TestExpand_NoRescan verifies the single-pass guarantee: a marker
// inside a substituted value is not expanded again.
func TestExpand_NoRescan(t *testing.T) {
	target := config.Endpoint{Host: "odd%phost", Port: 22}

	got := Expand("nc %h %p", target)
	want := "nc odd%phost 22"
	if got != want {
		t.Errorf("Expand() = %q, want %q", got, want)
	}
}

func TestExpand_PortDigits(t *testing.T) {
	target := config.Endpoint{Host: "example.com", Port: 2222}

	got := Expand("%h:%p", target)
	if got != "example.com:2222" {
		t.Errorf("Expand() = %q, want %q", got, "example.com:2222")
	}
}
