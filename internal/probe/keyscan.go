package probe

import (
	"context"
	"io"
	"os/exec"
	"strconv"
	"strings"
	"time"

	"github.com/book/ssh-gadgets/config"
	"github.com/book/ssh-gadgets/util"
)

// KeyScan checks whether a host answers the SSH key exchange by
// shelling out to a scanner tool and inspecting the key lines it
// returns.
type KeyScan struct {
	Scanner      string // scanner binary, e.g. "ssh-keyscan"
	Target       config.Endpoint
	IPVersion    config.IPVersion
	Timeout      time.Duration // handed to the tool; 0 = tool default
	ReferenceKey string        // exact key material to require, "" = any
	Logger       *util.Logger
}

// Run reports whether the target returned at least one host key and,
// when ReferenceKey is set, whether one of them matches it exactly.
// Spawn errors, timeouts, and empty scans all collapse to false.
func (p *KeyScan) Run(ctx context.Context) bool {
	// Bound the subprocess a little past the timeout handed to the
	// tool itself, in case the scanner wedges.
	if p.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.Timeout+config.ScanGrace)
		defer cancel()
	}

	args := p.args()
	p.Logger.Verbose("scanning %s for host keys", p.Target)
	p.Logger.Debug("keyscan: %s %s", p.Scanner, strings.Join(args, " "))

	start := time.Now()
	cmd := exec.CommandContext(ctx, p.Scanner, args...)
	cmd.Stderr = io.Discard // the scanner chats on stderr; not our signal

	out, err := cmd.Output()
	if err != nil && len(out) == 0 {
		p.Logger.Debug("keyscan: %v", err)
		return false
	}

	keys := parseKeyLines(string(out))
	p.Logger.Debug("keyscan: %d key(s) from %s in %s",
		len(keys), p.Target, time.Since(start).Truncate(time.Millisecond))

	if len(keys) == 0 {
		return false
	}
	if p.ReferenceKey == "" {
		return true
	}
	for _, k := range keys {
		if k == p.ReferenceKey {
			return true
		}
	}
	p.Logger.Debug("keyscan: %d key(s) but none match the reference", len(keys))
	return false
}

// args assembles the scanner's argument vector.  Flags whose
// configuration is absent are omitted entirely.
func (p *KeyScan) args() []string {
	var args []string
	if f := p.IPVersion.Flag(); f != "" {
		args = append(args, f)
	}
	if p.Timeout > 0 {
		args = append(args, "-T", strconv.Itoa(int(p.Timeout/time.Second)))
	}
	if p.Target.Port != config.DefaultSSHPort {
		args = append(args, "-p", strconv.Itoa(p.Target.Port))
	}
	return append(args, p.Target.Host)
}

// parseKeyLines extracts the key material column from scanner output.
// Lines are "host keytype material [comment]"; anything shorter is
// noise and skipped.
func parseKeyLines(out string) []string {
	var keys []string
	for _, line := range strings.Split(out, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) < 3 {
			continue
		}
		keys = append(keys, fields[2])
	}
	return keys
}
