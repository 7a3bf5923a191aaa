package probe

import (
	"bufio"
	"context"
	"os"
	"os/exec"
	"regexp"
	"strings"
	"time"

	"github.com/book/ssh-gadgets/util"
)

// bannerRe matches an SSH protocol version banner such as
// "SSH-2.0-OpenSSH_9.0".
var bannerRe = regexp.MustCompile(`^SSH-2\.\d`)

// CommandCheck validates a proxy command by running it once and
// expecting an SSH banner on its standard output.  The spawned child
// is disposable: when the strategy wins, the tunnel is a fresh
// invocation of the same command.
type CommandCheck struct {
	Command string        // expanded command line
	Timeout time.Duration // 0 = wait forever
	Logger  *util.Logger
}

// Run reports whether the command produced a valid banner before the
// deadline.  Exactly one of {banner line, read error, timeout} decides
// the outcome, and the deadline timer is always disarmed on return.
func (p *CommandCheck) Run(ctx context.Context) bool {
	argv := strings.Fields(p.Command)
	if len(argv) == 0 {
		p.Logger.Debug("proxy command: empty command")
		return false
	}

	p.Logger.Verbose("validating proxy command %q", p.Command)

	cmd := exec.Command(argv[0], argv[1:]...)
	cmd.Stderr = os.Stderr // let the child complain where ssh would

	stdin, err := cmd.StdinPipe()
	if err != nil {
		p.Logger.Debug("proxy command: %v", err)
		return false
	}
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		stdin.Close()
		p.Logger.Debug("proxy command: %v", err)
		return false
	}

	if err := cmd.Start(); err != nil {
		p.Logger.Debug("proxy command: spawn: %v", err)
		return false
	}
	// The probe child never becomes the tunnel; kill and reap it on
	// the way out.
	defer func() {
		stdin.Close()
		cmd.Process.Kill() //nolint:errcheck
		cmd.Wait()         //nolint:errcheck
	}()

	lineCh := make(chan string, 1)
	errCh := make(chan error, 1)
	go func() {
		line, err := bufio.NewReader(stdout).ReadString('\n')
		if err != nil && line == "" {
			errCh <- err
			return
		}
		lineCh <- line
	}()

	// A nil channel blocks forever, which is exactly what Timeout = 0
	// means here.
	var deadline <-chan time.Time
	if p.Timeout > 0 {
		timer := time.NewTimer(p.Timeout)
		defer timer.Stop()
		deadline = timer.C
	}

	select {
	case line := <-lineCh:
		return p.classify(line)
	case err := <-errCh:
		p.Logger.Debug("proxy command: read: %v", err)
		return false
	case <-deadline:
		p.Logger.Debug("proxy command: timed out after %s", p.Timeout)
		return false
	case <-ctx.Done():
		p.Logger.Debug("proxy command: %v", ctx.Err())
		return false
	}
}

// classify checks the banner shape and reports the offending line when
// it does not match.
func (p *CommandCheck) classify(line string) bool {
	line = strings.TrimRight(line, "\r\n")
	if bannerRe.MatchString(line) {
		p.Logger.Debug("proxy command: banner %q", line)
		return true
	}
	p.Logger.Debug("proxy command: unexpected response %q", line)
	return false
}
