package cli

import (
	"fmt"
	"os"

	"golang.org/x/term"

	"github.com/book/ssh-gadgets/config"
	"github.com/book/ssh-gadgets/util"
)

// promptProxyPassword asks for the proxy password on the controlling
// terminal when -x named a user but no password.  Stdin and
// stdout belong to the tunnel, so the prompt only ever talks to
// /dev/tty; without one (ssh in BatchMode, cron) it is skipped and the
// proxy is tried with the bare user.
func promptProxyPassword(p *config.Proxy, logger *util.Logger) {
	tty, err := os.OpenFile("/dev/tty", os.O_RDWR, 0)
	if err != nil {
		logger.Debug("no controlling terminal, proxy password prompt skipped")
		return
	}
	defer tty.Close()

	fd := int(tty.Fd())
	if !term.IsTerminal(fd) {
		return
	}

	fmt.Fprintf(tty, "proxy password for %s@%s: ", p.User, p.Addr())
	pw, err := term.ReadPassword(fd)
	fmt.Fprintln(tty)
	if err != nil {
		logger.Warn("password prompt: %v", err)
		return
	}
	p.Password = string(pw)
}
