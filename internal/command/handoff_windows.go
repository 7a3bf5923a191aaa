//go:build windows

package command

import (
	"fmt"
	"os"
	"os/exec"

	gwerr "github.com/book/ssh-gadgets/internal/errors"
)

// Exec runs argv as a child with inherited standard streams and exits
// with the child's status.  Windows has no execve, so the parent stays
// around as a thin shim instead of being replaced.  As on Unix, Exec
// returns only when the program could not be launched.
func Exec(argv []string) error {
	if len(argv) == 0 {
		return gwerr.New("empty tunnel command")
	}
	path, err := exec.LookPath(argv[0])
	if err != nil {
		return fmt.Errorf("tunnel command %q: %w", argv[0], err)
	}

	cmd := exec.Command(path, argv[1:]...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if gwerr.As(err, &exitErr) {
			os.Exit(exitErr.ExitCode())
		}
		return fmt.Errorf("tunnel command %q: %w", argv[0], err)
	}
	os.Exit(0)
	return nil
}
