//go:build !windows

package command

import (
	"fmt"
	"os"
	"os/exec"
	"syscall"

	gwerr "github.com/book/ssh-gadgets/internal/errors"
)

// Exec replaces the current process with argv.  Standard input, output,
// and error pass straight through to the tunnel program, so the byte
// stream the outer ssh client sees never touches this process again.
// Exec returns only when the program could not be launched.
func Exec(argv []string) error {
	if len(argv) == 0 {
		return gwerr.New("empty tunnel command")
	}
	path, err := exec.LookPath(argv[0])
	if err != nil {
		return fmt.Errorf("tunnel command %q: %w", argv[0], err)
	}
	return syscall.Exec(path, argv, os.Environ())
}
