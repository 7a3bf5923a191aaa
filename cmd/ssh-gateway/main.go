// ssh-gateway - a ProxyCommand helper that probes how a host can be
// reached and replaces itself with the matching tunnel program.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/book/ssh-gadgets/internal/cli"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(),
		os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := cli.Execute(ctx, os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "ssh-gateway: %v\n", err)
		os.Exit(1)
	}
}
