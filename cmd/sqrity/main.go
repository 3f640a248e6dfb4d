// Command sqrity is a local password manager: it registers users, generates
// random secrets and keeps them per user in two SQLite files.
//
// Running without a subcommand opens the interactive shell.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
)

var version = "dev" // set by the linker

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		// cobra has already printed the error
		os.Exit(1)
	}
}
