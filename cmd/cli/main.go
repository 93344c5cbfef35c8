// Command cli administers the finance tracker: migrations and user accounts.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/fatih/color"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := newRootCmd(newEnv()).ExecuteContext(ctx)
	stop()

	if err != nil {
		color.New(color.FgRed).Fprintln(os.Stderr, "Error:", err) //nolint:errcheck
		os.Exit(1)
	}
}
