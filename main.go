package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/omario75013/tradingbot-v5/cmd"
)

func main() {
	// A first SIGINT/SIGTERM cancels the context so in-flight steps can
	// stop cleanly; a second one kills the process outright.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := cmd.Execute(ctx); err != nil {
		os.Exit(1)
	}
}
