package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"todoapp/internal/cli"
	"todoapp/internal/config"
	"todoapp/internal/logger"
)

func main() {
	logger.Init(os.Getenv("LOG_LEVEL"), false)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	root := cli.NewRootCommand(cli.Options{Config: config.LoadClient()})
	if err := root.ExecuteContext(ctx); err != nil {
		cli.PrintError(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}
