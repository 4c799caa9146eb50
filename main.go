package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"proompter/cli"
	"proompter/config"
)

const Version = "v0.1.0"

func main() {
	closeLog := config.InitDebugLog(config.GetConfigDir(), false)

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		closeLog()
		os.Exit(cli.ExitError)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := cli.NewApp(cfg, Version).Main(ctx, os.Args[1:])
	stop()
	closeLog()
	os.Exit(code)
}
