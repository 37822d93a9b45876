package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/funvibe/quandary/pkg/cli"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	out := cli.NewOutput(os.Stdout)

	code := cli.Main(ctx, os.Args[1:], out, os.Stderr)

	out.Flush()
	stop()
	os.Exit(code)
}
