// Package main implements list-examples, which validates the example registry
// and prints it for CI pipelines.
package main

import (
	"context"
	"os"
	"os/signal"

	"github.com/charmbracelet/fang"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	cmd := newRootCmd()
	if err := fang.Execute(
		ctx,
		cmd,
		fang.WithVersion(version),
		fang.WithoutCompletions(),
		fang.WithoutManpage(),
	); err != nil {
		os.Exit(1)
	}
}
