// Command wldata unpacks Wonderlands pak archives into their in-game
// directory layout, driving the external UnrealPak tool for the actual
// container work.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
)

// version is set at build time via -ldflags "-X main.version=...".
var version = "2.0.0-dev"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	root := newRootCmd()
	if err := root.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "wldata: %v\n", err)
		os.Exit(1)
	}
}
