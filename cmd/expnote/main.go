package main

import (
	"context"
	"os"

	"expnote/internal/cli"
	"expnote/internal/commands"
)

func main() {
	ctx, stop := cli.SignalContext(context.Background())
	err := commands.NewRootCommand().ExecuteContext(ctx)
	stop()
	if err != nil {
		os.Exit(1)
	}
}
