package main

import (
	"context"
	"os"
	"os/signal"

	"acmcli/cmd/acmcli/cmd"
)

func main() {
	// interrupting a poll is always safe, the judge keeps judging
	// server-side whether we watch or not
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	cmd.Execute(ctx)
}
