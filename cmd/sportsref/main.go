package main

import (
	"context"
	"os"
	"os/signal"

	"github.com/tyler180/sportsref/cmd/sportsref/commands"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	commands.ExecuteContext(ctx)
}
