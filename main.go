package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/abhisek/cardiz/cmd"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := cmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "cardiz:", err)
		stop()
		os.Exit(1)
	}
}
