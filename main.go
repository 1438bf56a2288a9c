package main

import (
	"context"
	"os"
	"os/signal"

	"github.com/charmbracelet/fang"

	"github.com/dendrascience/dnacount/internal/cmd"
)

func main() {
	// the first interrupt cancels the run; the count still reports what finished
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)

	err := fang.Execute(ctx, cmd.NewRootCmd())
	stop()
	os.Exit(cmd.ExitCode(err))
}
