package main

import (
	"context"
	"os"
	"os/signal"

	"github.com/IrineSistiana/listdemo/app"
	_ "github.com/IrineSistiana/listdemo/app/demo"
	"github.com/IrineSistiana/listdemo/internal/mlog"
)

var (
	version = "dev/unknown"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), app.ExitSignals()...)
	defer stop()

	rootCmd := app.RootCmd()
	rootCmd.Version = version
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		mlog.L().Error().Err(err).Msg("exited")
		stop()
		os.Exit(1)
	}
}
