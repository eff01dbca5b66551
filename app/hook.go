package app

import (
	"context"
	"os"
	"os/signal"
	"syscall"
)

// WaitForShutdown returns a channel closed on SIGINT, SIGTERM or ctx cancellation.
func (app *App) WaitForShutdown(ctx context.Context) <-chan struct{} {
	done := make(chan struct{})
	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt, syscall.SIGTERM)

	go func() {
		defer signal.Stop(interrupt)
		select {
		case sig := <-interrupt:
			app.Logger.Info("Shutdown signal received", "signal", sig.String())
		case <-ctx.Done():
			app.Logger.Info("Application context canceled")
		}
		close(done)
	}()
	return done
}
