// Package signals centralizes shutdown signal handling for commands that
// run until interrupted.
package signals

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/tacenda/wordveil/internal/pkg/logger"
)

// SetupHandler cancels ctx via cancel on SIGINT, SIGTERM, or SIGHUP.
// Returns a cleanup function that releases the handler; after cleanup
// returns, signals no longer cancel the context.
func SetupHandler(ctx context.Context, cancel context.CancelFunc) (cleanup func()) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM, syscall.SIGHUP)

	go func() {
		select {
		case sig, ok := <-sigCh:
			if !ok {
				// Channel closed by cleanup, no signal arrived
				return
			}
			logger.Info("Received signal, initiating shutdown", "signal", sig.String())
			cancel()
		case <-ctx.Done():
		}
	}()

	return func() {
		signal.Stop(sigCh)
		close(sigCh)
	}
}
