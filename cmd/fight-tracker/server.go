package main

import (
	"context"
	"errors"
	"net/http"

	"github.com/ericogr/fight-tracker/internal/config"
	"github.com/ericogr/fight-tracker/internal/constants"
	"github.com/ericogr/fight-tracker/internal/logging"
)

// runServer serves until ctx is cancelled, then drains in-flight requests
// for at most cfg.ShutdownTimeout.
func runServer(ctx context.Context, cfg *config.LoadedConfig, handler http.Handler) error {
	srv := &http.Server{Addr: cfg.ServerAddress, Handler: handler}

	errCh := make(chan error, 1)
	go func() {
		logging.Info("Server started", logging.Fields{constants.LogFieldAddr: cfg.ServerAddress})
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logging.Info("shutting down", nil)
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return <-errCh
}
