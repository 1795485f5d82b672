package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/taamulcredit/formrelay/internal/app"
)

const shutdownTimeout = 30 * time.Second

func main() {
	srv, err := app.Bootstrap()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize server")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errChan := make(chan error, 1)
	go func() {
		errChan <- srv.Start()
	}()

	select {
	case err := <-errChan:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			srv.Logger.Fatal().Err(err).Msg("server stopped unexpectedly")
		}
	case <-ctx.Done():
		srv.Logger.Info().Msg("shutdown signal received")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			srv.Logger.Error().Err(err).Msg("graceful shutdown failed")
			return
		}
		srv.Logger.Info().Msg("server stopped")
	}
}
