package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/sandro63/musicdb/internal/repositories"
	"github.com/sandro63/musicdb/internal/server"
	"github.com/sandro63/musicdb/internal/shared"
	"github.com/urfave/cli/v3"
)

// Serve runs migrations, seeds the sample catalogue and starts the admin web server.
func (r *Runner) Serve(ctx context.Context, cmd *cli.Command) error {
	config := r.loadConfig(cmd)
	if err := config.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	db, err := r.openDatabase(config)
	if err != nil {
		return err
	}
	defer db.Close()

	if err := shared.RunMigrations(db); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	if !cmd.Bool("no-seed") {
		if err := repositories.Seed(db); err != nil {
			return fmt.Errorf("failed to seed catalogue: %w", err)
		}
	}

	srv, err := server.New(config, db, r.logger)
	if err != nil {
		return fmt.Errorf("failed to build server: %w", err)
	}

	addr := config.Server.Addr()
	if flagAddr := cmd.String("addr"); flagAddr != "" {
		addr = flagAddr
	}

	httpServer := &http.Server{
		Addr:              addr,
		Handler:           srv.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			r.logger.Warn("server shutdown", "error", err)
		}
	}()

	r.logger.Info("starting catalogue admin server", "addr", addr)
	if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}
