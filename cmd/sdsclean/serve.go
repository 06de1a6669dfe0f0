package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/spf13/cobra"

	"github.com/sdstools/sdsclean/internal/config"
	"github.com/sdstools/sdsclean/internal/history"
	"github.com/sdstools/sdsclean/internal/web"
)

func newServeCmd(cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Expose validation over HTTP",
		Long: `Serve starts an HTTP server with endpoints to trigger validation runs
against server-local directories, list the known file layouts, and
browse run history when DATABASE_URL is configured.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			var store *history.Store
			if cfg.History.DatabaseURL != "" {
				var err error
				store, err = history.Open(ctx, cfg.History.DatabaseURL, cfg.History.MaxConns)
				if err != nil {
					return err
				}
				defer store.Close()
				slog.Info("run history enabled")
			}

			server := web.NewServer(cfg, store)

			errCh := make(chan error, 1)
			go func() {
				slog.Info("starting server", "addr", cfg.Server.Addr())
				errCh <- server.Start()
			}()

			select {
			case err := <-errCh:
				if errors.Is(err, http.ErrServerClosed) {
					return nil
				}
				return err
			case <-ctx.Done():
			}

			slog.Info("shutting down")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
			defer cancel()
			return server.Shutdown(shutdownCtx)
		},
	}
}
