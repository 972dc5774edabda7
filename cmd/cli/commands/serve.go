package commands

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jakechorley/ilford-attendance/pkg/api"
)

const shutdownTimeout = 10 * time.Second

// ServeCmd creates the serve command
func ServeCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the attendance HTTP API until interrupted",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(app.Ctx, syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			handler := api.NewHandler(app.Database, app.Cfg, app.Logger)
			srv := &http.Server{
				Addr:              app.Cfg.HTTPAddr,
				Handler:           api.Routes(handler),
				ReadHeaderTimeout: 5 * time.Second,
			}

			errCh := make(chan error, 1)
			go func() {
				app.Logger.Info("HTTP server listening", zap.String("addr", srv.Addr))
				if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					errCh <- err
				}
				close(errCh)
			}()

			select {
			case err := <-errCh:
				if err != nil {
					return fmt.Errorf("failed to serve: %w", err)
				}
				return nil
			case <-ctx.Done():
			}

			app.Logger.Info("Shutting down HTTP server")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			if err := srv.Shutdown(shutdownCtx); err != nil {
				return fmt.Errorf("failed to shut down server: %w", err)
			}

			return nil
		},
	}
}
