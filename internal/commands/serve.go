package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/SscSPs/bookkeeping_core/internal/handlers"
	"github.com/SscSPs/bookkeeping_core/internal/middleware"
	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
)

const shutdownTimeout = 5 * time.Second

func newServeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Migrate the database and serve the HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return runServe(ctx, cmd.ErrOrStderr())
		},
	}
}

func runServe(ctx context.Context, logOut io.Writer) error {
	a, err := startApp(ctx, logOut)
	if err != nil {
		return err
	}
	defer a.close(context.Background())

	if a.cfg.SeedDefaultChart {
		if _, err := a.services.Account.SeedDefaultChart(ctx); err != nil {
			return fmt.Errorf("seeding default chart: %w", err)
		}
	}

	if a.cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}
	r, err := newRouter(a)
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:              a.cfg.ListenAddr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("Server starting", slog.String("addr", a.cfg.ListenAddr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			a.logger.Error("Server failed to run", slog.String("error", err.Error()))
			return err
		}
		return nil
	case <-ctx.Done():
	}

	a.logger.Info("Shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		a.logger.Error("Graceful shutdown failed", slog.String("error", err.Error()))
		return err
	}
	return nil
}

// newRouter builds the gin engine with the global middleware and every route.
func newRouter(a *app) (*gin.Engine, error) {
	r := gin.New()

	// Global middleware (logging, recovery)
	r.Use(middleware.StructuredLoggingMiddleware(a.logger), gin.Recovery())

	if err := r.SetTrustedProxies(nil); err != nil {
		return nil, fmt.Errorf("setting trusted proxies: %w", err)
	}

	if a.cfg.RateLimit != "" {
		lim, err := middleware.NewRateLimiter(a.cfg.RateLimit)
		if err != nil {
			return nil, err
		}
		r.Use(middleware.RateLimit(lim))
	}

	handlers.RegisterRoutes(r, a.cfg, a.services)
	return r, nil
}
