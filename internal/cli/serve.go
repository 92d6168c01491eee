package cli

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	apphttp "lifeevents/internal/http"
	"lifeevents/internal/log"
)

func newServeCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the life event form over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return a.serve(ctx)
		},
	}
}

func (a *app) serve(ctx context.Context) error {
	loc, err := a.cfg.Location()
	if err != nil {
		return err
	}

	mirrors, err := OpenMirrors(ctx, a.cfg, a.logger, true)
	if err != nil {
		return err
	}
	defer mirrors.Close()

	checks := map[string]apphttp.ReadyCheck{}
	if mirrors.AMQP != nil {
		checks["amqp"] = mirrors.AMQP.Ping
	}

	srv, err := apphttp.NewServer(apphttp.Options{
		Addr:        a.cfg.Addr(),
		Location:    loc,
		Logger:      a.logger,
		Mirrors:     mirrors.List,
		ReadyChecks: checks,
	})
	if err != nil {
		return err
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		a.logger.Info("Starting lifeevents server", "addr", srv.Addr, log.FieldOperation, log.OpStartup)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		a.logger.Info("Shutdown signal received", log.FieldOperation, log.OpShutdown)

		shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.ShutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			a.logger.Error("Server shutdown error", log.FieldError, err)
			return err
		}
		a.logger.Info("Server stopped gracefully")
		return nil
	})
	return g.Wait()
}
