package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/3-lines-studio/plusfiles"
	"github.com/3-lines-studio/plusfiles/internal/logging"
	"github.com/spf13/cobra"
)

const (
	shutdownTimeout   = 5 * time.Second
	readHeaderTimeout = 10 * time.Second
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the page server",
	Long:  `Serves the project. NODE_ENV=production (or --prod) serves the build in dist/; anything else renders from src/ with live reload.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		settings, err := loadSettings(cmd)
		if err != nil {
			return err
		}
		logger := logging.New(settings.LogLevel)

		app, err := plusfiles.New(cmd.Context(),
			plusfiles.WithMode(settings.Mode),
			plusfiles.WithBase(settings.Base),
			plusfiles.WithRoot(settings.Root),
			plusfiles.WithLogger(logger),
		)
		if err != nil {
			return err
		}

		srv := &http.Server{
			Addr:              settings.Addr(),
			Handler:           app.Handler(),
			ReadHeaderTimeout: readHeaderTimeout,
		}

		serverErrors := make(chan error, 1)
		go func() {
			logger.Info("server started", "addr", srv.Addr, "mode", settings.Mode.String(), "base", settings.Base, "root", settings.Root)
			serverErrors <- srv.ListenAndServe()
		}()

		shutdown := make(chan os.Signal, 1)
		signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)
		defer signal.Stop(shutdown)

		select {
		case err := <-serverErrors:
			_ = app.Stop()
			if errors.Is(err, http.ErrServerClosed) {
				return nil
			}
			return fmt.Errorf("server error: %w", err)

		case sig := <-shutdown:
			logger.Info("shutting down", "signal", sig.String())

			ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()

			if err := srv.Shutdown(ctx); err != nil {
				logger.Warn("graceful shutdown did not complete", "timeout", shutdownTimeout, "error", err)
				if err := srv.Close(); err != nil {
					logger.Error("close server", "error", err)
				}
			}
			if err := app.Stop(); err != nil {
				logger.Warn("stop watcher", "error", err)
			}
			logger.Info("server stopped")
			return nil
		}
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().IntP("port", "p", 5173, "Port to listen on")
	serveCmd.Flags().String("base", "/", "URL prefix the app is served under")
	serveCmd.Flags().Bool("prod", false, "Serve the build in dist/ regardless of NODE_ENV")
}
