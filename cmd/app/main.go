package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"bondi/cmd"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/spf13/cobra"
)

const shutdownTimeout = 10 * time.Second

var (
	cfgFile string
	cfg     cmd.Config
	logger  = slog.Default()
)

type commandContext struct {
	correlationID uuid.UUID
	startedAt     time.Time
}

type commandContextKey struct{}

var rootCmd = &cobra.Command{
	Use:   "bondi",
	Short: "Bondi - order service backed by an identity-map unit of work",
	PersistentPreRunE: func(c *cobra.Command, args []string) error {
		var err error
		if cfg, err = cmd.LoadConfig(cfgFile); err != nil {
			return err
		}
		logger = cmd.NewLogger(cfg, os.Stdout)
		slog.SetDefault(logger)

		info := commandContext{correlationID: uuid.New(), startedAt: time.Now()}
		c.SetContext(context.WithValue(c.Context(), commandContextKey{}, info))
		logger.Info("command start",
			"command", c.CommandPath(),
			"correlation_id", info.correlationID.String(),
		)
		return nil
	},
	PersistentPostRun: func(c *cobra.Command, args []string) {
		info, ok := c.Context().Value(commandContextKey{}).(commandContext)
		if !ok {
			return
		}
		logger.Info("command end",
			"command", c.CommandPath(),
			"correlation_id", info.correlationID.String(),
			"duration_ms", time.Since(info.startedAt).Milliseconds(),
		)
	},
	SilenceUsage: true,
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API and background jobs",
	RunE: func(c *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(c.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		app, err := cmd.NewCompositionRoot(ctx, cfg, logger)
		if err != nil {
			return err
		}
		defer func() {
			if err := app.Close(); err != nil {
				logger.Error("failed to close storage", "error", err)
			}
		}()

		if cfg.Storage.AutoMigrate {
			if err := app.Migrate(ctx); err != nil {
				return err
			}
		}

		jobManager := app.CreateJobManager()
		if err := jobManager.StartAll(); err != nil {
			return fmt.Errorf("failed to start jobs: %w", err)
		}
		defer jobManager.StopAll()

		return startWebServer(ctx, app)
	},
}

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create the storage schema",
	RunE: func(c *cobra.Command, args []string) error {
		app, err := cmd.NewCompositionRoot(c.Context(), cfg, logger)
		if err != nil {
			return err
		}
		defer func() { _ = app.Close() }()

		return app.Migrate(c.Context())
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file path")
	rootCmd.AddCommand(serveCmd, migrateCmd)
}

func main() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func startWebServer(ctx context.Context, app *cmd.CompositionRoot) error {
	e := echo.New()
	e.HideBanner = true
	e.Logger.SetLevel(cmd.EchoLogLevel(cfg))

	app.CreateHTTPServer().Register(e)

	errCh := make(chan error, 1)
	go func() {
		logger.Info("HTTP server listening", "port", cfg.HTTPPort)
		if err := e.Start(fmt.Sprintf("0.0.0.0:%s", cfg.HTTPPort)); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	logger.Info("Shutting down HTTP server")
	return e.Shutdown(shutdownCtx)
}
