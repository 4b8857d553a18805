package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"medication-adherence/internal/adapters/auth/jwtauth"
	"medication-adherence/internal/adapters/notify/logsink"
	"medication-adherence/internal/adapters/notify/webhook"
	"medication-adherence/internal/config"
	"medication-adherence/internal/platform/logger"
	"medication-adherence/internal/platform/metrics"
	"medication-adherence/internal/ports/auth"
	"medication-adherence/internal/ports/notify"
	"medication-adherence/internal/router"

	"github.com/spf13/cobra"
)

func main() {
	rootCmd := &cobra.Command{
		Use:          "medication-adherence",
		Short:        "Medication schedule and adherence API",
		SilenceUsage: true,
	}

	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(migrateCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if err := cfg.Validate(); err != nil {
				return fmt.Errorf("invalid config: %w", err)
			}
			return runServer(cmd.Context(), cfg)
		},
	}
}

func newLogger(cfg *config.Config) logger.Logger {
	return logger.New(logger.Options{
		Level:      logger.ParseLevel(cfg.LogLevel),
		Format:     logger.ParseFormat(cfg.LogFormat),
		App:        cfg.AppName,
		File:       cfg.LogFile,
		MaxSizeMB:  cfg.LogMaxSizeMB,
		MaxBackups: cfg.LogMaxBackups,
		MaxAgeDays: cfg.LogMaxAgeDays,
	})
}

func runServer(ctx context.Context, cfg *config.Config) error {
	if ctx == nil {
		ctx = context.Background()
	}
	log := newLogger(cfg)

	st, closeStorage, err := openStorage(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer closeStorage()

	var verifier auth.AuthVerifier
	if cfg.AuthJWTSecret != "" {
		verifier = jwtauth.NewVerifier(jwtauth.Config{
			Secret:   []byte(cfg.AuthJWTSecret),
			Issuer:   cfg.AuthIssuer,
			Audience: cfg.AuthAudience,
		})
	} else {
		log.Warn("no AUTH_JWT_SECRET: dev mode, X-Debug-User-ID is trusted", nil)
	}

	notifier, err := newNotifier(cfg, log)
	if err != nil {
		return err
	}

	handler := router.NewRouter(router.Options{
		AuthVerifier: verifier,
		Storage:      st,
		Notifier:     notifier,
		Logger:       log,
		Metrics:      metrics.New(),
		HorizonDays:  cfg.ScheduleHorizonDays,
	})

	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      handler,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("starting server", map[string]any{
			"addr":    srv.Addr,
			"storage": cfg.StorageDriver,
			"env":     cfg.Env,
		})
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)

	select {
	case err, ok := <-errCh:
		if ok && err != nil {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	case <-quit:
	case <-ctx.Done():
	}

	log.Info("shutting down server", nil)
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}
	log.Info("server stopped", nil)
	return nil
}

func newNotifier(cfg *config.Config, log logger.Logger) (notify.Dispatcher, error) {
	if cfg.NotifyWebhookURL == "" {
		return logsink.New(log), nil
	}
	d, err := webhook.New(webhook.Config{
		URL:     cfg.NotifyWebhookURL,
		Secret:  cfg.NotifyWebhookSecret,
		Timeout: cfg.NotifyTimeout,
	})
	if err != nil {
		return nil, fmt.Errorf("notify webhook: %w", err)
	}
	return d, nil
}
