package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/Bama-S/capec-rel/internal/api"
	"github.com/Bama-S/capec-rel/internal/config"
	"github.com/Bama-S/capec-rel/internal/models"
	"github.com/Bama-S/capec-rel/internal/visualization"
)

const shutdownTimeout = 10 * time.Second

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the analysis page, JSON API and GraphQL over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := serveConfig()
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			return runServe(ctx, cfg)
		},
	}
}

// serveConfig loads the environment configuration and applies the resolved
// --data, --mode and --log-level values on top of it.
func serveConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	cfg.DataPath = flagData
	cfg.ParseMode = models.ParseMode(flagMode)
	if flagLogLevel != defaultLogLevel {
		cfg.LogLevel = flagLogLevel
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}

	return cfg, nil
}

func runServe(ctx context.Context, cfg *config.Config) error {
	log, err := newLogger(cfg.LogLevel, true)
	if err != nil {
		return err
	}

	gin.SetMode(gin.ReleaseMode)

	svc, report, err := loadService(ctx, log)
	if err != nil {
		return err
	}

	handler, err := api.NewRouter(&api.RouterDeps{
		Log:           log,
		Relations:     svc,
		Renderer:      visualization.NewRenderer(visualization.NewForceLayout(0, 0, cfg.LayoutIterations, cfg.LayoutSeed)),
		CORSOrigins:   cfg.CORSOrigins,
		Version:       config.Version,
		EnableGraphQL: cfg.EnableGraphQL,
	})
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
		MaxHeaderBytes:    1 << 20,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.WithFields(logrus.Fields{
			"addr":    srv.Addr,
			"version": config.Version,
			"nodes":   report.Nodes,
			"edges":   report.Edges,
			"mode":    report.Mode,
		}).Info("capec-rel listening")

		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("serving http: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		log.Info("shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutting down http: %w", err)
		}
		return nil
	})

	return g.Wait()
}
