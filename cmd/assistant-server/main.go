// cmd/assistant-server/main.go
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"hr-assistant/internal/api"
	"hr-assistant/internal/assistant"
	"hr-assistant/internal/assistant/catalog"
	"hr-assistant/internal/assistant/handlers"
	"hr-assistant/internal/assistant/normalize"
	"hr-assistant/internal/common/camunda"
	"hr-assistant/internal/common/config"
	"hr-assistant/internal/common/database"
	apperrors "hr-assistant/internal/common/errors"
	"hr-assistant/internal/common/logger"
	"hr-assistant/internal/common/observability"
	"hr-assistant/internal/store/postgres"
	assistantchat "hr-assistant/internal/workers/assistant/assistant-chat"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		zap.NewExample().Fatal("failed to load config", zap.Error(err))
	}

	zapLog := logger.New(cfg.Logging.Level, cfg.Logging.Format)
	defer zapLog.Sync()
	log := logger.NewZapAdapter(zapLog).WithFields(map[string]interface{}{
		"service": cfg.App.Name,
		"version": cfg.App.Version,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	obs := observability.New(cfg.Observability, log)

	// --- Init PostgreSQL with retry ---
	pg, err := database.ConnectPostgres(ctx, cfg.Database.Postgres, database.DefaultRetryPolicy, log)
	if err != nil {
		log.Error("failed to connect to postgres", map[string]interface{}{
			"error":   err.Error(),
			"details": apperrors.Normalize(err).Details,
		})
		os.Exit(1)
	}
	defer pg.Close()
	log.Info("postgres connected", nil)

	readiness := []api.Option{
		api.WithObservability(obs),
		api.WithReadinessCheck("postgres", pg.Ping),
	}

	// --- Load intent catalog: Redis key, then file, then built-in ---
	folder := normalize.New(cfg.Assistant.Locale)
	var sources []catalog.Source
	if cfg.Assistant.CatalogRedisKey != "" {
		rdb, err := database.ConnectRedis(ctx, cfg.Database.Redis, database.DefaultRetryPolicy, log)
		if err != nil {
			log.Warn("redis unavailable, skipping catalog key", map[string]interface{}{
				"error":   err.Error(),
				"details": apperrors.Normalize(err).Details,
			})
		} else {
			defer rdb.Close()
			sources = append(sources, catalog.NewRedisSource(rdb.Client, cfg.Assistant.CatalogRedisKey))
			readiness = append(readiness, api.WithReadinessCheck("redis", rdb.Ping))
		}
	}
	if cfg.Assistant.CatalogPath != "" {
		sources = append(sources, catalog.NewFileSource(cfg.Assistant.CatalogPath))
	}
	cat := catalog.LoadOrDefault(ctx, log, folder, sources...)

	// --- Assistant engine ---
	stores := postgres.New(pg.DB, cfg.Assistant.WeekStart())
	engine := assistant.New(
		assistant.Config{
			Locale:              cfg.Assistant.Locale,
			AdminRoleID:         cfg.Assistant.AdminRoleID,
			CollaboratorTimeout: config.GetDuration(cfg.Assistant.CollaboratorTimeout),
		},
		cat,
		handlers.Dependencies{
			Leave:      stores.Leave,
			Timesheets: stores.Timesheets,
			Employees:  stores.Employees,
			WeekStart:  cfg.Assistant.WeekStart(),
		},
		stores.Users,
		log,
	)

	// --- Optional Camunda job worker ---
	var chatWorker *camunda.Worker
	if cfg.Camunda.Enabled && config.IsWorkerEnabled(cfg, assistantchat.TaskType) {
		var zeebe *camunda.Client
		err := database.RetryWithBackoff(ctx, database.DefaultRetryPolicy, log, "zeebe connect", func(context.Context) error {
			var err error
			zeebe, err = camunda.NewClientWithConfig(camunda.ClientConfigFrom(cfg.Camunda))
			return err
		})
		if err != nil {
			log.Error("failed to connect to zeebe", map[string]interface{}{"error": err.Error()})
			os.Exit(1)
		}
		defer zeebe.Close()

		wcfg := config.GetWorkerConfig(cfg, assistantchat.TaskType)
		handler := assistantchat.NewHandler(assistantchat.LoadConfig(wcfg), engine, log)
		chatWorker = camunda.StartWorker(zeebe.Zeebe(), assistantchat.TaskType, wcfg, handler, log)
		readiness = append(readiness, api.WithReadinessCheck("zeebe", zeebe.HealthCheck))
	}

	// --- HTTP server ---
	srv := &http.Server{
		Addr:         cfg.Server.Address,
		Handler:      api.NewServer(engine, log, readiness...),
		ReadTimeout:  config.GetDuration(cfg.Server.ReadTimeout),
		WriteTimeout: config.GetDuration(cfg.Server.WriteTimeout),
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("http server listening", map[string]interface{}{"address": srv.Addr})
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	// --- Graceful Shutdown ---
	select {
	case <-ctx.Done():
		log.Info("shutdown signal received", nil)
	case err := <-errCh:
		log.Error("http server failed", map[string]interface{}{"error": err.Error()})
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("http server shutdown failed", map[string]interface{}{"error": err.Error()})
	}
	chatWorker.Stop()
	if err := obs.Shutdown(shutdownCtx); err != nil {
		log.Warn("observability shutdown failed", map[string]interface{}{"error": err.Error()})
	}

	log.Info("assistant server stopped", nil)
}
