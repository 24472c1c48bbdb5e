package main

import (
	"context"
	"errors"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/kayako-bot/internal/api/http"
	"github.com/spec-kit/kayako-bot/internal/api/http/handlers"
	"github.com/spec-kit/kayako-bot/internal/auth"
	"github.com/spec-kit/kayako-bot/internal/config"
	"github.com/spec-kit/kayako-bot/internal/dispatch"
	"github.com/spec-kit/kayako-bot/internal/observability"
	"github.com/spec-kit/kayako-bot/internal/persistence"
	"github.com/spec-kit/kayako-bot/internal/plugin"
	"github.com/spec-kit/kayako-bot/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	store, closeStore, err := persistence.OpenStore(ctx, cfg, logger)
	if err != nil {
		logger.Fatal("failed to open plugin config store", zap.Error(err))
	}
	defer closeStore()

	seed, err := config.LoadPluginFile(cfg.App.ConfigFile)
	if err != nil {
		logger.Fatal("failed to read config file", zap.Error(err))
	}

	metrics := observability.NewMetrics()
	dispatcher := dispatch.NewDispatcher(dispatch.NewTemplates(), logger)
	plugins := service.NewPluginService(store, dispatcher, seed, logger)

	kayako := plugin.NewKayako(logger, plugin.Options{
		HTTPTimeout: cfg.Kayako.HTTPTimeout(),
		Metrics:     metrics,
	})
	if err := plugins.Activate(ctx, kayako); err != nil {
		if errors.Is(err, service.ErrNotConfigured) {
			logger.Warn("kayako plugin not configured; ticket mentions will be ignored")
		} else {
			logger.Fatal("failed to activate kayako plugin", zap.Error(err))
		}
	}

	var tokens *auth.TokenManager
	if cfg.Host.JWTSecret != "" {
		tokens = auth.NewTokenManager(cfg.Host.JWTSecret, 0)
	} else {
		logger.Warn("HOST_JWT_SECRET not set; message webhook is unauthenticated")
	}

	app := fiber.New(fiber.Config{AppName: cfg.App.Name})
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())
	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:         handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, store),
		Messages:       handlers.NewMessagesHandler(dispatcher),
		Metrics:        handlers.NewMetricsHandler(metrics),
		HostMiddleware: auth.NewHostMiddleware(tokens),
	})

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	_ = app.Shutdown()
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
