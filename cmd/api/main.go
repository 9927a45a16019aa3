package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/spec-kit/helpdesk-triage/internal/admission"
	httptransport "github.com/spec-kit/helpdesk-triage/internal/api/http"
	"github.com/spec-kit/helpdesk-triage/internal/api/http/handlers"
	"github.com/spec-kit/helpdesk-triage/internal/config"
	"github.com/spec-kit/helpdesk-triage/internal/events"
	"github.com/spec-kit/helpdesk-triage/internal/observability"
	"github.com/spec-kit/helpdesk-triage/internal/persistence"
	"github.com/spec-kit/helpdesk-triage/internal/repository"
	"github.com/spec-kit/helpdesk-triage/internal/service"
	"github.com/spec-kit/helpdesk-triage/internal/worker"
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

	var (
		ticketStore repository.TicketStore
		expertStore repository.ExpertStore
		pg          *persistence.Postgres
	)
	switch cfg.Store.Backend {
	case config.StoreBackendPostgres:
		pg, err = persistence.NewPostgres(ctx, cfg.Postgres, logger)
		if err != nil {
			logger.Fatal("failed to connect postgres", zap.Error(err))
		}
		defer pg.Close()

		if cfg.Postgres.RunMigrations {
			if err := persistence.RunMigrations(ctx, pg.PoolHandle(), logger); err != nil {
				logger.Fatal("failed to run migrations", zap.Error(err))
			}
		}
		ticketStore = repository.NewPGTicketStore(pg.PoolHandle())
		expertStore = repository.NewPGExpertStore(pg.PoolHandle())
	default:
		ticketStore = repository.NewFileTicketStore(cfg.Store.TicketsFile)
		expertStore = repository.NewFileExpertStore(cfg.Store.ExpertsFile, logger)
	}
	logger.Info("storage backend ready", zap.String("backend", cfg.Store.Backend))

	redis := persistence.NewRedis(cfg.Redis, logger)
	defer redis.Close()

	metrics := observability.NewMetrics()
	dispatcher := events.NewInMemoryDispatcher()

	gate := admission.NewGate(remoteClassifier(cfg.Gemini, logger), logger)

	roster := service.NewExpertRoster(expertStore)
	routerService := service.NewRouterService(roster, expertStore, logger)

	intakeService := service.NewIntakeService(service.IntakeDependencies{
		TicketStore: ticketStore,
		Gate:        gate,
		Dispatcher:  dispatcher,
		Metrics:     metrics,
		Logger:      logger,
	})
	triageService := service.NewTriageService(service.TriageDependencies{
		TicketStore: ticketStore,
		Router:      routerService,
		Dispatcher:  dispatcher,
		Metrics:     metrics,
		Locker:      sweepLocker(redis, cfg),
		Logger:      logger,
	})

	notificationService := service.NewNotificationService(dispatcher, logger, cfg.Notification)
	notificationService.RegisterHandlers()

	worker.StartSweepWorker(ctx, triageService, cfg.Sweep.Interval(), logger)

	app := fiber.New()
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:  handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redis),
		Tickets: handlers.NewTicketsHandler(intakeService),
		Triage:  handlers.NewTriageHandler(triageService),
		Experts: handlers.NewExpertsHandler(roster),
	})

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)
	cancel()

	_ = app.Shutdown()
}

// remoteClassifier returns nil when no API key is configured; admission then
// runs on the local keyword heuristic alone.
func remoteClassifier(cfg config.GeminiConfig, logger *zap.Logger) admission.RemoteClassifier {
	client := admission.NewGeminiClient(cfg, logger)
	if client == nil {
		logger.Info("remote admission classifier disabled, using local heuristic")
		return nil
	}
	return client
}

func sweepLocker(redis *persistence.Redis, cfg *config.Config) service.SweepLocker {
	lock := persistence.NewRedisSweepLock(redis, cfg.Sweep.LockTTL())
	if lock == nil {
		return nil
	}
	return lock
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
