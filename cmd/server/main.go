package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/edusaas/portal-gate/internal/api"
	"github.com/edusaas/portal-gate/internal/api/handler"
	"github.com/edusaas/portal-gate/internal/core/ports"
	"github.com/edusaas/portal-gate/internal/core/provider"
	"github.com/edusaas/portal-gate/internal/core/routing"
	"github.com/edusaas/portal-gate/internal/core/service"
	"github.com/edusaas/portal-gate/internal/infrastructure/backend"
	"github.com/edusaas/portal-gate/internal/infrastructure/config"
	"github.com/edusaas/portal-gate/internal/infrastructure/db/memory"
	mongodb "github.com/edusaas/portal-gate/internal/infrastructure/db/mongo"
	redisdb "github.com/edusaas/portal-gate/internal/infrastructure/db/redis"
	"github.com/edusaas/portal-gate/internal/infrastructure/queue"
	"github.com/edusaas/portal-gate/pkg/logger"
	"github.com/edusaas/portal-gate/pkg/telemetry"
)

const shutdownTimeout = 10 * time.Second

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		boot := logger.Init(logger.Options{})
		boot.Fatal().Err(err).Msg("failed to load configuration")
	}
	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.IsDevelopment(),
		Service: cfg.Telemetry.ServiceName,
	})

	if err := run(ctx, cfg, log); err != nil {
		log.Fatal().Err(err).Msg("portal gate stopped")
	}
}

func run(ctx context.Context, cfg *config.Config, log zerolog.Logger) error {
	shutdownTracing, err := telemetry.Init(ctx, telemetry.Config{
		ServiceName: cfg.Telemetry.ServiceName,
		Endpoint:    cfg.Telemetry.Endpoint,
		Insecure:    cfg.Telemetry.Insecure,
		Sampler:     cfg.Telemetry.Sampler,
		SamplerArg:  cfg.Telemetry.SamplerArg,
	}, logger.For("telemetry"))
	if err != nil {
		return err
	}
	defer func() { _ = shutdownTracing(context.Background()) }()

	readiness := map[string]handler.DependencyCheck{}

	// --- Session storage ---
	var storage ports.SessionStorage
	if cfg.Redis.Addr != "" {
		rdb, err := redisdb.Connect(ctx, redisdb.Config{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
			PoolSize: cfg.Redis.PoolSize,
			Timeout:  cfg.Redis.Timeout,
		})
		if err != nil {
			return err
		}
		defer rdb.Close()
		storage = redisdb.NewSessionStorage(rdb, cfg.Session.TTL)
		readiness["redis"] = handler.RedisCheck(rdb)
		log.Info().Str("addr", cfg.Redis.Addr).Msg("session storage: redis")
	} else {
		mem, err := memory.NewSessionStorage()
		if err != nil {
			return err
		}
		storage = mem
		log.Warn().Msg("session storage: in-process memory, sessions are lost on restart")
	}

	// --- Audit trail ---
	var audit ports.AuditRecorder
	var dispatcher *queue.Dispatcher
	workerCtx, stopWorkers := context.WithCancel(context.Background())
	defer stopWorkers()
	if cfg.Mongo.URI != "" {
		conn, err := mongodb.Connect(ctx, mongodb.Config{
			URI:      cfg.Mongo.URI,
			Database: cfg.Mongo.Database,
			AppName:  cfg.Telemetry.ServiceName,
		})
		if err != nil {
			return err
		}
		defer func() { _ = conn.Close() }()

		repo := mongodb.NewAuditRepository(conn.DB, cfg.Mongo.Retention)
		if err := repo.EnsureIndexes(ctx); err != nil {
			log.Warn().Err(err).Msg("audit indexes not created")
		}
		dispatcher = queue.NewDispatcher(cfg.Audit.Workers, repo, logger.For("audit"))
		dispatcher.Start(workerCtx)
		audit = dispatcher
		readiness["mongodb"] = handler.MongoCheck(conn.DB)
	}

	// --- Gate core ---
	client := backend.NewClient(cfg.Backend.URL, cfg.Backend.Timeout)
	status := provider.NewStatusProvider(client, logger.For("status"))
	status.Mount(ctx)

	router, err := routing.New(routing.DefaultRoutes())
	if err != nil {
		return err
	}

	sessions := service.NewSessionService(service.SessionDeps{
		Storage: storage,
		Status:  status,
		Configs: client,
		Router:  router,
		Audit:   audit,
		Log:     logger.For("session"),
	}, cfg.Session.Secret, cfg.Session.TTL)
	go sessions.RunJanitor(workerCtx, cfg.Session.JanitorInterval)

	e := api.NewRouter(api.Dependencies{
		Sessions:    sessions,
		Status:      status,
		SessionTTL:  cfg.Session.TTL,
		JWTSecret:   cfg.Session.Secret,
		Readiness:   readiness,
		ServiceName: cfg.Telemetry.ServiceName,
		Log:         logger.For("http"),
	})

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("portal gate listening")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return err
		}
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("http shutdown")
	}

	stopWorkers()
	if dispatcher != nil {
		dispatcher.Wait()
	}
	return nil
}
