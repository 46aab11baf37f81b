package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	httptransport "github.com/devdesk/queue-api/internal/api/http"
	"github.com/devdesk/queue-api/internal/api/http/handlers"
	"github.com/devdesk/queue-api/internal/auth"
	"github.com/devdesk/queue-api/internal/config"
	"github.com/devdesk/queue-api/internal/events"
	"github.com/devdesk/queue-api/internal/observability"
	"github.com/devdesk/queue-api/internal/persistence"
	"github.com/devdesk/queue-api/internal/repository"
	"github.com/devdesk/queue-api/internal/repository/memory"
	"github.com/devdesk/queue-api/internal/service"
)

type stores struct {
	users       repository.UserRepository
	tickets     repository.TicketRepository
	revocations repository.TokenRevocationRepository
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger, cfg.App)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		logger.Fatal("failed to connect postgres", zap.Error(err))
	}
	defer pg.Close()

	if cfg.Postgres.RunMigrations {
		if err := persistence.RunMigrations(ctx, pg.PoolHandle(), logger); err != nil {
			logger.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	redis := persistence.NewRedis(cfg.Redis, logger)
	defer redis.Close()

	repos := buildStores(pg, redis, logger)

	if cfg.Postgres.SeedDemoData {
		if err := persistence.SeedDemoData(ctx, repos.users, repos.tickets, cfg.Auth.BcryptCost, logger); err != nil {
			logger.Fatal("failed to seed demo data", zap.Error(err))
		}
	}

	var dispatcher events.Dispatcher = events.NewInMemoryDispatcher()
	if redis.Enabled() {
		dispatcher = events.NewRedisDispatcher(dispatcher, redis.Client, cfg.Redis.EventsChannel)
	}
	service.NewNotificationService(dispatcher, logger, cfg.Notification).RegisterHandlers()

	tokens := auth.NewTokenManager(cfg.Auth)
	authService := service.NewAuthService(cfg.Auth, service.AuthDependencies{
		UserRepo:       repos.users,
		RevocationRepo: repos.revocations,
		Tokens:         tokens,
		Dispatcher:     dispatcher,
		Logger:         logger,
	})
	ticketDeps := service.TicketDependencies{
		TicketRepo: repos.tickets,
		UserRepo:   repos.users,
		Dispatcher: dispatcher,
		Logger:     logger,
	}

	metrics := observability.NewMetrics("devdesk")
	app := httptransport.NewServer(httptransport.ServerConfig{
		AppName:        cfg.App.Name,
		RequestTimeout: cfg.App.RequestTimeout(),
		AllowedOrigins: cfg.HTTP.AllowedOrigins,
	}, logger, metrics, httptransport.RouteConfig{
		Health: handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, map[string]handlers.Pinger{
			"postgres": pg,
			"redis":    redis,
		}),
		Auth:    handlers.NewAuthHandler(authService),
		Student: handlers.NewStudentTicketsHandler(service.NewStudentTicketService(ticketDeps)),
		Helper:  handlers.NewHelperTicketsHandler(service.NewHelperTicketService(ticketDeps)),
		Access:  auth.NewAccessMiddleware(tokens, repos.revocations),
		Tickets: auth.NewTicketGuard(repos.tickets),
	})

	go func() {
		logger.Info("listening", zap.String("addr", cfg.App.Addr()), zap.String("env", cfg.App.Env))
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		logger.Warn("shutdown incomplete", zap.Error(err))
	}
}

// buildStores picks PostgreSQL and Redis backed repositories when they are
// configured, and in-memory ones otherwise.
func buildStores(pg *persistence.Postgres, redis *persistence.Redis, logger *zap.Logger) stores {
	var s stores
	if pg.Enabled() {
		pool := pg.PoolHandle()
		s.users = repository.NewUserRepository(pool)
		s.tickets = repository.NewTicketRepository(pool)
	} else {
		logger.Warn("using in-memory user and ticket stores; data is lost on restart")
		users := memory.NewUserRepository()
		s.users = users
		s.tickets = memory.NewTicketRepository(users)
	}

	if redis.Enabled() {
		s.revocations = repository.NewTokenRevocationRepository(redis.Client)
	} else {
		s.revocations = memory.NewTokenRevocationRepository()
	}
	return s
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
