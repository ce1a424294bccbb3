package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/tsenako/console-service/internal/api/http"
	"github.com/tsenako/console-service/internal/api/http/handlers"
	"github.com/tsenako/console-service/internal/auth"
	"github.com/tsenako/console-service/internal/config"
	"github.com/tsenako/console-service/internal/events"
	"github.com/tsenako/console-service/internal/observability"
	"github.com/tsenako/console-service/internal/persistence"
	"github.com/tsenako/console-service/internal/repository"
	"github.com/tsenako/console-service/internal/repository/memory"
	"github.com/tsenako/console-service/internal/service"
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

	pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		logger.Fatal("failed to connect postgres", zap.Error(err))
	}
	defer pg.Close()

	if !pg.InMemory() && cfg.Postgres.RunMigrations {
		if err := persistence.RunMigrations(ctx, pg.PoolHandle(), logger); err != nil {
			logger.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	redis := persistence.NewRedis(cfg.Redis, logger)
	defer redis.Close()

	var (
		ticketRepo      repository.TicketRepository
		messageRepo     repository.MessageRepository
		chatRepo        repository.ChatRepository
		faqRepo         repository.FAQRepository
		applicationRepo repository.ApplicationRepository
		settingsRepo    repository.SettingsRepository
		operatorRepo    repository.OperatorRepository
	)
	if pg.InMemory() {
		stores := memory.NewStores()
		if err := stores.Seed(ctx); err != nil {
			logger.Fatal("failed to seed demo data", zap.Error(err))
		}
		ticketRepo = stores.Tickets
		messageRepo = stores.Messages
		chatRepo = stores.Chats
		faqRepo = stores.FAQ
		applicationRepo = stores.Applications
		settingsRepo = stores.Settings
		operatorRepo = stores.Operators
	} else {
		pool := pg.PoolHandle()
		ticketRepo = repository.NewTicketRepository(pool)
		messageRepo = repository.NewMessageRepository(pool)
		chatRepo = repository.NewChatRepository(pool)
		faqRepo = repository.NewFAQRepository(pool)
		applicationRepo = repository.NewApplicationRepository(pool)
		settingsRepo = repository.NewSettingsRepository(pool)
		operatorRepo = repository.NewOperatorRepository(pool)
	}

	dispatcher := events.NewInMemoryDispatcher()
	metrics := observability.NewMetrics()

	ticketService := service.NewTicketService(service.TicketDependencies{
		TicketRepo:  ticketRepo,
		MessageRepo: messageRepo,
		Dispatcher:  dispatcher,
	})
	chatService := service.NewChatService(service.ChatDependencies{
		ChatRepo:    chatRepo,
		MessageRepo: messageRepo,
		Redis:       redis.Handle(),
		Dispatcher:  dispatcher,
	})
	faqService := service.NewFAQService(faqRepo, dispatcher)
	settingsService := service.NewSettingsService(service.SettingsDependencies{
		SettingsRepo: settingsRepo,
		OperatorRepo: operatorRepo,
		Redis:        redis.Handle(),
		BcryptCost:   cfg.Auth.BcryptCost,
		SavedTTL:     cfg.Settings.SavedFlagTTL(),
	})
	partnerService := service.NewPartnerService(applicationRepo, dispatcher)

	notificationService := service.NewNotificationService(dispatcher, logger, cfg.Notification)
	notificationService.RegisterHandlers()

	tokens := auth.NewTokenManager(cfg.Auth.JWTSecret, 60)
	authMiddleware := auth.NewAuthMiddleware(tokens, operatorRepo)

	app := fiber.New(fiber.Config{AppName: cfg.App.Name})
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:         handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redis),
		Tickets:        handlers.NewTicketsHandler(ticketService),
		Chats:          handlers.NewChatsHandler(chatService),
		FAQ:            handlers.NewFAQHandler(faqService),
		Settings:       handlers.NewSettingsHandler(settingsService),
		Applications:   handlers.NewApplicationsHandler(partnerService),
		Export:         handlers.NewExportHandler(ticketService, chatService, faqService, cfg.Export.MaxRows),
		AuthMiddleware: authMiddleware,
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
