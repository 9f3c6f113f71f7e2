package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Talha76/memorize-words/internal/config"
	"github.com/Talha76/memorize-words/internal/handler"
	"github.com/Talha76/memorize-words/internal/middleware"
	"github.com/Talha76/memorize-words/internal/scoring"
	"github.com/Talha76/memorize-words/internal/service"
	"github.com/Talha76/memorize-words/internal/store"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	newLogger := zap.NewProduction
	if cfg.Debug {
		newLogger = zap.NewDevelopment
	}
	logger, err := newLogger()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("Starting Memorize Words bot")

	if err := cfg.RequireBot(); err != nil {
		logger.Fatal("Invalid bot configuration", zap.Error(err))
	}

	// Initialize repository
	repo, release, err := store.Open(cfg, logger)
	if err != nil {
		logger.Fatal("Failed to open workspace store", zap.Error(err))
	}
	defer release()

	// Initialize services
	workspaces := service.NewWorkspaceService(repo, scoring.NewPartitioner(nil), logger)
	janitor := service.NewJanitor(repo, cfg.WorkspaceIdleTTL, cfg.CleanupInterval, logger)

	// Initialize Telegram bot
	bot, err := tele.NewBot(tele.Settings{
		Token:  cfg.BotToken,
		Poller: &tele.LongPoller{Timeout: 10 * time.Second},
		OnError: func(err error, c tele.Context) {
			logger.Error("Unhandled bot error", zap.Error(err))
		},
	})
	if err != nil {
		logger.Fatal("Failed to create bot", zap.Error(err))
	}

	logger.Info("Telegram bot initialized")

	bot.Use(middleware.Logger(logger))

	// Initialize handler
	h := handler.NewHandler(bot, workspaces, logger)
	h.RegisterHandlers()

	logger.Info("Handlers registered")

	// Start cleanup job in background
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go janitor.Run(ctx)

	// Start bot in background
	go func() {
		logger.Info("Bot started successfully")
		bot.Start()
	}()

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	<-sigChan

	logger.Info("Shutdown signal received, stopping bot...")

	// Graceful shutdown
	bot.Stop()
	cancel()

	logger.Info("Bot stopped gracefully")
}
