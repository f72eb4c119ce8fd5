package main

import (
	"context"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"portfolio-chat/internal/api"
	"portfolio-chat/internal/config"
	"portfolio-chat/internal/llm"
	"portfolio-chat/internal/service"
)

var (
	configPath = flag.String("config", "", "Path to config file")
)

func main() {
	flag.Parse()

	// Load .env before viper reads the environment
	_ = godotenv.Load()

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer logger.Sync()

	// Load the portfolio document and precompute the system prompt
	ctxService, err := service.NewContextService(cfg)
	if err != nil {
		logger.Warn("Failed to load portfolio document, card and chat endpoints will be unavailable", zap.Error(err))
		// Continue degraded - health and validation still work
	}

	if cfg.LLM.APIKey == "" {
		logger.Warn("No LLM API key configured, set PORTFOLIO_LLM_API_KEY or llm.api_key")
	}

	// Initialize LLM client and services
	provider := llm.NewClient(cfg.LLM)
	chatService := service.NewChatService(ctxService, provider, logger)
	cardService := service.NewCardService(ctxService, provider, logger)

	// Setup router
	router := api.SetupRouter(chatService, cardService, ctxService, logger, api.RouterConfig{
		AllowOrigins: cfg.CORS.AllowOrigins,
	})

	// Create HTTP server. No write timeout: chat responses are long-lived
	// SSE streams.
	srv := &http.Server{
		Addr:        cfg.Address(),
		Handler:     router,
		ReadTimeout: 30 * time.Second,
		IdleTimeout: 120 * time.Second,
	}

	// Start server in goroutine
	go func() {
		logger.Info("Starting portfolio chat server",
			zap.String("address", cfg.Address()),
			zap.String("model", cfg.LLM.Model),
		)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	// Graceful shutdown
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatal("Server forced to shutdown", zap.Error(err))
	}

	logger.Info("Server exited")
}
