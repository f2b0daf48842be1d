package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"themis/internal/adapters/ai"
	"themis/internal/adapters/config"
	"themis/internal/adapters/errors/noop"
	"themis/internal/adapters/errors/sentry"
	adapterredis "themis/internal/adapters/redis"
	"themis/internal/agents"
	"themis/internal/api"
	"themis/internal/api/health"
	"themis/internal/domain/document"
	"themis/internal/domain/draft"
	"themis/internal/domain/session"
	redisrepo "themis/internal/repository/redis"
	"themis/internal/services/assistant"
	"themis/pkg/errors"
	"themis/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	if err := logger.Init(cfg.App.LogLevel, cfg.App.Env); err != nil {
		panic("failed to init logger: " + err.Error())
	}
	defer logger.Sync()

	log := logger.Get()
	log.Infof("Starting %s in %s mode", cfg.App.Name, cfg.App.Env)

	errorTracker := initErrorTracker(cfg, log)
	logger.SetErrorTracker(errorTracker)

	redisClient, err := adapterredis.NewClient(cfg.Redis)
	if err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}
	defer redisClient.Close()

	provider, err := initProvider(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize AI provider: %v", err)
	}

	svc := buildAssistant(cfg, redisClient, provider)

	handler := api.NewHandler(svc, cfg.Server.MaxUploadBytes)
	healthHandler := health.New(log, redisClient.Client(), cfg.App.Name, cfg.App.Version)
	server := api.NewServer(api.ServerConfig{
		Port:        cfg.Server.Port,
		ServiceName: cfg.App.Name,
		Version:     cfg.App.Version,
	}, handler, healthHandler, log)

	go func() {
		if err := server.Start(); err != nil {
			log.Fatalf("HTTP server error: %v", err)
		}
	}()

	log.Info("System initialized successfully")

	waitForShutdown(cfg, server, errorTracker, log)
}

// initErrorTracker initializes error tracking (Sentry or no-op)
func initErrorTracker(cfg *config.Config, log *logger.Logger) errors.Tracker {
	if !cfg.ErrorTracking.Enabled || cfg.ErrorTracking.SentryDSN == "" {
		log.Info("Error tracking disabled")
		return noop.New()
	}

	tracker, err := sentry.New(cfg.ErrorTracking.SentryDSN, cfg.ErrorTracking.Environment)
	if err != nil {
		log.Warnf("Failed to initialize Sentry: %v", err)
		return noop.New()
	}

	log.Info("Error tracking initialized (Sentry)")
	return tracker
}

// initProvider builds the rate-limited OpenAI chat provider
func initProvider(cfg *config.Config) (ai.ChatProvider, error) {
	limiter := ai.NewTokenBucketLimiter("openai", cfg.AI.RequestsPerMin, cfg.AI.Burst)
	return ai.NewOpenAIProvider(cfg.AI.OpenAIKey, cfg.AI.Model, cfg.AI.Timeout, limiter)
}

// buildAssistant wires repositories, domain services and the consultation
// pipeline into the application facade
func buildAssistant(cfg *config.Config, redisClient *adapterredis.Client, provider ai.ChatProvider) *assistant.Service {
	client := redisClient.Client()

	sessions := session.NewService(redisrepo.NewSessionRepository(client), cfg.Assistant.SessionTTL)
	documents := document.NewService(provider, redisrepo.NewDocumentRepository(client), cfg.Assistant.DocumentTTL, document.Limits{
		ClassifyMaxChars: cfg.Assistant.ClassifyMaxChars,
		SummaryMaxChars:  cfg.Assistant.SummaryMaxChars,
		ChatMaxChars:     cfg.Assistant.ChatMaxChars,
	})
	drafts := draft.NewService(provider, redisrepo.NewDraftRepository(client), cfg.Assistant.DraftTTL, cfg.Assistant.DraftMaxChars)

	invoker := agents.NewRoleInvoker(provider, cfg.AI.Model)
	orchestrator := agents.NewOrchestrator(invoker)

	return assistant.NewService(sessions, documents, drafts, orchestrator, provider)
}

// waitForShutdown waits for shutdown signal and performs graceful shutdown
func waitForShutdown(cfg *config.Config, server *api.Server, errorTracker errors.Tracker, log *logger.Logger) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	<-quit
	log.Info("Shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Errorf("Shutdown error: %v", err)
	}

	if err := errorTracker.Flush(ctx); err != nil {
		log.Warnf("Error tracker flush failed: %v", err)
	}
	log.Info("Shutdown complete")
}
