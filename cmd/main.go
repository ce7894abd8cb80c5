package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/Netflix/go-env"
	"github.com/dgraph-io/badger/v4"
	"github.com/joho/godotenv"
	"github.com/mama165/sdk-go/logs"

	"chat-hall/auth"
	"chat-hall/infrastructure/ws"
	"chat-hall/repositories"
	"chat-hall/runtime"
	"chat-hall/runtime/workers"
	"chat-hall/services"
	"chat-hall/sink"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Fatal error: %v\n", err)
		os.Exit(1)
	}
}

// run initializes all components, manages the server lifecycle, and
// centralizes error reporting so that every defer (database close,
// transcript flush) executes before the process exits.
func run() error {
	// 1. Configuration & Logger
	_ = godotenv.Load()
	var config Config
	if _, err := env.UnmarshalFromEnviron(&config); err != nil {
		return fmt.Errorf("config error: %w", err)
	}
	log := logs.GetLoggerFromString(config.LogLevel)

	// 2. Database (BadgerDB)
	db, err := badger.Open(badger.DefaultOptions(config.BadgerFilepath).
		WithLoggingLevel(badger.INFO))
	if err != nil {
		return fmt.Errorf("database opening failed: %w", err)
	}
	defer func() {
		log.Info("Closing BadgerDB...")
		_ = db.Close()
	}()

	// 3. Repositories
	userRepo, err := repositories.NewUserRepository(db)
	if err != nil {
		return fmt.Errorf("user repository: %w", err)
	}
	defer userRepo.Close()
	chatRepo, err := repositories.NewChatRepository(db, log)
	if err != nil {
		return fmt.Errorf("chat repository: %w", err)
	}
	defer chatRepo.Close()
	subRepo := repositories.NewSubscriptionRepository(db)

	// 4. Runtime: registry, broadcaster, transcript
	registry := runtime.NewRegistry()
	broadcaster := runtime.NewBroadcaster(log, registry, config.SinkTimeout)
	transcript, err := sink.NewTranscript(config.TranscriptDir, log)
	if err != nil {
		return fmt.Errorf("transcript dir: %w", err)
	}

	// 5. Services
	tokens := auth.NewTokenManager(config.JWTSecret, config.TokenTTL)
	authService := services.NewAuthService(log, userRepo, tokens, broadcaster)
	subService := services.NewSubscriptionService(log, userRepo, chatRepo, subRepo, broadcaster)
	chatService := services.NewChatService(log, userRepo, chatRepo, subRepo,
		registry, broadcaster, transcript)
	adminService := services.NewAdminService(log, userRepo, chatRepo, subRepo,
		subService, registry, broadcaster)

	// 6. Context & Signals
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 7. Supervised workers
	sup := workers.NewSupervisor(log, config.RestartInterval)
	sup.Add(workers.NewActivityWorker(log, chatRepo, subRepo, registry,
		broadcaster, config.ActivityInterval))
	supDone := make(chan struct{})
	go func() {
		sup.Run(ctx)
		close(supDone)
	}()

	// 8. HTTP & WebSocket server
	handler := ws.NewHandler(log, authService, chatService, subService, adminService, registry)
	address := fmt.Sprintf("%s:%d", config.Host, config.Port)
	server := ws.NewServer(log, address, tokens, handler)

	err = server.Run(ctx)

	// 9. Final Cleanup
	sup.Stop()
	<-supDone
	log.Info("Server stopped")
	return err
}
