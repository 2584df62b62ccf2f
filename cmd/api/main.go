package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/neurox-app/mindcare/backend/internal/analysis/support"
	"github.com/neurox-app/mindcare/backend/internal/config"
	"github.com/neurox-app/mindcare/backend/internal/handler"
	"github.com/neurox-app/mindcare/backend/internal/logging"
	"github.com/neurox-app/mindcare/backend/internal/model/content"
	"github.com/neurox-app/mindcare/backend/internal/service/chat"
	"github.com/neurox-app/mindcare/backend/internal/service/mood"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Load .env file
	envErr := godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	logger, err := logging.New(cfg.Log)
	if err != nil {
		log.Fatalf("failed to build logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()
	zap.ReplaceGlobals(logger)

	if envErr != nil {
		logger.Info("no .env file loaded, continuing with system environment variables only", zap.Error(envErr))
	}

	store := content.NewMemoryStore(content.Seed())
	engine := support.NewDefaultEngine(support.NewRandSource(cfg.Chat.RandomSeed))

	chatService := chat.NewService(chat.Config{
		TypingDelay:  cfg.Chat.TypingDelay,
		Greeting:     content.Greeting,
		QuickReplies: store.QuickReplies(),
		IdleTTL:      cfg.Chat.SessionIdleTTL,
	}, engine, logger.Named("chat"))
	defer chatService.Shutdown()

	moodService := mood.NewService(mood.Config{
		AnalysisDelay: cfg.Mood.AnalysisDelay,
	}, logger.Named("mood"))

	logger.Info("services initialized",
		zap.Duration("typingDelay", cfg.Chat.TypingDelay),
		zap.Duration("sessionIdleTTL", cfg.Chat.SessionIdleTTL),
		zap.Bool("seeded", cfg.Chat.RandomSeed != 0),
		zap.Duration("moodAnalysisDelay", cfg.Mood.AnalysisDelay),
	)

	router := handler.NewRouter(store, chatService, moodService, cfg.Server.AllowedOrigins, logger.Named("http"))

	startServer(ctx, cfg.Server, router, logger)
}

func startServer(ctx context.Context, serverCfg config.ServerConfig, router http.Handler, logger *zap.Logger) {
	addr := serverCfg.Addr
	srv := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	logger.Info("mindcare backend listening", zap.String("addr", addr))
	if err := runServer(ctx, srv); err != nil {
		logger.Fatal("server error", zap.Error(err))
	}
	logger.Info("server stopped")
}

func runServer(ctx context.Context, srv *http.Server) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
		err := <-errCh
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}
