package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"github.com/neurox-app/mindcare/backend/internal/handler/chat"
	"github.com/neurox-app/mindcare/backend/internal/handler/dashboard"
	"github.com/neurox-app/mindcare/backend/internal/handler/live"
	"github.com/neurox-app/mindcare/backend/internal/handler/mood"
	"github.com/neurox-app/mindcare/backend/internal/handler/stream"
	middlewarePkg "github.com/neurox-app/mindcare/backend/internal/middleware"
	"github.com/neurox-app/mindcare/backend/internal/model/content"
	chatService "github.com/neurox-app/mindcare/backend/internal/service/chat"
	moodService "github.com/neurox-app/mindcare/backend/internal/service/mood"
)

// NewRouter wires HTTP routes to core services.
func NewRouter(store content.Store, chatSvc *chatService.Service, moodSvc *moodService.Service, allowedOrigins []string, logger *zap.Logger) http.Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	if len(allowedOrigins) == 0 {
		allowedOrigins = []string{"*"}
	}

	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middlewarePkg.RequestLogger(logger))
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-Id"},
		ExposedHeaders: []string{"X-Request-Id"},
		MaxAge:         300,
	}))

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	// Create handlers
	chatHandler := chat.New(chatSvc, store, logger)
	streamHandler := stream.New(chatSvc, logger)
	liveHandler := live.New(chatSvc, store, logger)
	dashboardHandler := dashboard.New(store, moodSvc)
	moodHandler := mood.New(moodSvc, logger)

	r.Route("/api", func(api chi.Router) {
		chatHandler.RegisterRoutes(api)
		streamHandler.RegisterRoutes(api)
		liveHandler.RegisterRoutes(api)
		dashboardHandler.RegisterRoutes(api)
		moodHandler.RegisterRoutes(api)
	})

	return r
}
