package stream

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	chatService "github.com/neurox-app/mindcare/backend/internal/service/chat"
	"github.com/neurox-app/mindcare/backend/pkg/utils"
)

const defaultHeartbeat = 15 * time.Second

// Handler pushes session snapshots to the browser via Server-Sent Events.
type Handler struct {
	chatSvc   *chatService.Service
	logger    *zap.Logger
	heartbeat time.Duration
}

// New creates a new stream handler
func New(chatSvc *chatService.Service, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{
		chatSvc:   chatSvc,
		logger:    logger,
		heartbeat: defaultHeartbeat,
	}
}

// RegisterRoutes mounts the event stream endpoint.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/sessions/{sessionID}/events", h.handleEvents)
}

func (h *Handler) handleEvents(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")

	session, err := h.chatSvc.Get(r.Context(), sessionID)
	if errors.Is(err, chatService.ErrSessionNotFound) {
		utils.RespondError(w, http.StatusNotFound, err.Error())
		return
	}
	if err != nil {
		utils.RespondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	if err := h.Stream(r.Context(), w, session); err != nil {
		h.logger.Warn("event stream ended with error", zap.String("session", sessionID), zap.Error(err))
	}
}

// Stream writes a snapshot event for every change of session until the client leaves
// or the session is closed.
func (h *Handler) Stream(ctx context.Context, w http.ResponseWriter, session *chatService.Session) error {
	flusher, ok := w.(http.Flusher)
	if !ok {
		utils.RespondError(w, http.StatusInternalServerError, "streaming unsupported")
		return fmt.Errorf("streaming unsupported")
	}

	updates, cancel := session.Subscribe(8)
	defer cancel()

	utils.SetupSSEHeaders(w)
	w.WriteHeader(http.StatusOK)
	flusher.Flush()

	h.logger.Debug("opening event stream", zap.String("session", session.ID()))

	ticker := time.NewTicker(h.heartbeat)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			h.logger.Debug("client left event stream", zap.String("session", session.ID()))
			return nil
		case snap, open := <-updates:
			if !open {
				return utils.SendSSEEvent(w, flusher, "closed", map[string]string{"sessionId": session.ID()})
			}
			if err := utils.SendSSEEvent(w, flusher, "snapshot", snap); err != nil {
				return err
			}
		case t := <-ticker.C:
			if err := utils.SendSSEComment(w, flusher, "heartbeat "+t.UTC().Format(time.RFC3339)); err != nil {
				return err
			}
		}
	}
}
