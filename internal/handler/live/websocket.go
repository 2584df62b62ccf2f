package live

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/neurox-app/mindcare/backend/internal/model/content"
	chatservice "github.com/neurox-app/mindcare/backend/internal/service/chat"
)

const (
	readTimeout  = 60 * time.Second
	writeTimeout = 10 * time.Second
	pingInterval = 30 * time.Second
)

// Handler serves the live chat view. Each connection mounts its own session and
// unmounts it on disconnect.
type Handler struct {
	chatSvc  *chatservice.Service
	content  content.Store
	logger   *zap.Logger
	upgrader websocket.Upgrader
}

// New creates the websocket chat handler.
func New(chatSvc *chatservice.Service, store content.Store, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{
		chatSvc: chatSvc,
		content: store,
		logger:  logger,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
	}
}

// RegisterRoutes mounts the websocket endpoint.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/ws", h.handleWebSocket)
}

type inboundMessage struct {
	Type  string `json:"type"`
	Text  string `json:"text,omitempty"`
	Index int    `json:"index,omitempty"`
}

type outgoingMessage struct {
	Type      string      `json:"type"`
	SessionID string      `json:"sessionId,omitempty"`
	Data      interface{} `json:"data,omitempty"`
	Timestamp int64       `json:"timestamp"`
}

// ConnectedInfo is the first frame on every connection.
type ConnectedInfo struct {
	SessionID    string         `json:"sessionId"`
	QuickReplies []string       `json:"quickReplies"`
	Notice       content.Notice `json:"notice"`
}

func (h *Handler) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn("websocket upgrade failed", zap.Error(err))
		return
	}
	defer conn.Close()

	session, err := h.chatSvc.Open(r.Context())
	if err != nil {
		h.logger.Error("open session failed", zap.Error(err))
		_ = conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseTryAgainLater, "chat unavailable"),
			time.Now().Add(writeTimeout))
		return
	}
	sessionID := session.ID()
	defer func() {
		if err := h.chatSvc.Close(context.Background(), sessionID); err != nil {
			h.logger.Debug("session already gone", zap.String("session", sessionID), zap.Error(err))
		}
	}()

	logger := h.logger.With(zap.String("session", sessionID))
	logger.Info("websocket connected")

	conn.SetReadDeadline(time.Now().Add(readTimeout))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(readTimeout))
	})

	if err := h.write(conn, outgoingMessage{Type: "connected", SessionID: sessionID, Data: ConnectedInfo{
		SessionID:    sessionID,
		QuickReplies: session.QuickReplies(),
		Notice:       h.content.CrisisNotice(),
	}}); err != nil {
		logger.Warn("write connected frame failed", zap.Error(err))
		return
	}

	ctx, cancel := context.WithCancel(r.Context())
	replies := make(chan outgoingMessage, 8)
	writerDone := make(chan struct{})
	go func() {
		defer close(writerDone)
		defer cancel()
		h.writeLoop(ctx, conn, session, replies, logger)
	}()
	defer func() {
		cancel()
		<-writerDone
	}()

	for {
		var msg inboundMessage
		if err := conn.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				logger.Warn("websocket read error", zap.Error(err))
			}
			return
		}
		conn.SetReadDeadline(time.Now().Add(readTimeout))

		reply, ok := h.handleMessage(session, msg)
		if !ok {
			continue
		}
		select {
		case replies <- reply:
		case <-ctx.Done():
			return
		}
	}
}

// handleMessage applies one inbound frame. Frames that need no answer return false.
func (h *Handler) handleMessage(session *chatservice.Session, msg inboundMessage) (outgoingMessage, bool) {
	switch msg.Type {
	case "submit":
		if !session.Submit(msg.Text) {
			return outgoingMessage{Type: "rejected", SessionID: session.ID()}, true
		}
		return outgoingMessage{}, false
	case "quick_reply":
		if !session.SubmitQuickReply(msg.Index) {
			return outgoingMessage{Type: "rejected", SessionID: session.ID()}, true
		}
		return outgoingMessage{}, false
	case "ping":
		return outgoingMessage{Type: "pong", SessionID: session.ID()}, true
	default:
		return outgoingMessage{
			Type:      "error",
			SessionID: session.ID(),
			Data:      map[string]string{"error": "unknown message type: " + msg.Type},
		}, true
	}
}

// writeLoop owns every write to conn after the connected frame.
func (h *Handler) writeLoop(ctx context.Context, conn *websocket.Conn, session *chatservice.Session, replies <-chan outgoingMessage, logger *zap.Logger) {
	updates, unsubscribe := session.Subscribe(8)
	defer unsubscribe()

	ticker := time.NewTicker(pingInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case snap, open := <-updates:
			if !open {
				return
			}
			if err := h.write(conn, outgoingMessage{Type: "snapshot", SessionID: snap.SessionID, Data: snap}); err != nil {
				logger.Debug("write snapshot failed", zap.Error(err))
				return
			}
		case reply := <-replies:
			if err := h.write(conn, reply); err != nil {
				logger.Debug("write reply failed", zap.Error(err))
				return
			}
		case <-ticker.C:
			if err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeTimeout)); err != nil {
				logger.Debug("ping failed", zap.Error(err))
				return
			}
		}
	}
}

func (h *Handler) write(conn *websocket.Conn, msg outgoingMessage) error {
	msg.Timestamp = time.Now().UnixMilli()
	data, err := json.Marshal(msg)
	if err != nil {
		return err
	}
	conn.SetWriteDeadline(time.Now().Add(writeTimeout))
	return conn.WriteMessage(websocket.TextMessage, data)
}
