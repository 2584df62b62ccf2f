package chat

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/neurox-app/mindcare/backend/internal/analysis/support"
	"github.com/neurox-app/mindcare/backend/internal/model/chat"
	"github.com/neurox-app/mindcare/backend/internal/model/content"
	chatService "github.com/neurox-app/mindcare/backend/internal/service/chat"
	"github.com/neurox-app/mindcare/backend/pkg/utils"
)

// Handler 聊天服务的HTTP处理器
type Handler struct {
	chatSvc *chatService.Service
	content content.Store
	logger  *zap.Logger
}

// New 创建聊天处理器
func New(chatSvc *chatService.Service, store content.Store, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{
		chatSvc: chatSvc,
		content: store,
		logger:  logger,
	}
}

// SubmitResponse 提交结果；被拒绝的提交不是错误
type SubmitResponse struct {
	Accepted bool          `json:"accepted"`
	Snapshot chat.Snapshot `json:"snapshot"`
}

// RepliesResponse 某一类别的全部候选回复
type RepliesResponse struct {
	Category support.Category `json:"category"`
	Label    string           `json:"label"`
	Replies  []string         `json:"replies"`
}

// ClassifyResponse 文本分类结果
type ClassifyResponse struct {
	Category support.Category `json:"category"`
	Label    string           `json:"label"`
}

// RegisterRoutes 注册聊天相关的路由
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/sessions", h.handleCreateSession)
	r.Get("/sessions/{sessionID}", h.handleGetSession)
	r.Delete("/sessions/{sessionID}", h.handleDeleteSession)
	r.Post("/sessions/{sessionID}/messages", h.handleSubmit)
	r.Post("/sessions/{sessionID}/quick-replies/{index}", h.handleQuickReply)
	r.Get("/quick-replies", h.handleListQuickReplies)
	r.Post("/classify", h.handleClassify)
	r.Get("/replies/{category}", h.handleListReplies)
}

// handleCreateSession 创建会话（聊天视图挂载）
func (h *Handler) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	session, err := h.chatSvc.Open(r.Context())
	if err != nil {
		h.logger.Error("open session failed", zap.Error(err))
		utils.RespondError(w, http.StatusServiceUnavailable, err.Error())
		return
	}

	utils.RespondJSON(w, http.StatusCreated, session.Snapshot())
}

// handleGetSession 返回会话快照
func (h *Handler) handleGetSession(w http.ResponseWriter, r *http.Request) {
	session, ok := h.lookup(w, r)
	if !ok {
		return
	}
	utils.RespondJSON(w, http.StatusOK, session.Snapshot())
}

// handleDeleteSession 关闭会话（聊天视图卸载）
func (h *Handler) handleDeleteSession(w http.ResponseWriter, r *http.Request) {
	err := h.chatSvc.Close(r.Context(), chi.URLParam(r, "sessionID"))
	if errors.Is(err, chatService.ErrSessionNotFound) {
		utils.RespondError(w, http.StatusNotFound, err.Error())
		return
	}
	if err != nil {
		utils.RespondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleSubmit 提交用户消息
func (h *Handler) handleSubmit(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Text string `json:"text"`
	}
	if err := utils.DecodeJSON(w, r, &payload); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	session, ok := h.lookup(w, r)
	if !ok {
		return
	}

	accepted := session.Submit(payload.Text)
	utils.RespondJSON(w, http.StatusAccepted, SubmitResponse{Accepted: accepted, Snapshot: session.Snapshot()})
}

// handleQuickReply 以快捷回复代替输入
func (h *Handler) handleQuickReply(w http.ResponseWriter, r *http.Request) {
	index, err := strconv.Atoi(chi.URLParam(r, "index"))
	if err != nil {
		utils.RespondError(w, http.StatusBadRequest, "index must be an integer")
		return
	}

	session, ok := h.lookup(w, r)
	if !ok {
		return
	}

	if index < 0 || index >= len(session.QuickReplies()) {
		utils.RespondError(w, http.StatusNotFound, "quick reply not found")
		return
	}

	accepted := session.SubmitQuickReply(index)
	utils.RespondJSON(w, http.StatusAccepted, SubmitResponse{Accepted: accepted, Snapshot: session.Snapshot()})
}

// handleListQuickReplies 列出快捷回复
func (h *Handler) handleListQuickReplies(w http.ResponseWriter, _ *http.Request) {
	utils.RespondJSON(w, http.StatusOK, h.content.QuickReplies())
}

// handleClassify 对文本分类，不产生会话副作用
func (h *Handler) handleClassify(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Text string `json:"text"`
	}
	if err := utils.DecodeJSON(w, r, &payload); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	category := h.chatSvc.Engine().Classify(payload.Text)
	utils.RespondJSON(w, http.StatusOK, ClassifyResponse{Category: category, Label: support.Describe(category)})
}

// handleListReplies 列出某一类别的候选回复
func (h *Handler) handleListReplies(w http.ResponseWriter, r *http.Request) {
	category, ok := support.ParseCategory(chi.URLParam(r, "category"))
	if !ok {
		utils.RespondError(w, http.StatusNotFound, "unknown category")
		return
	}

	utils.RespondJSON(w, http.StatusOK, RepliesResponse{
		Category: category,
		Label:    support.Describe(category),
		Replies:  h.chatSvc.Engine().Replies().Candidates(category),
	})
}

func (h *Handler) lookup(w http.ResponseWriter, r *http.Request) (*chatService.Session, bool) {
	session, err := h.chatSvc.Get(r.Context(), chi.URLParam(r, "sessionID"))
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, chatService.ErrSessionNotFound) {
			status = http.StatusNotFound
		}
		utils.RespondError(w, status, err.Error())
		return nil, false
	}
	return session, true
}
