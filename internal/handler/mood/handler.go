package mood

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	moodService "github.com/neurox-app/mindcare/backend/internal/service/mood"
	"github.com/neurox-app/mindcare/backend/pkg/utils"
)

// Handler 情绪检测的HTTP处理器
type Handler struct {
	moodSvc *moodService.Service
	logger  *zap.Logger
}

// New 创建情绪检测处理器
func New(moodSvc *moodService.Service, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{moodSvc: moodSvc, logger: logger}
}

// RegisterRoutes 注册情绪检测相关的路由
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/mood/analyze", h.handleAnalyze)
	r.Get("/mood", h.handleLatest)
}

// handleAnalyze 运行一次模拟检测
func (h *Handler) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	sample, err := h.moodSvc.Analyze(r.Context())
	switch {
	case errors.Is(err, moodService.ErrAnalysisInProgress):
		utils.RespondError(w, http.StatusConflict, err.Error())
		return
	case err != nil:
		h.logger.Debug("mood analysis aborted", zap.Error(err))
		utils.RespondError(w, http.StatusRequestTimeout, "analysis canceled")
		return
	}
	utils.RespondJSON(w, http.StatusOK, sample)
}

// handleLatest 返回最近一次检测结果
func (h *Handler) handleLatest(w http.ResponseWriter, _ *http.Request) {
	sample, ok := h.moodSvc.Latest()
	if !ok {
		utils.RespondError(w, http.StatusNotFound, "no mood sample yet")
		return
	}
	utils.RespondJSON(w, http.StatusOK, sample)
}
