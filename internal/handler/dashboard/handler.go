package dashboard

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/neurox-app/mindcare/backend/internal/model/content"
	"github.com/neurox-app/mindcare/backend/internal/model/mood"
	"github.com/neurox-app/mindcare/backend/pkg/utils"
)

// MoodSource 提供最近一次情绪检测结果
type MoodSource interface {
	Latest() (mood.MoodSample, bool)
}

// Handler dashboard服务的HTTP处理器
type Handler struct {
	content content.Store
	moods   MoodSource
}

// New 创建dashboard处理器
func New(store content.Store, moods MoodSource) *Handler {
	return &Handler{
		content: store,
		moods:   moods,
	}
}

// CurrentMood 当前情绪卡片
type CurrentMood struct {
	Sample mood.MoodSample `json:"sample"`
	Beat   mood.Beat       `json:"beat"`
}

// View 仪表盘完整数据
type View struct {
	Mood      *CurrentMood       `json:"mood"`
	Tips      []content.Tip      `json:"tips"`
	Resources []content.Resource `json:"resources"`
}

// RegisterRoutes 注册dashboard相关的路由
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/dashboard", h.handleDashboard)
	r.Get("/tips", h.handleListTips)
	r.Get("/resources", h.handleListResources)
}

// handleDashboard 汇总当前情绪、小贴士与求助资源
func (h *Handler) handleDashboard(w http.ResponseWriter, _ *http.Request) {
	view := View{
		Tips:      h.content.Tips(),
		Resources: h.content.Resources(),
	}
	if h.moods != nil {
		if sample, ok := h.moods.Latest(); ok {
			view.Mood = &CurrentMood{Sample: sample, Beat: mood.BeatFor(sample.DominantEmotion)}
		}
	}
	utils.RespondJSON(w, http.StatusOK, view)
}

// handleListTips 列出所有小贴士
func (h *Handler) handleListTips(w http.ResponseWriter, _ *http.Request) {
	utils.RespondJSON(w, http.StatusOK, h.content.Tips())
}

// handleListResources 列出求助资源
func (h *Handler) handleListResources(w http.ResponseWriter, _ *http.Request) {
	utils.RespondJSON(w, http.StatusOK, h.content.Resources())
}
