package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/neurox-app/mindcare/backend/internal/model/chat"
	"github.com/neurox-app/mindcare/backend/internal/model/content"
	chatService "github.com/neurox-app/mindcare/backend/internal/service/chat"
	moodService "github.com/neurox-app/mindcare/backend/internal/service/mood"
	"github.com/neurox-app/mindcare/backend/pkg/clock"
)

func newTestRouter(t *testing.T) (http.Handler, *clock.Fake) {
	t.Helper()
	fake := clock.NewFake(time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC))
	store := content.NewMemoryStore(content.Seed())
	chatSvc := chatService.NewService(chatService.Config{
		TypingDelay:  time.Second,
		Greeting:     content.Greeting,
		QuickReplies: store.QuickReplies(),
		Clock:        fake,
	}, nil, nil)
	t.Cleanup(chatSvc.Shutdown)
	moodSvc := moodService.NewService(moodService.Config{Seed: 7, Clock: fake}, nil)

	return NewRouter(store, chatSvc, moodSvc, []string{"http://localhost:5173"}, nil), fake
}

func TestHealthz(t *testing.T) {
	r, _ := newTestRouter(t)
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	assert.Equal(t, http.StatusOK, resp.Code)
	assert.Equal(t, "ok", resp.Body.String())
}

func TestConversationThroughAPI(t *testing.T) {
	r, fake := newTestRouter(t)

	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, httptest.NewRequest(http.MethodPost, "/api/sessions", nil))
	require.Equal(t, http.StatusCreated, resp.Code)

	var snap chat.Snapshot
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &snap))
	require.Len(t, snap.Messages, 1)
	assert.Equal(t, content.Greeting, snap.Messages[0].Text)

	resp = httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/sessions/"+snap.SessionID+"/messages", strings.NewReader(`{"text":"I can't sleep"}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(resp, req)
	require.Equal(t, http.StatusAccepted, resp.Code)

	fake.Advance(time.Second)

	resp = httptest.NewRecorder()
	r.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/api/sessions/"+snap.SessionID, nil))
	require.Equal(t, http.StatusOK, resp.Code)
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &snap))
	require.Len(t, snap.Messages, 3)
	assert.False(t, snap.Composing)
	assert.Equal(t, chat.SenderBot, snap.Messages[2].Sender)
}

func TestDashboardRoutesMounted(t *testing.T) {
	r, _ := newTestRouter(t)

	for _, path := range []string{"/api/dashboard", "/api/tips", "/api/resources", "/api/quick-replies"} {
		resp := httptest.NewRecorder()
		r.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, path, nil))
		assert.Equal(t, http.StatusOK, resp.Code, path)
	}

	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/api/mood", nil))
	assert.Equal(t, http.StatusNotFound, resp.Code)
}

func TestCORSPreflight(t *testing.T) {
	r, _ := newTestRouter(t)

	req := httptest.NewRequest(http.MethodOptions, "/api/sessions", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	assert.Equal(t, "http://localhost:5173", resp.Header().Get("Access-Control-Allow-Origin"))
}
