package main

import (
	"context"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/neurox-app/mindcare/backend/internal/analysis/support"
	"github.com/neurox-app/mindcare/backend/internal/model/content"
	"github.com/neurox-app/mindcare/backend/internal/service/chat"
	"github.com/neurox-app/mindcare/backend/pkg/clock"
)

func newTestModel(t *testing.T) (model, *chat.Session, *clock.Fake) {
	t.Helper()
	fake := clock.NewFake(time.Date(2024, 2, 2, 12, 0, 0, 0, time.UTC))
	store := content.NewMemoryStore(content.Seed())
	svc := chat.NewService(chat.Config{
		TypingDelay:  time.Second,
		Greeting:     content.Greeting,
		QuickReplies: store.QuickReplies(),
		Clock:        fake,
	}, support.NewDefaultEngine(support.NewSequence(0)), nil)
	t.Cleanup(svc.Shutdown)

	session, err := svc.Open(context.Background())
	require.NoError(t, err)
	return newChatModel(session, store.CrisisNotice()), session, fake
}

func typeText(m model, text string) model {
	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(text)})
	return next.(model)
}

func press(m model, key tea.KeyType) (model, tea.Cmd) {
	next, cmd := m.Update(tea.KeyMsg{Type: key})
	return next.(model), cmd
}

// drain feeds every queued snapshot to the model.
func drain(m model) model {
	for {
		select {
		case snap, ok := <-m.updates:
			if !ok {
				return m
			}
			next, _ := m.Update(snapshotMsg{snapshot: snap})
			m = next.(model)
		default:
			return m
		}
	}
}

func TestSubmitShowsTypingIndicator(t *testing.T) {
	m, session, fake := newTestModel(t)
	assert.Contains(t, m.View(), "MindCare Chat")
	assert.Contains(t, m.contentView.View(), "MindCare")

	m = typeText(m, "I feel so lonely")
	m, _ = press(m, tea.KeyEnter)

	assert.True(t, session.Composing())
	assert.Empty(t, m.input.Value())

	m = drain(m)
	assert.True(t, m.snapshot.Composing)
	assert.Contains(t, m.contentView.View(), "typing")

	fake.Advance(time.Second)
	m = drain(m)
	require.Len(t, m.snapshot.Messages, 3)
	assert.False(t, m.snapshot.Composing)
	assert.Equal(t, support.Lonely, m.snapshot.Messages[2].Category)
}

func TestBlankInputKeepsIdle(t *testing.T) {
	m, session, _ := newTestModel(t)

	m = typeText(m, "   ")
	m, _ = press(m, tea.KeyEnter)

	assert.False(t, session.Composing())
	assert.Equal(t, "   ", m.input.Value())
}

func TestSlashSendsQuickReply(t *testing.T) {
	m, session, _ := newTestModel(t)

	m = typeText(m, "/2")
	_, _ = press(m, tea.KeyEnter)

	require.True(t, session.Composing())
	messages := session.Messages()
	assert.Equal(t, "I'm having trouble sleeping", messages[len(messages)-1].Text)
}

func TestQuickReplyHintAndNotice(t *testing.T) {
	m, _, _ := newTestModel(t)

	assert.Contains(t, m.quickReplyHint(), "/6 I'm stressed about work")
	assert.Contains(t, m.noticeLine(), "Crisis Text Line")
}

func TestCtrlCQuits(t *testing.T) {
	m, _, _ := newTestModel(t)

	_, cmd := press(m, tea.KeyCtrlC)
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())

	_, ok := <-m.updates
	for ok {
		_, ok = <-m.updates
	}
}
