package chat

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/neurox-app/mindcare/backend/internal/analysis/support"
	"github.com/neurox-app/mindcare/backend/pkg/clock"
)

var (
	ErrSessionNotFound = errors.New("session not found")
	ErrServiceClosed   = errors.New("chat service closed")
)

// Config controls how the service builds sessions.
type Config struct {
	TypingDelay  time.Duration
	Greeting     string
	QuickReplies []string
	Clock        clock.Clock
	// IdleTTL closes sessions that stay idle and unread this long. Zero keeps them until closed.
	IdleTTL time.Duration
}

// Service keeps the sessions of the chat views currently mounted.
// Sessions never share state beyond the read-only engine.
type Service struct {
	cfg    Config
	engine *support.Engine
	logger *zap.Logger

	mu       sync.RWMutex
	sessions map[string]*Session
	closed   bool
	sweeper  clock.Timer
}

// NewService bootstraps the in-memory session registry.
func NewService(cfg Config, engine *support.Engine, logger *zap.Logger) *Service {
	if engine == nil {
		engine = support.NewDefaultEngine(nil)
	}
	if cfg.Clock == nil {
		cfg.Clock = clock.Real()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	svc := &Service{
		cfg:      cfg,
		engine:   engine,
		logger:   logger,
		sessions: make(map[string]*Session),
	}
	if cfg.IdleTTL > 0 {
		svc.mu.Lock()
		svc.scheduleSweepLocked()
		svc.mu.Unlock()
	}
	return svc
}

// Engine returns the shared classifier and reply selector.
func (s *Service) Engine() *support.Engine { return s.engine }

// Open mounts a new session seeded with the greeting.
func (s *Service) Open(ctx context.Context) (*Session, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	session := NewSession(Options{
		ID:           uuid.NewString(),
		Engine:       s.engine,
		Clock:        s.cfg.Clock,
		TypingDelay:  s.cfg.TypingDelay,
		Greeting:     s.cfg.Greeting,
		QuickReplies: s.cfg.QuickReplies,
		Logger:       s.logger,
	})

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		session.Close()
		return nil, ErrServiceClosed
	}
	s.sessions[session.ID()] = session
	s.mu.Unlock()

	s.logger.Info("session opened", zap.String("session", session.ID()))
	return session, nil
}

// Get retrieves a mounted session by identifier.
func (s *Service) Get(_ context.Context, sessionID string) (*Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	session, ok := s.sessions[sessionID]
	if !ok {
		return nil, ErrSessionNotFound
	}
	session.touch()
	return session, nil
}

// Close unmounts a session and discards its history.
func (s *Service) Close(_ context.Context, sessionID string) error {
	s.mu.Lock()
	session, ok := s.sessions[sessionID]
	delete(s.sessions, sessionID)
	s.mu.Unlock()

	if !ok {
		return ErrSessionNotFound
	}
	session.Close()
	s.logger.Info("session closed", zap.String("session", sessionID))
	return nil
}

// Len returns the number of mounted sessions.
func (s *Service) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

// Shutdown closes every session and rejects further Opens.
func (s *Service) Shutdown() {
	s.mu.Lock()
	sessions := s.sessions
	s.sessions = make(map[string]*Session)
	s.closed = true
	if s.sweeper != nil {
		s.sweeper.Stop()
		s.sweeper = nil
	}
	s.mu.Unlock()

	for _, session := range sessions {
		session.Close()
	}
	s.logger.Info("chat service shut down", zap.Int("sessions", len(sessions)))
}

func (s *Service) scheduleSweepLocked() {
	s.sweeper = s.cfg.Clock.AfterFunc(s.cfg.IdleTTL, s.sweep)
}

// sweep closes sessions idle for at least IdleTTL, then schedules the next pass.
func (s *Service) sweep() {
	cutoff := s.cfg.Clock.Now().Add(-s.cfg.IdleTTL)

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	var expired []*Session
	for id, session := range s.sessions {
		if session.idleSince(cutoff) {
			expired = append(expired, session)
			delete(s.sessions, id)
		}
	}
	s.scheduleSweepLocked()
	s.mu.Unlock()

	for _, session := range expired {
		session.Close()
		s.logger.Info("idle session expired", zap.String("session", session.ID()))
	}
}
