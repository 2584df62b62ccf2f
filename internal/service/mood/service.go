package mood

import (
	"context"
	"errors"
	"math/rand"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/neurox-app/mindcare/backend/internal/model/mood"
	"github.com/neurox-app/mindcare/backend/pkg/clock"
)

// DefaultAnalysisDelay mimics the time a real model would take on a frame.
const DefaultAnalysisDelay = 2 * time.Second

// ErrAnalysisInProgress is returned when a second analysis starts before the first ends.
var ErrAnalysisInProgress = errors.New("mood analysis already in progress")

// Config controls the tracker.
type Config struct {
	AnalysisDelay time.Duration
	Seed          int64
	Clock         clock.Clock
}

// Service runs simulated mood checks and remembers the latest reading for the dashboard.
type Service struct {
	delay  time.Duration
	clock  clock.Clock
	logger *zap.Logger

	simMu sync.Mutex
	sim   *mood.Simulator

	mu        sync.RWMutex
	analyzing bool
	latest    *mood.MoodSample
}

// NewService creates the tracker. A zero seed draws from the wall clock.
func NewService(cfg Config, logger *zap.Logger) *Service {
	if cfg.Clock == nil {
		cfg.Clock = clock.Real()
	}
	if cfg.AnalysisDelay < 0 {
		cfg.AnalysisDelay = 0
	}
	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	rnd := rand.New(rand.NewSource(seed))
	return &Service{
		delay:  cfg.AnalysisDelay,
		clock:  cfg.Clock,
		logger: logger,
		sim:    mood.NewSimulator(rnd, rnd, cfg.Clock),
	}
}

// NewServiceWithSimulator is NewService with a caller-supplied simulator.
func NewServiceWithSimulator(cfg Config, sim *mood.Simulator, logger *zap.Logger) *Service {
	svc := NewService(cfg, logger)
	if sim != nil {
		svc.sim = sim
	}
	return svc
}

// Analyze waits out the analysis delay, then records and returns a new sample.
func (s *Service) Analyze(ctx context.Context) (mood.MoodSample, error) {
	s.mu.Lock()
	if s.analyzing {
		s.mu.Unlock()
		return mood.MoodSample{}, ErrAnalysisInProgress
	}
	s.analyzing = true
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		s.analyzing = false
		s.mu.Unlock()
	}()

	if err := s.wait(ctx); err != nil {
		s.logger.Debug("mood analysis canceled", zap.Error(err))
		return mood.MoodSample{}, err
	}

	s.simMu.Lock()
	sample := s.sim.Sample()
	s.simMu.Unlock()

	s.mu.Lock()
	s.latest = &sample
	s.mu.Unlock()

	s.logger.Info("mood sampled",
		zap.String("emotion", sample.DominantEmotion),
		zap.Float64("confidence", sample.Confidence),
	)
	return sample, nil
}

// Analyzing reports whether an analysis is running.
func (s *Service) Analyzing() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.analyzing
}

// Latest returns the most recent sample, if any.
func (s *Service) Latest() (mood.MoodSample, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.latest == nil {
		return mood.MoodSample{}, false
	}
	return *s.latest, true
}

func (s *Service) wait(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s.delay == 0 {
		return nil
	}

	done := make(chan struct{})
	timer := s.clock.AfterFunc(s.delay, func() { close(done) })
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		timer.Stop()
		return ctx.Err()
	}
}
