package mood

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/neurox-app/mindcare/backend/pkg/clock"
)

func TestAnalyzeStoresLatest(t *testing.T) {
	svc := NewService(Config{Seed: 3}, nil)

	_, ok := svc.Latest()
	require.False(t, ok)

	sample, err := svc.Analyze(context.Background())
	require.NoError(t, err)

	latest, ok := svc.Latest()
	require.True(t, ok)
	assert.Equal(t, sample, latest)
	assert.False(t, svc.Analyzing())
}

func TestAnalyzeWaitsForDelay(t *testing.T) {
	fake := clock.NewFake(time.Date(2024, 5, 1, 8, 0, 0, 0, time.UTC))
	svc := NewService(Config{AnalysisDelay: DefaultAnalysisDelay, Seed: 3, Clock: fake}, nil)

	done := make(chan error, 1)
	go func() {
		_, err := svc.Analyze(context.Background())
		done <- err
	}()

	require.Eventually(t, func() bool { return fake.Pending() == 1 }, time.Second, time.Millisecond)
	assert.True(t, svc.Analyzing())

	_, err := svc.Analyze(context.Background())
	assert.True(t, errors.Is(err, ErrAnalysisInProgress))

	fake.Advance(DefaultAnalysisDelay)
	require.NoError(t, <-done)

	sample, ok := svc.Latest()
	require.True(t, ok)
	assert.Equal(t, fake.Now().UTC(), sample.Timestamp)
}

func TestAnalyzeCanceled(t *testing.T) {
	svc := NewService(Config{AnalysisDelay: time.Hour, Seed: 3}, nil)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	_, err := svc.Analyze(ctx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)

	_, ok := svc.Latest()
	assert.False(t, ok)
	assert.False(t, svc.Analyzing())
}
