package clock

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFakeAdvanceFiresInDueOrder(t *testing.T) {
	start := time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)
	c := NewFake(start)

	var fired []string
	c.AfterFunc(2*time.Second, func() { fired = append(fired, "late") })
	c.AfterFunc(time.Second, func() { fired = append(fired, "early") })
	c.AfterFunc(5*time.Second, func() { fired = append(fired, "future") })

	c.Advance(3 * time.Second)

	assert.Equal(t, []string{"early", "late"}, fired)
	assert.Equal(t, start.Add(3*time.Second), c.Now())
	assert.Equal(t, 1, c.Pending())
}

func TestFakeCallbackSeesDueTime(t *testing.T) {
	start := time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)
	c := NewFake(start)

	var seen time.Time
	c.AfterFunc(1500*time.Millisecond, func() { seen = c.Now() })
	c.Advance(10 * time.Second)

	assert.Equal(t, start.Add(1500*time.Millisecond), seen)
}

func TestFakeStop(t *testing.T) {
	c := NewFake(time.Now())
	called := false
	timer := c.AfterFunc(time.Second, func() { called = true })

	assert.True(t, timer.Stop())
	assert.False(t, timer.Stop())
	c.Advance(time.Minute)
	assert.False(t, called)
}

func TestFakeRunsCallbacksScheduledWhileFiring(t *testing.T) {
	c := NewFake(time.Now())
	count := 0
	c.AfterFunc(time.Second, func() {
		count++
		c.AfterFunc(time.Second, func() { count++ })
	})

	c.Advance(2 * time.Second)
	assert.Equal(t, 2, count)
}
