package mocks

import (
	"context"
	"sync"
	"time"
)

// Clock returns a scripted sequence of times. Once the sequence is exhausted
// it keeps returning the last time.
type Clock struct {
	mu    sync.Mutex
	times []time.Time
	calls int
}

// NewClock creates a clock returning base plus each offset in turn.
func NewClock(base time.Time, offsets ...time.Duration) *Clock {
	c := &Clock{}
	for _, d := range offsets {
		c.times = append(c.times, base.Add(d))
	}
	if len(c.times) == 0 {
		c.times = []time.Time{base}
	}
	return c
}

// Now returns the next scripted time.
func (c *Clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	i := c.calls
	if i >= len(c.times) {
		i = len(c.times) - 1
	}
	c.calls++
	return c.times[i]
}

// Calls returns how many times Now was called.
func (c *Clock) Calls() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.calls
}

// Timestamps returns fixed commit times per path. CommitTime reports the
// latest time among the requested paths; unknown paths count as never changed.
type Timestamps struct {
	mu    sync.Mutex
	times map[string]time.Time
	err   error
	calls [][]string
}

// NewTimestamps creates a provider from path → commit time.
func NewTimestamps(times map[string]time.Time) *Timestamps {
	if times == nil {
		times = make(map[string]time.Time)
	}
	return &Timestamps{times: times}
}

// WithError makes every lookup fail.
func (m *Timestamps) WithError(err error) *Timestamps {
	m.err = err
	return m
}

// CommitTime implements verifier.TimestampProvider.
func (m *Timestamps) CommitTime(_ context.Context, paths []string) (time.Time, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, append([]string(nil), paths...))
	if m.err != nil {
		return time.Time{}, m.err
	}
	var latest time.Time
	for _, p := range paths {
		if t, ok := m.times[p]; ok && t.After(latest) {
			latest = t
		}
	}
	return latest, nil
}

// Calls returns the path lists passed to CommitTime.
func (m *Timestamps) Calls() [][]string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([][]string(nil), m.calls...)
}
