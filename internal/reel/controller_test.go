package reel

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeTickers hands out manually driven tick channels.
type fakeTickers struct {
	mu      sync.Mutex
	chans   []chan time.Time
	stopped []bool
}

func (f *fakeTickers) new(time.Duration) (<-chan time.Time, func()) {
	f.mu.Lock()
	defer f.mu.Unlock()
	ch := make(chan time.Time)
	i := len(f.chans)
	f.chans = append(f.chans, ch)
	f.stopped = append(f.stopped, false)
	return ch, func() {
		f.mu.Lock()
		f.stopped[i] = true
		f.mu.Unlock()
	}
}

func (f *fakeTickers) tick(i int) {
	f.mu.Lock()
	ch := f.chans[i]
	f.mu.Unlock()
	ch <- time.Now()
}

func (f *fakeTickers) isStopped(i int) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.stopped[i]
}

type shown struct {
	mu  sync.Mutex
	seq []int
}

func (s *shown) record(i int) {
	s.mu.Lock()
	s.seq = append(s.seq, i)
	s.mu.Unlock()
}

func (s *shown) last() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.seq[len(s.seq)-1]
}

func newTestController(t *testing.T) (*Controller, *fakeTickers, *shown) {
	t.Helper()
	ft := &fakeTickers{}
	sh := &shown{}
	c := New(DefaultDelay, sh.record)
	c.newTicker = ft.new
	t.Cleanup(c.Stop)
	return c, ft, sh
}

func TestStartShowsFirstImmediately(t *testing.T) {
	c, _, sh := newTestController(t)
	c.Start(4)

	assert.Equal(t, 0, c.Index())
	assert.Equal(t, 0, sh.last())
	assert.True(t, c.Running())
}

func TestStartWithNoItemsStaysIdle(t *testing.T) {
	c, ft, _ := newTestController(t)
	c.Start(0)

	assert.False(t, c.Running())
	assert.Empty(t, ft.chans)
	assert.Equal(t, 0, c.Next())
	assert.Equal(t, 0, c.Prev())
}

func TestNextWrapsModuloCount(t *testing.T) {
	c, _, _ := newTestController(t)
	const k = 3
	c.Start(k)
	for n := 1; n <= 10; n++ {
		c.Next()
		assert.Equal(t, n%k, c.Index(), "after %d next calls", n)
	}
}

func TestPrevFromZeroWrapsToLast(t *testing.T) {
	c, _, sh := newTestController(t)
	c.Start(5)

	assert.Equal(t, 4, c.Prev())
	assert.Equal(t, 4, sh.last())
}

func TestTickAdvances(t *testing.T) {
	c, ft, _ := newTestController(t)
	c.Start(2)

	ft.tick(0)
	require.Eventually(t, func() bool { return c.Index() == 1 }, time.Second, time.Millisecond)
	ft.tick(0)
	require.Eventually(t, func() bool { return c.Index() == 0 }, time.Second, time.Millisecond)
}

func TestRestartCancelsPreviousTimer(t *testing.T) {
	c, ft, _ := newTestController(t)
	c.Start(3)
	c.Next()
	c.Start(6)

	require.Len(t, ft.chans, 2)
	require.Eventually(t, func() bool { return ft.isStopped(0) }, time.Second, time.Millisecond)
	assert.Equal(t, 0, c.Index())
	assert.Equal(t, 6, c.Len())

	ft.tick(1)
	require.Eventually(t, func() bool { return c.Index() == 1 }, time.Second, time.Millisecond)
}

func TestStopReturnsToIdle(t *testing.T) {
	c, ft, _ := newTestController(t)
	c.Start(3)
	c.Stop()

	assert.False(t, c.Running())
	assert.Equal(t, 0, c.Len())
	require.Eventually(t, func() bool { return ft.isStopped(0) }, time.Second, time.Millisecond)
}

func TestRealTimerAdvances(t *testing.T) {
	sh := &shown{}
	c := New(5*time.Millisecond, sh.record)
	defer c.Stop()
	c.Start(3)

	require.Eventually(t, func() bool { return c.Index() != 0 }, time.Second, time.Millisecond)
}
