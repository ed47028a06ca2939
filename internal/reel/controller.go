// Package reel drives the carousel ("reel") presentation of the current page:
// a timer advances the shown index while manual next/previous calls move it
// independently.
package reel

import (
	"sync"
	"time"
)

const DefaultDelay = 3 * time.Second

// tickerFunc returns a tick channel and its stop function.
type tickerFunc func(d time.Duration) (<-chan time.Time, func())

func stdTicker(d time.Duration) (<-chan time.Time, func()) {
	t := time.NewTicker(d)
	return t.C, t.Stop
}

// Controller is an explicit, cancellable autoplay handle. The zero value is
// not usable; call New.
type Controller struct {
	delay     time.Duration
	onShow    func(index int)
	newTicker tickerFunc

	mu    sync.Mutex
	count int
	index int
	gen   uint64
	stop  chan struct{}
}

// New returns an idle controller. onShow is invoked, outside any internal
// lock, every time a different index becomes visible; it may be nil.
func New(delay time.Duration, onShow func(index int)) *Controller {
	if delay <= 0 {
		delay = DefaultDelay
	}
	if onShow == nil {
		onShow = func(int) {}
	}
	return &Controller{delay: delay, onShow: onShow, newTicker: stdTicker}
}

// Start cancels any running timer and begins cycling over n items, showing
// index 0 immediately. n <= 0 leaves the controller idle.
func (c *Controller) Start(n int) {
	c.mu.Lock()
	c.cancelLocked()
	c.index = 0
	if n <= 0 {
		c.count = 0
		c.mu.Unlock()
		return
	}
	c.count = n
	c.gen++
	gen := c.gen
	stop := make(chan struct{})
	c.stop = stop
	ticks, stopTicker := c.newTicker(c.delay)
	c.mu.Unlock()

	c.onShow(0)
	go c.run(gen, ticks, stopTicker, stop)
}

func (c *Controller) run(gen uint64, ticks <-chan time.Time, stopTicker func(), stop <-chan struct{}) {
	defer stopTicker()
	for {
		select {
		case <-stop:
			return
		case <-ticks:
			c.mu.Lock()
			if c.gen != gen || c.count == 0 {
				c.mu.Unlock()
				return
			}
			c.index = (c.index + 1) % c.count
			idx := c.index
			c.mu.Unlock()
			c.onShow(idx)
		}
	}
}

// Stop cancels the timer and returns the controller to idle.
func (c *Controller) Stop() {
	c.mu.Lock()
	c.cancelLocked()
	c.count = 0
	c.index = 0
	c.mu.Unlock()
}

func (c *Controller) cancelLocked() {
	if c.stop != nil {
		close(c.stop)
		c.stop = nil
	}
	c.gen++
}

// Next moves one item forward, wrapping around. It returns the new index.
func (c *Controller) Next() int { return c.step(1) }

// Prev moves one item back, wrapping around. It returns the new index.
func (c *Controller) Prev() int { return c.step(-1) }

func (c *Controller) step(delta int) int {
	c.mu.Lock()
	if c.count == 0 {
		c.mu.Unlock()
		return 0
	}
	c.index = (c.index + delta + c.count) % c.count
	idx := c.index
	c.mu.Unlock()
	c.onShow(idx)
	return idx
}

func (c *Controller) Index() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.index
}

func (c *Controller) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.count
}

// Running reports whether a timer is active.
func (c *Controller) Running() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.stop != nil
}

func (c *Controller) Delay() time.Duration { return c.delay }
