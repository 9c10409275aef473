package flow

import (
	"sync"
	"time"
)

// Cooldown is a restartable one-second countdown gating resend-code
// actions. The server is authoritative for the real expiry; this only
// mirrors it locally for display and gating. Each flow owns one
// instance; instances are never shared across flows.
type Cooldown struct {
	mu        sync.Mutex
	remaining int
	stop      chan struct{}
}

func NewCooldown() *Cooldown {
	return &Cooldown{}
}

// Set restarts the countdown from the given number of seconds.
// Negative values clamp to zero. A zero value cancels any running
// countdown immediately.
func (c *Cooldown) Set(seconds int) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.stopLocked()

	if seconds < 0 {
		seconds = 0
	}
	c.remaining = seconds
	if seconds == 0 {
		return
	}

	stop := make(chan struct{})
	c.stop = stop
	go c.run(stop)
}

// Remaining returns the seconds left, never negative.
func (c *Cooldown) Remaining() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.remaining
}

// Active reports whether the cooldown is still counting down.
func (c *Cooldown) Active() bool {
	return c.Remaining() > 0
}

// Stop tears the countdown down. Called on flow teardown so no ticker
// goroutine outlives its owning step.
func (c *Cooldown) Stop() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.stopLocked()
	c.remaining = 0
}

func (c *Cooldown) stopLocked() {
	if c.stop != nil {
		close(c.stop)
		c.stop = nil
	}
}

func (c *Cooldown) run(stop chan struct{}) {
	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			c.mu.Lock()
			if c.remaining > 0 {
				c.remaining--
			}
			done := c.remaining == 0
			if done && c.stop == stop {
				c.stop = nil
			}
			c.mu.Unlock()

			if done {
				return
			}
		}
	}
}
