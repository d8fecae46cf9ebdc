package quiz

import (
	"fmt"
	"sync"
	"time"
)

// WarningThreshold is the remaining time at which the timer enters its
// last-minute state.
const WarningThreshold = 60

// Scheduler runs fn repeatedly every d until the returned cancel is called.
type Scheduler interface {
	Every(d time.Duration, fn func()) (cancel func())
}

// TickerScheduler schedules on a goroutine driven by time.Ticker.
type TickerScheduler struct{}

func (TickerScheduler) Every(d time.Duration, fn func()) func() {
	t := time.NewTicker(d)
	stop := make(chan struct{})
	go func() {
		for {
			select {
			case <-t.C:
				fn()
			case <-stop:
				return
			}
		}
	}()

	var once sync.Once
	return func() {
		once.Do(func() {
			t.Stop()
			close(stop)
		})
	}
}

// Timer is a whole-second countdown. It is not safe for concurrent use on
// its own; Session serializes access.
type Timer struct {
	limit     int
	remaining int
	running   bool
	cancel    func()
}

// NewTimer creates a stopped timer for limit seconds.
func NewTimer(limit int) *Timer {
	return &Timer{limit: limit, remaining: limit}
}

// Start begins counting down. With a non-nil scheduler, fn is invoked once
// per second and is expected to call Tick; with a nil scheduler the caller
// drives Tick itself.
func (t *Timer) Start(sched Scheduler, fn func()) {
	t.Stop()
	t.remaining = t.limit
	t.running = true
	if sched != nil {
		t.cancel = sched.Every(time.Second, fn)
	}
}

// Tick decrements the countdown by one second. It returns true exactly once,
// on the tick that reaches zero, and stops the timer. Ticks while stopped
// are ignored.
func (t *Timer) Tick() (expired bool) {
	if !t.running {
		return false
	}
	t.remaining--
	if t.remaining <= 0 {
		t.Stop()
		return true
	}
	return false
}

// Stop halts the countdown. It is safe to call when already stopped.
func (t *Timer) Stop() {
	t.running = false
	if t.cancel != nil {
		cancel := t.cancel
		t.cancel = nil
		cancel()
	}
}

// Reset stops the timer and restores the full limit.
func (t *Timer) Reset() {
	t.Stop()
	t.remaining = t.limit
}

// Running reports whether the countdown is active.
func (t *Timer) Running() bool {
	return t.running
}

// Limit returns the configured duration in seconds.
func (t *Timer) Limit() int {
	return t.limit
}

// Remaining returns the seconds left, never negative.
func (t *Timer) Remaining() int {
	return max(0, t.remaining)
}

// Warning reports whether the countdown is in its last minute.
func (t *Timer) Warning() bool {
	return t.limit > 0 && t.Remaining() <= WarningThreshold
}

// FormatClock renders seconds as M:SS.
func FormatClock(sec int) string {
	sec = max(0, sec)
	return fmt.Sprintf("%d:%02d", sec/60, sec%60)
}
