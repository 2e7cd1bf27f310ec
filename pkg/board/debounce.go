package board

import (
	"sync"
	"time"
)

// DefaultSaveDelay is the debounce window for persisting user edits. Drag
// and resize events arrive in bursts; only the settled state is worth a
// write.
const DefaultSaveDelay = 800 * time.Millisecond

// Debouncer coalesces rapid triggers into a single callback invocation.
// When Trigger is called again within the delay, the previously scheduled
// callback is cancelled and the timer restarts - at most one pending
// callback exists at any time.
type Debouncer struct {
	delay time.Duration
	mu    sync.Mutex
	timer *time.Timer
	seq   uint64
}

// NewDebouncer creates a debouncer with the given delay.
// A zero delay falls back to DefaultSaveDelay.
func NewDebouncer(delay time.Duration) *Debouncer {
	if delay == 0 {
		delay = DefaultSaveDelay
	}
	return &Debouncer{delay: delay}
}

// Trigger schedules callback to run after the delay, replacing any
// previously scheduled callback.
func (d *Debouncer) Trigger(callback func()) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.seq++
	seq := d.seq

	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.delay, func() {
		d.mu.Lock()
		// Only the most recently scheduled callback may run. Stop() can
		// return false when the timer already fired, so the sequence check
		// is what actually prevents a stale callback from executing.
		if seq != d.seq {
			d.mu.Unlock()
			return
		}
		d.timer = nil
		d.mu.Unlock()

		callback()
	})
}

// Cancel drops any pending callback.
func (d *Debouncer) Cancel() {
	d.mu.Lock()
	defer d.mu.Unlock()

	// Invalidate a callback that may already be racing the timer.
	d.seq++

	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}

// Delay returns the debounce delay.
func (d *Debouncer) Delay() time.Duration { return d.delay }
