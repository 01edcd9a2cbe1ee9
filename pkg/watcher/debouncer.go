package watcher

import (
	"sync"
	"time"
)

// DefaultDebounceDuration is the default refresh window.
const DefaultDebounceDuration = 250 * time.Millisecond

// Debouncer coalesces bursts of file events into one refresh. Each Trigger
// restarts the window; the refresh runs once the window passes quietly.
type Debouncer struct {
	duration time.Duration
	refresh  func()

	mu    sync.Mutex
	timer *time.Timer
	seq   uint64
	fired uint64
}

// NewDebouncer returns a debouncer that calls refresh. A zero duration
// selects DefaultDebounceDuration.
func NewDebouncer(duration time.Duration, refresh func()) *Debouncer {
	if duration <= 0 {
		duration = DefaultDebounceDuration
	}
	return &Debouncer{duration: duration, refresh: refresh}
}

// Trigger (re)starts the window.
func (d *Debouncer) Trigger() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.seq++
	seq := d.seq

	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.duration, func() {
		d.mu.Lock()
		// A stale timer may fire after Stop raced with expiry.
		if seq != d.seq {
			d.mu.Unlock()
			return
		}
		d.timer = nil
		d.fired++
		d.mu.Unlock()

		d.refresh()
	})
}

// Cancel drops a pending refresh.
func (d *Debouncer) Cancel() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.seq++
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}

// Pending reports whether a refresh is scheduled.
func (d *Debouncer) Pending() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.timer != nil
}

// Fired returns how many refreshes have run.
func (d *Debouncer) Fired() uint64 {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.fired
}

// Duration returns the debounce window.
func (d *Debouncer) Duration() time.Duration {
	return d.duration
}
