package realtime

import (
	"sync"
	"time"
)

// DefaultDebounce is the quiescence window: a pair's timer resets on
// every update and the evaluator runs once after it elapses without a
// further update.
const DefaultDebounce = 100 * time.Millisecond

// debouncer owns one timer per pair. Trigger resets the pair's timer;
// stop cancels every outstanding timer so no further callback fires.
type debouncer struct {
	mu sync.Mutex
	window time.Duration
	timers map[string]*time.Timer
	fn func(pairID string)
	stopped bool
}

func newDebouncer(window time.Duration, fn func(pairID string)) *debouncer {
	if window <= 0 {
		window = DefaultDebounce
	}
	return &debouncer{window: window, timers: make(map[string]*time.Timer), fn: fn}
}

// trigger resets pairID's debounce timer, starting it if this is the
// first update since the last fire. A no-op after stop.
func (d *debouncer) trigger(pairID string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.stopped {
		return
	}

	if t, ok := d.timers[pairID]; ok {
		t.Stop()
	}
	d.timers[pairID] = time.AfterFunc(d.window, func() {
		d.mu.Lock()
		stopped := d.stopped
		d.mu.Unlock()
		if !stopped {
			d.fn(pairID)
		}
	})
}

// stop cancels every pending timer and suppresses any already-fired
// callback that hasn't run fn yet, guaranteeing no emission after stop
// returns.
func (d *debouncer) stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.stopped = true
	for id, t := range d.timers {
		t.Stop()
		delete(d.timers, id)
	}
}
