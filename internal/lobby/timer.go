package lobby

import (
	"sync"
	"time"
)

// graceTimer fires a callback once after a fixed duration unless stopped
// first. It is safe for concurrent use. Reconnection stops the timer
// outright; the controller additionally re-checks the participant's
// Connected flag at fire time, so a lost race is still harmless.
type graceTimer struct {
	mu      sync.Mutex
	timer   *time.Timer
	stopped bool
}

// newGraceTimer creates and arms a timer that calls onFire after d.
// onFire runs on its own goroutine.
func newGraceTimer(d time.Duration, onFire func()) *graceTimer {
	gt := &graceTimer{}
	gt.timer = time.AfterFunc(d, func() {
		gt.mu.Lock()
		stopped := gt.stopped
		gt.mu.Unlock()
		if !stopped {
			onFire()
		}
	})
	return gt
}

// Stop prevents the callback from firing. Safe to call multiple times.
func (gt *graceTimer) Stop() {
	gt.mu.Lock()
	defer gt.mu.Unlock()
	gt.stopped = true
	gt.timer.Stop()
}
