package lobby

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGraceTimerFires(t *testing.T) {
	var fired atomic.Int32
	newGraceTimer(10*time.Millisecond, func() { fired.Add(1) })

	require.Eventually(t, func() bool {
		return fired.Load() == 1
	}, time.Second, 5*time.Millisecond)

	time.Sleep(30 * time.Millisecond)
	assert.Equal(t, int32(1), fired.Load(), "one-shot timer fires once")
}

func TestGraceTimerStop(t *testing.T) {
	var fired atomic.Int32
	gt := newGraceTimer(20*time.Millisecond, func() { fired.Add(1) })
	gt.Stop()

	time.Sleep(80 * time.Millisecond)
	assert.Equal(t, int32(0), fired.Load())
}

func TestGraceTimerStopIdempotent(t *testing.T) {
	gt := newGraceTimer(10*time.Millisecond, func() {})
	gt.Stop()
	gt.Stop()
}
