package video

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestRollingFPS(t *testing.T) {
	st := newRunStats()
	require.Equal(t, 0.0, st.rollingFPS())

	st.durations.Add(50 * time.Millisecond)
	require.InDelta(t, 20.0, st.rollingFPS(), 1e-9)

	// Push the first sample out of the window: 10 slow frames followed by
	// 30 fast ones. Only the trailing 30 may contribute.
	st = newRunStats()
	for i := 0; i < 10; i++ {
		st.durations.Add(20 * time.Millisecond)
	}
	for i := 0; i < 30; i++ {
		st.durations.Add(10 * time.Millisecond)
	}
	require.InDelta(t, 100.0, st.rollingFPS(), 1e-9)
}

func TestRollingFPSPartialWindow(t *testing.T) {
	st := newRunStats()
	st.durations.Add(10 * time.Millisecond)
	st.durations.Add(30 * time.Millisecond)
	// mean of 10ms and 30ms is 20ms
	require.InDelta(t, 50.0, st.rollingFPS(), 1e-9)
}

func TestNextPowerOf2(t *testing.T) {
	require.Equal(t, 32, nextPowerOf2(30))
	require.Equal(t, 32, nextPowerOf2(32))
	require.Equal(t, 64, nextPowerOf2(33))
	require.Equal(t, 1, nextPowerOf2(1))
}
