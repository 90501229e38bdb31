package video

import (
	"math"
	"time"

	"github.com/bmharper/ringbuffer"

	"github.com/vidscan/vidscan/pkg/stats"
)

// Number of trailing per-frame durations that feed the rolling FPS average
const rollingWindow = 30

// Summary is the result of processing one video.
type Summary struct {
	TotalFrames int           // Frames read, processed and written
	TotalTime   time.Duration // Wall clock time for the whole run
	AvgFPS      float64       // TotalFrames / TotalTime (0 for an empty video)
	AvgPersons  float64       // Mean detections per frame
	MinPersons  int           // Fewest detections in any frame
	MaxPersons  int           // Most detections in any frame
	Resolution  string        // eg "1920x1080"
	OutputPath  string
}

// runStats accumulates per-frame measurements during a run.
// Invariant: frameCount == len(personCounts) == frames written to the sink,
// at every point in the loop.
type runStats struct {
	frameCount   int
	personCounts []int
	durations    ringbuffer.RingP[time.Duration]
}

func newRunStats() *runStats {
	return &runStats{
		durations: ringbuffer.NewRingP[time.Duration](nextPowerOf2(rollingWindow)),
	}
}

// rollingFPS returns the average frames per second over at most the last
// rollingWindow frame durations, or 0 if no frame has been timed yet.
func (s *runStats) rollingFPS() float64 {
	n := min(s.durations.Len(), rollingWindow)
	if n == 0 {
		return 0
	}
	total := time.Duration(0)
	for k := 0; k < n; k++ {
		total += s.durations.Peek(s.durations.Len() - 1 - k)
	}
	mean := total / time.Duration(n)
	if mean == 0 {
		return 0
	}
	return float64(time.Second) / float64(mean)
}

func (s *runStats) summarize(totalTime time.Duration, meta StreamMeta, outputPath string) *Summary {
	avgFPS := 0.0
	if totalTime > 0 {
		avgFPS = float64(s.frameCount) / totalTime.Seconds()
	}
	return &Summary{
		TotalFrames: s.frameCount,
		TotalTime:   totalTime,
		AvgFPS:      avgFPS,
		AvgPersons:  stats.Mean(s.personCounts),
		MinPersons:  stats.Min(s.personCounts),
		MaxPersons:  stats.Max(s.personCounts),
		Resolution:  meta.Resolution(),
		OutputPath:  outputPath,
	}
}

func nextPowerOf2(n int) int {
	return 1 << int(math.Ceil(math.Log2(float64(n))))
}
