package video

// Package video drives the per-frame processing loop: decode, detect,
// annotate, encode, with side channel statistics and progress reporting.
// Execution is purely sequential; the only suspension point a caller can
// observe is the progress callback, which is invoked inline.

import (
	"fmt"
	"image"
	"image/color"
	"os"
	"time"

	"github.com/cyclopcam/logs"
	"gocv.io/x/gocv"

	"github.com/vidscan/vidscan/pkg/nn"
)

// Invoke the progress callback every this many frames
const progressInterval = 30

// Detector is the object detection capability that the pipeline drives.
// Detect is stateless per call. Annotate must not modify its input; the
// caller owns the returned Mat.
type Detector interface {
	Detect(frame gocv.Mat) ([]nn.ObjectDetection, error)
	Annotate(frame gocv.Mat, detections []nn.ObjectDetection) gocv.Mat
}

// ProgressFunc receives progress updates during a run. percent is advisory:
// it is computed against the container's frame count estimate, which some
// containers misreport, so it is not guaranteed to stay below 100.
type ProgressFunc func(percent float64, current, total int, fps float64)

// Options for a processing run
type Options struct {
	ShowFPS    bool         // Overlay "FPS: ... | Persons: ..." on output frames
	OnProgress ProgressFunc // Optional. Called inline every progressInterval frames.
}

// Processor turns an input video into an annotated output video.
type Processor struct {
	log        logs.Log
	detector   Detector
	inputPath  string
	outputPath string
}

// NewProcessor fails if the input path does not exist. The output directory
// is only created once processing starts.
func NewProcessor(log logs.Log, detector Detector, inputPath, outputPath string) (*Processor, error) {
	if _, err := os.Stat(inputPath); err != nil {
		return nil, fmt.Errorf("input video %v: %w", inputPath, err)
	}
	return &Processor{
		log:        log,
		detector:   detector,
		inputPath:  inputPath,
		outputPath: outputPath,
	}, nil
}

// ProcessVideo opens the input and output streams and runs the processing
// loop to end of stream. Both streams are released before returning, on
// every path. Any failure inside the loop aborts the run; there is no
// per-frame retry or skip.
func (p *Processor) ProcessVideo(options Options) (*Summary, error) {
	source, err := OpenFileSource(p.inputPath)
	if err != nil {
		return nil, err
	}
	defer source.Close()

	sink, err := CreateFileSink(p.outputPath, source.Meta())
	if err != nil {
		return nil, err
	}
	defer sink.Close()

	return Run(p.log, p.detector, source, sink, p.outputPath, options)
}

// Run is the core loop, split from ProcessVideo so that callers can supply
// their own streams. It terminates when source is exhausted; that is the
// sole terminal condition.
func Run(log logs.Log, detector Detector, source FrameSource, sink FrameSink, outputPath string, options Options) (*Summary, error) {
	meta := source.Meta()
	log.Infof("Input stream: %v @ %.4g FPS, ~%v frames", meta.Resolution(), meta.FPS, meta.TotalFrames)

	st := newRunStats()
	startTime := time.Now()

	frame := gocv.NewMat()
	defer frame.Close()

	for source.ReadInto(&frame) {
		frameStart := time.Now()

		detections, err := detector.Detect(frame)
		if err != nil {
			return nil, err
		}
		st.personCounts = append(st.personCounts, len(detections))

		annotated := detector.Annotate(frame, detections)
		if options.ShowFPS && st.durations.Len() > 0 {
			// Rolling average over frames before this one; skipped on the
			// first frame because there is no timing data yet.
			drawFPSOverlay(&annotated, st.rollingFPS(), len(detections))
		}
		err = sink.Write(annotated)
		annotated.Close()
		if err != nil {
			return nil, err
		}

		frameTime := time.Since(frameStart)
		st.durations.Add(frameTime)
		st.frameCount++

		if options.OnProgress != nil && st.frameCount%progressInterval == 0 {
			percent := 0.0
			if meta.TotalFrames > 0 {
				percent = 100 * float64(st.frameCount) / float64(meta.TotalFrames)
			}
			fps := 0.0
			if frameTime > 0 {
				fps = float64(time.Second) / float64(frameTime)
			}
			options.OnProgress(percent, st.frameCount, meta.TotalFrames, fps)
		}
	}

	summary := st.summarize(time.Since(startTime), meta, outputPath)
	log.Infof("Processed %v frames in %.2f seconds (%.2f FPS)", summary.TotalFrames, summary.TotalTime.Seconds(), summary.AvgFPS)
	return summary, nil
}

func drawFPSOverlay(frame *gocv.Mat, fps float64, persons int) {
	text := fmt.Sprintf("FPS: %.1f | Persons: %v", fps, persons)
	gocv.PutText(frame, text, image.Pt(10, 30), gocv.FontHersheySimplex, 0.7, color.RGBA{R: 255, G: 255, B: 255}, 2)
}
