package video

import (
	"fmt"
	"os"
	"path/filepath"

	"gocv.io/x/gocv"
)

// Four character code of the output codec
const outputFourCC = "mp4v"

// StreamMeta is the container metadata of a video stream, read once when
// the stream is opened and fixed for the duration of a run.
type StreamMeta struct {
	FPS         float64
	Width       int
	Height      int
	TotalFrames int // Frame count as reported by the container. Some containers misreport this, so treat it as an estimate.
}

func (m StreamMeta) Resolution() string {
	return fmt.Sprintf("%vx%v", m.Width, m.Height)
}

// FrameSource produces frames in decode order.
type FrameSource interface {
	// Meta returns the stream metadata
	Meta() StreamMeta

	// ReadInto reads the next frame into dst, returning false at end of
	// stream. End of stream is not an error.
	ReadInto(dst *gocv.Mat) bool

	// Close releases the decoder
	Close() error
}

// FrameSink consumes frames. Every frame must match the resolution that the
// sink was created with.
type FrameSink interface {
	Write(frame gocv.Mat) error
	Close() error
}

// fileSource decodes a video file via OpenCV
type fileSource struct {
	capture *gocv.VideoCapture
	meta    StreamMeta
}

// OpenFileSource opens a video file for decoding and probes its metadata.
func OpenFileSource(path string) (FrameSource, error) {
	capture, err := gocv.VideoCaptureFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w %v: %v", ErrStreamOpen, path, err)
	}
	if !capture.IsOpened() {
		capture.Close()
		return nil, fmt.Errorf("%w %v", ErrStreamOpen, path)
	}
	meta := StreamMeta{
		FPS:         capture.Get(gocv.VideoCaptureFPS),
		Width:       int(capture.Get(gocv.VideoCaptureFrameWidth)),
		Height:      int(capture.Get(gocv.VideoCaptureFrameHeight)),
		TotalFrames: int(capture.Get(gocv.VideoCaptureFrameCount)),
	}
	return &fileSource{
		capture: capture,
		meta:    meta,
	}, nil
}

func (s *fileSource) Meta() StreamMeta {
	return s.meta
}

func (s *fileSource) ReadInto(dst *gocv.Mat) bool {
	if !s.capture.Read(dst) {
		return false
	}
	return !dst.Empty()
}

func (s *fileSource) Close() error {
	return s.capture.Close()
}

// fileSink encodes frames to a video file via OpenCV
type fileSink struct {
	writer *gocv.VideoWriter
	width  int
	height int
}

// CreateFileSink creates the output directory if necessary, and opens an
// encoder configured with the source stream's frame rate and resolution.
func CreateFileSink(path string, meta StreamMeta) (FrameSink, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("%w %v: %v", ErrEncoderOpen, path, err)
		}
	}
	writer, err := gocv.VideoWriterFile(path, outputFourCC, meta.FPS, meta.Width, meta.Height, true)
	if err != nil {
		return nil, fmt.Errorf("%w %v: %v", ErrEncoderOpen, path, err)
	}
	if !writer.IsOpened() {
		writer.Close()
		return nil, fmt.Errorf("%w %v", ErrEncoderOpen, path)
	}
	return &fileSink{
		writer: writer,
		width:  meta.Width,
		height: meta.Height,
	}, nil
}

func (s *fileSink) Write(frame gocv.Mat) error {
	if frame.Cols() != s.width || frame.Rows() != s.height {
		return fmt.Errorf("%w: got %vx%v, want %vx%v", ErrFrameSize, frame.Cols(), frame.Rows(), s.width, s.height)
	}
	return s.writer.Write(frame)
}

func (s *fileSink) Close() error {
	return s.writer.Close()
}
