package yolo

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/cyclopcam/logs"
	"github.com/stretchr/testify/require"
	"gocv.io/x/gocv"

	"github.com/vidscan/vidscan/pkg/nn"
)

// Needs a real model file, so this is skipped unless testdata/yolov8n.onnx
// is present (eg fetched by a CI step).
func TestDetectorSmoke(t *testing.T) {
	modelFile := filepath.Join("testdata", "yolov8n.onnx")
	if _, err := os.Stat(modelFile); err != nil {
		t.Skipf("Model %v not present", modelFile)
	}
	logger, err := logs.NewLog()
	require.NoError(t, err)

	detector, err := New(logger, modelFile, NewOptions())
	require.NoError(t, err)
	defer detector.Close()

	frame := gocv.NewMatWithSize(480, 640, gocv.MatTypeCV8UC3)
	defer frame.Close()

	// A blank frame holds no people, and identical inputs must produce
	// identical results
	first, err := detector.Detect(frame)
	require.NoError(t, err)
	second, err := detector.Detect(frame)
	require.NoError(t, err)
	require.Equal(t, first, second)
	for _, det := range first {
		require.Equal(t, nn.COCOPerson, det.Class)
		require.Greater(t, det.Box.Width, 0)
		require.Greater(t, det.Box.Height, 0)
	}
}

func TestNewMissingModel(t *testing.T) {
	logger, err := logs.NewLog()
	require.NoError(t, err)
	_, err = New(logger, "no-such-model.onnx", NewOptions())
	require.Error(t, err)
}

func TestNewBadDevice(t *testing.T) {
	modelFile := filepath.Join("testdata", "yolov8n.onnx")
	if _, err := os.Stat(modelFile); err != nil {
		t.Skipf("Model %v not present", modelFile)
	}
	logger, err := logs.NewLog()
	require.NoError(t, err)
	_, err = New(logger, modelFile, Options{Device: "tpu"})
	require.ErrorIs(t, err, ErrBadDevice)
}
