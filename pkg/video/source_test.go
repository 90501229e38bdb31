package video

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"gocv.io/x/gocv"
)

func TestFileSinkSourceRoundTrip(t *testing.T) {
	// Output directory does not exist yet; CreateFileSink must create it
	path := filepath.Join(t.TempDir(), "out", "roundtrip.mp4")
	meta := StreamMeta{FPS: 30, Width: 64, Height: 48}

	sink, err := CreateFileSink(path, meta)
	require.NoError(t, err)
	frame := gocv.NewMatWithSize(48, 64, gocv.MatTypeCV8UC3)
	defer frame.Close()
	for i := 0; i < 5; i++ {
		require.NoError(t, sink.Write(frame))
	}
	require.NoError(t, sink.Close())

	source, err := OpenFileSource(path)
	require.NoError(t, err)
	defer source.Close()

	m := source.Meta()
	require.Equal(t, 64, m.Width)
	require.Equal(t, 48, m.Height)
	require.Equal(t, 5, m.TotalFrames)

	dst := gocv.NewMat()
	defer dst.Close()
	read := 0
	for source.ReadInto(&dst) {
		require.Equal(t, 64, dst.Cols())
		require.Equal(t, 48, dst.Rows())
		read++
	}
	require.Equal(t, 5, read)
}

func TestFileSinkSizeMismatch(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mismatch.mp4")
	sink, err := CreateFileSink(path, StreamMeta{FPS: 30, Width: 64, Height: 48})
	require.NoError(t, err)
	defer sink.Close()

	frame := gocv.NewMatWithSize(48, 32, gocv.MatTypeCV8UC3)
	defer frame.Close()
	err = sink.Write(frame)
	require.ErrorIs(t, err, ErrFrameSize)
}

func TestOpenFileSourceMissing(t *testing.T) {
	_, err := OpenFileSource(filepath.Join(t.TempDir(), "does-not-exist.mp4"))
	require.Error(t, err)
}
