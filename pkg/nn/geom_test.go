package nn

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRect(t *testing.T) {
	a := MakeRect(0, 0, 10, 10)
	b := MakeRect(5, 5, 15, 15)

	require.Equal(t, 100, a.Area())
	require.Equal(t, Rect{X: 5, Y: 5, Width: 5, Height: 5}, a.Intersection(b))
	require.Equal(t, Rect{X: 0, Y: 0, Width: 15, Height: 15}, a.Union(b))
	require.InDelta(t, 25.0/175.0, float64(a.IOU(b)), 1e-6)
	require.Equal(t, Point{X: 5, Y: 5}, a.Center())

	// Disjoint rectangles have zero intersection
	c := MakeRect(20, 20, 30, 30)
	require.Equal(t, 0, a.Intersection(c).Area())
	require.Equal(t, float32(0), a.IOU(c))
}

func TestDetectionLabel(t *testing.T) {
	det := ObjectDetection{Class: COCOPerson, Confidence: 0.9, Box: MakeRect(0, 0, 1, 1)}
	require.Equal(t, "person", det.Label())
	require.Equal(t, "unknown", ObjectDetection{Class: -1}.Label())
	require.Equal(t, COCOPerson, ClassIndex("person"))
	require.Equal(t, -1, ClassIndex("gopher"))
}
