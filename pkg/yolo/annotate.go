package yolo

import (
	"fmt"
	"image"
	"image/color"

	"gocv.io/x/gocv"

	"github.com/vidscan/vidscan/pkg/nn"
)

const (
	boxThickness   = 2
	labelFontScale = 0.6
	labelMargin    = 10 // gap in pixels between the box edge and the label baseline
)

var (
	boxColor     = color.RGBA{R: 0, G: 255, B: 0}
	labelBgColor = color.RGBA{R: 0, G: 255, B: 0}
	labelColor   = color.RGBA{R: 0, G: 0, B: 0}
)

// Annotate returns a copy of frame with every detection drawn as a bounding
// rectangle and a filled label showing "<class>: <confidence>". The input
// frame is not modified. The caller owns the returned Mat and must Close it.
func (d *Detector) Annotate(frame gocv.Mat, detections []nn.ObjectDetection) gocv.Mat {
	return Annotate(frame, detections)
}

// Annotate is the drawing half of the detector, split out so that stub
// detectors can share it.
func Annotate(frame gocv.Mat, detections []nn.ObjectDetection) gocv.Mat {
	out := frame.Clone()
	for _, det := range detections {
		box := det.Box
		gocv.Rectangle(&out, image.Rect(box.X, box.Y, box.X2(), box.Y2()), boxColor, boxThickness)

		label := fmt.Sprintf("%v: %.2f", det.Label(), det.Confidence)
		textSize, baseline := gocv.GetTextSizeWithBaseline(label, gocv.FontHersheySimplex, labelFontScale, boxThickness)
		textY := labelOriginY(box.Y, textSize.Y)

		bg := image.Rect(box.X, textY-textSize.Y-baseline, box.X+textSize.X+4, textY+baseline)
		gocv.Rectangle(&out, bg, labelBgColor, -1)
		gocv.PutText(&out, label, image.Pt(box.X+2, textY-2), gocv.FontHersheySimplex, labelFontScale, labelColor, boxThickness)
	}
	return out
}

// labelOriginY returns the baseline Y for a detection label. The label sits
// above the box when there is room between the box top and the image top,
// otherwise below the box's top edge, inside the box.
func labelOriginY(boxTop, textHeight int) int {
	if boxTop-labelMargin > textHeight {
		return boxTop - labelMargin
	}
	return boxTop + textHeight + labelMargin
}
