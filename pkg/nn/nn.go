package nn

// Package nn is the detection data model shared by the detector and the
// video pipeline. To load a model, use the yolo package.

const DefaultProbabilityThreshold = 0.30
const DefaultNmsIouThreshold = 0.45

// ObjectDetection is an object that a neural network has found in an image.
// Box coordinates are pixels in the frame that was given to the detector.
// The box is always non-degenerate (Width > 0 and Height > 0).
type ObjectDetection struct {
	Class      int     `json:"class"`
	Confidence float32 `json:"confidence"`
	Box        Rect    `json:"box"`
}

// Label returns the class name of the detection, eg "person".
func (o ObjectDetection) Label() string {
	if o.Class >= 0 && o.Class < len(COCOClasses) {
		return COCOClasses[o.Class]
	}
	return "unknown"
}

