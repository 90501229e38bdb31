package yolo

// Package yolo runs a YOLO ONNX model through the OpenCV DNN module.
// The model file is treated as a black box: we prepare the input blob,
// and decode the standard YOLO output tensor (4 box rows followed by one
// score row per class, one column per candidate box).

import (
	"fmt"
	"image"
	"os"

	"github.com/cyclopcam/logs"
	"gocv.io/x/gocv"

	"github.com/vidscan/vidscan/pkg/nn"
)

// Side length of the square network input. YOLO models in the n/s/m/l/x
// family are exported at 640x640.
const inputSize = 640

// Options configure a Detector.
type Options struct {
	Conf        float32 // Confidence threshold. Zero value uses nn.DefaultProbabilityThreshold.
	IoU         float32 // NMS IoU threshold. Zero value uses nn.DefaultNmsIouThreshold.
	Device      string  // "cpu", "cuda", or "" for automatic (cpu)
	TargetClass int     // COCO class to keep. All other classes are discarded.
}

// NewOptions returns Options for person detection with default thresholds.
func NewOptions() Options {
	return Options{
		Conf:        nn.DefaultProbabilityThreshold,
		IoU:         nn.DefaultNmsIouThreshold,
		Device:      "",
		TargetClass: nn.COCOPerson,
	}
}

// Detector detects objects of a single class using a YOLO ONNX model.
type Detector struct {
	net    gocv.Net
	conf   float32
	iou    float32
	target int
}

// New loads the ONNX model and prepares the inference backend.
// You must call Close() when finished with the detector.
func New(log logs.Log, modelFile string, options Options) (*Detector, error) {
	if _, err := os.Stat(modelFile); err != nil {
		return nil, fmt.Errorf("model file %v: %w", modelFile, err)
	}
	net := gocv.ReadNetFromONNX(modelFile)
	if net.Empty() {
		return nil, fmt.Errorf("%w: %v", ErrModelLoad, modelFile)
	}
	device := options.Device
	if device == "" {
		device = "cpu"
	}
	switch device {
	case "cpu":
		net.SetPreferableBackend(gocv.NetBackendDefault)
		net.SetPreferableTarget(gocv.NetTargetCPU)
	case "cuda":
		net.SetPreferableBackend(gocv.NetBackendCUDA)
		net.SetPreferableTarget(gocv.NetTargetCUDA)
	default:
		net.Close()
		return nil, fmt.Errorf("%w: %v", ErrBadDevice, options.Device)
	}
	conf := options.Conf
	if conf == 0 {
		conf = nn.DefaultProbabilityThreshold
	}
	iou := options.IoU
	if iou == 0 {
		iou = nn.DefaultNmsIouThreshold
	}
	log.Infof("Loaded model %v (device %v, conf %.2f, iou %.2f)", modelFile, device, conf, iou)
	return &Detector{
		net:    net,
		conf:   conf,
		iou:    iou,
		target: options.TargetClass,
	}, nil
}

// Close releases the network
func (d *Detector) Close() {
	d.net.Close()
}

// Detect runs the model on one frame and returns the detections of the
// target class. Stateless: identical frames produce identical results.
func (d *Detector) Detect(frame gocv.Mat) ([]nn.ObjectDetection, error) {
	if frame.Empty() {
		return nil, ErrEmptyFrame
	}
	blob := gocv.BlobFromImage(frame, 1.0/255.0, image.Pt(inputSize, inputSize), gocv.NewScalar(0, 0, 0, 0), true, false)
	defer blob.Close()

	d.net.SetInput(blob, "")
	output := d.net.Forward("")
	defer output.Close()

	// Output shape is [1, 4+nclasses, nboxes]
	dims := output.Size()
	if len(dims) != 3 {
		return nil, fmt.Errorf("unexpected model output rank %v", len(dims))
	}
	rows := dims[1]
	cols := dims[2]
	flat := output.Reshape(1, rows)
	defer flat.Close()

	scaleX := float32(frame.Cols()) / float32(inputSize)
	scaleY := float32(frame.Rows()) / float32(inputSize)

	boxes := []image.Rectangle{}
	scores := []float32{}
	for j := 0; j < cols; j++ {
		bestClass := 0
		bestScore := float32(0)
		for c := 4; c < rows; c++ {
			score := flat.GetFloatAt(c, j)
			if score > bestScore {
				bestScore = score
				bestClass = c - 4
			}
		}
		if bestClass != d.target || bestScore < d.conf {
			continue
		}
		cx := flat.GetFloatAt(0, j)
		cy := flat.GetFloatAt(1, j)
		w := flat.GetFloatAt(2, j)
		h := flat.GetFloatAt(3, j)
		x1 := int((cx - w/2) * scaleX)
		y1 := int((cy - h/2) * scaleY)
		x2 := int((cx + w/2) * scaleX)
		y2 := int((cy + h/2) * scaleY)
		x1 = max(0, x1)
		y1 = max(0, y1)
		x2 = min(frame.Cols(), x2)
		y2 = min(frame.Rows(), y2)
		if x2 <= x1 || y2 <= y1 {
			continue
		}
		boxes = append(boxes, image.Rect(x1, y1, x2, y2))
		scores = append(scores, bestScore)
	}

	keep := gocv.NMSBoxes(boxes, scores, d.conf, d.iou)
	detections := make([]nn.ObjectDetection, 0, len(keep))
	for _, i := range keep {
		detections = append(detections, nn.ObjectDetection{
			Class:      d.target,
			Confidence: scores[i],
			Box:        nn.MakeRect(boxes[i].Min.X, boxes[i].Min.Y, boxes[i].Max.X, boxes[i].Max.Y),
		})
	}
	return detections, nil
}
