package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/akamensky/argparse"
	"github.com/cyclopcam/logs"

	"github.com/vidscan/vidscan/pkg/nn"
	"github.com/vidscan/vidscan/pkg/video"
	"github.com/vidscan/vidscan/pkg/yolo"
)

var videoExtensions = []string{".mp4", ".avi", ".mov", ".mkv", ".wmv"}

func check(err error) {
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

const progressBarLength = 40

func progressBar(percent float64, current, total int, fps float64) {
	filled := int(float64(progressBarLength) * percent / 100)
	filled = max(0, min(progressBarLength, filled))
	bar := strings.Repeat("#", filled) + strings.Repeat("-", progressBarLength-filled)
	fmt.Printf("\r[%v] %.1f%% | Frame %v/%v | FPS: %.1f", bar, percent, current, total, fps)
}

func printSummary(s *video.Summary) {
	line := strings.Repeat("=", 50)
	fmt.Printf("\n%v\n", line)
	fmt.Printf("Processing complete\n")
	fmt.Printf("%v\n", line)
	fmt.Printf("Frames processed: %v\n", s.TotalFrames)
	fmt.Printf("Total time:       %.2f sec\n", s.TotalTime.Seconds())
	fmt.Printf("Average FPS:      %.2f\n", s.AvgFPS)
	fmt.Printf("Resolution:       %v\n", s.Resolution)
	fmt.Printf("\nDetections per frame:\n")
	fmt.Printf("  Average: %.2f\n", s.AvgPersons)
	fmt.Printf("  Minimum: %v\n", s.MinPersons)
	fmt.Printf("  Maximum: %v\n", s.MaxPersons)
	fmt.Printf("\nOutput saved to %v\n", s.OutputPath)
	fmt.Printf("%v\n", line)
}

func main() {
	parser := argparse.NewParser("vidscan", "Detect people in a video file and write an annotated copy")
	input := parser.String("i", "input", &argparse.Options{Help: "Input video file", Required: true})
	output := parser.String("o", "output", &argparse.Options{Help: "Output video file", Required: true})
	model := parser.String("n", "model", &argparse.Options{Help: "Path to YOLO ONNX model file", Required: false, Default: "models/yolov8x.onnx"})
	conf := parser.Float("", "conf", &argparse.Options{Help: "Confidence threshold (0.0-1.0)", Required: false, Default: float64(nn.DefaultProbabilityThreshold)})
	iou := parser.Float("", "iou", &argparse.Options{Help: "NMS IoU threshold (0.0-1.0)", Required: false, Default: float64(nn.DefaultNmsIouThreshold)})
	device := parser.String("", "device", &argparse.Options{Help: "Inference device (cpu or cuda, auto if not specified)", Required: false, Default: ""})
	showFPS := parser.Flag("", "show-fps", &argparse.Options{Help: "Overlay processing FPS on the output video"})
	err := parser.Parse(os.Args)
	if err != nil {
		fmt.Print(parser.Usage(err))
		os.Exit(1)
	}

	logger, _ := logs.NewLog()

	if *conf < 0 || *conf > 1 {
		check(fmt.Errorf("conf must be between 0 and 1 (got %v)", *conf))
	}
	if *iou < 0 || *iou > 1 {
		check(fmt.Errorf("iou must be between 0 and 1 (got %v)", *iou))
	}
	if _, err := os.Stat(*input); err != nil {
		check(fmt.Errorf("input file not found: %v", *input))
	}

	ext := strings.ToLower(filepath.Ext(*input))
	recognized := false
	for _, e := range videoExtensions {
		if ext == e {
			recognized = true
			break
		}
	}
	if !recognized {
		logger.Warnf("Unrecognized video extension %q. Recommended: %v", ext, strings.Join(videoExtensions, ", "))
	}

	fmt.Printf("Input:  %v\n", *input)
	fmt.Printf("Output: %v\n", *output)
	fmt.Printf("Model:  %v (conf %.2f, iou %.2f)\n\n", *model, *conf, *iou)

	detector, err := yolo.New(logger, *model, yolo.Options{
		Conf:        float32(*conf),
		IoU:         float32(*iou),
		Device:      *device,
		TargetClass: nn.COCOPerson,
	})
	check(err)
	defer detector.Close()

	processor, err := video.NewProcessor(logger, detector, *input, *output)
	check(err)

	summary, err := processor.ProcessVideo(video.Options{
		ShowFPS:    *showFPS,
		OnProgress: progressBar,
	})
	fmt.Println()
	check(err)

	printSummary(summary)
}
