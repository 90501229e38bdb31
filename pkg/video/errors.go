package video

import "errors"

var (
	ErrStreamOpen  = errors.New("Failed to open video stream")  // decoder could not open the input
	ErrEncoderOpen = errors.New("Failed to create output video") // encoder could not open the output
	ErrFrameSize   = errors.New("Frame size does not match encoder configuration")
)
