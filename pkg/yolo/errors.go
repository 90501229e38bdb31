package yolo

import "errors"

var (
	ErrModelLoad  = errors.New("Failed to load model")
	ErrBadDevice  = errors.New("Unknown inference device")
	ErrEmptyFrame = errors.New("Empty frame")
)
