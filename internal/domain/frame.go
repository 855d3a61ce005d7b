package domain

import "time"

// Frame is one encoded device image handed to the output sinks.
type Frame struct {
	ID         string
	RenderedAt time.Time
	Width      int
	Height     int
	PNG        []byte

	// Err is set when the frame is the fallback error image.
	Err string
}

// Failed reports whether f is a fallback error image.
func (f Frame) Failed() bool { return f.Err != "" }
