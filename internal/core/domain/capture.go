package domain

import "time"

// PermissionState is the outcome of a camera permission request.
type PermissionState int

const (
	PermissionPrompt PermissionState = iota
	PermissionGranted
	PermissionDenied
)

func (p PermissionState) String() string {
	switch p {
	case PermissionGranted:
		return "granted"
	case PermissionDenied:
		return "denied"
	default:
		return "prompt"
	}
}

// Frame is one encoded camera frame.
type Frame struct {
	Data       []byte // JPEG bytes
	Width      int
	Height     int
	CapturedAt time.Time
	TraceID    string
}
