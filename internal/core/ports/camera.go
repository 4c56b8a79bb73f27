package ports

import (
	"context"

	"github.com/Mukul7Raj/MoodTune/internal/core/domain"
)

// Camera owns the camera hardware resource for the duration of one
// capture cycle. StopStream must be invoked on every exit path —
// success, user cancel, or error — so the exclusive device is released.
type Camera interface {
	RequestPermission(ctx context.Context) (domain.PermissionState, error)
	// StartStream acquires the camera exclusively. Failures surface as
	// domain.DeviceError.
	StartStream(ctx context.Context) error
	// CaptureFrame snapshots the current frame into an encoded image.
	CaptureFrame(ctx context.Context) (domain.Frame, error)
	// StopStream releases the device. Idempotent.
	StopStream() error
}
