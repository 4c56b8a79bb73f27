// Package camera provides the GStreamer webcam adapter. It runs a
// v4l2 capture pipeline that encodes frames to JPEG and keeps only the
// most recent one for classification.
package camera

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/tinyzimmer/go-gst/gst"
	"github.com/tinyzimmer/go-gst/gst/app"

	"github.com/Mukul7Raj/MoodTune/internal/core/domain"
	"github.com/Mukul7Raj/MoodTune/internal/core/ports"
)

const (
	defaultDevice  = "/dev/video0"
	defaultWidth   = 640
	defaultHeight  = 480
	captureTimeout = 3 * time.Second
)

// Config holds the capture device settings.
type Config struct {
	Device string
	Width  int
	Height int
}

// GstCamera implements the camera port over a GStreamer pipeline.
type GstCamera struct {
	device string
	width  int
	height int

	mu       sync.Mutex
	pipeline *gst.Pipeline
	sink     *app.Sink
	latest   []byte
	latestAt time.Time
	running  bool
}

// compile-time interface assertion
var _ ports.Camera = (*GstCamera)(nil)

// New constructs a camera for the configured device node.
func New(cfg Config) *GstCamera {
	if cfg.Device == "" {
		cfg.Device = defaultDevice
	}
	if cfg.Width <= 0 {
		cfg.Width = defaultWidth
	}
	if cfg.Height <= 0 {
		cfg.Height = defaultHeight
	}
	return &GstCamera{
		device: cfg.Device,
		width:  cfg.Width,
		height: cfg.Height,
	}
}

// RequestPermission checks whether the device node is accessible.
// A missing node stays in the prompt state since devices can appear
// after hotplug.
func (c *GstCamera) RequestPermission(ctx context.Context) (domain.PermissionState, error) {
	if err := ctx.Err(); err != nil {
		return domain.PermissionPrompt, err
	}

	info, err := os.Stat(c.device)
	switch {
	case err == nil && info.Mode()&os.ModeDevice != 0:
		return domain.PermissionGranted, nil
	case errors.Is(err, fs.ErrPermission):
		return domain.PermissionDenied, nil
	case errors.Is(err, fs.ErrNotExist):
		return domain.PermissionPrompt, nil
	case err != nil:
		return domain.PermissionPrompt, &domain.DeviceError{Op: "stat", Err: err}
	default:
		// Path exists but is not a device node.
		return domain.PermissionDenied, nil
	}
}

// StartStream builds and starts the capture pipeline. Starting an
// already running stream is a no-op.
func (c *GstCamera) StartStream(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.running {
		return nil
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	// Safe to call multiple times.
	gst.Init(nil)

	pipeline, err := gst.NewPipeline("")
	if err != nil {
		return &domain.DeviceError{Op: "create pipeline", Err: err}
	}

	// Tear the half-built pipeline down on any failed step so elements
	// already added to it are released with it.
	fail := func(op string, err error) error {
		_ = pipeline.SetState(gst.StateNull)
		return &domain.DeviceError{Op: op, Err: err}
	}

	src, err := gst.NewElement("v4l2src")
	if err != nil {
		return fail("create source", err)
	}
	src.SetProperty("device", c.device)

	convert, err := gst.NewElement("videoconvert")
	if err != nil {
		return fail("create converter", err)
	}

	scale, err := gst.NewElement("videoscale")
	if err != nil {
		return fail("create scaler", err)
	}

	capsfilter, err := gst.NewElement("capsfilter")
	if err != nil {
		return fail("create capsfilter", err)
	}
	capsStr := fmt.Sprintf("video/x-raw,width=%d,height=%d", c.width, c.height)
	capsfilter.SetProperty("caps", gst.NewCapsFromString(capsStr))

	encoder, err := gst.NewElement("jpegenc")
	if err != nil {
		return fail("create encoder", err)
	}

	sink, err := app.NewAppSink()
	if err != nil {
		return fail("create sink", err)
	}
	sink.SetProperty("sync", false)
	sink.SetProperty("max-buffers", 1)
	sink.SetProperty("drop", true)

	if err := pipeline.AddMany(src, convert, scale, capsfilter, encoder, sink.Element); err != nil {
		return fail("assemble pipeline", err)
	}
	if err := gst.ElementLinkMany(src, convert, scale, capsfilter, encoder, sink.Element); err != nil {
		return fail("link pipeline", err)
	}

	sink.SetCallbacks(&app.SinkCallbacks{
		NewSampleFunc: c.onNewSample,
	})

	if err := pipeline.SetState(gst.StatePlaying); err != nil {
		return fail("start pipeline", err)
	}

	c.pipeline = pipeline
	c.sink = sink
	c.latest = nil
	c.running = true
	log.Printf("camera: stream started device=%s %dx%d", c.device, c.width, c.height)
	return nil
}

// onNewSample copies the encoded frame out of the GStreamer buffer and
// stores it as the latest frame. Corrupt samples are skipped rather
// than terminating the stream.
func (c *GstCamera) onNewSample(sink *app.Sink) gst.FlowReturn {
	sample := sink.PullSample()
	if sample == nil {
		log.Printf("WARN camera: failed to pull sample, skipping frame")
		return gst.FlowOK
	}

	buffer := sample.GetBuffer()
	if buffer == nil {
		log.Printf("WARN camera: sample without buffer, skipping frame")
		return gst.FlowOK
	}

	mapInfo := buffer.Map(gst.MapRead)
	data := mapInfo.Bytes()
	if len(data) == 0 {
		buffer.Unmap()
		return gst.FlowOK
	}

	frame := make([]byte, len(data))
	copy(frame, data)
	buffer.Unmap()

	c.mu.Lock()
	c.latest = frame
	c.latestAt = time.Now()
	c.mu.Unlock()

	return gst.FlowOK
}

// CaptureFrame returns the most recent encoded frame, waiting briefly
// for the pipeline to deliver one after start.
func (c *GstCamera) CaptureFrame(ctx context.Context) (domain.Frame, error) {
	c.mu.Lock()
	running := c.running
	c.mu.Unlock()
	if !running {
		return domain.Frame{}, &domain.DeviceError{Op: "capture", Err: domain.ErrDeviceUnavailable}
	}

	deadline := time.NewTimer(captureTimeout)
	defer deadline.Stop()
	ticker := time.NewTicker(50 * time.Millisecond)
	defer ticker.Stop()

	for {
		c.mu.Lock()
		if len(c.latest) > 0 {
			data := make([]byte, len(c.latest))
			copy(data, c.latest)
			capturedAt := c.latestAt
			c.mu.Unlock()
			return domain.Frame{
				Data:       data,
				Width:      c.width,
				Height:     c.height,
				CapturedAt: capturedAt,
				TraceID:    uuid.NewString(),
			}, nil
		}
		c.mu.Unlock()

		select {
		case <-ctx.Done():
			return domain.Frame{}, ctx.Err()
		case <-deadline.C:
			return domain.Frame{}, &domain.DeviceError{Op: "capture", Err: errors.New("no frame before deadline")}
		case <-ticker.C:
		}
	}
}

// StopStream tears the pipeline down. Stopping a stopped stream is a
// no-op.
func (c *GstCamera) StopStream() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.running {
		return nil
	}

	err := c.pipeline.SetState(gst.StateNull)
	c.pipeline = nil
	c.sink = nil
	c.latest = nil
	c.running = false

	if err != nil {
		return &domain.DeviceError{Op: "stop pipeline", Err: err}
	}
	log.Printf("camera: stream stopped device=%s", c.device)
	return nil
}
