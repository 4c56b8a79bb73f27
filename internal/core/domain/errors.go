package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors forming the failure taxonomy. Every externally-facing
// call site converts raw failures into one of these kinds before they
// reach the session machine or the queue manager.
var (
	ErrNotFound          = errors.New("domain: not found")
	ErrDeviceUnavailable = errors.New("domain: camera device unavailable")
	ErrNoFaceDetected    = errors.New("domain: no face detected")
	ErrGateway           = errors.New("domain: gateway failure")
	ErrNotEmbeddable     = errors.New("domain: track not embeddable")
	ErrStaleResponse     = errors.New("domain: stale generation response")
)

// DeviceError reports a camera hardware or permission failure. It is
// recoverable; the caller should re-prompt.
type DeviceError struct {
	Op  string
	Err error
}

func (e *DeviceError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("device error during %s", e.Op)
	}
	return fmt.Sprintf("device error during %s: %v", e.Op, e.Err)
}

func (e *DeviceError) Is(target error) bool { return target == ErrDeviceUnavailable }

func (e *DeviceError) Unwrap() error { return e.Err }

// GatewayError reports a network or provider failure on any external
// gateway call. It degrades to an empty-result state and is logged,
// never propagated as a crash.
type GatewayError struct {
	Gateway string
	Err     error
}

func (e *GatewayError) Error() string {
	return fmt.Sprintf("%s gateway: %v", e.Gateway, e.Err)
}

func (e *GatewayError) Is(target error) bool { return target == ErrGateway }

func (e *GatewayError) Unwrap() error { return e.Err }

// NotEmbeddableError reports that the resolver could not produce a
// playable embed for a track. ExternalURL, when non-empty, is the
// fallback link to offer; empty means a terminal "no playable link".
type NotEmbeddableError struct {
	TrackKey    string
	ExternalURL string
}

func (e *NotEmbeddableError) Error() string {
	if e.ExternalURL == "" {
		return fmt.Sprintf("track %q has no playable link", e.TrackKey)
	}
	return fmt.Sprintf("track %q is not embeddable, external link available", e.TrackKey)
}

func (e *NotEmbeddableError) Is(target error) bool { return target == ErrNotEmbeddable }
