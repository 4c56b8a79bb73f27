package ports

import (
	"context"

	"github.com/Mukul7Raj/MoodTune/internal/core/domain"
)

// Classification is the result of submitting a frame to the emotion
// classification gateway.
type Classification struct {
	Emotion    string
	Confidence float64
}

// EmotionClassifier submits an encoded image and receives an emotion
// label. A no-face result surfaces as domain.ErrNoFaceDetected — a
// recoverable business outcome, not a fatal error.
type EmotionClassifier interface {
	Classify(ctx context.Context, frame domain.Frame) (Classification, error)
}
