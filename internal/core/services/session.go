package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"

	"github.com/google/uuid"

	"github.com/Mukul7Raj/MoodTune/internal/core/domain"
	"github.com/Mukul7Raj/MoodTune/internal/core/ports"
)

// Service-level sentinels for operations invoked out of order or with
// unmet preconditions. Both map to actionable guidance at the edge,
// never to a crash.
var (
	ErrInvalidTransition   = errors.New("session: operation not valid in current state")
	ErrUnsupportedLanguage = errors.New("session: language not in supported set")
	ErrLinkingRequired     = errors.New("session: provider account linking required")
)

// ActivitySink receives fire-and-forget activity records. Implemented
// by the background worker pool; recording must never block a session
// or playback operation.
type ActivitySink interface {
	RecordEmotion(emotion string, generation uint64)
	RecordPlay(t domain.Track)
}

// SessionMachine orchestrates one mood session: camera capture through
// classification and the wellbeing/language prompts into a single
// generation-tagged recommendation fetch. It owns the MoodSession
// exclusively; all mutation funnels through its methods.
type SessionMachine struct {
	camera     ports.Camera
	classifier ports.EmotionClassifier
	gateway    ports.RecommendationGateway
	linker     ports.AccountLinker
	activity   ActivitySink

	// linkingRequired makes account linking a precondition for the
	// fetch; declining proceeds without retrying for the session.
	linkingRequired bool

	mu      sync.Mutex
	session domain.MoodSession
}

// NewSessionMachine constructs the state machine. activity may be nil.
func NewSessionMachine(camera ports.Camera, classifier ports.EmotionClassifier, gateway ports.RecommendationGateway, linker ports.AccountLinker, activity ActivitySink, linkingRequired bool) *SessionMachine {
	return &SessionMachine{
		camera:          camera,
		classifier:      classifier,
		gateway:         gateway,
		linker:          linker,
		activity:        activity,
		linkingRequired: linkingRequired,
		session: domain.MoodSession{
			ID:         uuid.NewString(),
			State:      domain.StateIdle,
			Generation: 1,
		},
	}
}

// Session returns a copy of the current session state.
func (m *SessionMachine) Session() domain.MoodSession {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.snapshotLocked()
}

func (m *SessionMachine) snapshotLocked() domain.MoodSession {
	s := m.session
	s.Tracks = append([]domain.Track(nil), m.session.Tracks...)
	return s
}

// Reset is the explicit "detect again" action: it increments the
// generation, discards the detected emotion, wellbeing mode, selected
// language and the Ready result list, and returns to Idle. Any
// in-flight gateway response from the previous generation is discarded
// when it lands.
func (m *SessionMachine) Reset() domain.MoodSession {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.session = domain.MoodSession{
		ID:         m.session.ID,
		State:      domain.StateIdle,
		Generation: m.session.Generation + 1,
	}
	return m.snapshotLocked()
}

// DetectEmotion runs one capture cycle: permission, exclusive stream
// acquire, a single frame snapshot, stream release, then
// classification. The camera is released on every exit path. A no-face
// result surfaces domain.ErrNoFaceDetected and leaves the session
// pre-Fetching with any previously chosen language intact. Detecting
// again after a completed fetch requires an explicit Reset first, so a
// generation never carries more than one fetch.
func (m *SessionMachine) DetectEmotion(ctx context.Context) (domain.MoodSession, error) {
	m.mu.Lock()
	switch m.session.State {
	case domain.StateIdle, domain.StateLanguagePrompt:
	default:
		s := m.snapshotLocked()
		m.mu.Unlock()
		return s, fmt.Errorf("session: detect from %s: %w", s.State, ErrInvalidTransition)
	}
	gen := m.session.Generation
	m.session.State = domain.StateCapturing
	m.mu.Unlock()

	frame, err := m.captureFrame(ctx)
	if err != nil {
		return m.revert(gen, domain.StateIdle), err
	}

	m.setState(gen, domain.StateClassifying)

	cls, err := m.classifier.Classify(ctx, frame)

	m.mu.Lock()
	defer m.mu.Unlock()
	if gen != m.session.Generation {
		// A reset superseded this cycle while classification was in
		// flight; the result must not touch the new generation.
		log.Printf("DEBUG session: dropping classification for stale generation %d", gen)
		return m.snapshotLocked(), domain.ErrStaleResponse
	}

	if err != nil {
		m.session.State = domain.StateIdle
		if errors.Is(err, domain.ErrNoFaceDetected) {
			return m.snapshotLocked(), domain.ErrNoFaceDetected
		}
		log.Printf("WARN session: classification failed: %v", err)
		return m.snapshotLocked(), &domain.GatewayError{Gateway: "classifier", Err: err}
	}

	m.session.DetectedEmotion = cls.Emotion
	if m.activity != nil {
		m.activity.RecordEmotion(cls.Emotion, gen)
	}

	if domain.TriggersWellbeingPrompt(cls.Emotion) {
		m.session.State = domain.StateWellbeingPrompt
		return m.snapshotLocked(), nil
	}
	return m.afterPromptsLocked(ctx, gen)
}

// captureFrame drives the camera port through one acquire/snapshot/
// release sequence, converting failures into DeviceError.
func (m *SessionMachine) captureFrame(ctx context.Context) (domain.Frame, error) {
	perm, err := m.camera.RequestPermission(ctx)
	if err != nil {
		return domain.Frame{}, &domain.DeviceError{Op: "permission", Err: err}
	}
	if perm == domain.PermissionDenied {
		return domain.Frame{}, &domain.DeviceError{Op: "permission", Err: domain.ErrDeviceUnavailable}
	}

	if err := m.camera.StartStream(ctx); err != nil {
		return domain.Frame{}, &domain.DeviceError{Op: "start", Err: err}
	}
	// Release the exclusive device on every exit path; StopStream is
	// idempotent so the explicit release below stays safe.
	defer func() {
		if err := m.camera.StopStream(); err != nil {
			log.Printf("WARN session: stop stream: %v", err)
		}
	}()

	frame, err := m.camera.CaptureFrame(ctx)
	if err != nil {
		return domain.Frame{}, &domain.DeviceError{Op: "capture", Err: err}
	}
	return frame, nil
}

// ResolveWellbeing records the binary mood-repair choice and moves to
// the language prompt (or straight to the fetch when a language is
// already chosen this generation).
func (m *SessionMachine) ResolveWellbeing(ctx context.Context, optIn bool) (domain.MoodSession, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.session.State != domain.StateWellbeingPrompt {
		return m.snapshotLocked(), fmt.Errorf("session: wellbeing from %s: %w", m.session.State, ErrInvalidTransition)
	}
	m.session.WellbeingMode = optIn
	return m.afterPromptsLocked(ctx, m.session.Generation)
}

// afterPromptsLocked advances past the wellbeing prompt: to the
// language prompt, or directly into the fetch when the language is
// already known. Called with the lock held; may release and re-acquire
// it for the fetch.
func (m *SessionMachine) afterPromptsLocked(ctx context.Context, gen uint64) (domain.MoodSession, error) {
	if m.session.SelectedLanguage == "" {
		m.session.State = domain.StateLanguagePrompt
		return m.snapshotLocked(), nil
	}
	if blocked := m.linkingBlockedLocked(ctx); blocked {
		m.session.State = domain.StateLanguagePrompt
		return m.snapshotLocked(), ErrLinkingRequired
	}
	return m.fetchLocked(ctx, gen)
}

// ChooseLanguage resolves the language prompt. When the linking
// precondition is configured and unmet, the machine suspends at the
// language prompt (the language is remembered) until linking completes
// or DeclineLinking is called.
func (m *SessionMachine) ChooseLanguage(ctx context.Context, language string) (domain.MoodSession, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.session.State != domain.StateLanguagePrompt {
		return m.snapshotLocked(), fmt.Errorf("session: language from %s: %w", m.session.State, ErrInvalidTransition)
	}
	if !domain.IsSupportedLanguage(language) {
		return m.snapshotLocked(), fmt.Errorf("session: %q: %w", language, ErrUnsupportedLanguage)
	}
	m.session.SelectedLanguage = language
	if m.linkingBlockedLocked(ctx) {
		return m.snapshotLocked(), ErrLinkingRequired
	}
	return m.fetchLocked(ctx, m.session.Generation)
}

// DeclineLinking records an explicit decline of the linking
// precondition; it is not retried for the remainder of the session and
// the suspended fetch proceeds.
func (m *SessionMachine) DeclineLinking(ctx context.Context) (domain.MoodSession, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.session.State != domain.StateLanguagePrompt {
		return m.snapshotLocked(), fmt.Errorf("session: decline linking from %s: %w", m.session.State, ErrInvalidTransition)
	}
	m.session.LinkingDeclined = true
	if m.session.SelectedLanguage == "" {
		return m.snapshotLocked(), nil
	}
	return m.fetchLocked(ctx, m.session.Generation)
}

func (m *SessionMachine) linkingBlockedLocked(ctx context.Context) bool {
	if !m.linkingRequired || m.session.LinkingDeclined {
		return false
	}
	return m.linker == nil || !m.linker.Linked(ctx)
}

// fetchLocked issues exactly one recommendation gateway call for this
// generation. The lock is released for the duration of the call so a
// reset can supersede an in-flight fetch; the response is applied only
// if its generation tag still matches. Gateway failure degrades to a
// Ready state with an empty list — logged, never raised.
func (m *SessionMachine) fetchLocked(ctx context.Context, gen uint64) (domain.MoodSession, error) {
	m.session.State = domain.StateFetching
	query := ports.RecommendationQuery{
		Emotion:   m.session.DetectedEmotion,
		Language:  m.session.SelectedLanguage,
		Wellbeing: m.session.WellbeingMode,
	}
	m.mu.Unlock()

	tracks, err := m.gateway.Recommendations(ctx, query)

	m.mu.Lock()
	if gen != m.session.Generation {
		log.Printf("DEBUG session: dropping recommendations for stale generation %d (current %d)", gen, m.session.Generation)
		return m.snapshotLocked(), domain.ErrStaleResponse
	}
	if err != nil {
		log.Printf("WARN session: recommendation fetch failed, serving empty list: %v", err)
		tracks = nil
	}
	m.session.State = domain.StateReady
	m.session.Tracks = tracks
	return m.snapshotLocked(), nil
}

func (m *SessionMachine) setState(gen uint64, state domain.SessionState) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if gen == m.session.Generation {
		m.session.State = state
	}
}

// revert returns the session to the given state unless a reset has
// moved it to a newer generation in the meantime.
func (m *SessionMachine) revert(gen uint64, state domain.SessionState) domain.MoodSession {
	m.mu.Lock()
	defer m.mu.Unlock()
	if gen == m.session.Generation {
		m.session.State = state
	}
	return m.snapshotLocked()
}
