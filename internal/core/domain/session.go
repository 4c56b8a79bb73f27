package domain

import "strings"

// SessionState is the current position of a mood session in the
// capture → classification → prompt → fetch flow.
type SessionState int

const (
	StateIdle SessionState = iota
	StateCapturing
	StateClassifying
	StateWellbeingPrompt
	StateLanguagePrompt
	StateFetching
	StateReady
)

func (s SessionState) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateCapturing:
		return "capturing"
	case StateClassifying:
		return "classifying"
	case StateWellbeingPrompt:
		return "wellbeing_prompt"
	case StateLanguagePrompt:
		return "language_prompt"
	case StateFetching:
		return "fetching"
	case StateReady:
		return "ready"
	default:
		return "unknown"
	}
}

// wellbeingTriggers are the negative-emotion labels that open the
// mood-repair opt-in prompt.
var wellbeingTriggers = map[string]struct{}{
	"sad":       {},
	"depressed": {},
	"angry":     {},
	"stressed":  {},
	"fear":      {},
	"anxious":   {},
}

// TriggersWellbeingPrompt reports whether the (lower-cased) emotion
// label is in the fixed wellbeing-trigger set.
func TriggersWellbeingPrompt(emotion string) bool {
	_, ok := wellbeingTriggers[strings.ToLower(emotion)]
	return ok
}

// wellbeingQueries maps a negative emotion to the mood-repair query
// term used instead of the raw label when wellbeing mode is on.
var wellbeingQueries = map[string]string{
	"sad":       "motivational",
	"depressed": "healing",
	"angry":     "calm",
	"stressed":  "relaxing",
	"fear":      "courage",
	"anxious":   "soothing",
}

// WellbeingQuery returns the mood-repair query term for an emotion, or
// the emotion itself when no mapping exists.
func WellbeingQuery(emotion string) string {
	if mapped, ok := wellbeingQueries[strings.ToLower(emotion)]; ok {
		return mapped
	}
	return emotion
}

// SupportedLanguages is the closed set a session language must come from.
var SupportedLanguages = []string{"Hindi", "English", "Bengali", "Marathi", "Telugu", "Tamil"}

// IsSupportedLanguage reports whether lang is in the supported set
// (case-insensitive).
func IsSupportedLanguage(lang string) bool {
	for _, l := range SupportedLanguages {
		if strings.EqualFold(l, lang) {
			return true
		}
	}
	return false
}

// MoodSession holds one capture cycle's state. It is owned exclusively
// by the session machine; a reset increments Generation and clears
// every other field.
type MoodSession struct {
	ID               string
	State            SessionState
	DetectedEmotion  string
	WellbeingMode    bool
	SelectedLanguage string
	Generation       uint64
	LinkingDeclined  bool
	Tracks           []Track // Ready result list for the current generation
}

// RecommendationResult is an ordered track list tagged with the session
// generation that requested it. Results tagged with a stale generation
// must be discarded, never applied.
type RecommendationResult struct {
	Generation uint64
	Tracks     []Track
}
