package domain

import "testing"

func TestTriggersWellbeingPrompt(t *testing.T) {
	triggers := []string{"sad", "depressed", "angry", "stressed", "fear", "anxious", "Sad", "ANGRY"}
	for _, emotion := range triggers {
		if !TriggersWellbeingPrompt(emotion) {
			t.Errorf("%q should trigger the wellbeing prompt", emotion)
		}
	}

	nonTriggers := []string{"happy", "neutral", "surprise", "excited", ""}
	for _, emotion := range nonTriggers {
		if TriggersWellbeingPrompt(emotion) {
			t.Errorf("%q should not trigger the wellbeing prompt", emotion)
		}
	}
}

func TestWellbeingQuery(t *testing.T) {
	tests := []struct {
		emotion string
		want    string
	}{
		{"sad", "motivational"},
		{"depressed", "healing"},
		{"angry", "calm"},
		{"stressed", "relaxing"},
		{"fear", "courage"},
		{"anxious", "soothing"},
		{"STRESSED", "relaxing"},
		{"happy", "happy"}, // unmapped passes through
	}
	for _, tc := range tests {
		if got := WellbeingQuery(tc.emotion); got != tc.want {
			t.Errorf("WellbeingQuery(%q): got %q want %q", tc.emotion, got, tc.want)
		}
	}
}

func TestIsSupportedLanguage(t *testing.T) {
	for _, lang := range SupportedLanguages {
		if !IsSupportedLanguage(lang) {
			t.Errorf("%q should be supported", lang)
		}
	}
	if !IsSupportedLanguage("english") {
		t.Error("language match should be case-insensitive")
	}
	for _, lang := range []string{"French", "Spanish", ""} {
		if IsSupportedLanguage(lang) {
			t.Errorf("%q should not be supported", lang)
		}
	}
}

func TestTrack_Key(t *testing.T) {
	tests := []struct {
		name  string
		track Track
		want  string
	}{
		{"id wins", Track{ID: "id1", URI: "uri1", URL: "url1"}, "id1"},
		{"uri when no id", Track{URI: "uri1", URL: "url1"}, "uri1"},
		{"url when nothing else", Track{URL: "url1"}, "url1"},
		{"empty when no identifier", Track{Title: "only a title"}, ""},
	}
	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.track.Key(); got != tc.want {
				t.Fatalf("got %q want %q", got, tc.want)
			}
			if tc.track.HasIdentifier() != (tc.want != "") {
				t.Fatalf("HasIdentifier inconsistent with Key")
			}
		})
	}
}
