package transcript_test

import (
	"testing"

	"github.com/describe-ai/audio-analyzer/internal/transcript"
)

func TestSelection_ValidFullAudioBypass(t *testing.T) {
	s := transcript.NewSelection()
	s.SetRangeSeconds(-5, -10)
	s.SetFullAudio(true)
	if !s.Valid() {
		t.Error("Valid() = false with full audio, want true")
	}
	s.SetDuration(3)
	if !s.Valid() {
		t.Error("Valid() = false with full audio and duration, want true")
	}
}

func TestSelection_ValidBounds(t *testing.T) {
	tests := []struct {
		name       string
		start, end float64
		want       bool
	}{
		{name: "exact duration", start: 0, end: 10, want: true},
		{name: "inside", start: 3, end: 7.5, want: true},
		{name: "end over duration", start: 0, end: 10.001, want: false},
		{name: "empty range", start: 5, end: 5, want: false},
		{name: "inverted range", start: 7, end: 5, want: false},
		{name: "negative start", start: -1, end: 5, want: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := transcript.NewSelection()
			s.SetDuration(10.0)
			s.SetRangeSeconds(tt.start, tt.end)
			if got := s.Valid(); got != tt.want {
				t.Errorf("Valid() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSelection_ValidUnknownDuration(t *testing.T) {
	s := transcript.NewSelection()
	s.SetRangeSeconds(2, 2000)
	if !s.Valid() {
		t.Error("Valid() = false with unknown duration, want true")
	}
	s.SetDuration(100)
	if s.Valid() {
		t.Error("Valid() = true after duration known and exceeded, want false")
	}
}

func TestSelection_SetRangeCoercion(t *testing.T) {
	tests := []struct {
		name       string
		start, end string
		wantStart  float64
		wantEnd    float64
	}{
		{name: "numbers", start: "3.0", end: "9.3", wantStart: 3.0, wantEnd: 9.3},
		{name: "garbage start", start: "abc", end: "5", wantStart: 0, wantEnd: 5},
		{name: "garbage end", start: "1", end: "x9", wantStart: 1, wantEnd: 0},
		{name: "empty fields", start: "", end: "", wantStart: 0, wantEnd: 0},
		{name: "negative coerced", start: "-4", end: "5", wantStart: 0, wantEnd: 5},
		{name: "whitespace", start: " 2.5 ", end: " 6 ", wantStart: 2.5, wantEnd: 6},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := transcript.NewSelection()
			s.SetRange(tt.start, tt.end)
			gotStart, gotEnd := s.Range()
			if gotStart != tt.wantStart || gotEnd != tt.wantEnd {
				t.Errorf("Range() = (%v, %v), want (%v, %v)", gotStart, gotEnd, tt.wantStart, tt.wantEnd)
			}
			if s.FullAudio() {
				t.Error("FullAudio() = true after explicit edit, want false")
			}
		})
	}
}

func TestSelection_EffectiveRange(t *testing.T) {
	s := transcript.NewSelection()
	s.SetDuration(9.3)
	s.SetFullAudio(false)
	s.SetRange("3.0", "9.3")
	if !s.Valid() {
		t.Fatal("Valid() = false, want true")
	}
	start, end, explicit := s.EffectiveRange()
	if !explicit || start != 3.0 || end != 9.3 {
		t.Errorf("EffectiveRange() = (%v, %v, %v), want (3.0, 9.3, true)", start, end, explicit)
	}
}

func TestSelection_EffectiveRangeSentinel(t *testing.T) {
	t.Run("full audio", func(t *testing.T) {
		s := transcript.NewSelection()
		if _, _, explicit := s.EffectiveRange(); explicit {
			t.Error("EffectiveRange() explicit = true for full audio, want false")
		}
	})
	t.Run("invalid selection", func(t *testing.T) {
		s := transcript.NewSelection()
		s.SetDuration(10)
		s.SetRangeSeconds(8, 4)
		if _, _, explicit := s.EffectiveRange(); explicit {
			t.Error("EffectiveRange() explicit = true for invalid range, want false")
		}
	})
}

func TestSelection_SetFullAudioResets(t *testing.T) {
	s := transcript.NewSelection()
	s.SetDuration(12.5)
	s.SetRangeSeconds(2, 6)
	s.SetFullAudio(true)
	start, end := s.Range()
	if start != 0 || end != 12.5 {
		t.Errorf("Range() = (%v, %v) after full audio, want (0, 12.5)", start, end)
	}
}

func TestSelection_DurationPopulatesFullAudioEnd(t *testing.T) {
	s := transcript.NewSelection()
	if _, known := s.Duration(); known {
		t.Fatal("Duration() known = true on fresh selection, want false")
	}
	s.SetDuration(42)
	d, known := s.Duration()
	if !known || d != 42 {
		t.Errorf("Duration() = (%v, %v), want (42, true)", d, known)
	}
	if _, end := s.Range(); end != 42 {
		t.Errorf("Range() end = %v after probing with full audio, want 42", end)
	}
}

func TestParseLenientFloat(t *testing.T) {
	tests := []struct {
		in   string
		want float64
	}{
		{"3.5", 3.5},
		{"0", 0},
		{"  7 ", 7},
		{"abc", 0},
		{"", 0},
		{"-1.2", 0},
		{"NaN", 0},
		{"Inf", 0},
		{"1e3", 1000},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := transcript.ParseLenientFloat(tt.in); got != tt.want {
				t.Errorf("ParseLenientFloat(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}
