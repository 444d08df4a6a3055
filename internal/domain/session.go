package domain

import "github.com/describe-ai/audio-analyzer/internal/transcript"

// Selection keeps the stored sub-range fields of a session so the
// transcript.Selection can be rebuilt after a reload.
type Selection struct {
	FullAudio bool    `json:"fullAudio"`
	Start     float64 `json:"start"`
	End       float64 `json:"end"`
}

// Session is the state of one audio asset: the stored audio reference, the
// probed duration, the last transcription and the user's segment selection.
// Duration < 0 means the duration could not be probed yet.
type Session struct {
	ID        string                     `json:"id"`
	Name      string                     `json:"name"`
	AudioID   string                     `json:"audioId"`
	Duration  float64                    `json:"duration"`
	Language  string                     `json:"language,omitempty"`
	Text      string                     `json:"text,omitempty"`
	Words     []transcript.WordTimestamp `json:"words,omitempty"`
	Selection Selection                  `json:"selection"`
}

// NewSelection rebuilds the live selection object from stored fields.
func (s *Session) NewSelection() *transcript.Selection {
	sel := transcript.NewSelection()
	if s.Duration >= 0 {
		sel.SetDuration(s.Duration)
	}
	if !s.Selection.FullAudio {
		sel.SetRangeSeconds(s.Selection.Start, s.Selection.End)
	}
	return sel
}
