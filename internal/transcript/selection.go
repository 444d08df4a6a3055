package transcript

import "math"

// Selection is the user-chosen [start, end) sub-range of one audio asset.
// Setters never fail; Valid is the single authority on whether the current
// state may be submitted for transcription.
type Selection struct {
	fullAudio   bool
	start       float64
	end         float64
	duration    float64
	hasDuration bool
}

// NewSelection creates a selection covering the full audio with
// unknown duration.
func NewSelection() *Selection {
	return &Selection{fullAudio: true}
}

// SetFullAudio toggles the full-audio flag. When turned on, start is forced
// to 0 and end to the known duration. When turned off, the last explicit
// values are kept.
func (s *Selection) SetFullAudio(on bool) {
	s.fullAudio = on
	if on {
		s.start = 0
		if s.hasDuration {
			s.end = s.duration
		}
	}
}

// SetRange stores a candidate range from raw text fields. Malformed values
// are coerced to 0, not rejected. An explicit edit means the user no longer
// wants the full range.
func (s *Selection) SetRange(start, end string) {
	s.SetRangeSeconds(ParseLenientFloat(start), ParseLenientFloat(end))
}

// SetRangeSeconds stores a candidate range given as numbers.
func (s *Selection) SetRangeSeconds(start, end float64) {
	s.start = start
	s.end = end
	s.fullAudio = false
}

// SetDuration records the probed duration of the asset.
func (s *Selection) SetDuration(d float64) {
	s.duration = d
	s.hasDuration = true
	if s.fullAudio {
		s.end = d
	}
}

// FullAudio reports whether the whole asset is selected.
func (s *Selection) FullAudio() bool {
	return s.fullAudio
}

// Range returns the stored explicit values, valid or not.
func (s *Selection) Range() (start, end float64) {
	return s.start, s.end
}

// Duration returns the probed asset duration and whether it is known.
func (s *Selection) Duration() (float64, bool) {
	return s.duration, s.hasDuration
}

// Valid reports whether the current selection may be submitted. Full audio
// is always valid. An explicit range must satisfy 0 <= start < end and,
// when the duration is known, end <= duration. Mid-typing states simply
// report false here, there is no error path.
func (s *Selection) Valid() bool {
	if s.fullAudio {
		return true
	}
	if math.IsNaN(s.start) || math.IsInf(s.start, 0) || math.IsNaN(s.end) || math.IsInf(s.end, 0) {
		return false
	}
	if s.start < 0 || s.end <= s.start {
		return false
	}
	if s.hasDuration && s.end > s.duration {
		return false
	}
	return true
}

// EffectiveRange returns the concrete range to submit with a transcription
// request. explicit == false means "no range constraint": the full audio is
// selected or the selection is not in a submittable state.
func (s *Selection) EffectiveRange() (start, end float64, explicit bool) {
	if s.fullAudio || !s.Valid() {
		return 0, 0, false
	}
	return s.start, s.end, true
}
