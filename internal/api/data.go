package api

import "github.com/describe-ai/audio-analyzer/internal/transcript"

// TranscriptionResult is the processed output of one transcription call.
type TranscriptionResult struct {
	ID       string                     `json:"id"`
	Text     string                     `json:"text"`
	Words    []transcript.WordTimestamp `json:"words,omitempty"`
	Duration float64                    `json:"duration,omitempty"`
	Language string                     `json:"language,omitempty"`
}

// UploadResult is returned after an asset is stored.
type UploadResult struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Duration *float64 `json:"duration,omitempty"`
}

type TranscribeRequest struct {
	ID           string `json:"id" validate:"required"`
	Model        string `json:"model"`
	UseFullAudio bool   `json:"useFullAudio"`
	// raw form values, may be malformed
	Start string `json:"start"`
	End   string `json:"end"`
}

type SelectionRequest struct {
	UseFullAudio bool   `json:"useFullAudio"`
	Start        string `json:"start"`
	End          string `json:"end"`
}

type SelectionResult struct {
	Valid     bool    `json:"valid"`
	FullAudio bool    `json:"fullAudio"`
	Start     float64 `json:"start"`
	End       float64 `json:"end"`
}

type SearchResult struct {
	Results []transcript.SearchResult `json:"results"`
	Total   int                       `json:"total"`
}

type SummarizeRequest struct {
	ID        string `json:"id" validate:"required"`
	Template  string `json:"template"`
	Tone      string `json:"tone"`
	WordLimit int    `json:"wordLimit" validate:"gte=0"`
}

type TranslateRequest struct {
	ID                 string `json:"id" validate:"required"`
	Language           string `json:"language" validate:"required"`
	Style              string `json:"style"`
	PreserveFormatting bool   `json:"preserveFormatting"`
}

type CleanRequest struct {
	ID string `json:"id" validate:"required"`
}

type AnalyzeRequest struct {
	ID     string `json:"id" validate:"required"`
	Prompt string `json:"prompt" validate:"required"`
}

type ProcessResult struct {
	Text string `json:"text"`
}

const (
	EventStopRecording = "STOP_RECORDING"
)
