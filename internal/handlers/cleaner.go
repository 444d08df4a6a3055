package handlers

import (
	"context"
	"strings"
	"time"

	"github.com/airenas/go-app/pkg/goapp"
	"github.com/describe-ai/audio-analyzer/internal/api"
	"github.com/describe-ai/audio-analyzer/internal/utils"
)

// Cleaner cleans backend text before it is stored and indexed
type Cleaner struct {
}

// NewCleaner creates a text cleaner
func NewCleaner() *Cleaner {
	res := Cleaner{}
	goapp.Log.Info().Msg("Cleaner")
	return &res
}

func (sp *Cleaner) Process(ctx context.Context, data *api.TranscriptionResult) (*api.TranscriptionResult, error) {
	defer utils.MeasureTime("cleaner", time.Now())
	data.Text = sp.transform(data.Text)
	for i := range data.Words {
		data.Words[i].Word = strings.ReplaceAll(data.Words[i].Word, "_", " ")
	}
	return data, nil
}

func (sp *Cleaner) transform(text string) string {
	text = strings.TrimSpace(text)
	text = strings.ReplaceAll(text, "_", " ")
	text = strings.Join(strings.Fields(text), " ")
	return text
}
