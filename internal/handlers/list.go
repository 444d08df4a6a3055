package handlers

import (
	"context"

	"github.com/airenas/go-app/pkg/goapp"
	"github.com/describe-ai/audio-analyzer/internal/api"
)

type Handler interface {
	Process(context.Context, *api.TranscriptionResult) (*api.TranscriptionResult, error)
}

// ListHandler passes a transcription result through a list of middleware
type ListHandler struct {
	handlers []Handler
}

func NewListHandler() (*ListHandler, error) {
	res := &ListHandler{}
	return res, nil
}

func (sp *ListHandler) Process(ctx context.Context, data *api.TranscriptionResult) (*api.TranscriptionResult, error) {
	dataCopy := data
	for i, h := range sp.handlers {
		goapp.Log.Debug().Int("handler", i).Msg("Processing")
		if dataNew, err := h.Process(ctx, dataCopy); err != nil {
			goapp.Log.Error().Err(err).Msg("Can't process")
		} else {
			dataCopy = dataNew
		}
		goapp.Log.Debug().Int("handler", i).Msg("Finished")
	}
	return dataCopy, nil
}

func (sp *ListHandler) Add(h Handler) {
	sp.handlers = append(sp.handlers, h)
}
