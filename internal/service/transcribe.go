package service

import (
	"errors"
	"net/http"

	"github.com/airenas/go-app/pkg/goapp"
	"github.com/describe-ai/audio-analyzer/internal/api"
	"github.com/describe-ai/audio-analyzer/internal/db"
	"github.com/describe-ai/audio-analyzer/internal/domain"
	"github.com/describe-ai/audio-analyzer/internal/transcriber"
	"github.com/describe-ai/audio-analyzer/internal/transcript"
	"github.com/labstack/echo/v4"
)

func transcribe(data *Data) func(echo.Context) error {
	return func(c echo.Context) error {
		var req api.TranscribeRequest
		if err := c.Bind(&req); err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "can't bind request")
		}
		if err := c.Validate(&req); err != nil {
			return err
		}
		ctx := c.Request().Context()
		sess, err := getSession(data, c, req.ID)
		if err != nil {
			return err
		}

		sel := selectionFor(sess, req.UseFullAudio, req.Start, req.End)
		if !sel.Valid() {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid time segment")
		}
		start, end, explicit := sel.EffectiveRange()

		audio, err := data.Audio.GetAudio(ctx, sess.AudioID)
		if err != nil {
			if errors.Is(err, db.ErrNotFound) {
				return echo.NewHTTPError(http.StatusNotFound, "audio not found")
			}
			return err
		}

		model := req.Model
		if model == "" {
			model = data.DefaultModel
		}
		res, err := data.Transcriber.Transcribe(ctx, transcriber.Request{
			Name:     sess.Name,
			Audio:    audio,
			Model:    model,
			Start:    start,
			End:      end,
			Explicit: explicit,
		})
		if err != nil {
			goapp.Log.Error().Err(err).Str("id", sess.ID).Msg("transcription failed")
			return echo.NewHTTPError(http.StatusBadGateway, "transcription failed")
		}

		tr := &api.TranscriptionResult{
			ID:       sess.ID,
			Text:     res.Text,
			Words:    res.Words,
			Duration: res.Duration,
			Language: res.Language,
		}
		tr, err = data.Middleware.Process(ctx, tr)
		if err != nil {
			return err
		}

		sess.Text = tr.Text
		sess.Words = tr.Words
		sess.Language = tr.Language
		if sess.Duration < 0 && !explicit && res.Duration > 0 {
			sess.Duration = res.Duration
		}
		sess.Selection = domain.Selection{FullAudio: !explicit, Start: start, End: end}
		if err := data.Sessions.SaveSession(ctx, sess); err != nil {
			return err
		}
		return c.JSON(http.StatusOK, tr)
	}
}

func search(data *Data) func(echo.Context) error {
	return func(c echo.Context) error {
		id := c.QueryParam("id")
		if id == "" {
			return echo.NewHTTPError(http.StatusBadRequest, "no id")
		}
		sess, err := getSession(data, c, id)
		if err != nil {
			return err
		}
		ix := transcript.NewIndex()
		ix.Replace(sess.Words)
		q := c.QueryParam("q")
		return c.JSON(http.StatusOK, api.SearchResult{Results: ix.Search(q), Total: ix.Count(q)})
	}
}

func selection(data *Data) func(echo.Context) error {
	return func(c echo.Context) error {
		var req api.SelectionRequest
		if err := c.Bind(&req); err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "can't bind request")
		}
		ctx := c.Request().Context()
		sess, err := getSession(data, c, c.Param("id"))
		if err != nil {
			return err
		}

		sel := selectionFor(sess, req.UseFullAudio, req.Start, req.End)
		start, end := sel.Range()
		sess.Selection = domain.Selection{FullAudio: sel.FullAudio(), Start: start, End: end}
		if err := data.Sessions.SaveSession(ctx, sess); err != nil {
			return err
		}
		return c.JSON(http.StatusOK, api.SelectionResult{
			Valid:     sel.Valid(),
			FullAudio: sel.FullAudio(),
			Start:     start,
			End:       end,
		})
	}
}

// selectionFor rebuilds the live selection for one request. Raw start/end
// strings go through the lenient parser, validity is reported by the
// selection itself.
func selectionFor(sess *domain.Session, useFullAudio bool, start, end string) *transcript.Selection {
	sel := transcript.NewSelection()
	if sess.Duration >= 0 {
		sel.SetDuration(sess.Duration)
	}
	if !useFullAudio {
		sel.SetRange(start, end)
	}
	return sel
}

func getSession(data *Data, c echo.Context, id string) (*domain.Session, error) {
	sess, err := data.Sessions.GetSession(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return nil, echo.NewHTTPError(http.StatusNotFound, "session not found")
		}
		return nil, err
	}
	return sess, nil
}
