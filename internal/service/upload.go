package service

import (
	"context"
	"encoding/hex"
	"io"
	"net/http"
	"os"
	"path/filepath"

	"github.com/airenas/go-app/pkg/goapp"
	"github.com/describe-ai/audio-analyzer/internal/api"
	"github.com/describe-ai/audio-analyzer/internal/domain"
	"github.com/describe-ai/audio-analyzer/internal/media"
	"github.com/labstack/echo/v4"
	"github.com/oklog/ulid/v2"
	"lukechampine.com/blake3"
)

func upload(data *Data) func(echo.Context) error {
	return func(c echo.Context) error {
		fh, err := c.FormFile("file")
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "no file")
		}
		src, err := fh.Open()
		if err != nil {
			return err
		}
		defer src.Close()
		content, err := io.ReadAll(src)
		if err != nil {
			return err
		}
		if len(content) == 0 {
			return echo.NewHTTPError(http.StatusBadRequest, "empty file")
		}

		ctx := c.Request().Context()
		// content-addressed audio key, repeated uploads reuse the stored bytes
		hash := blake3.Sum256(content)
		audioID := hex.EncodeToString(hash[:])
		if err := data.Audio.SaveAudio(ctx, audioID, content); err != nil {
			return err
		}

		dur := probeDuration(ctx, fh.Filename, content)

		sess := &domain.Session{
			ID:        ulid.Make().String(),
			Name:      fh.Filename,
			AudioID:   audioID,
			Duration:  dur,
			Selection: domain.Selection{FullAudio: true},
		}
		if err := data.Sessions.SaveSession(ctx, sess); err != nil {
			return err
		}
		goapp.Log.Info().Str("id", sess.ID).Str("name", sess.Name).Float64("duration", dur).Msg("uploaded")

		res := api.UploadResult{ID: sess.ID, Name: sess.Name}
		if dur >= 0 {
			res.Duration = &dur
		}
		return c.JSON(http.StatusOK, res)
	}
}

// probeDuration writes the upload to a temp file for ffprobe. A failed probe
// leaves the duration unknown (-1), it does not fail the upload.
func probeDuration(ctx context.Context, name string, content []byte) float64 {
	f, err := os.CreateTemp("", "upload-*"+filepath.Ext(name))
	if err != nil {
		goapp.Log.Warn().Err(err).Msg("can't create temp file for probe")
		return -1
	}
	defer os.Remove(f.Name())
	_, err = f.Write(content)
	if cErr := f.Close(); err == nil {
		err = cErr
	}
	if err != nil {
		goapp.Log.Warn().Err(err).Msg("can't write temp file for probe")
		return -1
	}
	d, err := media.ProbeDuration(ctx, f.Name())
	if err != nil {
		goapp.Log.Warn().Err(err).Str("name", name).Msg("can't probe duration")
		return -1
	}
	return d
}
