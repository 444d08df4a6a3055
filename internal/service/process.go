package service

import (
	"net/http"

	"github.com/airenas/go-app/pkg/goapp"
	"github.com/describe-ai/audio-analyzer/internal/api"
	"github.com/labstack/echo/v4"
)

func summarize(data *Data) func(echo.Context) error {
	return func(c echo.Context) error {
		var req api.SummarizeRequest
		if err := c.Bind(&req); err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "can't bind request")
		}
		if err := c.Validate(&req); err != nil {
			return err
		}
		sess, err := getSession(data, c, req.ID)
		if err != nil {
			return err
		}
		if sess.Text == "" {
			return echo.NewHTTPError(http.StatusBadRequest, "no transcription")
		}
		res, err := data.LLM.Summarize(c.Request().Context(), sess.Text, req.Template, req.Tone, req.WordLimit)
		if err != nil {
			goapp.Log.Error().Err(err).Str("id", sess.ID).Msg("summarize failed")
			return echo.NewHTTPError(http.StatusBadGateway, "summarize failed")
		}
		return c.JSON(http.StatusOK, api.ProcessResult{Text: res})
	}
}

func translate(data *Data) func(echo.Context) error {
	return func(c echo.Context) error {
		var req api.TranslateRequest
		if err := c.Bind(&req); err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "can't bind request")
		}
		if err := c.Validate(&req); err != nil {
			return err
		}
		sess, err := getSession(data, c, req.ID)
		if err != nil {
			return err
		}
		if sess.Text == "" {
			return echo.NewHTTPError(http.StatusBadRequest, "no transcription")
		}
		res, err := data.LLM.Translate(c.Request().Context(), sess.Text, req.Language, req.Style, req.PreserveFormatting)
		if err != nil {
			goapp.Log.Error().Err(err).Str("id", sess.ID).Msg("translate failed")
			return echo.NewHTTPError(http.StatusBadGateway, "translate failed")
		}
		return c.JSON(http.StatusOK, api.ProcessResult{Text: res})
	}
}

func analyze(data *Data) func(echo.Context) error {
	return func(c echo.Context) error {
		var req api.AnalyzeRequest
		if err := c.Bind(&req); err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "can't bind request")
		}
		if err := c.Validate(&req); err != nil {
			return err
		}
		sess, err := getSession(data, c, req.ID)
		if err != nil {
			return err
		}
		if sess.Text == "" {
			return echo.NewHTTPError(http.StatusBadRequest, "no transcription")
		}
		res, err := data.LLM.Analyze(c.Request().Context(), sess.Text, req.Prompt)
		if err != nil {
			goapp.Log.Error().Err(err).Str("id", sess.ID).Msg("analyze failed")
			return echo.NewHTTPError(http.StatusBadGateway, "analyze failed")
		}
		return c.JSON(http.StatusOK, api.ProcessResult{Text: res})
	}
}

func clean(data *Data) func(echo.Context) error {
	return func(c echo.Context) error {
		var req api.CleanRequest
		if err := c.Bind(&req); err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "can't bind request")
		}
		if err := c.Validate(&req); err != nil {
			return err
		}
		sess, err := getSession(data, c, req.ID)
		if err != nil {
			return err
		}
		if sess.Text == "" {
			return echo.NewHTTPError(http.StatusBadRequest, "no transcription")
		}
		res, err := data.LLM.Clean(c.Request().Context(), sess.Text)
		if err != nil {
			goapp.Log.Error().Err(err).Str("id", sess.ID).Msg("clean failed")
			return echo.NewHTTPError(http.StatusBadGateway, "clean failed")
		}
		return c.JSON(http.StatusOK, api.ProcessResult{Text: res})
	}
}
