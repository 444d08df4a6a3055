package service

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/facebookgo/grace/gracehttp"
	"github.com/go-playground/validator/v10"
	"github.com/gorilla/websocket"

	"github.com/airenas/go-app/pkg/goapp"
	"github.com/describe-ai/audio-analyzer/internal/domain"
	"github.com/describe-ai/audio-analyzer/internal/handlers"
	"github.com/describe-ai/audio-analyzer/internal/transcriber"

	"github.com/labstack/echo-contrib/prometheus"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

// AudioManager stores and retrieves audio bytes.
type AudioManager interface {
	SaveAudio(ctx context.Context, id string, data []byte) error
	GetAudio(ctx context.Context, id string) ([]byte, error)
}

// SessionManager stores and retrieves audio sessions.
type SessionManager interface {
	SaveSession(ctx context.Context, session *domain.Session) error
	GetSession(ctx context.Context, id string) (*domain.Session, error)
}

// Transcriber is the speech-to-text collaborator.
type Transcriber interface {
	Transcribe(ctx context.Context, input transcriber.Request) (*transcriber.Result, error)
}

// LLM is the language model collaborator.
type LLM interface {
	Summarize(ctx context.Context, text, template, tone string, wordLimit int) (string, error)
	Translate(ctx context.Context, text, language, style string, preserveFormatting bool) (string, error)
	Analyze(ctx context.Context, text, prompt string) (string, error)
	Clean(ctx context.Context, text string) (string, error)
}

// Data keeps data required for service work
type Data struct {
	Port         int
	Audio        AudioManager
	Sessions     SessionManager
	Transcriber  Transcriber
	LLM          LLM
	Middleware   handlers.Handler
	DefaultModel string
	Ctx          context.Context
}

// StartWebServer starts echo web service
func StartWebServer(data *Data) (<-chan struct{}, error) {
	goapp.Log.Info().Msgf("Starting audio analyzer service at %d", data.Port)
	if err := validate(data); err != nil {
		return nil, err
	}

	portStr := strconv.Itoa(data.Port)

	e := initRoutes(data)

	e.Server.Addr = ":" + portStr
	e.Server.ReadHeaderTimeout = 5 * time.Second
	e.Server.ReadTimeout = 30 * time.Second
	e.Server.WriteTimeout = 30 * time.Second

	gracehttp.SetLogger(log.New(goapp.Log, "", 0))

	res := make(chan struct{}, 1)
	go func() {
		defer close(res)
		if err := gracehttp.Serve(e.Server); err != nil {
			goapp.Log.Error().Err(err).Msg("can't start web server")
		}
		goapp.Log.Info().Msg("exit http routine")
	}()
	return res, nil
}

var promMdlw *prometheus.Prometheus

func init() {
	promMdlw = prometheus.NewPrometheus("analyzer", nil)
}

type customValidator struct {
	validate *validator.Validate
}

func (cv *customValidator) Validate(i interface{}) error {
	if err := cv.validate.Struct(i); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return nil
}

func initRoutes(data *Data) *echo.Echo {
	e := echo.New()
	e.Use(middleware.Logger())
	e.Use(middleware.BodyLimit("100M"))
	promMdlw.Use(e)
	e.Validator = &customValidator{validate: validator.New()}

	e.GET("/live", live(data))
	e.POST("/upload", upload(data))
	e.POST("/transcribe", transcribe(data))
	e.GET("/search", search(data))
	e.POST("/sessions/:id/selection", selection(data))
	e.POST("/summarize", summarize(data))
	e.POST("/translate", translate(data))
	e.POST("/analyze", analyze(data))
	e.POST("/clean", clean(data))
	e.GET("/client/ws/record", record(data))

	goapp.Log.Info().Msg("Routes:")
	for _, r := range e.Routes() {
		goapp.Log.Info().Msgf("  %s %s", r.Method, r.Path)
	}
	return e
}

func live(data *Data) func(echo.Context) error {
	return func(c echo.Context) error {
		return c.JSONBlob(http.StatusOK, []byte(`{"service":"OK"}`))
	}
}

func validate(data *Data) error {
	if data.Audio == nil {
		return fmt.Errorf("no Audio manager")
	}
	if data.Sessions == nil {
		return fmt.Errorf("no Sessions manager")
	}
	if data.Transcriber == nil {
		return fmt.Errorf("no Transcriber")
	}
	if data.LLM == nil {
		return fmt.Errorf("no LLM")
	}
	if data.Middleware == nil {
		return fmt.Errorf("no Middleware")
	}
	return nil
}

var wsUpgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	}}

func record(data *Data) func(echo.Context) error {
	return func(c echo.Context) error {
		ws, err := wsUpgrader.Upgrade(c.Response(), c.Request(), nil)
		if err != nil {
			goapp.Log.Error().Err(err).Send()
			return err
		}
		defer ws.Close()

		return handleRecording(data, ws)
	}
}
