package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/airenas/go-app/pkg/goapp"
	"github.com/describe-ai/audio-analyzer/internal/db"
	"github.com/describe-ai/audio-analyzer/internal/handlers"
	"github.com/describe-ai/audio-analyzer/internal/llm"
	"github.com/describe-ai/audio-analyzer/internal/service"
	"github.com/describe-ai/audio-analyzer/internal/transcriber"
	"github.com/labstack/gommon/color"
)

func main() {
	goapp.StartWithDefault()

	printBanner()

	cfg := goapp.Config

	ctx, cancelFunc := context.WithCancel(context.Background())
	defer cancelFunc()

	data := &service.Data{}
	data.Ctx = ctx
	data.Port = cfg.GetInt("port")
	data.DefaultModel = cfg.GetString("whisper.model")

	if redisURL := cfg.GetString("redis.url"); redisURL != "" {
		dm, err := db.NewRedisDataManager(redisURL, cfg.GetString("encryption.key"))
		if err != nil {
			goapp.Log.Fatal().Err(err).Msg("can't init redis data manager")
		}
		defer dm.Close()
		data.Audio = dm
		data.Sessions = dm
	} else {
		dm := db.NewMemoryDataManager()
		data.Audio = dm
		data.Sessions = dm
	}

	trClient, err := transcriber.NewClient(cfg.GetString("whisper.url"))
	if err != nil {
		goapp.Log.Fatal().Err(err).Msg("can't init transcriber client")
	}
	data.Transcriber = trClient

	llmClient, err := llm.NewClient(cfg.GetString("llm.url"), cfg.GetString("llm.key"))
	if err != nil {
		goapp.Log.Fatal().Err(err).Msg("can't init llm client")
	}
	data.LLM = llmClient

	hList, err := handlers.NewListHandler()
	if err != nil {
		goapp.Log.Fatal().Err(err).Msg("can't init list handler")
	}
	hList.Add(handlers.NewCleaner())
	data.Middleware = hList

	// best effort preload, the backend loads on demand anyway
	go func() {
		if err := trClient.Load(ctx, data.DefaultModel); err != nil {
			goapp.Log.Warn().Err(err).Msg("can't preload model")
		}
	}()

	doneCh, err := service.StartWebServer(data)
	if err != nil {
		goapp.Log.Fatal().Err(err).Msg("can't start web server")
	}

	/////////////////////// Waiting for terminate
	waitCh := make(chan os.Signal, 2)
	signal.Notify(waitCh, os.Interrupt, syscall.SIGTERM)
	select {
	case <-waitCh:
		goapp.Log.Info().Msg("Got exit signal")
	case <-doneCh:
		goapp.Log.Info().Msg("Service exit")
	}
	cancelFunc()
	select {
	case <-doneCh:
		goapp.Log.Info().Msg("All code returned. Now exit. Bye")
	case <-time.After(time.Second * 15):
		goapp.Log.Warn().Msg("Timeout gracefull shutdown")
	}
}

var (
	version = "DEV"
)

func printBanner() {
	banner :=
		`
    AUDIO ANALYZER v: %s

%s
________________________________________________________

`
	cl := color.New()
	cl.Printf(banner, cl.Red(version), cl.Green("https://github.com/describe-ai/audio-analyzer"))
}
