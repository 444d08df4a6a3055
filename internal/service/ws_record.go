package service

import (
	"encoding/hex"
	"errors"
	"fmt"
	"net"
	"strings"

	"github.com/airenas/go-app/pkg/goapp"
	"github.com/describe-ai/audio-analyzer/internal/api"
	"github.com/describe-ai/audio-analyzer/internal/domain"
	"github.com/describe-ai/audio-analyzer/internal/media"
	"github.com/gorilla/websocket"
	"github.com/oklog/ulid/v2"
	"lukechampine.com/blake3"
)

// handleRecording accumulates binary PCM frames until the client sends a
// stop event or closes, then stores the recording as a WAV asset and
// answers with the new session.
func handleRecording(data *Data, conn *websocket.Conn) error {
	var chunks [][]byte
loop:
	for {
		mType, msg, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) ||
				errors.Is(err, net.ErrClosed) {
				goapp.Log.Info().Msg("connection closed")
				break loop
			}
			goapp.Log.Error().Err(err).Send()
			break loop
		}
		switch mType {
		case websocket.BinaryMessage:
			chunks = append(chunks, msg)
		case websocket.TextMessage:
			if strings.TrimSpace(string(msg)) == api.EventStopRecording {
				break loop
			}
			goapp.Log.Warn().Str("msg", string(msg)).Msg("unexpected text message")
		}
	}
	if len(chunks) == 0 {
		goapp.Log.Info().Msg("no audio received")
		return nil
	}

	wavData, err := media.ToWAV(chunks)
	if err != nil {
		return fmt.Errorf("encode wav: %w", err)
	}
	hash := blake3.Sum256(wavData)
	audioID := hex.EncodeToString(hash[:])
	if err := data.Audio.SaveAudio(data.Ctx, audioID, wavData); err != nil {
		return fmt.Errorf("save audio: %w", err)
	}

	dur := media.PCMDuration(chunks)
	sess := &domain.Session{
		ID:        ulid.Make().String(),
		Name:      "recording.wav",
		AudioID:   audioID,
		Duration:  dur,
		Selection: domain.Selection{FullAudio: true},
	}
	if err := data.Sessions.SaveSession(data.Ctx, sess); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	goapp.Log.Info().Str("id", sess.ID).Float64("duration", dur).Int("chunks", len(chunks)).Msg("recording saved")

	return conn.WriteJSON(api.UploadResult{ID: sess.ID, Name: sess.Name, Duration: &dur})
}
