package db

import (
	"context"
	"errors"
	"sync"

	"github.com/airenas/go-app/pkg/goapp"
	"github.com/describe-ai/audio-analyzer/internal/domain"
)

// ErrNotFound is returned when an asset or session does not exist.
var ErrNotFound = errors.New("not found")

// MemoryDataManager keeps audio bytes and sessions in process memory. It is
// the default store when no Redis URL is configured.
type MemoryDataManager struct {
	audio    map[string][]byte
	sessions map[string]*domain.Session

	lock sync.RWMutex
}

func NewMemoryDataManager() *MemoryDataManager {
	return &MemoryDataManager{
		audio:    make(map[string][]byte),
		sessions: make(map[string]*domain.Session),
	}
}

// SaveAudio stores WAV bytes.
func (am *MemoryDataManager) SaveAudio(ctx context.Context, id string, data []byte) error {
	goapp.Log.Trace().Str("id", id).Int("len", len(data)).Msg("Save audio")
	am.lock.Lock()
	defer am.lock.Unlock()

	cp := make([]byte, len(data))
	copy(cp, data)
	am.audio[id] = cp
	return nil
}

// GetAudio retrieves stored audio bytes.
func (am *MemoryDataManager) GetAudio(ctx context.Context, id string) ([]byte, error) {
	goapp.Log.Trace().Str("id", id).Msg("Get audio")
	am.lock.RLock()
	defer am.lock.RUnlock()
	data, ok := am.audio[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := make([]byte, len(data))
	copy(cp, data)
	return cp, nil
}

// SaveSession implements SessionManager.
func (am *MemoryDataManager) SaveSession(ctx context.Context, session *domain.Session) error {
	am.lock.Lock()
	defer am.lock.Unlock()
	cp := *session
	am.sessions[session.ID] = &cp
	return nil
}

// GetSession implements SessionManager.
func (am *MemoryDataManager) GetSession(ctx context.Context, id string) (*domain.Session, error) {
	am.lock.RLock()
	defer am.lock.RUnlock()
	data, ok := am.sessions[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *data
	return &cp, nil
}
