package db

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/airenas/go-app/pkg/goapp"
	"github.com/describe-ai/audio-analyzer/internal/domain"
	"github.com/describe-ai/audio-analyzer/internal/secure"
	"github.com/redis/go-redis/v9"
)

// RedisDataManager stores audio and sessions in Redis, encrypted at rest.
type RedisDataManager struct {
	client  *redis.Client
	ttl     time.Duration
	crypter *secure.Crypter
}

// NewRedisDataManager creates a new RedisDataManager with connection pooling.
func NewRedisDataManager(connStr string, encryptionKey string) (*RedisDataManager, error) {
	opt, err := redis.ParseURL(connStr)
	if err != nil {
		return nil, fmt.Errorf("parse redis URL: %w", err)
	}
	goapp.Log.Info().Str("redis", opt.Addr).Int("db", opt.DB).Send()
	rdb := redis.NewClient(opt)

	crypter, err := secure.NewCrypter(encryptionKey)
	if err != nil {
		return nil, fmt.Errorf("create crypter: %w", err)
	}

	return &RedisDataManager{
		client:  rdb,
		ttl:     time.Hour * 6,
		crypter: crypter,
	}, nil
}

func (r *RedisDataManager) keyAudio(id string) string {
	return fmt.Sprintf("audio:%s", id)
}

func (r *RedisDataManager) keySession(id string) string {
	return fmt.Sprintf("session:%s", id)
}

// SaveAudio stores WAV bytes in Redis
func (r *RedisDataManager) SaveAudio(ctx context.Context, id string, data []byte) error {
	goapp.Log.Trace().Str("id", id).Msg("Save audio")

	encrypted, err := r.crypter.Encrypt(data)
	if err != nil {
		return fmt.Errorf("encrypt: %w", err)
	}
	return r.client.Set(ctx, r.keyAudio(id), encrypted, r.ttl).Err()
}

// GetAudio retrieves WAV bytes from Redis
func (r *RedisDataManager) GetAudio(ctx context.Context, id string) ([]byte, error) {
	goapp.Log.Trace().Str("id", id).Msg("Get audio")
	b, err := r.client.Get(ctx, r.keyAudio(id)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, ErrNotFound
		}
		return nil, err
	}
	decrypted, err := r.crypter.Decrypt(b)
	if err != nil {
		return nil, fmt.Errorf("decrypt: %w", err)
	}
	return decrypted, nil
}

// SaveSession stores a session in Redis as JSON
func (r *RedisDataManager) SaveSession(ctx context.Context, session *domain.Session) error {
	data, err := json.Marshal(session)
	if err != nil {
		return err
	}
	encrypted, err := r.crypter.Encrypt(data)
	if err != nil {
		return fmt.Errorf("encrypt: %w", err)
	}
	return r.client.Set(ctx, r.keySession(session.ID), encrypted, r.ttl).Err()
}

// GetSession retrieves a session from Redis
func (r *RedisDataManager) GetSession(ctx context.Context, id string) (*domain.Session, error) {
	bs, err := r.client.Get(ctx, r.keySession(id)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get session: %w", err)
	}
	decrypted, err := r.crypter.Decrypt(bs)
	if err != nil {
		return nil, fmt.Errorf("decrypt: %w", err)
	}
	var s domain.Session
	if err := json.Unmarshal(decrypted, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *RedisDataManager) Close() error {
	return r.client.Close()
}
