package repository

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"

	"github.com/vignesh-sundaramoorthi/identity-sprint/internal/model"
	"github.com/vignesh-sundaramoorthi/identity-sprint/pkg/logger"
)

// ApplicationStore is an append-only list of intake applications, newest first.
type ApplicationStore interface {
	Append(ctx context.Context, app *model.Application) error
	List(ctx context.Context) ([]model.Application, error)
}

// RedisApplicationStore keeps applications as JSON strings in a single Redis list.
type RedisApplicationStore struct {
	Client *redis.Client
	Key    string
}

func NewRedisApplicationStore(client *redis.Client, key string) *RedisApplicationStore {
	return &RedisApplicationStore{Client: client, Key: key}
}

func (s *RedisApplicationStore) Append(ctx context.Context, app *model.Application) error {
	raw, err := json.Marshal(app)
	if err != nil {
		return err
	}
	return s.Client.LPush(ctx, s.Key, raw).Err()
}

// List skips entries that no longer decode rather than failing the whole read.
func (s *RedisApplicationStore) List(ctx context.Context) ([]model.Application, error) {
	items, err := s.Client.LRange(ctx, s.Key, 0, -1).Result()
	if err != nil {
		return nil, err
	}
	apps := make([]model.Application, 0, len(items))
	for _, item := range items {
		var app model.Application
		if err := json.Unmarshal([]byte(item), &app); err != nil {
			logger.Log.Warn("Skipping undecodable application", zap.Error(err))
			continue
		}
		apps = append(apps, app)
	}
	return apps, nil
}

// MemoryApplicationStore is the process-local store used when Redis is off.
type MemoryApplicationStore struct {
	mu   sync.RWMutex
	apps []model.Application
}

func NewMemoryApplicationStore() *MemoryApplicationStore {
	return &MemoryApplicationStore{}
}

func (s *MemoryApplicationStore) Append(_ context.Context, app *model.Application) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.apps = append([]model.Application{*app}, s.apps...)
	return nil
}

func (s *MemoryApplicationStore) List(_ context.Context) ([]model.Application, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]model.Application, len(s.apps))
	copy(out, s.apps)
	return out, nil
}
