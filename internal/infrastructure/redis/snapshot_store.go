package redisstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"swapcore/internal/application"
)

// Store keeps the latest order-book snapshot under a single key so the book
// survives process restarts.
type Store struct {
	Client *redis.Client
	Key    string
}

func New(client *redis.Client, key string) *Store {
	return &Store{Client: client, Key: key}
}

func (s *Store) Save(ctx context.Context, snap application.OrderSnapshot) error {
	payload, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("marshal snapshot: %w", err)
	}
	if err := s.Client.Set(ctx, s.Key, payload, 0).Err(); err != nil {
		return fmt.Errorf("save snapshot: %w", err)
	}
	return nil
}

func (s *Store) Load(ctx context.Context) (application.OrderSnapshot, bool, error) {
	payload, err := s.Client.Get(ctx, s.Key).Bytes()
	if errors.Is(err, redis.Nil) {
		return application.OrderSnapshot{}, false, nil
	}
	if err != nil {
		return application.OrderSnapshot{}, false, fmt.Errorf("load snapshot: %w", err)
	}
	var snap application.OrderSnapshot
	if err := json.Unmarshal(payload, &snap); err != nil {
		return application.OrderSnapshot{}, false, fmt.Errorf("decode snapshot: %w", err)
	}
	return snap, true, nil
}
