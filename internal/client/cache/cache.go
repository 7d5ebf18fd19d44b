// Package cache persists small pieces of client state between runs,
// most importantly the signed-in session so the app can resume without
// asking for credentials again.
package cache

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/bobadragon/storefront/internal/client/backend"
)

// Repository is a small key-value store backed by the local cache database.
type Repository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	Clear(ctx context.Context) error
}

const sessionKey = "session"

// SessionCache stores the current backend session as JSON under a fixed key.
type SessionCache struct {
	repo Repository
}

func NewSessionCache(repo Repository) *SessionCache {
	return &SessionCache{repo: repo}
}

// Load returns the persisted session, or nil when none is stored.
func (c *SessionCache) Load(ctx context.Context) (*backend.Session, error) {
	raw, err := c.repo.Get(ctx, sessionKey)
	if err != nil {
		return nil, err
	}
	if raw == nil {
		return nil, nil
	}
	var s backend.Session
	if err := json.Unmarshal(raw, &s); err != nil {
		return nil, fmt.Errorf("failed to decode cached session: %w", err)
	}
	return &s, nil
}

func (c *SessionCache) Save(ctx context.Context, s *backend.Session) error {
	raw, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("failed to encode session: %w", err)
	}
	return c.repo.Set(ctx, sessionKey, raw)
}

func (c *SessionCache) Drop(ctx context.Context) error {
	return c.repo.Delete(ctx, sessionKey)
}
