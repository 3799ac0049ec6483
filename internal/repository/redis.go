package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"sync"
	"time"

	"shacademy-backend/internal/domain"

	"github.com/redis/go-redis/v9"
)

// ========== REFRESH TOKEN STORE ==========

type tokenStore struct {
	client *redis.Client
}

// NewTokenStore keeps the allowlist of live refresh token ids.
func NewTokenStore(client *redis.Client) domain.TokenStore {
	return &tokenStore{client}
}

func refreshKey(jti string) string {
	return "refresh:" + jti
}

func (s *tokenStore) Save(ctx context.Context, jti string, userID uint, ttl time.Duration) error {
	return s.client.Set(ctx, refreshKey(jti), strconv.FormatUint(uint64(userID), 10), ttl).Err()
}

func (s *tokenStore) Exists(ctx context.Context, jti string) (bool, error) {
	n, err := s.client.Exists(ctx, refreshKey(jti)).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (s *tokenStore) Revoke(ctx context.Context, jti string) error {
	return s.client.Del(ctx, refreshKey(jti)).Err()
}

// ========== STATS CACHE ==========

type statsCache struct {
	client *redis.Client
	prefix string
}

func NewStatsCache(client *redis.Client) domain.StatsCache {
	return &statsCache{client: client, prefix: "stats:"}
}

func (c *statsCache) Get(ctx context.Context, key string, dest interface{}) (bool, error) {
	raw, err := c.client.Get(ctx, c.prefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		return false, fmt.Errorf("decode cached %s: %w", key, err)
	}
	return true, nil
}

func (c *statsCache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, c.prefix+key, raw, ttl).Err()
}

func (c *statsCache) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	full := make([]string, len(keys))
	for i, k := range keys {
		full[i] = c.prefix + k
	}
	return c.client.Del(ctx, full...).Err()
}

// ========== IN-MEMORY FALLBACKS ==========

// When REDIS_ADDR is unset the server runs single-instance with these.

type memoryEntry struct {
	value   []byte
	expires time.Time
}

type memoryStore struct {
	mu      sync.Mutex
	entries map[string]memoryEntry
}

func newMemoryStore() *memoryStore {
	return &memoryStore{entries: make(map[string]memoryEntry)}
}

func (m *memoryStore) get(key string) ([]byte, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.entries[key]
	if !ok {
		return nil, false
	}
	if !e.expires.IsZero() && time.Now().After(e.expires) {
		delete(m.entries, key)
		return nil, false
	}
	return e.value, true
}

func (m *memoryStore) set(key string, value []byte, ttl time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	e := memoryEntry{value: value}
	if ttl > 0 {
		e.expires = time.Now().Add(ttl)
	}
	m.entries[key] = e
}

func (m *memoryStore) del(keys ...string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, k := range keys {
		delete(m.entries, k)
	}
}

type memoryTokenStore struct {
	store *memoryStore
}

func NewMemoryTokenStore() domain.TokenStore {
	return &memoryTokenStore{store: newMemoryStore()}
}

func (s *memoryTokenStore) Save(_ context.Context, jti string, userID uint, ttl time.Duration) error {
	s.store.set(jti, []byte(strconv.FormatUint(uint64(userID), 10)), ttl)
	return nil
}

func (s *memoryTokenStore) Exists(_ context.Context, jti string) (bool, error) {
	_, ok := s.store.get(jti)
	return ok, nil
}

func (s *memoryTokenStore) Revoke(_ context.Context, jti string) error {
	s.store.del(jti)
	return nil
}

type memoryStatsCache struct {
	store *memoryStore
}

func NewMemoryStatsCache() domain.StatsCache {
	return &memoryStatsCache{store: newMemoryStore()}
}

func (c *memoryStatsCache) Get(_ context.Context, key string, dest interface{}) (bool, error) {
	raw, ok := c.store.get(key)
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(raw, dest)
}

func (c *memoryStatsCache) Set(_ context.Context, key string, value interface{}, ttl time.Duration) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	c.store.set(key, raw, ttl)
	return nil
}

func (c *memoryStatsCache) Delete(_ context.Context, keys ...string) error {
	c.store.del(keys...)
	return nil
}
