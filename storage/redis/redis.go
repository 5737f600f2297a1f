// Package redis persists contact collections in Redis, one string key per
// namespace.
package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/spachava753/crm/contacts"
)

// DefaultKeyPrefix is prepended to every namespace to form the Redis key.
const DefaultKeyPrefix = "crm:"

// Store is a contacts.Store backed by Redis.
type Store struct {
	rdb    *redis.Client
	prefix string
}

var _ contacts.Store = (*Store)(nil)

// Open connects to the Redis server at url (redis://host:port/db) and checks
// the connection.
func Open(ctx context.Context, url string) (*Store, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("redis: invalid url: %w", err)
	}

	rdb := redis.NewClient(opts)
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		rdb.Close()
		return nil, fmt.Errorf("redis: connecting failed: %w", err)
	}

	return NewStore(rdb, DefaultKeyPrefix), nil
}

// NewStore wraps an existing client. Keys are prefix + namespace.
func NewStore(rdb *redis.Client, prefix string) *Store {
	return &Store{rdb: rdb, prefix: prefix}
}

// Load returns the record saved under namespace, or contacts.ErrNoRecord.
func (s *Store) Load(ctx context.Context, namespace string) ([]byte, error) {
	value, err := s.rdb.Get(ctx, s.key(namespace)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, contacts.ErrNoRecord
	}
	if err != nil {
		return nil, fmt.Errorf("redis: reading namespace %q failed: %w", namespace, err)
	}
	return value, nil
}

// Save replaces the record under namespace. The key never expires.
func (s *Store) Save(ctx context.Context, namespace string, data []byte) error {
	if err := s.rdb.Set(ctx, s.key(namespace), data, 0).Err(); err != nil {
		return fmt.Errorf("redis: writing namespace %q failed: %w", namespace, err)
	}
	return nil
}

// Delete removes the record under namespace.
func (s *Store) Delete(ctx context.Context, namespace string) error {
	if err := s.rdb.Del(ctx, s.key(namespace)).Err(); err != nil {
		return fmt.Errorf("redis: deleting namespace %q failed: %w", namespace, err)
	}
	return nil
}

// Close closes the client.
func (s *Store) Close() error {
	return s.rdb.Close()
}

func (s *Store) key(namespace string) string {
	return s.prefix + namespace
}
