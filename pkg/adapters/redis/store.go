package redis

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/aretw0/zconv/pkg/domain"
	"github.com/aretw0/zconv/pkg/ports"
	backend "github.com/redis/go-redis/v9"
)

// DefaultPrefix namespaces every key this package writes.
const DefaultPrefix = "zconv:"

// Store implements ports.HistoryStore as a Redis list of JSON records.
type Store struct {
	client *backend.Client
	prefix string
	limit  int64
}

var _ ports.HistoryStore = (*Store)(nil)

type Option func(*Store)

// WithPrefix sets the key prefix.
func WithPrefix(prefix string) Option {
	return func(s *Store) {
		s.prefix = prefix
	}
}

// WithLimit keeps only the newest n records (0 keeps everything).
func WithLimit(n int64) Option {
	return func(s *Store) {
		s.limit = n
	}
}

// New creates a new Redis store with options.
func New(address, password string, db int, opts ...Option) *Store {
	rdb := backend.NewClient(&backend.Options{
		Addr:     address,
		Password: password,
		DB:       db,
	})
	return NewFromClient(rdb, opts...)
}

// NewFromClient creates a new Redis store from an existing client.
func NewFromClient(client *backend.Client, opts ...Option) *Store {
	store := &Store{
		client: client,
		prefix: DefaultPrefix,
	}
	for _, opt := range opts {
		opt(store)
	}
	return store
}

func (s *Store) key() string {
	return s.prefix + "history"
}

// Append pushes the record to the tail of the list, trimming old ones when limited.
func (s *Store) Append(ctx context.Context, rec domain.Record) error {
	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("failed to marshal record: %w", err)
	}

	pipe := s.client.TxPipeline()
	pipe.RPush(ctx, s.key(), data)
	if s.limit > 0 {
		pipe.LTrim(ctx, s.key(), -s.limit, -1)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to save to redis: %w", err)
	}
	return nil
}

// List reads the whole list in insertion order.
func (s *Store) List(ctx context.Context) ([]domain.Record, error) {
	vals, err := s.client.LRange(ctx, s.key(), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read from redis: %w", err)
	}

	records := make([]domain.Record, len(vals))
	for i, val := range vals {
		if err := json.Unmarshal([]byte(val), &records[i]); err != nil {
			return nil, fmt.Errorf("failed to unmarshal record %d: %w", i, err)
		}
	}
	return records, nil
}

// Clear deletes the list.
func (s *Store) Clear(ctx context.Context) error {
	if err := s.client.Del(ctx, s.key()).Err(); err != nil {
		return fmt.Errorf("failed to clear redis history: %w", err)
	}
	return nil
}

// Ping checks the connection.
func (s *Store) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

// Close closes the redis client.
func (s *Store) Close() error {
	return s.client.Close()
}
