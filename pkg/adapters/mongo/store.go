// Package mongo keeps conversion history in a MongoDB collection.
package mongo

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	backend "go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/aretw0/zconv/internal/logging"
	"github.com/aretw0/zconv/pkg/domain"
	"github.com/aretw0/zconv/pkg/ports"
)

const (
	DefaultDatabase   = "conversion_app"
	DefaultCollection = "history"
)

// Store implements ports.HistoryStore on a MongoDB collection.
// Records are listed in _id order, which follows insertion order.
type Store struct {
	client     *backend.Client
	collection *backend.Collection
}

var _ ports.HistoryStore = (*Store)(nil)

type config struct {
	database   string
	collection string
	retries    int
	backoff    time.Duration
	logger     *slog.Logger
}

type Option func(*config)

// WithDatabase sets the database name (default: conversion_app).
func WithDatabase(name string) Option {
	return func(c *config) {
		c.database = name
	}
}

// WithCollection sets the collection name (default: history).
func WithCollection(name string) Option {
	return func(c *config) {
		c.collection = name
	}
}

// WithRetries sets how many times Connect pings the server before giving up.
func WithRetries(n int, backoff time.Duration) Option {
	return func(c *config) {
		c.retries = n
		c.backoff = backoff
	}
}

// WithLogger sets the logger used while connecting.
func WithLogger(logger *slog.Logger) Option {
	return func(c *config) {
		c.logger = logger
	}
}

// Connect dials uri and waits until the server answers a ping.
func Connect(ctx context.Context, uri string, opts ...Option) (*Store, error) {
	cfg := config{
		database:   DefaultDatabase,
		collection: DefaultCollection,
		retries:    5,
		backoff:    2 * time.Second,
		logger:     logging.NewNop(),
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	client, err := backend.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("failed to create mongo client: %w", err)
	}

	for attempt := 1; ; attempt++ {
		err = client.Ping(ctx, nil)
		if err == nil {
			break
		}
		if attempt >= cfg.retries {
			_ = client.Disconnect(context.Background())
			return nil, fmt.Errorf("mongo unreachable after %d attempts: %w", attempt, err)
		}
		cfg.logger.Error("MongoDB connection failed", "err", err, "retries_left", cfg.retries-attempt)
		select {
		case <-ctx.Done():
			_ = client.Disconnect(context.Background())
			return nil, ctx.Err()
		case <-time.After(cfg.backoff):
		}
	}
	cfg.logger.Info("MongoDB connected", "database", cfg.database, "collection", cfg.collection)

	return &Store{
		client:     client,
		collection: client.Database(cfg.database).Collection(cfg.collection),
	}, nil
}

// Append inserts one document.
func (s *Store) Append(ctx context.Context, rec domain.Record) error {
	if _, err := s.collection.InsertOne(ctx, rec); err != nil {
		return fmt.Errorf("failed to insert record: %w", err)
	}
	return nil
}

// List returns every document without its _id.
func (s *Store) List(ctx context.Context) ([]domain.Record, error) {
	findOpts := options.Find().
		SetSort(bson.D{{Key: "_id", Value: 1}}).
		SetProjection(bson.D{{Key: "_id", Value: 0}})

	cur, err := s.collection.Find(ctx, bson.D{}, findOpts)
	if err != nil {
		return nil, fmt.Errorf("failed to query history: %w", err)
	}
	records := []domain.Record{}
	if err := cur.All(ctx, &records); err != nil {
		return nil, fmt.Errorf("failed to decode history: %w", err)
	}
	return records, nil
}

// Clear deletes every document in the collection.
func (s *Store) Clear(ctx context.Context) error {
	if _, err := s.collection.DeleteMany(ctx, bson.D{}); err != nil {
		return fmt.Errorf("failed to clear history: %w", err)
	}
	return nil
}

// Close disconnects the client.
func (s *Store) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := s.client.Disconnect(ctx); err != nil && !errors.Is(err, backend.ErrClientDisconnected) {
		return err
	}
	return nil
}
