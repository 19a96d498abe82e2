package mongo

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/dmitrymomot/sesskit/pkg/cache"
)

type entry struct {
	Key       string     `bson:"_id"`
	Value     []byte     `bson:"value"`
	ExpiresAt *time.Time `bson:"expires_at,omitempty"`
}

// Storage implements cache.Backend on a collection with a TTL index on expires_at.
// The server's TTL monitor runs about once a minute, so Get also filters on
// expires_at to hide entries that are expired but not yet removed.
type Storage struct {
	coll *mongo.Collection
	now  func() time.Time
}

var _ cache.Backend = (*Storage)(nil)

// NewStorage wraps coll without touching indexes. Call EnsureIndexes once at startup.
func NewStorage(coll *mongo.Collection) *Storage {
	return &Storage{coll: coll, now: time.Now}
}

// NewStorageFromConfig connects, creates the TTL index and returns the storage with its client.
// The caller owns the client and must disconnect it.
func NewStorageFromConfig(ctx context.Context, cfg Config) (*Storage, *mongo.Client, error) {
	client, err := New(ctx, cfg)
	if err != nil {
		return nil, nil, err
	}

	s := NewStorage(client.Database(cfg.Database).Collection(cfg.Collection))
	if err := s.EnsureIndexes(ctx); err != nil {
		_ = client.Disconnect(ctx)
		return nil, nil, err
	}
	return s, client, nil
}

// EnsureIndexes creates the expires_at TTL index. It is safe to call repeatedly.
func (s *Storage) EnsureIndexes(ctx context.Context) error {
	_, err := s.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "expires_at", Value: 1}},
		Options: options.Index().SetExpireAfterSeconds(0),
	})
	if err != nil {
		return errors.Join(ErrFailedToCreateIndex, err)
	}
	return nil
}

// Get returns cache.ErrNotFound for missing or expired entries.
func (s *Storage) Get(ctx context.Context, key string) ([]byte, error) {
	if key == "" {
		return nil, cache.ErrEmptyKey
	}

	filter := bson.D{
		{Key: "_id", Value: key},
		{Key: "$or", Value: bson.A{
			bson.D{{Key: "expires_at", Value: bson.D{{Key: "$exists", Value: false}}}},
			bson.D{{Key: "expires_at", Value: bson.D{{Key: "$gt", Value: s.now()}}}},
		}},
	}

	var e entry
	if err := s.coll.FindOne(ctx, filter).Decode(&e); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, cache.ErrNotFound
		}
		return nil, err
	}
	return e.Value, nil
}

// Set replaces the whole document so a zero ttl clears a previous expiry.
func (s *Storage) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if key == "" {
		return cache.ErrEmptyKey
	}

	e := entry{Key: key, Value: value}
	if ttl > 0 {
		t := s.now().Add(ttl)
		e.ExpiresAt = &t
	}

	_, err := s.coll.ReplaceOne(ctx, bson.D{{Key: "_id", Value: key}}, e, options.Replace().SetUpsert(true))
	return err
}

// Delete removes the entry. Missing entries are not an error.
func (s *Storage) Delete(ctx context.Context, key string) error {
	if key == "" {
		return cache.ErrEmptyKey
	}
	_, err := s.coll.DeleteOne(ctx, bson.D{{Key: "_id", Value: key}})
	return err
}
