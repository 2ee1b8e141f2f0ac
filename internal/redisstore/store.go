// Package redisstore keeps the furniture layout in Redis.
//
// Each item is a JSON value under "<prefix>furniture:<id>". The set
// "<prefix>furniture:ids" indexes the stored ids so the layout can be listed
// without scanning the keyspace.
package redisstore

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rpggio/seatmap/internal/domain/furniture"
	"github.com/rpggio/seatmap/internal/repository"
)

// DefaultPrefix namespaces keys when none is configured.
const DefaultPrefix = "seatmap:"

// Config describes a Redis connection.
type Config struct {
	Addr     string
	Password string
	DB       int
	Prefix   string
}

// NewClient connects to Redis and checks the connection with a short ping.
func NewClient(ctx context.Context, cfg Config) (*redis.Client, error) {
	addr := cfg.Addr
	if addr == "" {
		addr = "localhost:6379"
	}
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to reach redis at %s: %w", addr, err)
	}
	return client, nil
}

// FurnitureRepository implements furniture.Repository on Redis.
type FurnitureRepository struct {
	rdb    redis.UniversalClient
	prefix string
}

// NewFurnitureRepository creates a repository using keys under prefix.
func NewFurnitureRepository(rdb redis.UniversalClient, prefix string) *FurnitureRepository {
	if prefix == "" {
		prefix = DefaultPrefix
	}
	return &FurnitureRepository{rdb: rdb, prefix: prefix}
}

func (r *FurnitureRepository) itemKey(id string) string { return r.prefix + "furniture:" + id }
func (r *FurnitureRepository) indexKey() string         { return r.prefix + "furniture:ids" }

// LoadAll returns every stored item ordered by floor and ordinal.
func (r *FurnitureRepository) LoadAll(ctx context.Context) ([]furniture.Furniture, error) {
	ids, err := r.rdb.SMembers(ctx, r.indexKey()).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list furniture ids: %w", err)
	}
	if len(ids) == 0 {
		return nil, nil
	}

	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = r.itemKey(id)
	}
	values, err := r.rdb.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to load furniture: %w", err)
	}

	items := make(furniture.Collection, 0, len(values))
	for i, v := range values {
		raw, ok := v.(string)
		if !ok {
			// indexed id without a value; the item was removed mid-write
			continue
		}
		var f furniture.Furniture
		if err := json.Unmarshal([]byte(raw), &f); err != nil {
			return nil, fmt.Errorf("failed to decode furniture %s: %w", ids[i], err)
		}
		items = append(items, f)
	}
	return items.SortedByIndex(), nil
}

// SaveAll replaces the stored layout with items in one MULTI/EXEC block.
func (r *FurnitureRepository) SaveAll(ctx context.Context, items []furniture.Furniture) error {
	existing, err := r.rdb.SMembers(ctx, r.indexKey()).Result()
	if err != nil {
		return fmt.Errorf("failed to list furniture ids: %w", err)
	}

	encoded := make(map[string][]byte, len(items))
	for _, f := range items {
		if f.ID == "" {
			return repository.ErrInvalidInput
		}
		b, err := json.Marshal(f)
		if err != nil {
			return fmt.Errorf("failed to encode furniture %s: %w", f.ID, err)
		}
		encoded[f.ID] = b
	}

	_, err = r.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		for _, id := range existing {
			pipe.Del(ctx, r.itemKey(id))
		}
		pipe.Del(ctx, r.indexKey())
		for id, b := range encoded {
			pipe.Set(ctx, r.itemKey(id), b, 0)
			pipe.SAdd(ctx, r.indexKey(), id)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to save furniture: %w", err)
	}
	return nil
}

// RemoveOne deletes a single item.
func (r *FurnitureRepository) RemoveOne(ctx context.Context, id string) error {
	var del *redis.IntCmd
	_, err := r.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		del = pipe.Del(ctx, r.itemKey(id))
		pipe.SRem(ctx, r.indexKey(), id)
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to delete furniture %s: %w", id, err)
	}
	if del.Val() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// UpsertOne writes a single item.
func (r *FurnitureRepository) UpsertOne(ctx context.Context, f furniture.Furniture) error {
	if f.ID == "" {
		return repository.ErrInvalidInput
	}
	b, err := json.Marshal(f)
	if err != nil {
		return fmt.Errorf("failed to encode furniture %s: %w", f.ID, err)
	}
	_, err = r.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, r.itemKey(f.ID), b, 0)
		pipe.SAdd(ctx, r.indexKey(), f.ID)
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to upsert furniture %s: %w", f.ID, err)
	}
	return nil
}
