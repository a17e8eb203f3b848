// Package redis keeps notification suppression flags in Redis so that several
// machines notifying the same patient share one "already shown" state.
package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/julianstephens/heartline/internal/constants"
)

// FlagStore implements storage.FlagStore on a Redis server.
type FlagStore struct {
	client *redis.Client
	ttl    time.Duration
}

// New parses redisURL (redis://[:password@]host:port/db) without connecting.
func New(redisURL string) (*FlagStore, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("invalid redis url: %w", err)
	}
	return &FlagStore{client: redis.NewClient(opt), ttl: constants.FlagTTL}, nil
}

// Connect checks that the server is reachable.
func (f *FlagStore) Connect(ctx context.Context) error {
	return f.client.Ping(ctx).Err()
}

func (f *FlagStore) Close() error {
	if f.client != nil {
		return f.client.Close()
	}
	return nil
}

// namespaced prefixes the key so heartline can share a database with other apps.
func namespaced(key string) string {
	return constants.AppName + ":" + key
}

func (f *FlagStore) IsFlagSet(ctx context.Context, key string) (bool, error) {
	n, err := f.client.Exists(ctx, namespaced(key)).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// SetFlag stores the flag with a TTL; suppression keys are per day so stale ones just expire.
func (f *FlagStore) SetFlag(ctx context.Context, key string) error {
	return f.client.Set(ctx, namespaced(key), "1", f.ttl).Err()
}
