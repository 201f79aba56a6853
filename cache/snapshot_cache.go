package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"SqueezeFM/model"

	"github.com/go-redis/redis/v8"
)

const (
	snapshotKey        = "catalog:snapshot"
	snapshotVersionKey = "catalog:snapshot:version"
	snapshotSeqKey     = "catalog:snapshot:seq"

	snapshotTTL = 10 * time.Minute
)

// ErrStaleSnapshot is returned when a snapshot write carries a version older
// than the one already stored. Catalog loads run concurrently; a slow load
// finishing after a newer one must not overwrite it.
var ErrStaleSnapshot = errors.New("snapshot version is older than the cached one")

// NextSnapshotVersion issues the next snapshot version. Every catalog load
// takes a version before fetching, so writes can be ordered afterwards.
func NextSnapshotVersion(ctx context.Context) (int64, error) {
	if RedisClient == nil {
		return 0, fmt.Errorf("Redis client not initialized")
	}
	version, err := RedisClient.Incr(ctx, snapshotSeqKey).Result()
	if err != nil {
		return 0, fmt.Errorf("failed to issue snapshot version: %w", err)
	}
	return version, nil
}

// snapshotTx is the slice of the Redis transaction the snapshot write needs.
// *redis.Tx satisfies it; tests drive writeSnapshotTx with a fake.
type snapshotTx interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	TxPipelined(ctx context.Context, fn func(redis.Pipeliner) error) ([]redis.Cmder, error)
}

// writeSnapshotTx performs the versioned write inside one transaction: read
// the cached version, refuse the write with ErrStaleSnapshot unless the
// incoming version is strictly newer, then set payload and version together.
func writeSnapshotTx(ctx context.Context, tx snapshotTx, version int64, payload []byte) error {
	stored, err := tx.Get(ctx, snapshotVersionKey).Int64()
	if err != nil && err != redis.Nil {
		return fmt.Errorf("failed to read cached snapshot version: %w", err)
	}
	if err != redis.Nil && stored >= version {
		return ErrStaleSnapshot
	}

	_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, snapshotKey, payload, snapshotTTL)
		pipe.Set(ctx, snapshotVersionKey, strconv.FormatInt(version, 10), snapshotTTL)
		return nil
	})
	return err
}

// StoreSnapshot caches the track snapshot under the given version. The write
// is dropped with ErrStaleSnapshot when a newer version is already cached.
func StoreSnapshot(ctx context.Context, version int64, tracks []*model.Track) error {
	if RedisClient == nil {
		return fmt.Errorf("Redis client not initialized")
	}

	payload, err := json.Marshal(tracks)
	if err != nil {
		return fmt.Errorf("failed to marshal snapshot: %w", err)
	}

	txf := func(tx *redis.Tx) error {
		return writeSnapshotTx(ctx, tx, version, payload)
	}

	// Optimistic lock on the version key; retry a few times on contention.
	for i := 0; i < 3; i++ {
		err := RedisClient.Watch(ctx, txf, snapshotVersionKey)
		if err == redis.TxFailedErr {
			continue
		}
		return err
	}
	return fmt.Errorf("failed to store snapshot after retries")
}

// LoadSnapshot returns the cached snapshot and its version. A cache miss
// returns (nil, 0, nil).
func LoadSnapshot(ctx context.Context) ([]*model.Track, int64, error) {
	if RedisClient == nil {
		return nil, 0, fmt.Errorf("Redis client not initialized")
	}

	payload, err := RedisClient.Get(ctx, snapshotKey).Bytes()
	if err == redis.Nil {
		return nil, 0, nil
	}
	if err != nil {
		return nil, 0, fmt.Errorf("failed to read cached snapshot: %w", err)
	}

	var tracks []*model.Track
	if err := json.Unmarshal(payload, &tracks); err != nil {
		return nil, 0, fmt.Errorf("failed to unmarshal cached snapshot: %w", err)
	}

	version, err := RedisClient.Get(ctx, snapshotVersionKey).Int64()
	if err != nil && err != redis.Nil {
		return nil, 0, fmt.Errorf("failed to read cached snapshot version: %w", err)
	}

	return tracks, version, nil
}

// InvalidateSnapshot drops the cached snapshot so the next catalog request
// refetches. Called after catalog ingest.
func InvalidateSnapshot(ctx context.Context) error {
	if RedisClient == nil {
		return fmt.Errorf("Redis client not initialized")
	}
	if err := RedisClient.Del(ctx, snapshotKey, snapshotVersionKey).Err(); err != nil {
		return fmt.Errorf("failed to invalidate snapshot: %w", err)
	}
	return nil
}
