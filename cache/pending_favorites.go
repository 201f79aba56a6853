package cache

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/go-redis/redis/v8"
)

// Pending favorites record "favorite" intent expressed before authentication.
// Each anonymous storefront client gets a deduplicated set of track IDs that
// is merged into the favorites relation once the user signs in.

const pendingFavoritesTTL = 30 * 24 * time.Hour

// PendingFavoriteStore is the pre-auth favorite intent store handlers are
// wired with.
type PendingFavoriteStore interface {
	// AddPendingFavorite records a track ID for an unauthenticated client.
	// Adding the same track twice is a no-op (set semantics).
	AddPendingFavorite(ctx context.Context, clientID string, trackID int64) error
	// GetPendingFavorites returns all recorded track IDs for a client.
	GetPendingFavorites(ctx context.Context, clientID string) ([]int64, error)
	// ClearPendingFavorites drops the pending set after reconciliation.
	ClearPendingFavorites(ctx context.Context, clientID string) error
}

// redisPendingFavoriteStore implements PendingFavoriteStore on the shared
// Redis client.
type redisPendingFavoriteStore struct{}

// NewPendingFavoriteStore creates the Redis-backed pending favorite store.
func NewPendingFavoriteStore() PendingFavoriteStore {
	return &redisPendingFavoriteStore{}
}

// GetPendingFavoritesKey builds the Redis key for one anonymous client.
func GetPendingFavoritesKey(clientID string) string {
	return fmt.Sprintf("pending_favs:%s", clientID)
}

func (s *redisPendingFavoriteStore) AddPendingFavorite(ctx context.Context, clientID string, trackID int64) error {
	if RedisClient == nil {
		return fmt.Errorf("Redis client not initialized")
	}

	key := GetPendingFavoritesKey(clientID)
	if err := RedisClient.SAdd(ctx, key, trackID).Err(); err != nil {
		return fmt.Errorf("failed to record pending favorite: %w", err)
	}
	if err := RedisClient.Expire(ctx, key, pendingFavoritesTTL).Err(); err != nil {
		return fmt.Errorf("failed to set pending favorites expiration: %w", err)
	}
	return nil
}

func (s *redisPendingFavoriteStore) GetPendingFavorites(ctx context.Context, clientID string) ([]int64, error) {
	if RedisClient == nil {
		return nil, fmt.Errorf("Redis client not initialized")
	}

	members, err := RedisClient.SMembers(ctx, GetPendingFavoritesKey(clientID)).Result()
	if err != nil {
		if err == redis.Nil {
			return []int64{}, nil
		}
		return nil, fmt.Errorf("failed to read pending favorites: %w", err)
	}

	trackIDs := make([]int64, 0, len(members))
	for _, member := range members {
		id, err := strconv.ParseInt(member, 10, 64)
		if err != nil {
			continue
		}
		trackIDs = append(trackIDs, id)
	}
	return trackIDs, nil
}

func (s *redisPendingFavoriteStore) ClearPendingFavorites(ctx context.Context, clientID string) error {
	if RedisClient == nil {
		return fmt.Errorf("Redis client not initialized")
	}
	if err := RedisClient.Del(ctx, GetPendingFavoritesKey(clientID)).Err(); err != nil {
		return fmt.Errorf("failed to clear pending favorites: %w", err)
	}
	return nil
}
