package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/parking-microservice/internal/domain"
	"github.com/parking-microservice/internal/domain/repository"
)

const nearbyKeyPrefix = "nearby:"

type cacheRepository struct {
	client *redis.Client
	logger *zap.Logger
}

func NewCacheRepository(redisConn *Redis) repository.CacheRepository {
	return &cacheRepository{
		client: redisConn.Client(),
		logger: redisConn.logger,
	}
}

func (r *cacheRepository) Get(ctx context.Context, key string) ([]byte, error) {
	val, err := r.client.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return nil, nil // Cache miss
	}
	if err != nil {
		r.logger.Error("Failed to get from cache", zap.String("key", key), zap.Error(err))
		return nil, fmt.Errorf("cache get error: %w", err)
	}

	r.logger.Debug("Cache hit", zap.String("key", key))
	return val, nil
}

func (r *cacheRepository) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	err := r.client.Set(ctx, key, value, ttl).Err()
	if err != nil {
		r.logger.Error("Failed to set cache", zap.String("key", key), zap.Error(err))
		return fmt.Errorf("cache set error: %w", err)
	}

	r.logger.Debug("Cache set", zap.String("key", key), zap.Duration("ttl", ttl))
	return nil
}

func (r *cacheRepository) Delete(ctx context.Context, key string) error {
	err := r.client.Del(ctx, key).Err()
	if err != nil {
		r.logger.Error("Failed to delete from cache", zap.String("key", key), zap.Error(err))
		return fmt.Errorf("cache delete error: %w", err)
	}

	r.logger.Debug("Cache deleted", zap.String("key", key))
	return nil
}

func (r *cacheRepository) Exists(ctx context.Context, key string) (bool, error) {
	val, err := r.client.Exists(ctx, key).Result()
	if err != nil {
		r.logger.Error("Failed to check cache existence", zap.String("key", key), zap.Error(err))
		return false, fmt.Errorf("cache exists error: %w", err)
	}

	return val > 0, nil
}

// nearbyKey buckets the cache per center cell, radius and keyword. Four
// decimal places keep nearby requests from the same block on one key.
func nearbyKey(center domain.Coordinate, radiusKm float64, keyword string) string {
	return fmt.Sprintf("%s%.4f:%.4f:%g:%s", nearbyKeyPrefix, center.Lat, center.Lon, radiusKm, keyword)
}

func (r *cacheRepository) GetNearbyLots(ctx context.Context, center domain.Coordinate, radiusKm float64, keyword string) ([]domain.ParkingLot, error) {
	data, err := r.Get(ctx, nearbyKey(center, radiusKm, keyword))
	if err != nil {
		return nil, err
	}
	if data == nil {
		return nil, nil // Cache miss
	}

	var lots []domain.ParkingLot
	if err := json.Unmarshal(data, &lots); err != nil {
		r.logger.Error("Failed to unmarshal nearby lots from cache", zap.Error(err))
		return nil, fmt.Errorf("unmarshal nearby lots: %w", err)
	}

	return lots, nil
}

func (r *cacheRepository) SetNearbyLots(ctx context.Context, center domain.Coordinate, radiusKm float64, keyword string, lots []domain.ParkingLot, ttl time.Duration) error {
	data, err := json.Marshal(lots)
	if err != nil {
		r.logger.Error("Failed to marshal nearby lots", zap.Error(err))
		return fmt.Errorf("marshal nearby lots: %w", err)
	}

	return r.Set(ctx, nearbyKey(center, radiusKm, keyword), data, ttl)
}

// InvalidateNearbyLots drops every nearby cell. Called after availability
// changes so cached place-search results do not serve stale occupancy.
func (r *cacheRepository) InvalidateNearbyLots(ctx context.Context) error {
	iter := r.client.Scan(ctx, 0, nearbyKeyPrefix+"*", 100).Iterator()
	for iter.Next(ctx) {
		if err := r.client.Del(ctx, iter.Val()).Err(); err != nil {
			r.logger.Warn("Failed to delete nearby cache key",
				zap.String("key", iter.Val()), zap.Error(err))
		}
	}
	if err := iter.Err(); err != nil {
		r.logger.Error("Nearby cache scan failed", zap.Error(err))
		return fmt.Errorf("cache scan error: %w", err)
	}

	return nil
}
