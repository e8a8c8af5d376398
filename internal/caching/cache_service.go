package caching

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"stockconsole/internal/models"
)

const keyPrefix = "stockconsole"

type CacheService interface {
	// Session management
	SetSession(ctx context.Context, sess *models.Session, ttl time.Duration) error
	GetSession(ctx context.Context, sessionID string) (*models.Session, error)
	DeleteSession(ctx context.Context, sessionID string) error

	// Upstream payloads, scoped per session so role-filtered responses never leak
	GetPayload(ctx context.Context, scope, resource string) ([]byte, error)
	SetPayload(ctx context.Context, scope, resource string, data []byte, ttl time.Duration) error
	InvalidatePayloads(ctx context.Context, resources ...string) error

	// Rate limiting
	IsRateLimited(ctx context.Context, key string, limit int, window time.Duration) (bool, error)

	Ping(ctx context.Context) error
}

type redisCacheService struct {
	client redis.UniversalClient
}

func NewRedisCacheService(addr, password string, db int) CacheService {
	// Accept redis://host:port as well as a bare host:port
	parsedAddr := strings.TrimPrefix(strings.TrimPrefix(addr, "redis://"), "rediss://")

	log.Printf("DEBUG: Creating Redis client with address: %s (original: %s)", parsedAddr, addr)

	client := redis.NewClient(&redis.Options{
		Addr:     parsedAddr,
		Password: password,
		DB:       db,
	})

	if pingErr := client.Ping(context.Background()).Err(); pingErr != nil {
		log.Printf("WARN: Redis ping failed on initialization: %v (address: %s)", pingErr, parsedAddr)
	} else {
		log.Printf("DEBUG: Redis connection established successfully")
	}

	return &redisCacheService{client: client}
}

// NewCacheServiceFromClient wraps an existing client.
func NewCacheServiceFromClient(client redis.UniversalClient) CacheService {
	return &redisCacheService{client: client}
}

func sessionKey(id string) string { return fmt.Sprintf("%s:session:%s", keyPrefix, id) }

func payloadKey(scope, resource string) string {
	return fmt.Sprintf("%s:payload:%s:%s", keyPrefix, scope, strings.Trim(resource, "/"))
}

func (r *redisCacheService) SetSession(ctx context.Context, sess *models.Session, ttl time.Duration) error {
	data, err := json.Marshal(sess)
	if err != nil {
		return err
	}
	return r.client.Set(ctx, sessionKey(sess.ID), data, ttl).Err()
}

func (r *redisCacheService) GetSession(ctx context.Context, sessionID string) (*models.Session, error) {
	data, err := r.client.Get(ctx, sessionKey(sessionID)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil // not found
		}
		return nil, err
	}

	var sess models.Session
	if err := json.Unmarshal(data, &sess); err != nil {
		return nil, err
	}
	return &sess, nil
}

func (r *redisCacheService) DeleteSession(ctx context.Context, sessionID string) error {
	return r.client.Del(ctx, sessionKey(sessionID)).Err()
}

func (r *redisCacheService) GetPayload(ctx context.Context, scope, resource string) ([]byte, error) {
	data, err := r.client.Get(ctx, payloadKey(scope, resource)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil // cache miss
		}
		return nil, err
	}
	return data, nil
}

func (r *redisCacheService) SetPayload(ctx context.Context, scope, resource string, data []byte, ttl time.Duration) error {
	return r.client.Set(ctx, payloadKey(scope, resource), data, ttl).Err()
}

// InvalidatePayloads drops the cached bodies of the given resources across
// every scope.
func (r *redisCacheService) InvalidatePayloads(ctx context.Context, resources ...string) error {
	var keys []string
	for _, res := range resources {
		pattern := payloadKey("*", res)
		iter := r.client.Scan(ctx, 0, pattern, 100).Iterator()
		for iter.Next(ctx) {
			keys = append(keys, iter.Val())
		}
		if err := iter.Err(); err != nil {
			return err
		}
	}

	if len(keys) > 0 {
		return r.client.Del(ctx, keys...).Err()
	}
	return nil
}

func (r *redisCacheService) IsRateLimited(ctx context.Context, key string, limit int, window time.Duration) (bool, error) {
	cacheKey := fmt.Sprintf("%s:ratelimit:%s", keyPrefix, key)
	count, err := r.client.Incr(ctx, cacheKey).Result()
	if err != nil {
		return true, err
	}

	// Set expiry on first request
	if count == 1 {
		r.client.Expire(ctx, cacheKey, window)
	}

	return count > int64(limit), nil
}

func (r *redisCacheService) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}
