package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/appdotbuilder/tele-vid-downloader/internal/extractor"

	"github.com/redis/go-redis/v9"
)

// MetadataCache caches extraction results keyed by source URL so repeated runs
// for the same URL skip the extraction call while the entry is fresh.
type MetadataCache interface {
	// Get returns the cached metadata for a URL, or nil on a miss
	Get(ctx context.Context, url string) (*extractor.Metadata, error)
	// Set stores metadata with the configured TTL
	Set(ctx context.Context, url string, meta *extractor.Metadata) error
	// Delete drops the entry for a URL
	Delete(ctx context.Context, url string) error
	// Close closes the connection
	Close() error
	// IsEnabled reports whether the cache is active
	IsEnabled() bool
}

// Config holds Redis cache settings
type Config struct {
	Enabled  bool
	Host     string
	Port     int
	Username string
	Password string
	TTL      time.Duration
}

type redisMetadataCache struct {
	client  *redis.Client
	enabled bool
	ttl     time.Duration
}

// New creates a metadata cache. A disabled or unreachable Redis yields a
// nil-safe no-op cache rather than an error.
func New(config Config) (MetadataCache, error) {
	if !config.Enabled {
		log.Println("Redis metadata cache is disabled")
		return &redisMetadataCache{enabled: false}, nil
	}

	opts := &redis.Options{
		Addr:     fmt.Sprintf("%s:%d", config.Host, config.Port),
		Password: config.Password,
		DB:       0,
	}
	if config.Username != "" {
		opts.Username = config.Username
	}
	rdb := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		log.Printf("Failed to connect to Redis: %v, cache will be disabled", err)
		return &redisMetadataCache{enabled: false}, nil
	}

	log.Println("Redis metadata cache connected successfully")
	return &redisMetadataCache{
		client:  rdb,
		enabled: true,
		ttl:     config.TTL,
	}, nil
}

// IsEnabled reports whether the cache is active
func (r *redisMetadataCache) IsEnabled() bool {
	return r.enabled && r.client != nil
}

func cacheKey(url string) string {
	return "video:metadata:" + url
}

// Get returns the cached metadata for a URL, or nil on a miss
func (r *redisMetadataCache) Get(ctx context.Context, url string) (*extractor.Metadata, error) {
	if !r.IsEnabled() {
		return nil, nil
	}

	val, err := r.client.Get(ctx, cacheKey(url)).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		log.Printf("Failed to get cached metadata for %s: %v", url, err)
		return nil, err
	}

	var meta extractor.Metadata
	if err := json.Unmarshal([]byte(val), &meta); err != nil {
		log.Printf("Failed to unmarshal cached metadata for %s: %v, dropping entry", url, err)
		r.client.Del(ctx, cacheKey(url))
		return nil, nil
	}
	return &meta, nil
}

// Set stores metadata with the configured TTL
func (r *redisMetadataCache) Set(ctx context.Context, url string, meta *extractor.Metadata) error {
	if !r.IsEnabled() || meta == nil {
		return nil
	}

	data, err := json.Marshal(meta)
	if err != nil {
		return err
	}
	return r.client.Set(ctx, cacheKey(url), data, r.ttl).Err()
}

// Delete drops the entry for a URL
func (r *redisMetadataCache) Delete(ctx context.Context, url string) error {
	if !r.IsEnabled() {
		return nil
	}
	return r.client.Del(ctx, cacheKey(url)).Err()
}

// Close closes the connection
func (r *redisMetadataCache) Close() error {
	if r.client == nil {
		return nil
	}
	return r.client.Close()
}
