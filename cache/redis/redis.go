package redis

import (
	"context"
	"log"
	"os"
	"time"

	goredis "github.com/redis/go-redis/v9"
)

type Cache struct {
	RedisClient *goredis.Client
}

// ConnectRedis connects to the Redis instance used for depth-snapshot
// caching. Returns nil when REDIS_ADDR is unset; the service layer
// treats a nil cache as a pass-through.
func ConnectRedis() *Cache {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		log.Println("REDIS_ADDR not set, depth caching disabled")
		return nil
	}

	client := goredis.NewClient(&goredis.Options{
		Addr:     addr,
		Password: os.Getenv("REDIS_PASSWORD"),
		DB:       0,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		log.Printf("Failed to ping Redis at %s: %v (depth caching disabled)", addr, err)
		return nil
	}

	log.Println("Connected to Redis")
	return &Cache{RedisClient: client}
}

// Stop gracefully closes the Redis connection.
func (c *Cache) Stop() {
	if c != nil && c.RedisClient != nil {
		if err := c.RedisClient.Close(); err != nil {
			log.Printf("Error closing Redis connection: %v", err)
		}
	}
}
