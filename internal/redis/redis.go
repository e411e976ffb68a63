package redis

import (
	"context"
	"log"

	"github.com/redis/go-redis/v9"
)

// Connect establishes a connection to Redis. The instance carries session
// mirrors (plinko:session:*) and the drop_events pub/sub channel; payloads
// are small, so the pool stays modest.
func Connect(redisURL string) (*redis.Client, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, err
	}

	opt.PoolSize = 8
	opt.MinIdleConns = 2

	client := redis.NewClient(opt)

	// Verify connection
	ctx := context.Background()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	log.Printf("[REDIS] Connected (addr=%s db=%d)", opt.Addr, opt.DB)
	return client, nil
}
