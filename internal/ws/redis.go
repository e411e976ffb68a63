package ws

import (
	"context"
	"encoding/json"
	"log"

	"github.com/michael-h-patrianna/plinko-sub001/internal/config"
	"github.com/redis/go-redis/v9"
)

var rdbClient *redis.Client
var wsConfig *config.Config

func SetRedisClient(r *redis.Client, cfg *config.Config) {
	rdbClient = r
	wsConfig = cfg
}

// StartDropEventSubscriber subscribes to the drop_events channel and
// broadcasts incoming events to the session rooms watching them.
func StartDropEventSubscriber(ctx context.Context) {
	if rdbClient == nil {
		log.Println("[WS] Redis client not set; drop event subscriber not started")
		return
	}

	pubsub := rdbClient.Subscribe(ctx, "drop_events")
	ch := pubsub.Channel()
	go func() {
		log.Println("[WS] drop_events subscriber started")
		for msg := range ch {
			var payload map[string]interface{}
			if err := json.Unmarshal([]byte(msg.Payload), &payload); err != nil {
				log.Printf("[WS] invalid drop event payload: %v", err)
				continue
			}

			token, _ := payload["session_token"].(string)
			if token == "" {
				log.Printf("[WS] drop event without session_token, skipping")
				continue
			}
			GameHub.BroadcastToSession(token, payload)
		}
	}()
}
