//go:build ignore

package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

type SearchEvent struct {
	ID          uuid.UUID `json:"id"`
	Mode        string    `json:"mode"`
	Categories  []string  `json:"categories"`
	RadiusKm    float64   `json:"radius_km,omitempty"`
	City        string    `json:"city,omitempty"`
	ResultCount int       `json:"result_count"`
	CacheHit    bool      `json:"cache_hit"`
	DurationMs  float64   `json:"duration_ms"`
	CreatedAt   time.Time `json:"created_at"`
}

func main() {
	redisAddr := flag.String("redis", "localhost:6379", "Redis address for streams")
	flag.Parse()

	client := redis.NewClient(&redis.Options{
		Addr: *redisAddr,
	})
	defer client.Close()

	ctx := context.Background()

	if err := client.Ping(ctx).Err(); err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}

	// Тестовое событие поиска (Lyon)
	event := SearchEvent{
		ID:          uuid.New(),
		Mode:        "proximity",
		Categories:  []string{"bar", "wine_cellar"},
		RadiusKm:    2,
		ResultCount: 17,
		DurationMs:  340.5,
		CreatedAt:   time.Now().UTC(),
	}

	data, err := json.Marshal(event)
	if err != nil {
		log.Fatalf("Failed to marshal event: %v", err)
	}

	result, err := client.XAdd(ctx, &redis.XAddArgs{
		Stream: "stream:search:log",
		Values: map[string]interface{}{
			"data": string(data),
		},
	}).Result()
	if err != nil {
		log.Fatalf("Failed to publish event: %v", err)
	}

	fmt.Printf("✅ Event published successfully!\n")
	fmt.Printf("   Stream: stream:search:log\n")
	fmt.Printf("   Message ID: %s\n", result)
	fmt.Printf("   Event ID: %s\n", event.ID)
}
