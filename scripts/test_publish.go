//go:build ignore

package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
)

type AvailabilityEvent struct {
	LotID      string    `json:"lot_id"`
	Delta      int       `json:"delta"`
	ReportedAt time.Time `json:"reported_at"`
}

func main() {
	redisAddr := flag.String("redis", "localhost:6379", "Redis address for streams")
	stream := flag.String("stream", "parking:availability", "Availability stream name")
	lotID := flag.String("lot", "", "Parking lot ID (required)")
	delta := flag.Int("delta", -1, "Availability delta, negative when a car arrives")
	flag.Parse()

	if *lotID == "" {
		log.Fatal("-lot is required")
	}

	client := redis.NewClient(&redis.Options{
		Addr: *redisAddr,
	})
	defer client.Close()

	ctx := context.Background()

	if err := client.Ping(ctx).Err(); err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}

	event := AvailabilityEvent{
		LotID:      *lotID,
		Delta:      *delta,
		ReportedAt: time.Now().UTC(),
	}

	data, err := json.Marshal(event)
	if err != nil {
		log.Fatalf("Failed to marshal event: %v", err)
	}

	result, err := client.XAdd(ctx, &redis.XAddArgs{
		Stream: *stream,
		Values: map[string]interface{}{
			"data": string(data),
		},
	}).Result()
	if err != nil {
		log.Fatalf("Failed to publish event: %v", err)
	}

	fmt.Printf("Event published\n")
	fmt.Printf("  Stream:     %s\n", *stream)
	fmt.Printf("  Message ID: %s\n", result)
	fmt.Printf("  Lot ID:     %s\n", event.LotID)
	fmt.Printf("  Delta:      %+d\n", event.Delta)
}
