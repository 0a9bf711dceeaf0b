//go:build ignore

package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/commute-emissions/internal/domain"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/pflag"
)

func main() {
	redisAddr := pflag.String("redis", "localhost:6379", "Redis address for streams")
	kind := pflag.String("kind", "transit", "transport kind")
	origin := pflag.String("origin", "Flutstraße 23, 12439 Berlin", "start address")
	destination := pflag.String("destination", "Am Friedrichshain 20D, 10407 Berlin", "target address")
	propulsion := pflag.String("propulsion", "diesel", "car propulsion")
	size := pflag.String("size", "medium", "car size")
	stopover := pflag.String("stopover", "Alexanderplatz, Berlin", "carpool stopover")
	pflag.Parse()

	client := redis.NewClient(&redis.Options{
		Addr: *redisAddr,
	})
	defer client.Close()

	ctx := context.Background()

	if err := client.Ping(ctx).Err(); err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}

	event := domain.EstimationRequestEvent{
		RequestID:   uuid.New(),
		Kind:        *kind,
		Origin:      *origin,
		Destination: *destination,
		Propulsion:  *propulsion,
		Size:        *size,
		Stopover:    *stopover,
	}

	data, err := json.Marshal(event)
	if err != nil {
		log.Fatalf("Failed to marshal event: %v", err)
	}

	// Запоминаем конец стрима результатов до публикации
	lastID := "$"
	if last, err := client.XRevRangeN(ctx, domain.StreamEmissionDone, "+", "-", 1).Result(); err == nil && len(last) > 0 {
		lastID = last[0].ID
	}

	id, err := client.XAdd(ctx, &redis.XAddArgs{
		Stream: domain.StreamEmissionRequest,
		Values: map[string]interface{}{"data": string(data)},
	}).Result()
	if err != nil {
		log.Fatalf("Failed to publish event: %v", err)
	}

	fmt.Printf("Event published\n")
	fmt.Printf("   Stream: %s\n", domain.StreamEmissionRequest)
	fmt.Printf("   Message ID: %s\n", id)
	fmt.Printf("   Request ID: %s\n", event.RequestID)
	fmt.Printf("   Kind: %s\n", event.Kind)
	fmt.Printf("\nWaiting for response in %s...\n", domain.StreamEmissionDone)

	deadline := time.Now().Add(30 * time.Second)
	for time.Now().Before(deadline) {
		streams, err := client.XRead(ctx, &redis.XReadArgs{
			Streams: []string{domain.StreamEmissionDone, lastID},
			Count:   10,
			Block:   time.Second,
		}).Result()
		if err != nil {
			if !errors.Is(err, redis.Nil) {
				log.Printf("Read failed: %v", err)
			}
			continue
		}

		for _, stream := range streams {
			for _, msg := range stream.Messages {
				lastID = msg.ID

				raw, _ := msg.Values["data"].(string)
				var done domain.EstimationDoneEvent
				if err := json.Unmarshal([]byte(raw), &done); err != nil || done.RequestID != event.RequestID {
					continue
				}

				pretty, _ := json.MarshalIndent(done, "", "  ")
				fmt.Printf("\nResponse received:\n%s\n", pretty)
				return
			}
		}
	}

	fmt.Println("Timeout waiting for response")
}
