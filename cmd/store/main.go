package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/go-redis/redis/v8"

	"sprayguard/internal/config"
	"sprayguard/internal/database"
	"sprayguard/internal/models"
	"sprayguard/internal/publisher"
)

const (
	consumerGroup = "assessment_archivers"
	consumerName  = "archiver-1"

	readRetryInitial = 500 * time.Millisecond
	readRetryMax     = 30 * time.Second
)

// newReadBackOff spaces out reads while Redis is failing. It never gives up.
func newReadBackOff() backoff.BackOff {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = readRetryInitial
	b.MaxInterval = readRetryMax
	b.MaxElapsedTime = 0
	return b
}

// pause waits for the next backoff interval. It returns false when ctx is
// done first.
func pause(ctx context.Context, b backoff.BackOff) bool {
	t := time.NewTimer(b.NextBackOff())
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}

func main() {
	cfg, err := config.Load("./config.yaml")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	redisCfg := config.GetRedisConfig().Merge(cfg)

	redisClient := redis.NewClient(&redis.Options{
		Addr:     redisCfg.Addr,
		Password: redisCfg.Password,
		DB:       redisCfg.DB,
	})
	defer redisClient.Close()

	db, err := database.NewDB(config.GetDatabaseDSN())
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	stream := redisCfg.Stream

	err = redisClient.XGroupCreateMkStream(context.Background(), stream, consumerGroup, "0").Err()
	if err != nil && !strings.HasPrefix(err.Error(), "BUSYGROUP") {
		log.Fatalf("Failed to create consumer group: %v", err)
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		<-quit
		log.Println("Shutting down store service...")
		cancel()
	}()

	log.Printf("Archiving assessments from stream %s. Press Ctrl+C to stop...", stream)

	readBackOff := newReadBackOff()
	for {
		msgs, err := redisClient.XReadGroup(ctx, &redis.XReadGroupArgs{
			Group:    consumerGroup,
			Consumer: consumerName,
			Streams:  []string{stream, ">"},
			Count:    50,
			Block:    5 * time.Second,
		}).Result()

		if ctx.Err() != nil {
			break
		}

		if err != nil && err != redis.Nil {
			log.Printf("Error reading from Redis: %v", err)
			if !pause(ctx, readBackOff) {
				break
			}
			continue
		}
		readBackOff.Reset()

		for _, msg := range msgs {
			archive(db, redisClient, stream, msg.Messages)
		}
	}

	log.Println("Store service stopped")
}

// archive stores one batch and acknowledges the entries it handled.
// Undecodable entries are acknowledged so they are not redelivered.
func archive(db *database.DB, redisClient *redis.Client, stream string, messages []redis.XMessage) {
	var batch []*models.Assessment
	var ids []string
	var bad []string

	for _, m := range messages {
		a, err := publisher.Decode(m.Values)
		if err != nil {
			log.Printf("Dropping stream entry %s: %v", m.ID, err)
			bad = append(bad, m.ID)
			continue
		}
		batch = append(batch, a)
		ids = append(ids, m.ID)
	}

	if err := db.StoreAssessments(batch); err != nil {
		log.Printf("Failed to archive %d assessments: %v", len(batch), err)
		ids = nil
	}

	if acked := append(ids, bad...); len(acked) > 0 {
		redisClient.XAck(context.Background(), stream, consumerGroup, acked...)
	}
}
