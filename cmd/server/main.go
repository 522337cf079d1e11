package main

import (
	"context"
	"log"
	"time"

	"sprayguard/internal/advisor"
	"sprayguard/internal/catalog"
	"sprayguard/internal/config"
	"sprayguard/internal/database"
	"sprayguard/internal/engine"
	"sprayguard/internal/publisher"
	"sprayguard/internal/server"
)

func main() {
	cfg, err := config.Load("./config.yaml")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	c, err := catalog.LoadOrDefault(cfg.Evaluation.CatalogFile)
	if err != nil {
		log.Fatalf("Failed to load fungicide catalog: %v", err)
	}
	log.Printf("Fungicide catalog covers %d diseases", len(c.Diseases()))

	var store advisor.AssessmentStore
	var history server.HistoryStore
	db, err := database.NewDB(config.GetDatabaseDSN())
	if err != nil {
		log.Printf("Database unavailable, assessments will not be stored: %v", err)
	} else {
		defer db.Close()
		store = db
		history = db
	}

	var pub advisor.Publisher
	redisCfg := config.GetRedisConfig().Merge(cfg)
	p, redisClient := publisher.NewFromConfig(redisCfg)
	defer redisClient.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	if err := redisClient.Ping(ctx).Err(); err != nil {
		log.Printf("Redis unavailable at %s, assessments will not be published: %v", redisCfg.Addr, err)
	} else {
		pub = p
		log.Printf("Publishing assessments to stream %s", redisCfg.Stream)
	}
	cancel()

	adv := advisor.New(engine.New(c), store, pub)
	httpServer := server.NewServer(adv, c, history)

	log.Printf("Starting server on %s", cfg.Server.Addr)
	if err := httpServer.Start(cfg.Server.Addr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
