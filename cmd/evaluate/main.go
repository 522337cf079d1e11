package main

import (
	"context"
	"errors"
	"log"
	"sync"
	"time"

	"sprayguard/internal/advisor"
	"sprayguard/internal/catalog"
	"sprayguard/internal/config"
	"sprayguard/internal/database"
	"sprayguard/internal/engine"
	"sprayguard/internal/models"
	"sprayguard/internal/publisher"
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

	db, err := database.NewDB(config.GetDatabaseDSN())
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	paddocks, err := db.GetAllPaddocks()
	if err != nil {
		log.Fatalf("Failed to get paddocks from database: %v", err)
	}
	paddocks = enabledPaddocks(paddocks, cfg.EnabledDiseases())

	if len(paddocks) == 0 {
		log.Fatalf("No paddocks found for the configured diseases. Please run the seed script first.")
	}

	log.Printf("Found %d paddocks in database", len(paddocks))

	pub, redisClient := publisher.NewFromConfig(config.GetRedisConfig().Merge(cfg))
	defer redisClient.Close()

	// assessments are stored in one batch after the run
	adv := advisor.New(engine.New(c), nil, pub)

	season := advisor.Season(cfg.Evaluation.Season, time.Now())
	log.Printf("Evaluating season %d...", season)

	runEvaluationForAllPaddocks(db, paddocks, adv, season, cfg.Evaluation.Workers)

	log.Println("Evaluation run completed successfully")
}

func enabledPaddocks(paddocks []models.Paddock, diseases []models.Disease) []models.Paddock {
	enabled := make(map[models.Disease]bool, len(diseases))
	for _, d := range diseases {
		enabled[d] = true
	}
	var out []models.Paddock
	for _, p := range paddocks {
		if enabled[p.Disease] {
			out = append(out, p)
		}
	}
	return out
}

// EvaluationResult holds the outcome for a single paddock
type EvaluationResult struct {
	Paddock        string
	Assessment     *models.Assessment
	Error          error
	ProcessingTime time.Duration
}

func runEvaluationForAllPaddocks(db *database.DB, paddocks []models.Paddock, adv *advisor.Advisor, season, maxWorkers int) {
	startTime := time.Now()
	log.Printf("Running evaluation for %d paddocks with worker pool...", len(paddocks))

	numWorkers := maxWorkers
	if len(paddocks) < numWorkers {
		numWorkers = len(paddocks)
	}

	jobs := make(chan models.Paddock, len(paddocks))
	results := make(chan EvaluationResult, len(paddocks))

	var wg sync.WaitGroup
	for i := 0; i < numWorkers; i++ {
		wg.Add(1)
		go worker(db, adv, season, jobs, results, &wg)
	}

	for _, p := range paddocks {
		jobs <- p
	}
	close(jobs)

	go func() {
		wg.Wait()
		close(results)
	}()

	var assessments []*models.Assessment
	tiers := make(map[models.RiskTier]int)
	totalWarnings := 0
	totalErrors := 0
	skipped := 0
	paddockCount := 0

	for result := range results {
		paddockCount++

		if result.Error != nil {
			if errors.Is(result.Error, database.ErrNoWeather) {
				log.Printf("[%d/%d] - %s: no weather snapshot, skipped", paddockCount, len(paddocks), result.Paddock)
				skipped++
				continue
			}
			log.Printf("[%d/%d] ❌ %s: %v (%.2fs)",
				paddockCount, len(paddocks), result.Paddock, result.Error, result.ProcessingTime.Seconds())
			totalErrors++
			continue
		}

		r := result.Assessment.Result
		assessments = append(assessments, result.Assessment)
		tiers[r.Risk.Tier]++
		totalWarnings += len(r.Warnings)

		log.Printf("[%d/%d] ✓ %s: %s %s (score %.1f), %d options, %d warnings (%.2fs)",
			paddockCount, len(paddocks), result.Paddock, r.Disease, r.Risk.Tier, r.Risk.Score,
			len(r.Options), len(r.Warnings), result.ProcessingTime.Seconds())
	}

	if err := db.StoreAssessments(assessments); err != nil {
		log.Printf("Failed to store assessments: %v", err)
		totalErrors++
	}

	totalDuration := time.Since(startTime)
	log.Printf("━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━")
	log.Printf("Evaluation complete in %.1f seconds", totalDuration.Seconds())
	log.Printf("  Paddocks: %d assessed, %d skipped, %d errors", len(assessments), skipped, totalErrors)
	log.Printf("  Risk: %d High, %d Moderate, %d Low",
		tiers[models.RiskHigh], tiers[models.RiskModerate], tiers[models.RiskLow])
	log.Printf("  Warnings: %d raised", totalWarnings)
	log.Printf("  Workers: %d", numWorkers)
	log.Printf("━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━")
}

// worker evaluates paddocks from the jobs channel
func worker(db *database.DB, adv *advisor.Advisor, season int, jobs <-chan models.Paddock,
	results chan<- EvaluationResult, wg *sync.WaitGroup) {
	defer wg.Done()

	for p := range jobs {
		startTime := time.Now()
		assessment, err := evaluatePaddock(db, adv, season, p)
		results <- EvaluationResult{
			Paddock:        p.Name,
			Assessment:     assessment,
			Error:          err,
			ProcessingTime: time.Since(startTime),
		}
	}
}

func evaluatePaddock(db *database.DB, adv *advisor.Advisor, season int, p models.Paddock) (*models.Assessment, error) {
	obs, err := db.GetLatestWeatherSnapshot(p.Name)
	if err != nil {
		return nil, err
	}
	sprays, err := db.GetSeasonSprays(p.Name, season)
	if err != nil {
		return nil, err
	}
	return adv.Assess(context.Background(), p.Name, advisor.PaddockRequest(p, obs.Snapshot, sprays))
}
