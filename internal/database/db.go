package database

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/go-sql-driver/mysql"

	"sprayguard/internal/metrics"
	"sprayguard/internal/models"
)

const mysqlDuplicateEntry = 1062

var (
	ErrDuplicatePaddock = errors.New("duplicate paddock")
	ErrPaddockNotFound  = errors.New("paddock not found")
	ErrNoWeather        = errors.New("no weather snapshot stored")

	ErrAssessmentNotFound = errors.New("assessment not found")
)

// DB represents the database connection
type DB struct {
	conn *sql.DB
}

// NewDB creates a new database connection and initializes the schema
// dsn format: "username:password@tcp(host:port)/dbname?parseTime=true"
func NewDB(dsn string) (*DB, error) {
	conn, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := conn.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	conn.SetMaxOpenConns(25)
	conn.SetMaxIdleConns(5)
	conn.SetConnMaxLifetime(5 * time.Minute)

	db := &DB{conn: conn}

	if err := db.initSchema(); err != nil {
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return db, nil
}

// initSchema creates the necessary tables
func (db *DB) initSchema() error {
	// MySQL doesn't support multiple statements in one Exec
	statements := []string{
		`CREATE TABLE IF NOT EXISTS paddocks (
			id BIGINT AUTO_INCREMENT PRIMARY KEY,
			name VARCHAR(255) NOT NULL,
			crop VARCHAR(32) NOT NULL,
			variety VARCHAR(255) NOT NULL DEFAULT '',
			growth_stage VARCHAR(64) NOT NULL DEFAULT '',
			disease VARCHAR(32) NOT NULL,
			has_resistance BOOLEAN NOT NULL DEFAULT FALSE,
			resistance_rating VARCHAR(16) NOT NULL DEFAULT '',
			seed_treatment VARCHAR(255) NOT NULL DEFAULT '',
			same_crop_last_two_years BOOLEAN NOT NULL DEFAULT FALSE,
			same_resistance_group BOOLEAN NOT NULL DEFAULT FALSE,
			UNIQUE KEY uq_paddocks_name (name)
		) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

		`CREATE TABLE IF NOT EXISTS spray_records (
			id BIGINT AUTO_INCREMENT PRIMARY KEY,
			paddock VARCHAR(255) NOT NULL,
			season INT NOT NULL,
			product VARCHAR(255) NOT NULL,
			applied_at DATETIME(6) NOT NULL,
			INDEX idx_spray_records_paddock_season (paddock, season)
		) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

		`CREATE TABLE IF NOT EXISTS weather_snapshots (
			id BIGINT AUTO_INCREMENT PRIMARY KEY,
			paddock VARCHAR(255) NOT NULL,
			observed_at DATETIME(6) NOT NULL,
			temperature_c DOUBLE NOT NULL,
			relative_humidity DOUBLE NOT NULL,
			rainfall_mm DOUBLE NOT NULL,
			leaf_wetness_hours DOUBLE NOT NULL,
			days_since_rain INT NOT NULL,
			rain_days_last_week INT NOT NULL,
			INDEX idx_weather_snapshots_paddock (paddock, observed_at)
		) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

		`CREATE TABLE IF NOT EXISTS assessments (
			id CHAR(36) PRIMARY KEY,
			paddock VARCHAR(255) NOT NULL DEFAULT '',
			disease VARCHAR(32) NOT NULL,
			score DOUBLE NOT NULL,
			tier VARCHAR(16) NOT NULL,
			recommendation TEXT NOT NULL,
			warning_count INT NOT NULL,
			option_count INT NOT NULL,
			evaluated_at DATETIME(6) NOT NULL,
			result JSON NOT NULL,
			INDEX idx_assessments_paddock (paddock, evaluated_at)
		) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
	}

	for _, stmt := range statements {
		if _, err := db.conn.Exec(stmt); err != nil {
			return fmt.Errorf("failed to execute schema statement: %w", err)
		}
	}

	return nil
}

func (db *DB) updateStats() {
	stats := db.conn.Stats()
	metrics.UpdateDBConnectionStats(stats.OpenConnections, stats.InUse, stats.Idle)
}

func isDuplicate(err error) bool {
	var myErr *mysql.MySQLError
	return errors.As(err, &myErr) && myErr.Number == mysqlDuplicateEntry
}

// InsertPaddock inserts a new paddock. A name that already exists returns ErrDuplicatePaddock.
func (db *DB) InsertPaddock(p models.Paddock) error {
	query := `INSERT INTO paddocks (name, crop, variety, growth_stage, disease, has_resistance, resistance_rating,
	          seed_treatment, same_crop_last_two_years, same_resistance_group) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	queryStart := time.Now()
	_, err := db.conn.Exec(query, p.Name, p.Crop, p.Variety, p.GrowthStage, p.Disease, p.HasResistance,
		p.ResistanceRating, p.SeedTreatment, p.SameCropLastTwoYears, p.SameResistanceGroupAsLastYear)
	metrics.RecordDBQuery("INSERT", "paddocks", time.Since(queryStart), err)
	if err != nil {
		if isDuplicate(err) {
			return fmt.Errorf("%w: %s", ErrDuplicatePaddock, p.Name)
		}
		return fmt.Errorf("failed to insert paddock: %w", err)
	}
	return nil
}

const paddockColumns = `id, name, crop, variety, growth_stage, disease, has_resistance, resistance_rating,
	seed_treatment, same_crop_last_two_years, same_resistance_group`

type scanner interface {
	Scan(dest ...interface{}) error
}

func scanPaddock(row scanner) (models.Paddock, error) {
	var p models.Paddock
	err := row.Scan(&p.ID, &p.Name, &p.Crop, &p.Variety, &p.GrowthStage, &p.Disease, &p.HasResistance,
		&p.ResistanceRating, &p.SeedTreatment, &p.SameCropLastTwoYears, &p.SameResistanceGroupAsLastYear)
	return p, err
}

// GetAllPaddocks retrieves all paddocks ordered by name
func (db *DB) GetAllPaddocks() ([]models.Paddock, error) {
	queryStart := time.Now()
	rows, err := db.conn.Query(`SELECT ` + paddockColumns + ` FROM paddocks ORDER BY name`)
	metrics.RecordDBQuery("SELECT", "paddocks", time.Since(queryStart), err)
	if err != nil {
		return nil, fmt.Errorf("failed to query paddocks: %w", err)
	}
	defer rows.Close()

	var paddocks []models.Paddock
	for rows.Next() {
		p, err := scanPaddock(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan paddock: %w", err)
		}
		paddocks = append(paddocks, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating paddocks: %w", err)
	}

	return paddocks, nil
}

// GetPaddockByName retrieves a single paddock
func (db *DB) GetPaddockByName(name string) (*models.Paddock, error) {
	row := db.conn.QueryRow(`SELECT `+paddockColumns+` FROM paddocks WHERE name = ? LIMIT 1`, name)

	p, err := scanPaddock(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: %s", ErrPaddockNotFound, name)
		}
		return nil, fmt.Errorf("failed to scan paddock: %w", err)
	}

	return &p, nil
}

// RecordSpray stores a foliar application against a paddock
func (db *DB) RecordSpray(r models.SprayRecord) error {
	defer db.updateStats()

	query := `INSERT INTO spray_records (paddock, season, product, applied_at) VALUES (?, ?, ?, ?)`
	queryStart := time.Now()
	_, err := db.conn.Exec(query, r.Paddock, r.Season, r.Product, r.AppliedAt)
	metrics.RecordDBQuery("INSERT", "spray_records", time.Since(queryStart), err)
	if err != nil {
		return fmt.Errorf("failed to record spray for %s: %w", r.Paddock, err)
	}
	return nil
}

// GetSeasonSprays returns a paddock's applications for one season, oldest first
func (db *DB) GetSeasonSprays(paddock string, season int) ([]models.SprayRecord, error) {
	query := `SELECT id, paddock, season, product, applied_at FROM spray_records
	          WHERE paddock = ? AND season = ? ORDER BY applied_at ASC, id ASC`
	queryStart := time.Now()
	rows, err := db.conn.Query(query, paddock, season)
	metrics.RecordDBQuery("SELECT", "spray_records", time.Since(queryStart), err)
	if err != nil {
		return nil, fmt.Errorf("failed to query sprays: %w", err)
	}
	defer rows.Close()

	var records []models.SprayRecord
	for rows.Next() {
		var r models.SprayRecord
		if err := rows.Scan(&r.ID, &r.Paddock, &r.Season, &r.Product, &r.AppliedAt); err != nil {
			return nil, fmt.Errorf("failed to scan spray record: %w", err)
		}
		records = append(records, r)
	}

	return records, rows.Err()
}

// StoreWeatherSnapshot stores an observation for a paddock
func (db *DB) StoreWeatherSnapshot(obs models.WeatherObservation) error {
	defer db.updateStats()

	w := obs.Snapshot
	query := `INSERT INTO weather_snapshots (paddock, observed_at, temperature_c, relative_humidity, rainfall_mm,
	          leaf_wetness_hours, days_since_rain, rain_days_last_week) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`
	queryStart := time.Now()
	_, err := db.conn.Exec(query, obs.Paddock, obs.ObservedAt, w.TemperatureC, w.RelativeHumidity, w.RainfallMM,
		w.LeafWetnessHours, w.DaysSinceRain, w.RainDaysLastWeek)
	metrics.RecordDBQuery("INSERT", "weather_snapshots", time.Since(queryStart), err)
	if err != nil {
		return fmt.Errorf("failed to store weather for %s: %w", obs.Paddock, err)
	}
	return nil
}

// GetLatestWeatherSnapshot returns the most recent observation for a paddock
func (db *DB) GetLatestWeatherSnapshot(paddock string) (*models.WeatherObservation, error) {
	query := `SELECT id, paddock, observed_at, temperature_c, relative_humidity, rainfall_mm, leaf_wetness_hours,
	          days_since_rain, rain_days_last_week FROM weather_snapshots WHERE paddock = ? ORDER BY observed_at DESC LIMIT 1`
	queryStart := time.Now()
	row := db.conn.QueryRow(query, paddock)

	var obs models.WeatherObservation
	w := &obs.Snapshot
	err := row.Scan(&obs.ID, &obs.Paddock, &obs.ObservedAt, &w.TemperatureC, &w.RelativeHumidity, &w.RainfallMM,
		&w.LeafWetnessHours, &w.DaysSinceRain, &w.RainDaysLastWeek)
	metrics.RecordDBQuery("SELECT", "weather_snapshots", time.Since(queryStart), err)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w for %s", ErrNoWeather, paddock)
		}
		return nil, fmt.Errorf("failed to scan weather snapshot: %w", err)
	}

	return &obs, nil
}

// Summarize flattens an assessment into its history row
func Summarize(a *models.Assessment) models.AssessmentSummary {
	r := a.Result
	return models.AssessmentSummary{
		ID:             a.ID,
		Paddock:        a.Paddock,
		Disease:        r.Disease,
		Score:          r.Risk.Score,
		Tier:           r.Risk.Tier,
		Recommendation: r.Risk.Recommendation,
		WarningCount:   len(r.Warnings),
		OptionCount:    len(r.Options),
		EvaluatedAt:    a.EvaluatedAt,
	}
}

// assessment IDs are UUIDs, so a redelivered assessment is skipped
const insertAssessment = `INSERT IGNORE INTO assessments (id, paddock, disease, score, tier, recommendation, warning_count,
	option_count, evaluated_at, result) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

func assessmentArgs(a *models.Assessment) ([]interface{}, error) {
	payload, err := json.Marshal(a.Result)
	if err != nil {
		return nil, fmt.Errorf("failed to encode assessment %s: %w", a.ID, err)
	}
	s := Summarize(a)
	return []interface{}{s.ID, s.Paddock, s.Disease, s.Score, s.Tier, s.Recommendation,
		s.WarningCount, s.OptionCount, s.EvaluatedAt, payload}, nil
}

// StoreAssessment stores one evaluated assessment
func (db *DB) StoreAssessment(a *models.Assessment) error {
	defer db.updateStats()

	args, err := assessmentArgs(a)
	if err != nil {
		return err
	}

	queryStart := time.Now()
	_, err = db.conn.Exec(insertAssessment, args...)
	metrics.RecordDBQuery("INSERT", "assessments", time.Since(queryStart), err)
	if err != nil {
		return fmt.Errorf("failed to store assessment %s: %w", a.ID, err)
	}
	return nil
}

// StoreAssessments stores a batch of assessments in one transaction
func (db *DB) StoreAssessments(assessments []*models.Assessment) error {
	if len(assessments) == 0 {
		log.Printf("No assessments")
		return nil
	}

	tx, err := db.conn.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback() // ignored once committed

	stmt, err := tx.Prepare(insertAssessment)
	if err != nil {
		return fmt.Errorf("failed to prepare statement: %w", err)
	}
	defer stmt.Close()

	queryStart := time.Now()
	for _, a := range assessments {
		args, err := assessmentArgs(a)
		if err != nil {
			return err
		}
		if _, err = stmt.Exec(args...); err != nil {
			metrics.RecordDBQuery("INSERT", "assessments", time.Since(queryStart), err)
			return fmt.Errorf("failed to insert assessment for %s: %w", a.Paddock, err)
		}
	}

	err = tx.Commit()
	metrics.RecordDBQuery("INSERT", "assessments", time.Since(queryStart), err)
	if err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	log.Printf("✓ Stored %d assessments", len(assessments))
	return nil
}

// GetAssessments retrieves recent assessment summaries. An empty paddock lists every paddock.
func (db *DB) GetAssessments(paddock string, limit int) ([]models.AssessmentSummary, error) {
	query := `SELECT id, paddock, disease, score, tier, recommendation, warning_count, option_count, evaluated_at
	          FROM assessments`
	args := []interface{}{}
	if paddock != "" {
		query += ` WHERE paddock = ?`
		args = append(args, paddock)
	}
	query += ` ORDER BY evaluated_at DESC LIMIT ?`
	args = append(args, limit)

	queryStart := time.Now()
	rows, err := db.conn.Query(query, args...)
	metrics.RecordDBQuery("SELECT", "assessments", time.Since(queryStart), err)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	summaries := []models.AssessmentSummary{}
	for rows.Next() {
		var s models.AssessmentSummary
		if err := rows.Scan(&s.ID, &s.Paddock, &s.Disease, &s.Score, &s.Tier, &s.Recommendation,
			&s.WarningCount, &s.OptionCount, &s.EvaluatedAt); err != nil {
			return nil, err
		}
		summaries = append(summaries, s)
	}

	return summaries, rows.Err()
}

// GetAssessment loads the full stored result for one assessment
func (db *DB) GetAssessment(id string) (*models.Assessment, error) {
	row := db.conn.QueryRow(`SELECT id, paddock, evaluated_at, result FROM assessments WHERE id = ?`, id)

	var a models.Assessment
	var payload []byte
	if err := row.Scan(&a.ID, &a.Paddock, &a.EvaluatedAt, &payload); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: %s", ErrAssessmentNotFound, id)
		}
		return nil, fmt.Errorf("failed to load assessment %s: %w", id, err)
	}
	if err := json.Unmarshal(payload, &a.Result); err != nil {
		return nil, fmt.Errorf("failed to decode assessment %s: %w", id, err)
	}
	return &a, nil
}

// Close closes the database connection
func (db *DB) Close() error {
	if db.conn != nil {
		return db.conn.Close()
	}
	return nil
}
