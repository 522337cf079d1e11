package main

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"
	"strings"

	"sprayguard/internal/config"
	"sprayguard/internal/database"
	"sprayguard/internal/models"
)

// paddocks_seed.csv columns
const (
	colName = iota
	colCrop
	colVariety
	colGrowthStage
	colDisease
	colHasResistance
	colResistanceRating
	colSeedTreatment
	colSameCrop
	colSameGroup
	numColumns
)

func main() {
	db, err := database.NewDB(config.GetDatabaseDSN())
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	csvPath := "paddocks_seed.csv"
	file, err := os.Open(csvPath)
	if err != nil {
		log.Fatalf("Failed to open CSV file: %v", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		log.Fatalf("Failed to read CSV header: %v", err)
	}
	log.Printf("CSV Header: %v\n", header)

	count := 0
	skipped := 0

	for {
		record, err := reader.Read()
		if err != nil {
			if err == io.EOF {
				break
			}
			log.Fatalf("Failed to read CSV record: %v", err)
		}

		p, err := parsePaddock(record)
		if err != nil {
			log.Printf("Skipping invalid record %v: %v", record, err)
			skipped++
			continue
		}

		if err := db.InsertPaddock(p); err != nil {
			if errors.Is(err, database.ErrDuplicatePaddock) {
				log.Printf("Paddock already exists: %s", p.Name)
			} else {
				log.Printf("Failed to insert paddock %s: %v", p.Name, err)
			}
			skipped++
			continue
		}

		count++
		if count%100 == 0 {
			log.Printf("Inserted %d paddocks...", count)
		}
	}

	log.Printf("Import complete! Successfully inserted %d paddocks, skipped %d", count, skipped)
}

// parsePaddock validates one CSV row into a paddock
func parsePaddock(record []string) (models.Paddock, error) {
	if len(record) < numColumns {
		return models.Paddock{}, fmt.Errorf("expected %d columns, got %d", numColumns, len(record))
	}
	field := func(i int) string { return strings.TrimSpace(record[i]) }

	name := field(colName)
	if name == "" {
		return models.Paddock{}, fmt.Errorf("name is empty")
	}

	crop, err := models.ParseCropKind(field(colCrop))
	if err != nil {
		return models.Paddock{}, err
	}
	disease, err := models.ParseDisease(field(colDisease))
	if err != nil {
		return models.Paddock{}, err
	}

	flags := make([]bool, 3)
	for i, col := range []int{colHasResistance, colSameCrop, colSameGroup} {
		if field(col) == "" {
			continue
		}
		if flags[i], err = strconv.ParseBool(field(col)); err != nil {
			return models.Paddock{}, fmt.Errorf("column %d: %w", col+1, err)
		}
	}

	p := models.Paddock{
		Name:                          name,
		Crop:                          crop,
		Variety:                       field(colVariety),
		GrowthStage:                   field(colGrowthStage),
		Disease:                       disease,
		HasResistance:                 flags[0],
		ResistanceRating:              strings.ToUpper(field(colResistanceRating)),
		SeedTreatment:                 field(colSeedTreatment),
		SameCropLastTwoYears:          flags[1],
		SameResistanceGroupAsLastYear: flags[2],
	}

	ctx := models.CropContext{Crop: crop, Variety: p.Variety, GrowthStage: p.GrowthStage, ResistanceRating: p.ResistanceRating}
	if err := ctx.Validate(); err != nil {
		return models.Paddock{}, err
	}

	return p, nil
}
