package main

import (
	"context"
	"encoding/json"
	"flag"
	"log"
	"os"

	"github.com/foodgram/backend/config"
	"github.com/foodgram/backend/internal/database"
	"github.com/foodgram/backend/internal/service"
)

// Loads a JSON array of {"name", "measurement_unit"} objects into the
// ingredient catalog. Existing (name, unit) pairs are skipped.
func main() {
	file := flag.String("file", "data/ingredients.json", "path to the ingredients JSON file")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.New(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	data, err := os.ReadFile(*file)
	if err != nil {
		log.Fatalf("Failed to read %s: %v", *file, err)
	}

	var records []service.IngredientRecord
	if err := json.Unmarshal(data, &records); err != nil {
		log.Fatalf("Failed to parse %s: %v", *file, err)
	}

	catalog := service.NewCatalogService(db)
	inserted, err := catalog.BulkUpsertIngredients(context.Background(), records)
	if err != nil {
		log.Fatalf("Failed to load ingredients: %v", err)
	}
	log.Printf("Loaded %d ingredients (%d new)", len(records), inserted)
}
