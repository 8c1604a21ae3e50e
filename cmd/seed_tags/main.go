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

type tagRecord struct {
	Name   string `json:"name"`
	Slug   string `json:"slug"`
	Colour string `json:"colour"`
}

// Seeds the tag reference table from a JSON array of
// {"name", "slug", "colour"} objects.
func main() {
	file := flag.String("file", "data/tags.json", "path to the tags JSON file")
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

	var records []tagRecord
	if err := json.Unmarshal(data, &records); err != nil {
		log.Fatalf("Failed to parse %s: %v", *file, err)
	}

	catalog := service.NewCatalogService(db)
	created := 0
	for _, rec := range records {
		if _, err := catalog.CreateTag(context.Background(), rec.Name, rec.Slug, rec.Colour); err != nil {
			log.Printf("Skipping tag %q: %v", rec.Name, err)
			continue
		}
		created++
	}
	log.Printf("Seeded %d of %d tags", created, len(records))
}
