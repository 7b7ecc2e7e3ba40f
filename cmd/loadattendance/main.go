package main

import (
	"context"
	"encoding/json"
	"flag"
	"log"
	"os"

	"github.com/rehmanpranto/TutorTrack/internal/models"
	"github.com/rehmanpranto/TutorTrack/internal/repository"
	"github.com/rehmanpranto/TutorTrack/internal/service"
	"github.com/rehmanpranto/TutorTrack/pkg/config"
	"github.com/rehmanpranto/TutorTrack/pkg/database"
	"github.com/rehmanpranto/TutorTrack/pkg/logger"
)

// loadattendance bulk-loads attendance records from a JSON file of
// `[{date, status, topic, startTime, endTime}, ...]` entries. Records go
// through the normal upsert path, so the monthly Present cap applies and
// re-running the loader overwrites rather than duplicates.
func main() {
	file := flag.String("file", "", "path to a JSON array of attendance records (required)")
	flag.Parse()

	if *file == "" {
		log.Fatal("usage: loadattendance -file <records.json>")
	}

	raw, err := os.ReadFile(*file)
	if err != nil {
		log.Fatalf("failed to read records file: %v", err)
	}
	var records []models.UpsertAttendanceRequest
	if err := json.Unmarshal(raw, &records); err != nil {
		log.Fatalf("failed to parse records file: %v", err)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		logr.Sugar().Fatalw("failed to connect to database", "error", err)
	}
	defer db.Close()

	ctx := context.Background()

	resolver := service.NewStudentResolver(repository.NewStudentRepository(db), logr, cfg.Student.DefaultName, cfg.Student.DefaultEmail)
	attendanceSvc := service.NewAttendanceService(repository.NewAttendanceRepository(db), resolver, nil, logr)

	applied, err := attendanceSvc.BulkUpsert(ctx, records)
	if err != nil {
		logr.Sugar().Fatalw("bulk load stopped", "applied", applied, "total", len(records), "error", err)
	}
	logr.Sugar().Infow("bulk load complete", "applied", applied)
}
