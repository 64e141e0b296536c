package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/strive-cao-api/internal/models"
	"github.com/noah-isme/strive-cao-api/pkg/catalog"
	"github.com/noah-isme/strive-cao-api/pkg/config"
	"github.com/noah-isme/strive-cao-api/pkg/database"
)

const upsertCourse = `INSERT INTO courses (id, title, college, points, category, position)
VALUES (:id, :title, :college, :points, :category, :position)
ON CONFLICT (id) DO UPDATE SET title = EXCLUDED.title, college = EXCLUDED.college,
	points = EXCLUDED.points, category = EXCLUDED.category, position = EXCLUDED.position`

type courseRow struct {
	models.Course
	Position int `db:"position"`
}

func main() {
	var (
		path    string
		dryRun  bool
		timeout time.Duration
	)

	flag.StringVar(&path, "file", filepath.Join("data", "courses.yaml"), "Path to the YAML course catalog")
	flag.BoolVar(&dryRun, "dry-run", false, "Validate the catalog without writing to the database")
	flag.DurationVar(&timeout, "timeout", 30*time.Second, "Overall timeout")
	flag.Parse()

	data, err := os.ReadFile(path)
	if err != nil {
		log.Fatalf("failed to read catalog: %v", err)
	}
	courses, err := catalog.Parse(data)
	if err != nil {
		log.Fatalf("invalid catalog: %v", err)
	}
	if dryRun {
		fmt.Printf("catalog %s: %d courses valid\n", path, len(courses))
		return
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	db, err := database.NewPostgres(ctx, cfg.Database)
	if err != nil {
		log.Fatalf("failed to connect to postgres: %v", err)
	}
	defer db.Close() //nolint:errcheck

	if err := syncCourses(ctx, db, courses); err != nil {
		log.Fatalf("sync failed: %v", err)
	}
	fmt.Printf("synced %d courses from %s\n", len(courses), path)
}

// syncCourses upserts the catalog in file order inside one transaction.
func syncCourses(ctx context.Context, db *sqlx.DB, courses []models.Course) error {
	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	for i, course := range courses {
		if course.ID == "" {
			_ = tx.Rollback()
			return fmt.Errorf("course %q at position %d has no id", course.Title, i)
		}
		if _, err := tx.NamedExecContext(ctx, upsertCourse, courseRow{Course: course, Position: i}); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("upsert course %s: %w", course.ID, err)
		}
	}
	return tx.Commit()
}
