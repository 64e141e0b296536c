package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/strive-cao-api/internal/models"
)

const resultColumns = "id, student_id, subject, topic, score, total, level, recorded_at"

// ResultRepository persists student result records.
type ResultRepository struct {
	db *sqlx.DB
}

// NewResultRepository creates a new repository instance.
func NewResultRepository(db *sqlx.DB) *ResultRepository {
	return &ResultRepository{db: db}
}

// ListByStudent returns a student's records in the order they were recorded.
// Rows sharing a timestamp fall back to insertion order via seq.
func (r *ResultRepository) ListByStudent(ctx context.Context, studentID string) ([]models.ResultRecord, error) {
	query := fmt.Sprintf("SELECT %s FROM student_results WHERE student_id = $1 ORDER BY recorded_at ASC, seq ASC", resultColumns)
	results := []models.ResultRecord{}
	if err := r.db.SelectContext(ctx, &results, query, studentID); err != nil {
		return nil, fmt.Errorf("list results for student %s: %w", studentID, err)
	}
	return results, nil
}

// Append stores a new record, assigning an id and timestamp when missing.
func (r *ResultRepository) Append(ctx context.Context, result *models.ResultRecord) error {
	if result.ID == "" {
		result.ID = uuid.NewString()
	}
	if result.RecordedAt.IsZero() {
		result.RecordedAt = time.Now().UTC()
	}

	const query = `INSERT INTO student_results (id, student_id, subject, topic, score, total, level, recorded_at) VALUES (:id, :student_id, :subject, :topic, :score, :total, :level, :recorded_at)`
	if _, err := r.db.NamedExecContext(ctx, query, result); err != nil {
		return fmt.Errorf("append result: %w", err)
	}
	return nil
}

// ListAll returns every record grouped by student, students ordered by id.
func (r *ResultRepository) ListAll(ctx context.Context) ([]models.StudentResults, error) {
	query := fmt.Sprintf("SELECT %s FROM student_results ORDER BY student_id ASC, recorded_at ASC, seq ASC", resultColumns)
	var rows []models.ResultRecord
	if err := r.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, fmt.Errorf("list all results: %w", err)
	}

	var grouped []models.StudentResults
	for _, row := range rows {
		if n := len(grouped); n == 0 || grouped[n-1].StudentID != row.StudentID {
			grouped = append(grouped, models.StudentResults{StudentID: row.StudentID})
		}
		last := &grouped[len(grouped)-1]
		last.Results = append(last.Results, row)
	}
	return grouped, nil
}
