package models

import "time"

// DefaultResultTotal is used when a record carries no maximum mark.
const DefaultResultTotal = 100.0

// ResultRecord is one graded assessment outcome for one subject for one student.
type ResultRecord struct {
	ID         string    `db:"id" json:"id,omitempty"`
	StudentID  string    `db:"student_id" json:"student_id,omitempty"`
	Subject    string    `db:"subject" json:"subject"`
	Topic      string    `db:"topic" json:"topic,omitempty"`
	Score      float64   `db:"score" json:"score"`
	Total      float64   `db:"total" json:"total,omitempty"`
	Level      Level     `db:"level" json:"level"`
	RecordedAt time.Time `db:"recorded_at" json:"recorded_at,omitempty"`
}

// Percent returns the record's score as a percentage of its total, treating a
// zero or negative total as DefaultResultTotal.
func (r ResultRecord) Percent() float64 {
	total := r.Total
	if total <= 0 {
		total = DefaultResultTotal
	}
	return r.Score / total * 100
}

// StudentResults groups one student's records, used when ranking a cohort.
type StudentResults struct {
	StudentID string
	Results   []ResultRecord
}
