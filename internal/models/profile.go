package models

// SubjectAggregate is the per-subject summary derived from a student's records.
type SubjectAggregate struct {
	Subject     string  `json:"subject"`
	Average     float64 `json:"average"`
	Level       Level   `json:"level"`
	Points      int     `json:"points"`
	Records     int     `json:"records"`
	MixedLevels bool    `json:"mixed_levels,omitempty"`
}

// StudentProfile holds the best subjects by points and their sum.
type StudentProfile struct {
	Top6        []SubjectAggregate `json:"top6"`
	TotalPoints int                `json:"total_points"`
}
