package dto

import "github.com/noah-isme/strive-cao-api/internal/models"

// ProfileResponse is a student's top-6 subjects and point total.
type ProfileResponse struct {
	StudentID   string                    `json:"studentId,omitempty"`
	Top6        []models.SubjectAggregate `json:"top6"`
	TotalPoints int                       `json:"totalPoints"`
	Categories  []models.Category         `json:"categories"`
}

// RecommendationsResponse lists catalog courses matched to a student's profile.
type RecommendationsResponse struct {
	StudentID   string                        `json:"studentId"`
	TotalPoints int                           `json:"totalPoints"`
	CohortSize  int                           `json:"cohortSize"`
	Courses     []models.CourseRecommendation `json:"courses"`
}

// CalculateResponse is the stateless result of scoring a posted record list.
type CalculateResponse struct {
	Profile ProfileResponse `json:"profile"`
	Courses []models.Course `json:"courses"`
}

// PointsResponse is a single grade-to-points conversion.
type PointsResponse struct {
	Percent float64      `json:"percent"`
	Level   models.Level `json:"level"`
	Points  int          `json:"points"`
}

// CohortEntry is one student's standing used for percentile ranking.
type CohortEntry struct {
	StudentID   string            `json:"studentId"`
	TotalPoints int               `json:"totalPoints"`
	Categories  []models.Category `json:"categories"`
}
