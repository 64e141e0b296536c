package models

// Category is a coarse subject grouping used to match students to courses.
type Category string

const (
	CategorySTEM     Category = "stem"
	CategoryArts     Category = "arts"
	CategoryBusiness Category = "business"
	CategoryGeneral  Category = "general"
)

// Course is a catalog entry with a minimum points requirement.
type Course struct {
	ID       string `db:"id" json:"id,omitempty" yaml:"id"`
	Title    string `db:"title" json:"title" yaml:"title"`
	College  string `db:"college" json:"college" yaml:"college"`
	Points   int    `db:"points" json:"points" yaml:"points"`
	Category string `db:"category" json:"category" yaml:"category"`
}

// CourseRecommendation pairs a matched course with the student's cohort percentile.
type CourseRecommendation struct {
	Course
	Percentile *int `json:"percentile,omitempty"`
}
