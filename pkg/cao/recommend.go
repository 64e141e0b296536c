package cao

import (
	"strings"

	"github.com/noah-isme/strive-cao-api/internal/models"
)

var categoryKeywords = []struct {
	category models.Category
	keywords []string
}{
	{models.CategorySTEM, []string{
		"maths", "mathematics", "applied mathematics", "physics", "chemistry",
		"biology", "engineering", "technology", "computer science",
		"design and communication graphics", "agricultural science",
	}},
	{models.CategoryArts, []string{
		"english", "irish", "french", "german", "spanish", "italian",
		"language", "history", "geography", "classics", "philosophy", "music",
	}},
	{models.CategoryBusiness, []string{
		"business", "accounting", "economics", "enterprise",
	}},
}

// CategoryFor maps a subject name to a coarse category by keyword containment.
func CategoryFor(subject string) models.Category {
	s := strings.ToLower(subject)
	for _, group := range categoryKeywords {
		for _, kw := range group.keywords {
			if strings.Contains(s, kw) {
				return group.category
			}
		}
	}
	return models.CategoryGeneral
}

// Categories returns the distinct categories of the given subjects.
func Categories(subjects []models.SubjectAggregate) map[models.Category]struct{} {
	set := make(map[models.Category]struct{}, len(subjects))
	for _, s := range subjects {
		set[CategoryFor(s.Subject)] = struct{}{}
	}
	return set
}

// Recommend returns the catalog courses whose points requirement is met and
// whose category matches one of the top subjects. Catalog order is kept.
func Recommend(top6 []models.SubjectAggregate, totalPoints int, catalog []models.Course) []models.Course {
	categories := Categories(top6)
	matched := make([]models.Course, 0)
	for _, course := range catalog {
		if course.Points > totalPoints {
			continue
		}
		if _, ok := categories[models.Category(strings.ToLower(course.Category))]; ok {
			matched = append(matched, course)
		}
	}
	return matched
}
