package cao

import (
	"sort"
	"strings"

	"golang.org/x/text/cases"

	"github.com/noah-isme/strive-cao-api/internal/models"
)

const (
	// TopSubjectCount is the number of subjects counted towards total points.
	TopSubjectCount = 6
	// MathsBonus is added to Higher level Maths when it scores any points.
	MathsBonus = 25

	mathsSubject = "maths"
)

type aggregateOptions struct {
	foldSubjects bool
}

// Option tweaks how Aggregate groups records.
type Option func(*aggregateOptions)

// WithSubjectFolding groups subjects by a trimmed, case-folded key so that
// "Maths" and " MATHS" share one aggregate. The first spelling seen is kept
// as the subject name. Distinct names such as "Mathematics" stay separate.
func WithSubjectFolding() Option {
	return func(o *aggregateOptions) { o.foldSubjects = true }
}

type subjectGroup struct {
	subject string
	level   models.Level
	sum     float64
	count   int
	mixed   bool
}

// Aggregate groups results by subject, converts each subject average to
// points and keeps the TopSubjectCount best subjects. The input is not
// modified; an empty input yields an empty profile.
func Aggregate(results []models.ResultRecord, opts ...Option) models.StudentProfile {
	var o aggregateOptions
	for _, opt := range opts {
		opt(&o)
	}
	folder := cases.Fold()

	groups := make(map[string]*subjectGroup, len(results))
	order := make([]*subjectGroup, 0, len(results))
	for _, r := range results {
		key := r.Subject
		if o.foldSubjects {
			key = folder.String(strings.TrimSpace(r.Subject))
		}
		level := r.Level.Normalize()
		g, ok := groups[key]
		if !ok {
			g = &subjectGroup{subject: r.Subject, level: level}
			groups[key] = g
			order = append(order, g)
		} else if level != g.level {
			g.mixed = true
		}
		g.sum += r.Percent()
		g.count++
	}

	aggregates := make([]models.SubjectAggregate, 0, len(order))
	for _, g := range order {
		average := g.sum / float64(g.count)
		points := PointsFor(average, g.level)
		if qualifiesForMathsBonus(g.subject, g.level, points) {
			points += MathsBonus
		}
		aggregates = append(aggregates, models.SubjectAggregate{
			Subject:     g.subject,
			Average:     average,
			Level:       g.level,
			Points:      points,
			Records:     g.count,
			MixedLevels: g.mixed,
		})
	}

	sort.SliceStable(aggregates, func(i, j int) bool {
		return aggregates[i].Points > aggregates[j].Points
	})
	if len(aggregates) > TopSubjectCount {
		aggregates = aggregates[:TopSubjectCount]
	}

	total := 0
	for _, a := range aggregates {
		total += a.Points
	}
	return models.StudentProfile{Top6: aggregates, TotalPoints: total}
}

// Only the short "Maths" spelling qualifies; "Mathematics" does not.
func qualifiesForMathsBonus(subject string, level models.Level, points int) bool {
	return strings.EqualFold(subject, mathsSubject) && level == models.LevelHigher && points > 0
}
