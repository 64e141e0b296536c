// Package cao converts subject results into CAO points, selects a student's
// best subjects and matches the resulting profile against a course catalog.
// Every function in the package is pure and safe for concurrent use.
package cao

import (
	"math"

	"github.com/noah-isme/strive-cao-api/internal/models"
)

type tier struct {
	threshold float64
	points    int
}

// Tiers are ordered from the highest threshold down.
var pointsTable = map[models.Level][]tier{
	models.LevelHigher: {
		{90, 100}, {80, 88}, {70, 77}, {60, 66}, {50, 56}, {40, 46}, {30, 37},
	},
	models.LevelOrdinary: {
		{90, 56}, {80, 46}, {70, 37}, {60, 28}, {50, 20}, {40, 12},
	},
	models.LevelLCVP: {
		{80, 66}, {65, 46}, {50, 28},
	},
}

// PointsFor maps an average percentage at the given level to CAO points.
// The percentage is rounded half-up before lookup. Percentages above 100 land
// in the top tier; unknown levels and anything under the lowest tier score 0.
func PointsFor(averagePercent float64, level models.Level) int {
	tiers, ok := pointsTable[level.Normalize()]
	if !ok || math.IsNaN(averagePercent) {
		return 0
	}
	rounded := math.Floor(averagePercent + 0.5)
	for _, t := range tiers {
		if rounded >= t.threshold {
			return t.points
		}
	}
	return 0
}
