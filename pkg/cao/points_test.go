package cao

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/noah-isme/strive-cao-api/internal/models"
)

func TestPointsFor(t *testing.T) {
	cases := []struct {
		name    string
		percent float64
		level   models.Level
		want    int
	}{
		{"higher top tier", 95, models.LevelHigher, 100},
		{"ordinary 80 tier", 85, models.LevelOrdinary, 46},
		{"lcvp falls to 65 tier", 72, models.LevelLCVP, 46},
		{"higher below floor", 10, models.LevelHigher, 0},
		{"above hundred clamps to top", 200, models.LevelHigher, 100},
		{"exact threshold", 30, models.LevelHigher, 37},
		{"ordinary 30 scores nothing", 35, models.LevelOrdinary, 0},
		{"lcvp below 50", 49, models.LevelLCVP, 0},
		{"lcvp top", 80, models.LevelLCVP, 66},
		{"rounds half up", 89.5, models.LevelHigher, 100},
		{"rounds down", 89.4, models.LevelHigher, 88},
		{"short code accepted", 60, models.Level("H"), 66},
		{"unknown level", 95, models.Level("Foundation"), 0},
		{"empty level", 95, models.LevelUnknown, 0},
		{"negative", -20, models.LevelOrdinary, 0},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, PointsFor(tc.percent, tc.level))
		})
	}
}

func TestPointsForNaN(t *testing.T) {
	assert.Equal(t, 0, PointsFor(math.NaN(), models.LevelHigher))
}

func TestPointsForMonotonic(t *testing.T) {
	for _, level := range []models.Level{models.LevelHigher, models.LevelOrdinary, models.LevelLCVP} {
		prev := PointsFor(-10, level)
		for p := -10.0; p <= 150; p += 0.25 {
			got := PointsFor(p, level)
			assert.GreaterOrEqualf(t, got, prev, "level %s at %.2f", level, p)
			prev = got
		}
	}
}
