package cao

import "math"

// Percentile ranks points against a cohort as the rounded share of cohort
// totals strictly below it. It reports false for an empty cohort.
func Percentile(points int, cohort []int) (int, bool) {
	if len(cohort) == 0 {
		return 0, false
	}
	below := 0
	for _, c := range cohort {
		if c < points {
			below++
		}
	}
	return int(math.Round(float64(below) / float64(len(cohort)) * 100)), true
}
