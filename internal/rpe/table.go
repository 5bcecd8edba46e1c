// Package rpe implements load/repetition estimation from RPE charts.
// All functions are pure; the chart is read-only after init.
package rpe

import "math"

// epleyCoeff is the per-rep intensity decay used when a (RPE, reps) pair
// falls outside the chart. The value is part of the numeric contract and
// must not be "tidied" to 1/30.
const epleyCoeff = 0.0333

// percentChart maps quantized RPE -> reps -> percent of 1RM, following
// Mike Tuchscherer's RPE chart. RPE below 7.5 and reps above 10 are
// deliberately absent; LookupPercent falls back to the Epley curve there.
var percentChart = map[float64]map[int]int{
	10:  {1: 100, 2: 95, 3: 92, 4: 89, 5: 86, 6: 84, 7: 81, 8: 79, 9: 76, 10: 74},
	9.5: {1: 98, 2: 94, 3: 91, 4: 88, 5: 85, 6: 82, 7: 80, 8: 77, 9: 75, 10: 72},
	9:   {1: 96, 2: 92, 3: 89, 4: 86, 5: 84, 6: 81, 7: 79, 8: 76, 9: 74, 10: 71},
	8.5: {1: 94, 2: 89, 3: 87, 4: 84, 5: 81, 6: 79, 7: 76, 8: 74, 9: 71, 10: 69},
	8:   {1: 92, 2: 87, 3: 84, 4: 81, 5: 79, 6: 76, 7: 74, 8: 71, 9: 69, 10: 66},
	7.5: {1: 89, 2: 84, 3: 81, 4: 79, 5: 76, 6: 74, 7: 71, 8: 69, 9: 66, 10: 64},
}

// chartRPEs lists the charted RPE values in descending order, for callers
// that render the chart (fixed order keeps the JSON output stable).
var chartRPEs = []float64{10, 9.5, 9, 8.5, 8, 7.5}

// QuantizeRPE rounds an RPE value to the nearest 0.5 increment.
// Ties (x.25, x.75) round away from zero, math.Round's convention.
func QuantizeRPE(rpe float64) float64 {
	return math.Round(rpe*2) / 2
}

// LookupPercent returns the fraction of 1RM associated with performing
// reps repetitions at the given RPE. Chart hits return the exact chart
// value; anything outside the chart uses the Epley fallback curve, which
// ignores RPE. Never fails: any reps >= 1 yields a positive fraction,
// and reps = 1 off-chart returns exactly 1.0.
func LookupPercent(rpe float64, reps int) float64 {
	if row, ok := percentChart[QuantizeRPE(rpe)]; ok {
		if pct, ok := row[reps]; ok {
			return float64(pct) / 100
		}
	}
	return 1 / (1 + epleyCoeff*float64(reps-1))
}

// ChartRow is one RPE row of the percentage chart, shaped for JSON output.
type ChartRow struct {
	RPE      float64 `json:"rpe"`
	Percents []int   `json:"percents"` // index 0 = 1 rep, index 9 = 10 reps
}

// Chart returns the full percentage chart as rows in descending RPE order.
// The returned slices are fresh copies; callers may modify them.
func Chart() []ChartRow {
	rows := make([]ChartRow, 0, len(chartRPEs))
	for _, r := range chartRPEs {
		row := ChartRow{RPE: r, Percents: make([]int, 10)}
		for reps := 1; reps <= 10; reps++ {
			row.Percents[reps-1] = percentChart[r][reps]
		}
		rows = append(rows, row)
	}
	return rows
}
