package rpe

import (
	"math"
	"testing"
)

// TestLookupPercentChartHits verifies that every charted (RPE, reps) pair
// returns exactly the chart value divided by 100.
func TestLookupPercentChartHits(t *testing.T) {
	for rpe, row := range percentChart {
		for reps, pct := range row {
			got := LookupPercent(rpe, reps)
			want := float64(pct) / 100
			if got != want {
				t.Errorf("LookupPercent(%v, %d) = %v, want %v", rpe, reps, got, want)
			}
		}
	}
}

// TestLookupPercentFallbackLowRPE verifies that RPE values below the chart
// use the Epley curve, which ignores RPE entirely.
func TestLookupPercentFallbackLowRPE(t *testing.T) {
	for _, rpe := range []float64{5, 6, 6.5, 7} {
		for reps := 1; reps <= 10; reps++ {
			got := LookupPercent(rpe, reps)
			want := 1 / (1 + 0.0333*float64(reps-1))
			if math.Abs(got-want) > 1e-12 {
				t.Errorf("LookupPercent(%v, %d) = %v, want fallback %v", rpe, reps, got, want)
			}
		}
	}
}

// TestLookupPercentFallbackHighReps verifies reps above 10 fall back even
// for charted RPEs.
func TestLookupPercentFallbackHighReps(t *testing.T) {
	for reps := 11; reps <= 15; reps++ {
		got := LookupPercent(9, reps)
		want := 1 / (1 + 0.0333*float64(reps-1))
		if math.Abs(got-want) > 1e-12 {
			t.Errorf("LookupPercent(9, %d) = %v, want fallback %v", reps, got, want)
		}
	}
}

// TestLookupPercentSingleRepOffChart verifies the fallback returns exactly
// 1.0 for a single rep.
func TestLookupPercentSingleRepOffChart(t *testing.T) {
	if got := LookupPercent(6, 1); got != 1.0 {
		t.Errorf("LookupPercent(6, 1) = %v, want 1.0", got)
	}
}

// TestLookupPercentAlwaysPositive verifies the no-error contract: any
// in-range pair yields a positive fraction no greater than 1.
func TestLookupPercentAlwaysPositive(t *testing.T) {
	for rpe := 5.0; rpe <= 10.0; rpe += 0.5 {
		for reps := 1; reps <= 30; reps++ {
			got := LookupPercent(rpe, reps)
			if got <= 0 || got > 1.0 {
				t.Fatalf("LookupPercent(%v, %d) = %v, want in (0, 1]", rpe, reps, got)
			}
		}
	}
}

// TestQuantizeRPE verifies quantization to 0.5 increments, including the
// away-from-zero tie convention at x.25/x.75.
func TestQuantizeRPE(t *testing.T) {
	cases := []struct {
		in   float64
		want float64
	}{
		{8.0, 8.0},
		{8.4, 8.5},
		{8.6, 8.5},
		{8.74, 8.5},
		{8.76, 9.0},
		{8.25, 8.5}, // tie rounds away from zero
		{8.75, 9.0}, // tie rounds away from zero
		{9.99, 10.0},
		{5.1, 5.0},
	}
	for _, c := range cases {
		if got := QuantizeRPE(c.in); got != c.want {
			t.Errorf("QuantizeRPE(%v) = %v, want %v", c.in, got, c.want)
		}
	}
}

// TestLookupPercentQuantizesBeforeLookup verifies that off-grid RPEs hit
// the chart row of their quantized value.
func TestLookupPercentQuantizesBeforeLookup(t *testing.T) {
	if got, want := LookupPercent(8.9, 5), 0.84; got != want {
		t.Errorf("LookupPercent(8.9, 5) = %v, want %v (RPE 9 row)", got, want)
	}
	if got, want := LookupPercent(7.7, 1), 0.89; got != want {
		t.Errorf("LookupPercent(7.7, 1) = %v, want %v (RPE 7.5 row)", got, want)
	}
}

// TestChart verifies the chart export: descending RPE order, ten percents
// per row, values matching the lookup table.
func TestChart(t *testing.T) {
	rows := Chart()
	if len(rows) != 6 {
		t.Fatalf("len(Chart()) = %d, want 6", len(rows))
	}
	wantOrder := []float64{10, 9.5, 9, 8.5, 8, 7.5}
	for i, row := range rows {
		if row.RPE != wantOrder[i] {
			t.Errorf("rows[%d].RPE = %v, want %v", i, row.RPE, wantOrder[i])
		}
		if len(row.Percents) != 10 {
			t.Fatalf("rows[%d] has %d percents, want 10", i, len(row.Percents))
		}
		for reps := 1; reps <= 10; reps++ {
			if row.Percents[reps-1] != percentChart[row.RPE][reps] {
				t.Errorf("rows[%d].Percents[%d] = %d, want %d",
					i, reps-1, row.Percents[reps-1], percentChart[row.RPE][reps])
			}
		}
	}
}
