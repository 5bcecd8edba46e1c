package rpe

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidInput marks a constraint violation on caller-supplied values.
// Transport layers match it with errors.Is to separate calculation errors
// from malformed-payload errors.
var ErrInvalidInput = errors.New("invalid input")

// WarmupSet is one prescribed ramp-up set derived from a top set.
type WarmupSet struct {
	SetNumber   int     `json:"set_number"`
	Weight      float64 `json:"weight"`
	Reps        int     `json:"reps"`
	Description string  `json:"description"`
}

// warmupProtocol is the fixed ramp: percent of top-set weight, reps, label.
// Order is part of the contract; callers display sets as returned.
var warmupProtocol = []struct {
	pct   float64
	reps  int
	descr string
}{
	{0.5, 5, "50% of top set"},
	{0.7, 3, "70% of top set"},
	{0.8, 2, "80% of top set"},
	{0.9, 1, "90% of top set"},
}

// weightIncrement is the smallest loadable step; warm-up weights snap to it.
const weightIncrement = 2.5

// maxRepSearchCeiling bounds the candidate scan in PredictMaxReps.
const maxRepSearchCeiling = 15

// Estimator derives warm-up prescriptions and max-rep predictions from the
// RPE chart. The zero value reproduces the legacy predictor; set Corrected
// to use the fixed self-consistency search for new integrations.
type Estimator struct {
	// Corrected swaps the legacy max-rep search (which all but always
	// lands on 1 rep, see PredictMaxReps) for a predictor that anchors an
	// estimated 1RM on the single-rep chart entry at the given RPE and
	// scans the RPE-10 row for the best-fitting rep count.
	Corrected bool
}

func validateRPE(rpe float64) error {
	if rpe < 5.0 || rpe > 10.0 {
		return fmt.Errorf("%w: RPE must be 5.0-10.0", ErrInvalidInput)
	}
	return nil
}

func validateWeight(weight float64) error {
	if weight <= 0 {
		return fmt.Errorf("%w: weight must be positive", ErrInvalidInput)
	}
	return nil
}

// GenerateWarmups returns the four ramp-up sets for a top set of the given
// weight, reps, and RPE. The ramp is a fixed protocol (50/70/80/90% of the
// top-set weight for 5/3/2/1 reps); the top set's own RPE and rep count
// only gate validation. Weights snap to the nearest 2.5.
func (e *Estimator) GenerateWarmups(rpe, weight float64, reps int) ([]WarmupSet, error) {
	if err := validateRPE(rpe); err != nil {
		return nil, err
	}
	if err := validateWeight(weight); err != nil {
		return nil, err
	}
	if reps < 1 || reps > 20 {
		return nil, fmt.Errorf("%w: reps must be 1-20", ErrInvalidInput)
	}

	sets := make([]WarmupSet, 0, len(warmupProtocol))
	for i, step := range warmupProtocol {
		sets = append(sets, WarmupSet{
			SetNumber:   i + 1,
			Weight:      math.Round(weight*step.pct/weightIncrement) * weightIncrement,
			Reps:        step.reps,
			Description: step.descr,
		})
	}
	return sets, nil
}

// PredictMaxReps estimates the maximum repetitions achievable at the given
// weight and RPE, as an integer in [1, 15].
//
// The legacy search round-trips weight through an implied 1RM
// (weight/pct*pct) for each candidate, so every candidate reproduces the
// input up to a possible 1-ulp rounding residual and the scan nearly
// always settles on the first candidate, 1 rep (a residual at r=1 can
// occasionally hand the win to a later candidate whose round-trip is
// exact). That behavior is kept as the default because existing callers
// depend on it; Corrected enables the fixed search.
func (e *Estimator) PredictMaxReps(weight, rpe float64) (int, error) {
	if err := validateWeight(weight); err != nil {
		return 0, err
	}
	if err := validateRPE(rpe); err != nil {
		return 0, err
	}

	if e.Corrected {
		return correctedMaxReps(weight, rpe), nil
	}

	minDiff := math.Inf(1)
	best := 1
	for r := 1; r <= maxRepSearchCeiling; r++ {
		pct := LookupPercent(rpe, r)
		var est1RM float64
		if pct > 0 { // always true; LookupPercent never returns <= 0
			est1RM = weight / pct
		}
		calcWeight := est1RM * pct
		if diff := math.Abs(calcWeight - weight); diff < minDiff {
			minDiff = diff
			best = r
		}
	}
	return best, nil
}

// correctedMaxReps treats the input weight as a single at the given RPE to
// anchor an estimated 1RM, then picks the rep count whose to-failure load
// (the RPE-10 row, Epley curve beyond 10 reps) best matches the weight.
// Weight cancels algebraically, so the result depends only on RPE: 10 -> 1,
// 9.5 -> 1, 9 -> 2, 8.5 -> 2, 8 -> 3, 7.5 -> 4. RPEs below the chart
// anchor on the fallback single (pct = 1.0) and so predict 1.
func correctedMaxReps(weight, rpe float64) int {
	est1RM := weight / LookupPercent(rpe, 1)

	minDiff := math.Inf(1)
	best := 1
	for r := 1; r <= maxRepSearchCeiling; r++ {
		calcWeight := est1RM * LookupPercent(10, r)
		if diff := math.Abs(calcWeight - weight); diff < minDiff {
			minDiff = diff
			best = r
		}
	}
	return best
}
