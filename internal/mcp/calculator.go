package mcp

import (
	"context"

	"github.com/meltforce/rpecalc/internal/rpe"
	"github.com/meltforce/rpecalc/internal/storage"
)

// Calculator abstracts the estimation engine for MCP tools. Local computes
// in-process; HTTPClient calls a remote rpecalc server's REST API.
type Calculator interface {
	WarmupSets(ctx context.Context, rpeVal, weight float64, reps int) ([]rpe.WarmupSet, error)
	MaxReps(ctx context.Context, weight, rpeVal float64) (int, error)
	Chart(ctx context.Context) ([]rpe.ChartRow, error)
	History(ctx context.Context, kind string, limit int) ([]storage.Calculation, error)
}

// Local runs calculations in-process. store may be nil; History then
// returns no entries.
type Local struct {
	Est   *rpe.Estimator
	Store *storage.Store
}

// Compile-time check: *Local satisfies Calculator.
var _ Calculator = (*Local)(nil)

func (l *Local) WarmupSets(ctx context.Context, rpeVal, weight float64, reps int) ([]rpe.WarmupSet, error) {
	return l.Est.GenerateWarmups(rpeVal, weight, reps)
}

func (l *Local) MaxReps(ctx context.Context, weight, rpeVal float64) (int, error) {
	return l.Est.PredictMaxReps(weight, rpeVal)
}

func (l *Local) Chart(ctx context.Context) ([]rpe.ChartRow, error) {
	return rpe.Chart(), nil
}

func (l *Local) History(ctx context.Context, kind string, limit int) ([]storage.Calculation, error) {
	if l.Store == nil {
		return []storage.Calculation{}, nil
	}
	return l.Store.QueryHistory(ctx, kind, limit)
}
