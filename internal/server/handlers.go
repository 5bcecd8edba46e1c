package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/meltforce/rpecalc/internal/rpe"
	"github.com/meltforce/rpecalc/internal/storage"
)

// WarmupRequest is the POST /api/calculate-warmup payload. Pointer fields
// distinguish absent keys from explicit zeros; absence is a schema error
// (422), out-of-range values are calculation errors (400).
type WarmupRequest struct {
	RPE    *float64 `json:"rpe"`
	Weight *float64 `json:"weight"`
	Reps   *int     `json:"reps"`
}

// WarmupResponse wraps the generated sets.
type WarmupResponse struct {
	WarmupSets []rpe.WarmupSet `json:"warmup_sets"`
}

// MaxRepsRequest is the POST /api/max-reps payload.
type MaxRepsRequest struct {
	Weight *float64 `json:"weight"`
	RPE    *float64 `json:"rpe"`
}

// MaxRepsResponse carries the predicted rep count.
type MaxRepsResponse struct {
	PredictedMaxReps int `json:"predicted_max_reps"`
}

func (s *Server) handleCalculateWarmup(w http.ResponseWriter, r *http.Request) {
	var req WarmupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusUnprocessableEntity, map[string]string{"error": "invalid JSON: " + err.Error()})
		return
	}
	if req.RPE == nil || req.Weight == nil || req.Reps == nil {
		writeJSON(w, http.StatusUnprocessableEntity, map[string]string{"error": "rpe, weight, and reps are required"})
		return
	}

	sets, err := s.est.GenerateWarmups(*req.RPE, *req.Weight, *req.Reps)
	if err != nil {
		s.writeCoreError(w, err)
		return
	}

	resp := WarmupResponse{WarmupSets: sets}
	s.record(r, storage.KindWarmup, *req.RPE, *req.Weight, req.Reps, resp)
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleMaxReps(w http.ResponseWriter, r *http.Request) {
	var req MaxRepsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusUnprocessableEntity, map[string]string{"error": "invalid JSON: " + err.Error()})
		return
	}
	if req.Weight == nil || req.RPE == nil {
		writeJSON(w, http.StatusUnprocessableEntity, map[string]string{"error": "weight and rpe are required"})
		return
	}

	reps, err := s.est.PredictMaxReps(*req.Weight, *req.RPE)
	if err != nil {
		s.writeCoreError(w, err)
		return
	}

	resp := MaxRepsResponse{PredictedMaxReps: reps}
	s.record(r, storage.KindMaxReps, *req.RPE, *req.Weight, nil, resp)
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleChart(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"chart": rpe.Chart()})
}

func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"error": "history disabled"})
		return
	}

	kind := r.URL.Query().Get("kind")
	if kind != "" && kind != storage.KindWarmup && kind != storage.KindMaxReps {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "kind must be warmup or max_reps"})
		return
	}

	limit := 0
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "limit must be a positive integer"})
			return
		}
		limit = n
	}

	entries, err := s.store.QueryHistory(r.Context(), kind, limit)
	if err != nil {
		s.log.Error("history query failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"history": entries})
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"error": "history disabled"})
		return
	}

	counts, err := s.store.CountByKind(r.Context())
	if err != nil {
		s.log.Error("stats query failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"calculations": counts})
}

func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok", "version": s.version})
}

// writeCoreError maps engine errors to status codes: constraint violations
// are 400, anything else (unreachable today) is 500.
func (s *Server) writeCoreError(w http.ResponseWriter, err error) {
	if errors.Is(err, rpe.ErrInvalidInput) {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	s.log.Error("calculation failed", "error", err)
	writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
}

// record logs the calculation to history. Failures are logged and
// swallowed: history must never fail a request.
func (s *Server) record(r *http.Request, kind string, rpeVal, weight float64, reps *int, result any) {
	if s.store == nil {
		return
	}
	if _, err := s.store.RecordCalculation(r.Context(), kind, rpeVal, weight, reps, result); err != nil {
		s.log.Warn("recording calculation failed", "kind", kind, "error", err)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
