package mcp

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
)

// --- Tool definitions ---

var toolCalculateWarmupSets = mcp.NewTool("calculate_warmup_sets",
	mcp.WithDescription("Calculate the four warm-up sets for a planned top set. Returns set number, weight (snapped to 2.5 kg), reps, and a description for each ramp-up set."),
	mcp.WithNumber("rpe", mcp.Required(), mcp.Description("Top set RPE, 5.0-10.0 in 0.5 steps")),
	mcp.WithNumber("weight", mcp.Required(), mcp.Description("Top set weight in kg, must be positive")),
	mcp.WithNumber("reps", mcp.Required(), mcp.Description("Top set rep count, 1-20")),
)

var toolPredictMaxReps = mcp.NewTool("predict_max_reps",
	mcp.WithDescription("Predict the maximum repetitions achievable at a given weight and RPE, as an integer between 1 and 15."),
	mcp.WithNumber("weight", mcp.Required(), mcp.Description("Weight in kg, must be positive")),
	mcp.WithNumber("rpe", mcp.Required(), mcp.Description("RPE, 5.0-10.0 in 0.5 steps")),
)

var toolGetHistory = mcp.NewTool("get_history",
	mcp.WithDescription("Retrieve recently served calculations, newest first. Each entry holds the inputs and the JSON result that was returned."),
	mcp.WithString("kind", mcp.Description("Filter by calculation kind"), mcp.Enum("warmup", "max_reps")),
	mcp.WithNumber("limit", mcp.Description("Maximum entries to return. Defaults to 50.")),
)

// --- Tool handlers ---

func (h *handlers) calculateWarmupSets(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	rpeVal, err := req.RequireFloat("rpe")
	if err != nil {
		return mcp.NewToolResultError("rpe parameter is required"), nil
	}
	weight, err := req.RequireFloat("weight")
	if err != nil {
		return mcp.NewToolResultError("weight parameter is required"), nil
	}
	reps, err := req.RequireInt("reps")
	if err != nil {
		return mcp.NewToolResultError("reps parameter is required"), nil
	}

	sets, err := h.calc.WarmupSets(ctx, rpeVal, weight, reps)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result, err := mcp.NewToolResultJSON(map[string]any{"warmup_sets": sets})
	if err != nil {
		h.log.Error("mcp calculate_warmup_sets: encode", "error", err)
		return mcp.NewToolResultError("encoding result failed"), nil
	}
	return result, nil
}

func (h *handlers) predictMaxReps(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	weight, err := req.RequireFloat("weight")
	if err != nil {
		return mcp.NewToolResultError("weight parameter is required"), nil
	}
	rpeVal, err := req.RequireFloat("rpe")
	if err != nil {
		return mcp.NewToolResultError("rpe parameter is required"), nil
	}

	reps, err := h.calc.MaxReps(ctx, weight, rpeVal)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result, err := mcp.NewToolResultJSON(map[string]any{"predicted_max_reps": reps})
	if err != nil {
		h.log.Error("mcp predict_max_reps: encode", "error", err)
		return mcp.NewToolResultError("encoding result failed"), nil
	}
	return result, nil
}

func (h *handlers) getHistory(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	kind := req.GetString("kind", "")
	limit := req.GetInt("limit", 0)

	entries, err := h.calc.History(ctx, kind, limit)
	if err != nil {
		h.log.Error("mcp get_history", "error", err)
		return mcp.NewToolResultError("history query failed: " + err.Error()), nil
	}

	result, err := mcp.NewToolResultJSON(map[string]any{"history": entries})
	if err != nil {
		h.log.Error("mcp get_history: encode", "error", err)
		return mcp.NewToolResultError("encoding result failed"), nil
	}
	return result, nil
}
