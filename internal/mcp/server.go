// Package mcp exposes the estimation engine to MCP clients: assistants can
// ask for warm-up prescriptions, max-rep predictions, the RPE chart, and
// calculation history.
package mcp

import (
	"log/slog"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// New creates an MCP server with all tools and resources registered.
func New(calc Calculator, version string, log *slog.Logger) *server.MCPServer {
	s := server.NewMCPServer("rpecalc", version,
		server.WithToolCapabilities(false),
		server.WithResourceCapabilities(false, false),
		server.WithInstructions("RPE-based strength training calculator. Derive warm-up sets from a planned top set, predict max reps at a weight and RPE, and inspect the RPE percentage chart. RPE runs 5.0-10.0 in 0.5 steps; weights are in kilograms."),
	)

	h := &handlers{calc: calc, log: log}

	s.AddTools(
		server.ServerTool{Tool: toolCalculateWarmupSets, Handler: h.calculateWarmupSets},
		server.ServerTool{Tool: toolPredictMaxReps, Handler: h.predictMaxReps},
		server.ServerTool{Tool: toolGetHistory, Handler: h.getHistory},
	)

	s.AddResources(
		server.ServerResource{Resource: resRPEChart, Handler: h.rpeChart},
	)

	return s
}

// handlers holds dependencies for MCP tool/resource handlers.
type handlers struct {
	calc Calculator
	log  *slog.Logger
}

// --- Resource definitions ---

var resRPEChart = mcp.NewResource(
	"rpecalc://rpe_chart",
	"RPE Percentage Chart",
	mcp.WithResourceDescription("The full RPE chart: percent of 1RM for each charted RPE (7.5-10) and rep count (1-10)"),
	mcp.WithMIMEType("application/json"),
)
