// rpecalc-mcp serves the calculator over MCP stdio. By default it computes
// in-process; with -remote it proxies a running rpecalc server so history
// reflects what that server actually served.
package main

import (
	"flag"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/mark3labs/mcp-go/server"
	"github.com/meltforce/rpecalc/internal/mcp"
	"github.com/meltforce/rpecalc/internal/rpe"
	"github.com/meltforce/rpecalc/internal/storage"
)

// Version is set at build time via -ldflags.
var Version = "dev"

func main() {
	remote := flag.String("remote", "", "base URL of a running rpecalc server (empty = compute locally)")
	apiKey := flag.String("api-key", "", "API key for the remote server (or RPECALC_AUTH_API_KEY)")
	dbPath := flag.String("db", "", "local history db path (local mode only; empty disables history)")
	corrected := flag.Bool("corrected", false, "use the corrected max-rep predictor (local mode only)")
	flag.Parse()

	_ = godotenv.Load()

	// Logs go to stderr; stdout carries the MCP stream.
	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo}))

	var calc mcp.Calculator
	if *remote != "" {
		key := *apiKey
		if key == "" {
			key = os.Getenv("RPECALC_AUTH_API_KEY")
		}
		calc = mcp.NewHTTPClient(*remote, key)
		log.Info("rpecalc-mcp starting", "version", Version, "mode", "remote", "url", *remote)
	} else {
		local := &mcp.Local{Est: &rpe.Estimator{Corrected: *corrected}}
		if *dbPath != "" {
			store, err := storage.Open(*dbPath)
			if err != nil {
				log.Error("failed to open history db", "path", *dbPath, "error", err)
				os.Exit(1)
			}
			defer store.Close()
			local.Store = store
		}
		calc = local
		log.Info("rpecalc-mcp starting", "version", Version, "mode", "local", "corrected", *corrected)
	}

	s := mcp.New(calc, Version, log)
	if err := server.ServeStdio(s); err != nil {
		log.Error("mcp server error", "error", err)
		os.Exit(1)
	}
}
