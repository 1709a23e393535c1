package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/mark3labs/mcp-go/server"
	"go.uber.org/zap"

	"github.com/peterkuimelis/rawdeal/internal/catalog"
	"github.com/peterkuimelis/rawdeal/internal/config"
	"github.com/peterkuimelis/rawdeal/internal/game"
	rawdealmcp "github.com/peterkuimelis/rawdeal/internal/mcp"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		config.Exitf("Error: %v", err)
	}

	dataDir := flag.String("data", cfg.DataDir, "directory holding cards.json and superstar.json")
	effectsFile := flag.String("effects", cfg.EffectsFile, "card effects YAML file (default: built-in table)")
	logLevel := flag.String("log-level", cfg.LogLevel, "diagnostics level: debug, info, warn, error")
	flag.Parse()

	cfg.DataDir = *dataDir
	cfg.EffectsFile = *effectsFile
	cfg.LogLevel = *logLevel

	// Logs go to stderr; stdout carries the protocol.
	diag, err := config.NewLogger(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		config.Exitf("Error: init logger: %v", err)
	}
	defer func() { _ = diag.Sync() }()

	cat, err := catalog.Load(cfg.CardsPath(), cfg.SuperstarsPath())
	if err != nil {
		config.Exitf("Error: load catalog: %v", err)
	}
	if cfg.EffectsFile != "" {
		effects, err := game.LoadEffects(cfg.EffectsFile)
		if err != nil {
			config.Exitf("Error: load effects: %v", err)
		}
		rawdealmcp.SetEffects(effects)
	}
	rawdealmcp.SetCatalog(cat)
	rawdealmcp.SetLogger(diag)
	diag.Info("catalog loaded", zap.Int("cards", len(cat.Titles())))

	s := server.NewMCPServer("rawdeal", "1.0.0")
	rawdealmcp.RegisterTools(s)

	if err := server.ServeStdio(s); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
