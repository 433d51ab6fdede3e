// Command extract runs the full pipeline over a directory of MCB bundles:
// classification, skeleton posing, glTF export, structure sidecars and an
// overall manifest, with optional WebP previews.
package main

import (
	"flag"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"

	"pds-mcb-extract/internal/batch"
	"pds-mcb-extract/internal/catalog"
	"pds-mcb-extract/internal/config"
)

func main() {
	configFile := flag.String("config", "", "path to config file (yaml/json/toml)")
	inputDir := flag.String("input", "", "directory of .mcb/.mcb.bin files (overrides config)")
	outputDir := flag.String("output", "", "output directory (overrides config)")
	workers := flag.Int("workers", 0, "worker goroutines (overrides config)")
	previews := flag.Bool("previews", false, "also render WebP previews")
	testN := flag.Int("test", 0, "process only the first N assets")
	flag.Parse()

	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

	cfg, err := config.Load(*configFile)
	if err != nil {
		log.Fatal().Err(err).Msg("config load failed")
	}
	if *inputDir != "" {
		cfg.InputDir = *inputDir
	}
	if *outputDir != "" {
		cfg.OutputDir = *outputDir
	}
	if *workers > 0 {
		cfg.Workers = *workers
	}

	assets, err := catalog.Scan(cfg.InputDir)
	if err != nil {
		log.Fatal().Err(err).Msg("scan failed")
	}
	if *testN > 0 && *testN < len(assets) {
		assets = assets[:*testN]
	}
	if len(assets) == 0 {
		log.Warn().Str("dir", cfg.InputDir).Msg("no bundle files found")
		return
	}

	log.Info().
		Int("assets", len(assets)).
		Int("workers", cfg.Workers).
		Str("output", cfg.OutputDir).
		Msg("starting extraction")

	start := time.Now()
	results := batch.Run(batch.Config{
		OutputDir:     cfg.OutputDir,
		Workers:       cfg.Workers,
		PoseTolerance: cfg.PoseScaleTolerance,
		Previews:      *previews,
		RenderSize:    cfg.RenderSize,
		Supersample:   cfg.Supersample,
		WebPQuality:   cfg.WebPQuality,
		Log:           log,
	}, assets)

	success, failed := 0, 0
	for _, r := range results {
		if r.Success {
			success++
		} else {
			failed++
			log.Error().Str("asset", r.Name).Str("error", r.Error).Msg("extraction failed")
		}
	}

	manifestPath := filepath.Join(cfg.OutputDir, "manifest.json")
	if err := batch.WriteManifest(manifestPath, results); err != nil {
		log.Error().Err(err).Msg("manifest write failed")
	}

	log.Info().
		Int("ok", success).
		Int("failed", failed).
		Dur("elapsed", time.Since(start)).
		Msg("done")

	if failed > 0 {
		os.Exit(1)
	}
}
