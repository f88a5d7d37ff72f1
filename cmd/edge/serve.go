package main

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Ganesh-0509/Campus-Sync-Edge-Ai/internal/config"
	"github.com/Ganesh-0509/Campus-Sync-Edge-Ai/internal/inference"
	"github.com/Ganesh-0509/Campus-Sync-Edge-Ai/internal/registry"
	"github.com/Ganesh-0509/Campus-Sync-Edge-Ai/internal/scoring"
	"github.com/Ganesh-0509/Campus-Sync-Edge-Ai/internal/server"
	"github.com/Ganesh-0509/Campus-Sync-Edge-Ai/internal/store"
)

var (
	servePort    int
	serveVersion string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long:  `Start an HTTP server exposing the scoring, similarity, and model inference endpoints. Without a trained model the server runs in degraded mode: deterministic scoring and similarity endpoints stay available and /predict returns 503.`,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "Port to listen on (overrides PORT)")
	serveCmd.Flags().StringVar(&serveVersion, "model-version", "", "Model version to serve (overrides MODEL_VERSION, default latest)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(_ *cobra.Command, _ []string) error {
	settings, err := config.LoadSettings()
	if err != nil {
		return err
	}
	if servePort != 0 {
		settings.Port = servePort
	}
	if serveVersion != "" {
		settings.ModelVersion = serveVersion
	}

	log, err := newLogger()
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer log.Sync()

	cfg, err := config.Load(settings.ConfigDir)
	if err != nil {
		return err
	}

	reg := registry.New(settings.ModelsDir)
	predictor, err := loadPredictor(log, reg, settings.ModelVersion)
	if err != nil {
		return err
	}

	srv := server.New(server.Config{
		Addr:      settings.Addr(),
		Log:       log,
		Scorer:    scoring.NewScorer(cfg.Scoring, cfg.Roles),
		Skills:    cfg.Skills,
		Store:     store.NewFileStore(filepath.Join(settings.DataDir, "resume_records.json")),
		Registry:  reg,
		Predictor: predictor,
	})
	return srv.Start()
}

// loadPredictor resolves and loads the model version to serve. An empty
// registry is not fatal; the server starts degraded and /predict reports 503
// until a model is trained.
func loadPredictor(log *zap.Logger, reg *registry.Registry, version string) (*inference.Predictor, error) {
	if version == "" {
		latest, err := reg.Latest()
		if errors.Is(err, registry.ErrNoVersions) {
			log.Warn("no trained model found, starting in degraded mode")
			return nil, nil
		}
		if err != nil {
			return nil, err
		}
		version = latest
	}

	model, err := reg.Load(version)
	if err != nil {
		return nil, fmt.Errorf("failed to load model %s: %w", version, err)
	}
	p, err := inference.NewPredictor(model)
	if err != nil {
		return nil, err
	}
	log.Info("model loaded",
		zap.String("version", p.Version()),
		zap.Int("vocabulary_size", model.Metadata.VocabularySize),
		zap.Float64("accuracy", model.Metadata.Accuracy))
	return p, nil
}
