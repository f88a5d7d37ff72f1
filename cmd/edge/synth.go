package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/Ganesh-0509/Campus-Sync-Edge-Ai/internal/config"
	"github.com/Ganesh-0509/Campus-Sync-Edge-Ai/internal/scoring"
	"github.com/Ganesh-0509/Campus-Sync-Edge-Ai/internal/synth"
	"github.com/Ganesh-0509/Campus-Sync-Edge-Ai/internal/training"
)

var (
	synthCount int
	synthSeed  int64
	synthOut   string
)

var synthCmd = &cobra.Command{
	Use:   "synth",
	Short: "Generate a synthetic resume dataset",
	Long:  `Generate realistic imperfect resume records balanced across roles and write them to a JSON file. The same seed always produces the same dataset.`,
	RunE:  runSynth,
}

func init() {
	synthCmd.Flags().IntVar(&synthCount, "count", 600, "Number of resumes to generate")
	synthCmd.Flags().Int64Var(&synthSeed, "seed", training.DefaultSeed, "Random seed")
	synthCmd.Flags().StringVar(&synthOut, "out", "", "Output file (default DATA_DIR/synthetic_resumes.json)")
	rootCmd.AddCommand(synthCmd)
}

func runSynth(_ *cobra.Command, _ []string) error {
	settings, err := config.LoadSettings()
	if err != nil {
		return err
	}
	cfg, err := config.Load(settings.ConfigDir)
	if err != nil {
		return err
	}

	out := synthOut
	if out == "" {
		out = filepath.Join(settings.DataDir, "synthetic_resumes.json")
	}

	gen := synth.NewGenerator(scoring.NewScorer(cfg.Scoring, cfg.Roles), synthSeed)
	records := gen.Dataset(synthCount)

	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(out), 0o755); err != nil {
		return err
	}
	if err := os.WriteFile(out, data, 0o644); err != nil {
		return fmt.Errorf("failed to write dataset: %w", err)
	}

	fmt.Printf("Wrote %d synthetic resumes to %s\n", len(records), out)
	return nil
}
