package main

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Ganesh-0509/Campus-Sync-Edge-Ai/internal/config"
	"github.com/Ganesh-0509/Campus-Sync-Edge-Ai/internal/registry"
	"github.com/Ganesh-0509/Campus-Sync-Edge-Ai/internal/scoring"
	"github.com/Ganesh-0509/Campus-Sync-Edge-Ai/internal/store"
	"github.com/Ganesh-0509/Campus-Sync-Edge-Ai/internal/synth"
	"github.com/Ganesh-0509/Campus-Sync-Edge-Ai/internal/training"
	"github.com/Ganesh-0509/Campus-Sync-Edge-Ai/internal/types"
)

var (
	trainVersion    string
	trainSeed       int64
	trainSynthCount int
	trainTrees      int
	trainDepth      int
	trainMinLeaf    int
)

var trainCmd = &cobra.Command{
	Use:   "train",
	Short: "Train a new model version",
	Long:  `Train the role classifier and score regressor on stored resume records merged with generated synthetic data, then save the result as a new immutable model version.`,
	RunE:  runTrain,
}

func init() {
	trainCmd.Flags().StringVar(&trainVersion, "version", "", "Version to save as (default next after latest)")
	trainCmd.Flags().Int64Var(&trainSeed, "seed", training.DefaultSeed, "Random seed for splitting and fitting")
	trainCmd.Flags().IntVar(&trainSynthCount, "synthetic-count", 600, "Synthetic resumes to generate (0 disables)")
	trainCmd.Flags().IntVar(&trainTrees, "trees", 0, "Trees per forest (default 300)")
	trainCmd.Flags().IntVar(&trainDepth, "max-depth", 0, "Maximum tree depth (default 20)")
	trainCmd.Flags().IntVar(&trainMinLeaf, "min-samples-leaf", 0, "Minimum samples per leaf (default 3)")
	rootCmd.AddCommand(trainCmd)
}

func runTrain(cmd *cobra.Command, _ []string) error {
	settings, err := config.LoadSettings()
	if err != nil {
		return err
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

	records := store.NewFileStore(filepath.Join(settings.DataDir, "resume_records.json"))
	real, err := records.List(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to load resume records: %w", err)
	}

	var synthetic []types.ResumeRecord
	if trainSynthCount > 0 {
		gen := synth.NewGenerator(scoring.NewScorer(cfg.Scoring, cfg.Roles), trainSeed)
		synthetic = gen.Dataset(trainSynthCount)
		log.Info("synthetic data generated", zap.Int("count", len(synthetic)))
	}

	reg := registry.New(settings.ModelsDir)
	version := trainVersion
	if version == "" {
		if version, err = nextVersion(reg); err != nil {
			return err
		}
	}

	trainer := training.NewTrainer(log, reg)
	trainer.Seed = trainSeed
	if trainTrees > 0 {
		trainer.Params.NumTrees = trainTrees
	}
	if trainDepth > 0 {
		trainer.Params.MaxDepth = trainDepth
	}
	if trainMinLeaf > 0 {
		trainer.Params.MinSamplesLeaf = trainMinLeaf
	}

	meta, err := trainer.Run(cmd.Context(), real, synthetic, version)
	if err != nil {
		return err
	}

	fmt.Printf("Saved %s: accuracy=%.4f f1_macro=%.4f rmse=%.4f r2=%.4f (%d records)\n",
		meta.Version, meta.Accuracy, meta.F1Macro, meta.RMSE, meta.R2, meta.TrainedOnRecords)
	return nil
}

// nextVersion picks v1 for an empty registry, otherwise increments the
// numeric suffix of the latest version.
func nextVersion(reg *registry.Registry) (string, error) {
	versions, err := reg.Versions()
	if err != nil {
		return "", err
	}
	if len(versions) == 0 {
		return "v1", nil
	}
	latest := versions[len(versions)-1]
	n, err := strconv.Atoi(strings.TrimPrefix(latest, "v"))
	if err != nil {
		return "", fmt.Errorf("cannot derive next version from %q, pass --version", latest)
	}
	return fmt.Sprintf("v%d", n+1), nil
}
