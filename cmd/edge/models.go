package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Ganesh-0509/Campus-Sync-Edge-Ai/internal/config"
	"github.com/Ganesh-0509/Campus-Sync-Edge-Ai/internal/registry"
)

var modelsCmd = &cobra.Command{
	Use:   "models",
	Short: "List trained model versions",
	RunE:  runModels,
}

func init() {
	rootCmd.AddCommand(modelsCmd)
}

func runModels(_ *cobra.Command, _ []string) error {
	settings, err := config.LoadSettings()
	if err != nil {
		return err
	}

	reg := registry.New(settings.ModelsDir)
	versions, err := reg.Versions()
	if err != nil {
		return err
	}
	if len(versions) == 0 {
		fmt.Println("No trained models found. Run: edge train")
		return nil
	}

	for _, v := range versions {
		meta, err := reg.LoadMetadata(v)
		if err != nil {
			return err
		}
		fmt.Printf("%-6s trained=%s records=%d accuracy=%.4f f1_macro=%.4f rmse=%.4f\n",
			v, meta.DateTrained.Format("2006-01-02"), meta.TrainedOnRecords,
			meta.Accuracy, meta.F1Macro, meta.RMSE)
	}
	return nil
}
