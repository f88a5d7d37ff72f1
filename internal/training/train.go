package training

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/Ganesh-0509/Campus-Sync-Edge-Ai/internal/features"
	"github.com/Ganesh-0509/Campus-Sync-Edge-Ai/internal/forest"
	"github.com/Ganesh-0509/Campus-Sync-Edge-Ai/internal/registry"
	"github.com/Ganesh-0509/Campus-Sync-Edge-Ai/internal/types"
)

// DefaultSeed is the training seed when none is requested.
const DefaultSeed = 42

// DefaultTestFraction is the held-out share of the stratified split.
const DefaultTestFraction = 0.20

// ErrEmptyDataset is returned when no records are available to train on.
var ErrEmptyDataset = errors.New("training: no records available, upload resumes or generate synthetic data first")

// Trainer runs the full pipeline: merge, encode, split, fit, evaluate,
// and register.
type Trainer struct {
	Log          *zap.Logger
	Registry     *registry.Registry
	Params       forest.Hyperparams
	Seed         int64
	TestFraction float64
}

// NewTrainer builds a Trainer with production defaults.
func NewTrainer(log *zap.Logger, reg *registry.Registry) *Trainer {
	return &Trainer{
		Log:          log,
		Registry:     reg,
		Params:       forest.DefaultHyperparams(),
		Seed:         DefaultSeed,
		TestFraction: DefaultTestFraction,
	}
}

// Run trains both forests on the merged dataset and saves the bundle under
// version. Returns the metadata that was registered.
func (t *Trainer) Run(ctx context.Context, real, synthetic []types.ResumeRecord, version string) (*registry.Metadata, error) {
	start := time.Now()
	log := t.Log
	log.Info("training started",
		zap.String("version", version),
		zap.Int64("seed", t.Seed),
		zap.Int("n_estimators", t.Params.NumTrees),
		zap.Int("max_depth", t.Params.MaxDepth),
		zap.Int("min_samples_leaf", t.Params.MinSamplesLeaf))

	records := Merge(real, synthetic)
	if len(records) == 0 {
		log.Error("dataset is empty")
		return nil, ErrEmptyDataset
	}
	log.Info("dataset loaded",
		zap.Int("real", len(real)),
		zap.Int("synthetic", len(synthetic)),
		zap.Int("total", len(records)))

	vocab := features.BuildVocabulary(records)
	X, roles, scores, weights := features.BuildMatrix(records, vocab)
	le := FitLabels(roles)
	y := le.Transform(roles)
	log.Info("features engineered",
		zap.Int("vocabulary_size", len(vocab)),
		zap.Int("feature_dim", features.VectorSize(vocab)),
		zap.Strings("roles", le.Classes))

	trainIdx, testIdx := StratifiedSplit(y, t.TestFraction, t.Seed)
	log.Info("stratified split",
		zap.Int("train", len(trainIdx)),
		zap.Int("test", len(testIdx)))

	XTrain, yTrain, sTrain, wTrain := subset(X, y, scores, weights, trainIdx)
	XTest, yTest, sTest, _ := subset(X, y, scores, weights, testIdx)

	// Class balancing applies on top of the real-versus-synthetic weights,
	// classifier only.
	wBalanced := forest.BalancedWeights(yTrain, len(le.Classes), wTrain)

	var clf *forest.Classifier
	var reg *forest.Regressor
	g, _ := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		clf, err = forest.FitClassifier(XTrain, yTrain, wBalanced, len(le.Classes), t.Params, t.Seed)
		if err == nil {
			log.Info("role classifier trained")
		}
		return err
	})
	g.Go(func() error {
		var err error
		reg, err = forest.FitRegressor(XTrain, sTrain, wTrain, t.Params, t.Seed)
		if err == nil {
			log.Info("score regressor trained")
		}
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	eval := types.EvaluationMetrics{
		Classifier: EvaluateClassifier(clf, le, XTest, yTest),
		Regressor:  EvaluateRegressor(reg, XTest, sTest),
	}
	log.Info("evaluation complete",
		zap.Float64("accuracy", eval.Classifier.Accuracy),
		zap.Float64("f1_macro", eval.Classifier.F1Macro),
		zap.Float64("rmse", eval.Regressor.RMSE),
		zap.Float64("r2", eval.Regressor.R2))

	realCount, synthCount := 0, 0
	for _, r := range records {
		if r.DataType == DataTypeReal {
			realCount++
		} else {
			synthCount++
		}
	}

	meta := registry.Metadata{
		Version:          version,
		RunID:            uuid.NewString(),
		TrainedOnRecords: len(records),
		RealRecords:      realCount,
		SyntheticRecords: synthCount,
		Accuracy:         eval.Classifier.Accuracy,
		F1Macro:          eval.Classifier.F1Macro,
		RMSE:             eval.Regressor.RMSE,
		R2:               eval.Regressor.R2,
		Hyperparameters:  t.Params,
		DateTrained:      time.Now().UTC(),
		RandomSeed:       t.Seed,
		VocabularySize:   len(vocab),
		FeatureDim:       features.VectorSize(vocab),
		NumericOrder:     features.NumericFieldOrder,
		Evaluation:       eval,
		Artifacts: map[string]string{
			"role_classifier": registry.ClassifierFile,
			"score_regressor": registry.RegressorFile,
			"vocabulary":      registry.VocabularyFile,
		},
	}

	bundle := registry.Bundle{
		Classifier: registry.ClassifierBundle{Model: clf, Labels: le.Classes},
		Regressor:  reg,
		Vocabulary: vocab,
		Metadata:   meta,
	}
	if err := t.Registry.Save(version, bundle); err != nil {
		return nil, err
	}

	log.Info("training complete",
		zap.String("version", version),
		zap.Duration("elapsed", time.Since(start)))
	return &meta, nil
}

func subset(X [][]float64, y []int, scores, weights []float64, idx []int) ([][]float64, []int, []float64, []float64) {
	subX := make([][]float64, len(idx))
	subY := make([]int, len(idx))
	subS := make([]float64, len(idx))
	subW := make([]float64, len(idx))
	for i, j := range idx {
		subX[i] = X[j]
		subY[i] = y[j]
		subS[i] = scores[j]
		subW[i] = weights[j]
	}
	return subX, subY, subS, subW
}
