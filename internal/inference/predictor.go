// Package inference serves predictions from a loaded model version. A
// Predictor wraps one immutable registry model; swapping versions means
// building a new Predictor, never mutating process globals.
package inference

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/Ganesh-0509/Campus-Sync-Edge-Ai/internal/features"
	"github.com/Ganesh-0509/Campus-Sync-Edge-Ai/internal/registry"
	"github.com/Ganesh-0509/Campus-Sync-Edge-Ai/internal/types"
)

// WeakThreshold marks any numeric input below this value as a weak area.
const WeakThreshold = 50.0

// maxWeakAreas caps the weak area list.
const maxWeakAreas = 3

// Predictor answers prediction requests against one model version.
type Predictor struct {
	model *registry.Model
}

// NewPredictor validates a loaded model against the serve-time feature
// contract before accepting it. Training and serving must agree on both
// the vector size and the numeric field order; a mismatch here means the
// artifacts were produced by an incompatible pipeline.
func NewPredictor(model *registry.Model) (*Predictor, error) {
	wantDim := features.VectorSize(model.Vocabulary)
	if model.Metadata.FeatureDim != wantDim {
		return nil, fmt.Errorf(
			"inference: model %s feature dim %d does not match vocabulary-derived dim %d",
			model.Metadata.Version, model.Metadata.FeatureDim, wantDim)
	}
	if model.Classifier == nil || model.Classifier.NumFeatures != wantDim {
		return nil, fmt.Errorf("inference: classifier feature count does not match vocabulary for model %s", model.Metadata.Version)
	}
	if model.Regressor == nil || model.Regressor.NumFeatures != wantDim {
		return nil, fmt.Errorf("inference: regressor feature count does not match vocabulary for model %s", model.Metadata.Version)
	}
	if len(model.Metadata.NumericOrder) > 0 {
		if len(model.Metadata.NumericOrder) != len(features.NumericFieldOrder) {
			return nil, fmt.Errorf("inference: model %s numeric field count mismatch", model.Metadata.Version)
		}
		for i, field := range model.Metadata.NumericOrder {
			if field != features.NumericFieldOrder[i] {
				return nil, fmt.Errorf(
					"inference: model %s numeric field order diverges at %d: %q vs %q",
					model.Metadata.Version, i, field, features.NumericFieldOrder[i])
			}
		}
	}
	return &Predictor{model: model}, nil
}

// Version returns the served model version.
func (p *Predictor) Version() string {
	return p.model.Metadata.Version
}

// Metadata returns the served model's training summary.
func (p *Predictor) Metadata() registry.Metadata {
	return p.model.Metadata
}

// Transform builds the feature vector for a request: binary skill flags in
// vocabulary order followed by the five numeric inputs normalized to 0-1.
func (p *Predictor) Transform(req types.PredictionRequest) []float64 {
	vec := features.Encode(req.NormalizedSkills(), p.model.Vocabulary)
	return append(vec, features.RequestNumerics(req)...)
}

// Predict runs the full inference pipeline: role classification with
// probability-based confidence, score regression clamped to 0-100, and
// weak area detection.
func (p *Predictor) Predict(req types.PredictionRequest) types.PredictionResponse {
	start := time.Now()
	x := p.Transform(req)

	probs := p.model.Classifier.PredictProba(x)
	best := 0
	for i, prob := range probs {
		if prob > probs[best] {
			best = i
		}
	}
	role := ""
	if best < len(p.model.Labels) {
		role = p.model.Labels[best]
	}

	rawScore := p.model.Regressor.Predict(x)
	score := math.Round(clamp(rawScore, 0, 100)*10) / 10

	return types.PredictionResponse{
		PredictedRole:   role,
		Confidence:      math.Round(probs[best]*10000) / 10000,
		ResumeScore:     score,
		WeakAreas:       p.weakAreas(req),
		ModelVersion:    p.model.Metadata.Version,
		InferenceTimeMs: math.Round(float64(time.Since(start).Microseconds())/10) / 100,
	}
}

// weakAreas flags numeric inputs under the threshold. When every input
// looks healthy it falls back to the three numeric features the classifier
// found least informative, the areas with the least signal to stand on.
func (p *Predictor) weakAreas(req types.PredictionRequest) []string {
	values := features.RequestNumerics(req)

	weak := make([]string, 0, maxWeakAreas)
	for i, field := range features.NumericFieldOrder {
		if values[i]*100 < WeakThreshold {
			weak = append(weak, features.NumericDisplayNames[field])
		}
	}

	if len(weak) == 0 {
		importances := p.model.Classifier.FeatureImportances()
		numeric := importances[len(p.model.Vocabulary):]

		type ranked struct {
			imp   float64
			field string
		}
		order := make([]ranked, len(features.NumericFieldOrder))
		for i, field := range features.NumericFieldOrder {
			imp := 0.0
			if i < len(numeric) {
				imp = numeric[i]
			}
			order[i] = ranked{imp: imp, field: field}
		}
		sort.SliceStable(order, func(a, b int) bool { return order[a].imp < order[b].imp })
		for _, r := range order[:maxWeakAreas] {
			weak = append(weak, features.NumericDisplayNames[r.field])
		}
	}

	if len(weak) > maxWeakAreas {
		weak = weak[:maxWeakAreas]
	}
	return weak
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
