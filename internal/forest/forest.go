// Package forest implements weighted random forests over binary skill
// vectors: a classifier with Gini-split trees and probability output, and a
// variance-split regressor. Trees serialize to JSON so trained models
// round-trip through the model registry without a separate format.
package forest

import (
	"errors"
	"math"
	"math/rand"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// Hyperparams control forest growth. JSON tags match the training metadata
// stored alongside each model version.
type Hyperparams struct {
	NumTrees       int `json:"n_estimators"`
	MaxDepth       int `json:"max_depth"`
	MinSamplesLeaf int `json:"min_samples_leaf"`
}

// DefaultHyperparams returns the production training defaults.
func DefaultHyperparams() Hyperparams {
	return Hyperparams{NumTrees: 300, MaxDepth: 20, MinSamplesLeaf: 3}
}

func (h Hyperparams) validate() error {
	if h.NumTrees <= 0 {
		return errors.New("forest: n_estimators must be positive")
	}
	if h.MaxDepth <= 0 {
		return errors.New("forest: max_depth must be positive")
	}
	if h.MinSamplesLeaf <= 0 {
		return errors.New("forest: min_samples_leaf must be positive")
	}
	return nil
}

// Classifier is a trained random forest classifier. The zero value is not
// usable; construct via FitClassifier or JSON-decode a registry artifact.
type Classifier struct {
	Trees       []*node     `json:"trees"`
	NumClasses  int         `json:"num_classes"`
	NumFeatures int         `json:"num_features"`
	Params      Hyperparams `json:"params"`
	Importances []float64   `json:"importances"`
}

// FitClassifier trains a forest on X with integer class labels y in
// [0, numClasses) and per-sample weights w. Each tree grows on a bootstrap
// sample with sqrt(features) candidates per split. The seed fully
// determines the result; trees build in parallel but land in fixed slots.
func FitClassifier(X [][]float64, y []int, w []float64, numClasses int, params Hyperparams, seed int64) (*Classifier, error) {
	if err := params.validate(); err != nil {
		return nil, err
	}
	if len(X) == 0 {
		return nil, errors.New("forest: empty training set")
	}
	if len(y) != len(X) || len(w) != len(X) {
		return nil, errors.New("forest: X, y, and w must have equal length")
	}

	numFeatures := len(X[0])
	mtry := int(math.Sqrt(float64(numFeatures)))
	if mtry < 1 {
		mtry = 1
	}

	clf := &Classifier{
		Trees:       make([]*node, params.NumTrees),
		NumClasses:  numClasses,
		NumFeatures: numFeatures,
		Params:      params,
	}
	perTree := make([][]float64, params.NumTrees)

	// Derive every tree seed up front so parallel growth stays reproducible.
	master := rand.New(rand.NewSource(seed))
	seeds := make([]int64, params.NumTrees)
	for i := range seeds {
		seeds[i] = master.Int63()
	}

	var g errgroup.Group
	g.SetLimit(runtime.GOMAXPROCS(0))
	for t := 0; t < params.NumTrees; t++ {
		t := t
		g.Go(func() error {
			rng := rand.New(rand.NewSource(seeds[t]))
			grower := &classGrower{
				X:           X,
				y:           y,
				w:           w,
				numClasses:  numClasses,
				maxDepth:    params.MaxDepth,
				minLeaf:     params.MinSamplesLeaf,
				mtry:        mtry,
				rng:         rng,
				importances: make([]float64, numFeatures),
			}
			clf.Trees[t] = grower.grow(bootstrap(len(X), rng), 0)
			perTree[t] = grower.importances
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	clf.Importances = averageImportances(perTree, numFeatures)
	return clf, nil
}

// PredictProba returns the class probability distribution for one sample,
// averaged over all trees.
func (c *Classifier) PredictProba(x []float64) []float64 {
	probs := make([]float64, c.NumClasses)
	for _, tree := range c.Trees {
		leaf := tree.descend(x)
		for i, p := range leaf.Dist {
			probs[i] += p
		}
	}
	n := float64(len(c.Trees))
	for i := range probs {
		probs[i] /= n
	}
	return probs
}

// Predict returns the most probable class index for one sample. Ties break
// toward the lower class index.
func (c *Classifier) Predict(x []float64) int {
	probs := c.PredictProba(x)
	best := 0
	for i, p := range probs {
		if p > probs[best] {
			best = i
		}
	}
	return best
}

// FeatureImportances returns the normalized mean impurity decrease per
// feature. The slice sums to 1 unless no split ever occurred.
func (c *Classifier) FeatureImportances() []float64 {
	out := make([]float64, len(c.Importances))
	copy(out, c.Importances)
	return out
}

// Regressor is a trained random forest regressor.
type Regressor struct {
	Trees       []*node     `json:"trees"`
	NumFeatures int         `json:"num_features"`
	Params      Hyperparams `json:"params"`
	Importances []float64   `json:"importances"`
}

// FitRegressor trains a forest on X with continuous targets y and
// per-sample weights w. Every feature is a split candidate, matching the
// usual regression-forest default.
func FitRegressor(X [][]float64, y, w []float64, params Hyperparams, seed int64) (*Regressor, error) {
	if err := params.validate(); err != nil {
		return nil, err
	}
	if len(X) == 0 {
		return nil, errors.New("forest: empty training set")
	}
	if len(y) != len(X) || len(w) != len(X) {
		return nil, errors.New("forest: X, y, and w must have equal length")
	}

	numFeatures := len(X[0])
	reg := &Regressor{
		Trees:       make([]*node, params.NumTrees),
		NumFeatures: numFeatures,
		Params:      params,
	}
	perTree := make([][]float64, params.NumTrees)

	master := rand.New(rand.NewSource(seed))
	seeds := make([]int64, params.NumTrees)
	for i := range seeds {
		seeds[i] = master.Int63()
	}

	var g errgroup.Group
	g.SetLimit(runtime.GOMAXPROCS(0))
	for t := 0; t < params.NumTrees; t++ {
		t := t
		g.Go(func() error {
			rng := rand.New(rand.NewSource(seeds[t]))
			grower := &regGrower{
				X:           X,
				y:           y,
				w:           w,
				maxDepth:    params.MaxDepth,
				minLeaf:     params.MinSamplesLeaf,
				mtry:        0,
				rng:         rng,
				importances: make([]float64, numFeatures),
			}
			reg.Trees[t] = grower.grow(bootstrap(len(X), rng), 0)
			perTree[t] = grower.importances
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	reg.Importances = averageImportances(perTree, numFeatures)
	return reg, nil
}

// Predict returns the mean tree prediction for one sample.
func (r *Regressor) Predict(x []float64) float64 {
	sum := 0.0
	for _, tree := range r.Trees {
		sum += tree.descend(x).Value
	}
	return sum / float64(len(r.Trees))
}

// FeatureImportances returns the normalized mean impurity decrease per
// feature.
func (r *Regressor) FeatureImportances() []float64 {
	out := make([]float64, len(r.Importances))
	copy(out, r.Importances)
	return out
}

// BalancedWeights scales base sample weights so each class contributes
// equally, the standard n/(k*count) balancing. Base weights multiply the
// class factor, preserving the real-versus-synthetic weighting.
func BalancedWeights(y []int, numClasses int, base []float64) []float64 {
	counts := make([]float64, numClasses)
	for _, cls := range y {
		counts[cls]++
	}
	n := float64(len(y))
	k := float64(numClasses)

	out := make([]float64, len(y))
	for i, cls := range y {
		factor := 1.0
		if counts[cls] > 0 {
			factor = n / (k * counts[cls])
		}
		out[i] = base[i] * factor
	}
	return out
}

// bootstrap draws n sample indices with replacement.
func bootstrap(n int, rng *rand.Rand) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = rng.Intn(n)
	}
	return out
}

// averageImportances normalizes each tree's importance vector then averages
// and renormalizes, so every tree votes equally regardless of depth.
func averageImportances(perTree [][]float64, numFeatures int) []float64 {
	avg := make([]float64, numFeatures)
	for _, imp := range perTree {
		total := 0.0
		for _, v := range imp {
			total += v
		}
		if total == 0 {
			continue
		}
		for f, v := range imp {
			avg[f] += v / total
		}
	}
	total := 0.0
	for _, v := range avg {
		total += v
	}
	if total > 0 {
		for f := range avg {
			avg[f] /= total
		}
	}
	return avg
}
