// Package training implements the model training pipeline: dataset merging,
// label encoding, the stratified split, held-out evaluation, and the
// orchestrator that fits both forests and registers the artifacts.
package training

import (
	"math/rand"
	"sort"

	"github.com/Ganesh-0509/Campus-Sync-Edge-Ai/internal/types"
)

// Data type tags recorded on merged training records.
const (
	DataTypeReal      = "real"
	DataTypeSynthetic = "synthetic"
)

// clean normalizes one record for training: skills lowercased and
// deduplicated, role defaulted, weight and source tag applied.
func clean(r types.ResumeRecord, weight float64, dataType string) types.ResumeRecord {
	r.DetectedSkills = types.NormalizeSkills(r.DetectedSkills)
	if r.Role == "" {
		r.Role = "Unknown"
	}
	r.SampleWeight = weight
	r.DataType = dataType
	return r
}

// Merge combines real and synthetic records into one training set, applying
// the source weights. Real records carry more weight than synthetic ones.
func Merge(real, synthetic []types.ResumeRecord) []types.ResumeRecord {
	combined := make([]types.ResumeRecord, 0, len(real)+len(synthetic))
	for _, r := range real {
		combined = append(combined, clean(r, types.WeightReal, DataTypeReal))
	}
	for _, r := range synthetic {
		combined = append(combined, clean(r, types.WeightSynthetic, DataTypeSynthetic))
	}
	return combined
}

// LabelEncoder maps role names to dense class indices. Classes are sorted
// so the encoding is independent of record order.
type LabelEncoder struct {
	Classes []string `json:"classes"`
	index   map[string]int
}

// FitLabels builds an encoder over the distinct roles in y.
func FitLabels(roles []string) *LabelEncoder {
	seen := make(map[string]bool)
	classes := make([]string, 0)
	for _, r := range roles {
		if !seen[r] {
			seen[r] = true
			classes = append(classes, r)
		}
	}
	sort.Strings(classes)
	return newEncoder(classes)
}

func newEncoder(classes []string) *LabelEncoder {
	index := make(map[string]int, len(classes))
	for i, c := range classes {
		index[c] = i
	}
	return &LabelEncoder{Classes: classes, index: index}
}

// Transform encodes every role to its class index. Roles outside the
// fitted classes map to -1.
func (e *LabelEncoder) Transform(roles []string) []int {
	if e.index == nil {
		e.index = newEncoder(e.Classes).index
	}
	out := make([]int, len(roles))
	for i, r := range roles {
		idx, ok := e.index[r]
		if !ok {
			idx = -1
		}
		out[i] = idx
	}
	return out
}

// Decode returns the role name for a class index.
func (e *LabelEncoder) Decode(idx int) string {
	if idx < 0 || idx >= len(e.Classes) {
		return ""
	}
	return e.Classes[idx]
}

// StratifiedSplit partitions sample indices into train and test sets,
// holding out testFraction of each class. Classes too small to spare a
// test sample stay entirely in the train set. The seed fully determines
// the partition.
func StratifiedSplit(y []int, testFraction float64, seed int64) (trainIdx, testIdx []int) {
	byClass := make(map[int][]int)
	for i, cls := range y {
		byClass[cls] = append(byClass[cls], i)
	}
	classes := make([]int, 0, len(byClass))
	for cls := range byClass {
		classes = append(classes, cls)
	}
	sort.Ints(classes)

	rng := rand.New(rand.NewSource(seed))
	for _, cls := range classes {
		indices := byClass[cls]
		rng.Shuffle(len(indices), func(a, b int) {
			indices[a], indices[b] = indices[b], indices[a]
		})

		nTest := int(float64(len(indices))*testFraction + 0.5)
		if nTest >= len(indices) {
			nTest = len(indices) - 1
		}
		if nTest < 0 {
			nTest = 0
		}
		testIdx = append(testIdx, indices[:nTest]...)
		trainIdx = append(trainIdx, indices[nTest:]...)
	}
	sort.Ints(trainIdx)
	sort.Ints(testIdx)
	return trainIdx, testIdx
}
