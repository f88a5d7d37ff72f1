// Package features is the single data-encoding contract shared by training
// and inference. A feature vector is |vocabulary| binary skill flags, in
// vocabulary order, followed by exactly five normalized numeric fields in
// the order fixed by NumericFieldOrder. Both the training pipeline and the
// serving path build vectors through this package only; the loaded artifact's
// recorded order is asserted against NumericFieldOrder before serving.
package features

import (
	"sort"
	"strings"

	"github.com/Ganesh-0509/Campus-Sync-Edge-Ai/internal/types"
)

// NumNumericFeatures is the count of structural numeric fields appended
// after the binary skill flags.
const NumNumericFeatures = 5

// NumericFieldOrder fixes the position of each numeric field inside a
// feature vector. Changing this order invalidates every persisted artifact.
var NumericFieldOrder = []string{
	"core_coverage",
	"optional_coverage",
	"project_score",
	"ats_score",
	"structure_score",
}

// NumericDisplayNames maps numeric field identifiers to the labels shown in
// weak-area diagnostics.
var NumericDisplayNames = map[string]string{
	"core_coverage":     "Core Coverage",
	"optional_coverage": "Optional Coverage",
	"project_score":     "Project Score",
	"ats_score":         "ATS Score",
	"structure_score":   "Structure Score",
}

// BuildVocabulary collects every unique skill across the records and returns
// them sorted. Sorting makes the feature order deterministic and
// reproducible for a given record set.
func BuildVocabulary(records []types.ResumeRecord) []string {
	seen := make(map[string]bool)
	for _, r := range records {
		for _, s := range r.DetectedSkills {
			clean := strings.ToLower(strings.TrimSpace(s))
			if clean != "" {
				seen[clean] = true
			}
		}
	}

	vocab := make([]string, 0, len(seen))
	for s := range seen {
		vocab = append(vocab, s)
	}
	sort.Strings(vocab)
	return vocab
}

// Encode binary-encodes a skill list against the vocabulary: position i is 1
// iff vocabulary[i] is present in the lowercased, trimmed skill set.
func Encode(skills []string, vocab []string) []float64 {
	skillSet := make(map[string]bool, len(skills))
	for _, s := range skills {
		skillSet[strings.ToLower(strings.TrimSpace(s))] = true
	}

	vec := make([]float64, len(vocab))
	for i, v := range vocab {
		if skillSet[v] {
			vec[i] = 1
		}
	}
	return vec
}

// RecordNumerics extracts a record's five numeric fields, normalized to 0-1,
// in NumericFieldOrder.
func RecordNumerics(r types.ResumeRecord) []float64 {
	return []float64{
		r.CoreCoveragePercent / 100.0,
		r.OptionalCoveragePercent / 100.0,
		r.ProjectScorePercent / 100.0,
		r.ATSScorePercent / 100.0,
		r.StructureScorePercent / 100.0,
	}
}

// RequestNumerics extracts a prediction request's numeric fields, normalized
// to 0-1, in NumericFieldOrder.
func RequestNumerics(req types.PredictionRequest) []float64 {
	return []float64{
		req.CoreCoverage / 100.0,
		req.OptionalCoverage / 100.0,
		req.ProjectScore / 100.0,
		req.ATSScore / 100.0,
		req.StructureScore / 100.0,
	}
}

// BuildVector encodes one record into a full feature vector:
// binary skill flags followed by the five normalized numerics.
// The result always has length len(vocab) + NumNumericFeatures.
func BuildVector(r types.ResumeRecord, vocab []string) []float64 {
	return append(Encode(r.DetectedSkills, vocab), RecordNumerics(r)...)
}

// VectorSize returns the feature dimension implied by a vocabulary.
func VectorSize(vocab []string) int {
	return len(vocab) + NumNumericFeatures
}

// BuildMatrix encodes all records against the vocabulary and extracts the
// training targets: role labels, final scores, and sample weights.
func BuildMatrix(records []types.ResumeRecord, vocab []string) (X [][]float64, roles []string, scores []float64, weights []float64) {
	X = make([][]float64, len(records))
	roles = make([]string, len(records))
	scores = make([]float64, len(records))
	weights = make([]float64, len(records))

	for i, r := range records {
		X[i] = BuildVector(r, vocab)
		roles[i] = r.Role
		scores[i] = float64(r.FinalScore)
		weights[i] = r.SampleWeight
	}
	return X, roles, scores, weights
}
