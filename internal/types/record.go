// Package types defines the shared domain types for the career intelligence engine.
package types

import "strings"

// Data source weights applied when real and synthetic records are merged
// for training. Real analyses are trusted more than generated ones.
const (
	WeightReal      = 1.5
	WeightSynthetic = 1.0
)

// ResumeRecord is one historical resume analysis. Records are produced by the
// upstream analysis pipeline (or the synthetic generator) and consumed
// read-only by the feature codec, the similarity engine, and training.
type ResumeRecord struct {
	ID                      string   `json:"id,omitempty"`
	DetectedSkills          []string `json:"detected_skills"`
	Role                    string   `json:"role"`
	FinalScore              int      `json:"final_score"`
	ReadinessCategory       string   `json:"readiness_category,omitempty"`
	CoreCoveragePercent     float64  `json:"core_coverage_percent"`
	OptionalCoveragePercent float64  `json:"optional_coverage_percent"`
	ProjectScorePercent     float64  `json:"project_score_percent"`
	ATSScorePercent         float64  `json:"ats_score_percent"`
	StructureScorePercent   float64  `json:"structure_score_percent"`
	MissingCoreSkills       []string `json:"missing_core_skills,omitempty"`
	MissingOptionalSkills   []string `json:"missing_optional_skills,omitempty"`
	SampleWeight            float64  `json:"sample_weight,omitempty"`
	DataType                string   `json:"data_type,omitempty"`
}

// NormalizeSkills lowercases, trims, and deduplicates a skill list while
// preserving first-seen order. Empty entries are dropped.
func NormalizeSkills(skills []string) []string {
	seen := make(map[string]bool, len(skills))
	result := make([]string, 0, len(skills))
	for _, s := range skills {
		clean := strings.ToLower(strings.TrimSpace(s))
		if clean == "" || seen[clean] {
			continue
		}
		seen[clean] = true
		result = append(result, clean)
	}
	return result
}
