package types

// Impact labels assigned by the skill impact ranking.
const (
	ImpactHigh   = "HIGH"
	ImpactMedium = "MEDIUM"
	ImpactLow    = "LOW"
)

// TopMatch is one historical record ranked by similarity to a query skill set.
type TopMatch struct {
	Similarity float64 `json:"similarity"`
	Role       string  `json:"role"`
	Score      int     `json:"score"`
}

// SimilarityPrediction is the explainable role prediction produced by the
// cosine-similarity engine. PredictedRole is empty when no historical data
// exists or no record shares any skill with the query.
type SimilarityPrediction struct {
	PredictedRole string     `json:"predicted_role"`
	Confidence    float64    `json:"confidence"`
	Reasoning     string     `json:"reasoning"`
	TopMatches    []TopMatch `json:"top_matches"`
	DatasetSize   int        `json:"dataset_size,omitempty"`
}

// SkillImpact ranks one skill by how much resumes containing it outperform
// the global mean score.
type SkillImpact struct {
	Skill              string  `json:"skill"`
	MeanScoreWithSkill float64 `json:"mean_score_with_skill"`
	DeltaFromGlobal    float64 `json:"delta_from_global"`
	SampleCount        int     `json:"sample_count"`
	ImpactLabel        string  `json:"impact_label"`
}

// SkillImpactReport is the full skill-value ranking over a record set.
type SkillImpactReport struct {
	GlobalMeanScore float64       `json:"global_mean_score"`
	DatasetSize     int           `json:"dataset_size"`
	Ranking         []SkillImpact `json:"skill_impact_ranking"`
}

// ScoreProjection is the simulated effect of adding one skill to a
// candidate's current skill set.
type ScoreProjection struct {
	SkillAdded              string  `json:"skill_added"`
	CurrentPredictedScore   float64 `json:"current_predicted_score"`
	ProjectedPredictedScore float64 `json:"projected_predicted_score"`
	ExpectedImprovement     float64 `json:"expected_improvement"`
	Recommendation          string  `json:"recommendation"`
	DatasetSize             int     `json:"dataset_size,omitempty"`
}
