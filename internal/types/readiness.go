package types

// Readiness categories returned by the deterministic scorer.
const (
	CategoryJobReady         = "Job Ready"
	CategoryImproving        = "Improving"
	CategoryNeedsDevelopment = "Needs Development"
)

// Recommendation priorities used by the skill gap analysis.
const (
	PriorityHigh   = "HIGH"
	PriorityMedium = "MEDIUM"
)

// Recommendation is a single prioritized improvement suggestion.
type Recommendation struct {
	Skill    string `json:"skill"`
	Priority string `json:"priority"`
	Reason   string `json:"reason"`
}

// ReadinessResult is the full dashboard-ready output of the deterministic
// scoring pipeline for one resume against one target role.
type ReadinessResult struct {
	Role              string `json:"role"`
	FinalScore        int    `json:"final_score"`
	ReadinessCategory string `json:"readiness_category"`

	CoreCoveragePercent     int `json:"core_coverage_percent"`
	OptionalCoveragePercent int `json:"optional_coverage_percent"`
	ProjectScorePercent     int `json:"project_score_percent"`
	ATSScorePercent         int `json:"ats_score_percent"`
	StructureScorePercent   int `json:"structure_score_percent"`

	MissingCoreSkills     []string         `json:"missing_core_skills"`
	MissingOptionalSkills []string         `json:"missing_optional_skills"`
	Recommendations       []Recommendation `json:"recommendations"`
}
