// Package scoring implements the deterministic resume readiness pipeline:
// keyword-driven sub-scores, coverage ratios against a role's skill matrix,
// the weighted final score, and the skill gap analysis.
package scoring

import (
	"fmt"
	"math"

	"github.com/Ganesh-0509/Campus-Sync-Edge-Ai/internal/config"
	"github.com/Ganesh-0509/Campus-Sync-Edge-Ai/internal/types"
)

// UnknownRoleError is returned when a requested role is not in the matrix.
type UnknownRoleError struct {
	Role       string
	ValidRoles []string
}

func (e *UnknownRoleError) Error() string {
	return fmt.Sprintf("role %q not found, valid roles: %v", e.Role, e.ValidRoles)
}

// Scorer evaluates resumes against the configured weights, thresholds, and
// role matrix. It is safe for concurrent use; all state is read-only.
type Scorer struct {
	scoring config.Scoring
	roles   config.RoleMatrix
}

// NewScorer builds a Scorer from validated configuration.
func NewScorer(scoring config.Scoring, roles config.RoleMatrix) *Scorer {
	return &Scorer{scoring: scoring, roles: roles}
}

// Roles returns the configured role names, sorted.
func (s *Scorer) Roles() []string {
	return s.roles.Names()
}

// FinalScore applies the weighted formula to raw component scores in the
// 0.0 to 1.0 range and returns an integer 0 to 100. The weighted sum is
// scaled by 100, capped at 100, and truncated.
func (s *Scorer) FinalScore(coreCoverage, optionalCoverage, project, ats, structure float64) int {
	w := s.scoring.Weights
	raw := coreCoverage*w.Core +
		optionalCoverage*w.Optional +
		project*w.Project +
		ats*w.ATS +
		structure*w.Structure
	return int(math.Min(raw*100, 100))
}

// Category classifies a final score using the configured thresholds.
func (s *Scorer) Category(finalScore int) string {
	switch {
	case finalScore >= s.scoring.Thresholds.JobReady:
		return types.CategoryJobReady
	case finalScore >= s.scoring.Thresholds.Improving:
		return types.CategoryImproving
	default:
		return types.CategoryNeedsDevelopment
	}
}

// GapAnalysis compares detected skills against a role's requirements and
// produces missing-skill lists plus prioritized recommendations. Missing
// core skills rank HIGH, missing optional skills MEDIUM.
func GapAnalysis(resumeSkills []string, role config.Role, roleName string) (missingCore, missingOptional []string, recs []types.Recommendation) {
	have := make(map[string]bool, len(resumeSkills))
	for _, s := range resumeSkills {
		have[s] = true
	}

	missingCore = make([]string, 0)
	for _, s := range role.Core {
		if !have[s] {
			missingCore = append(missingCore, s)
		}
	}
	missingOptional = make([]string, 0)
	for _, s := range role.Optional {
		if !have[s] {
			missingOptional = append(missingOptional, s)
		}
	}

	recs = make([]types.Recommendation, 0, len(missingCore)+len(missingOptional))
	for _, s := range missingCore {
		recs = append(recs, types.Recommendation{
			Skill:    s,
			Priority: types.PriorityHigh,
			Reason:   fmt.Sprintf("Core skill missing for %s", roleName),
		})
	}
	for _, s := range missingOptional {
		recs = append(recs, types.Recommendation{
			Skill:    s,
			Priority: types.PriorityMedium,
			Reason:   fmt.Sprintf("Optional skill that strengthens %s profile", roleName),
		})
	}
	return missingCore, missingOptional, recs
}

// Evaluate runs the full readiness pipeline for one resume against one
// target role and returns the dashboard-ready result.
func (s *Scorer) Evaluate(resumeSkills, sectionsDetected []string, rawText, roleName string) (*types.ReadinessResult, error) {
	role, ok := s.roles.Get(roleName)
	if !ok {
		return nil, &UnknownRoleError{Role: roleName, ValidRoles: s.roles.Names()}
	}

	skills := types.NormalizeSkills(resumeSkills)
	have := make(map[string]bool, len(skills))
	for _, sk := range skills {
		have[sk] = true
	}

	matchedCore := 0
	for _, sk := range role.Core {
		if have[sk] {
			matchedCore++
		}
	}
	matchedOptional := 0
	for _, sk := range role.Optional {
		if have[sk] {
			matchedOptional++
		}
	}

	coreCoverage := 0.0
	if len(role.Core) > 0 {
		coreCoverage = float64(matchedCore) / float64(len(role.Core))
	}
	optionalCoverage := 0.0
	if len(role.Optional) > 0 {
		optionalCoverage = float64(matchedOptional) / float64(len(role.Optional))
	}

	project := ProjectScore(rawText)
	ats := ATSScore(rawText)
	structure := StructureScore(sectionsDetected)

	final := s.FinalScore(coreCoverage, optionalCoverage, project.Raw, ats.Raw, structure.Raw)
	missingCore, missingOptional, recs := GapAnalysis(skills, role, roleName)

	return &types.ReadinessResult{
		Role:              roleName,
		FinalScore:        final,
		ReadinessCategory: s.Category(final),

		CoreCoveragePercent:     int(coreCoverage * 100),
		OptionalCoveragePercent: int(optionalCoverage * 100),
		ProjectScorePercent:     project.Percent,
		ATSScorePercent:         ats.Percent,
		StructureScorePercent:   structure.Percent,

		MissingCoreSkills:     missingCore,
		MissingOptionalSkills: missingOptional,
		Recommendations:       recs,
	}, nil
}
