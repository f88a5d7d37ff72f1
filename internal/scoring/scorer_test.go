package scoring

import (
	"testing"

	"github.com/Ganesh-0509/Campus-Sync-Edge-Ai/internal/config"
	"github.com/Ganesh-0509/Campus-Sync-Edge-Ai/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testScorer() *Scorer {
	scoring := config.Scoring{
		Weights: config.Weights{
			Core:      0.60,
			Optional:  0.15,
			Project:   0.15,
			ATS:       0.05,
			Structure: 0.05,
		},
		Thresholds: config.Thresholds{JobReady: 75, Improving: 50},
	}
	roles := config.RoleMatrix{
		"Backend Developer": {
			Core:     []string{"python", "sql", "api"},
			Optional: []string{"docker", "redis"},
		},
		"Frontend Developer": {
			Core:     []string{"react", "javascript"},
			Optional: []string{"css"},
		},
	}
	return NewScorer(scoring, roles)
}

func TestFinalScore_WeightedSumTruncated(t *testing.T) {
	s := testScorer()

	// Full core coverage and full structure, nothing else.
	score := s.FinalScore(1.0, 0, 0, 0, 1.0)

	assert.Equal(t, 65, score)
}

func TestFinalScore_CappedAtHundred(t *testing.T) {
	s := testScorer()

	score := s.FinalScore(1.0, 1.0, 1.0, 1.0, 1.0)

	assert.Equal(t, 100, score)
}

func TestFinalScore_ZeroComponents(t *testing.T) {
	s := testScorer()
	assert.Equal(t, 0, s.FinalScore(0, 0, 0, 0, 0))
}

func TestCategory_ThresholdBoundaries(t *testing.T) {
	s := testScorer()

	assert.Equal(t, types.CategoryJobReady, s.Category(75))
	assert.Equal(t, types.CategoryImproving, s.Category(74))
	assert.Equal(t, types.CategoryImproving, s.Category(50))
	assert.Equal(t, types.CategoryNeedsDevelopment, s.Category(49))
}

func TestProjectScore_ComponentCaps(t *testing.T) {
	// Five mentions of "project" exceed the 0.30 cap; no verbs or keywords.
	text := "project project project project project"

	score := ProjectScore(text)

	assert.InDelta(t, 0.30, score.Raw, 1e-9)
	assert.Equal(t, 30, score.Percent)
}

func TestProjectScore_AllComponents(t *testing.T) {
	text := "I developed and built a scalable distributed project"

	score := ProjectScore(text)

	// 1 mention (0.10) + 2 verbs (0.10) + 2 keywords (0.10)
	assert.InDelta(t, 0.30, score.Raw, 1e-9)
}

func TestProjectScore_EmptyText(t *testing.T) {
	score := ProjectScore("")
	assert.Zero(t, score.Raw)
	assert.Zero(t, score.Percent)
}

func TestATSScore_FullContactAndHeadings(t *testing.T) {
	text := "Skills Projects Education Experience jane@example.com 9876543210"

	score := ATSScore(text)

	assert.InDelta(t, 1.0, score.Raw, 1e-9)
	assert.Equal(t, 100, score.Percent)
}

func TestATSScore_EmailOnly(t *testing.T) {
	score := ATSScore("reach me at jane@example.com")

	assert.InDelta(t, 0.20, score.Raw, 1e-9)
}

func TestATSScore_InternationalPhone(t *testing.T) {
	score := ATSScore("call +91 9876543210")

	assert.InDelta(t, 0.40, score.Raw, 1e-9, "international prefix and bare number both match")
}

func TestStructureScore_PartialSections(t *testing.T) {
	score := StructureScore([]string{"skills", "education"})

	assert.InDelta(t, 0.5, score.Raw, 1e-9)
	assert.Equal(t, 50, score.Percent)
}

func TestStructureScore_IgnoresUnknownSections(t *testing.T) {
	score := StructureScore([]string{"hobbies", "references"})
	assert.Zero(t, score.Raw)
}

func TestGapAnalysis_PrioritizesCoreOverOptional(t *testing.T) {
	role := config.Role{
		Core:     []string{"python", "sql"},
		Optional: []string{"docker"},
	}

	missingCore, missingOptional, recs := GapAnalysis([]string{"python"}, role, "Backend Developer")

	assert.Equal(t, []string{"sql"}, missingCore)
	assert.Equal(t, []string{"docker"}, missingOptional)
	require.Len(t, recs, 2)
	assert.Equal(t, types.PriorityHigh, recs[0].Priority)
	assert.Equal(t, "sql", recs[0].Skill)
	assert.Contains(t, recs[0].Reason, "Backend Developer")
	assert.Equal(t, types.PriorityMedium, recs[1].Priority)
}

func TestGapAnalysis_NothingMissing(t *testing.T) {
	role := config.Role{Core: []string{"python"}, Optional: []string{"docker"}}

	missingCore, missingOptional, recs := GapAnalysis([]string{"python", "docker"}, role, "Backend Developer")

	assert.Empty(t, missingCore)
	assert.Empty(t, missingOptional)
	assert.Empty(t, recs)
}

func TestEvaluate_UnknownRole(t *testing.T) {
	s := testScorer()

	_, err := s.Evaluate([]string{"python"}, nil, "", "Astronaut")

	require.Error(t, err)
	var roleErr *UnknownRoleError
	require.ErrorAs(t, err, &roleErr)
	assert.Equal(t, "Astronaut", roleErr.Role)
	assert.Contains(t, roleErr.ValidRoles, "Backend Developer")
}

func TestEvaluate_FullPipeline(t *testing.T) {
	s := testScorer()
	text := "Skills Projects Education Experience. Developed a scalable api project. jane@example.com 9876543210"

	result, err := s.Evaluate(
		[]string{"Python", "SQL", "API", "docker", "redis"},
		[]string{"skills", "projects", "education", "links"},
		text,
		"Backend Developer",
	)

	require.NoError(t, err)
	assert.Equal(t, 100, result.CoreCoveragePercent)
	assert.Equal(t, 100, result.OptionalCoveragePercent)
	assert.Equal(t, 100, result.ATSScorePercent)
	assert.Equal(t, 100, result.StructureScorePercent)
	assert.Empty(t, result.MissingCoreSkills)
	assert.Empty(t, result.Recommendations)
	assert.Equal(t, types.CategoryJobReady, result.ReadinessCategory)
}

func TestEvaluate_NormalizesSkillCase(t *testing.T) {
	s := testScorer()

	result, err := s.Evaluate([]string{"  PYTHON ", "Sql"}, nil, "", "Backend Developer")

	require.NoError(t, err)
	assert.Equal(t, 66, result.CoreCoveragePercent)
	assert.NotContains(t, result.MissingCoreSkills, "python")
	assert.NotContains(t, result.MissingCoreSkills, "sql")
}

func TestExtractSkills_WholeWordSynonyms(t *testing.T) {
	dict := config.SkillDictionary{
		"python":     {"python", "python3"},
		"javascript": {"javascript", "js"},
		"java":       {"java"},
	}

	skills := ExtractSkills("I write Python3 and JS daily", dict)

	assert.Equal(t, []string{"javascript", "python"}, skills)
}

func TestExtractSkills_NoPartialWordMatches(t *testing.T) {
	dict := config.SkillDictionary{"java": {"java"}}

	skills := ExtractSkills("experienced javascript developer", dict)

	assert.Empty(t, skills, "java must not match inside javascript")
}
