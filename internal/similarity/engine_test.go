package similarity

import (
	"testing"

	"github.com/Ganesh-0509/Campus-Sync-Edge-Ai/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleRecords() []types.ResumeRecord {
	return []types.ResumeRecord{
		{DetectedSkills: []string{"python", "sql", "api"}, Role: "Backend Developer", FinalScore: 80},
		{DetectedSkills: []string{"python", "sql", "docker"}, Role: "Backend Developer", FinalScore: 75},
		{DetectedSkills: []string{"react", "javascript", "css"}, Role: "Frontend Developer", FinalScore: 70},
		{DetectedSkills: []string{"react", "html", "css"}, Role: "Frontend Developer", FinalScore: 60},
		{DetectedSkills: []string{"python", "tensorflow", "pandas"}, Role: "Data Scientist", FinalScore: 85},
	}
}

func TestCosine_IdenticalVectors(t *testing.T) {
	v := []float64{1, 0, 1, 1}
	assert.InDelta(t, 1.0, Cosine(v, v), 1e-12)
}

func TestCosine_OrthogonalVectors(t *testing.T) {
	assert.Zero(t, Cosine([]float64{1, 0}, []float64{0, 1}))
}

func TestCosine_ZeroVector(t *testing.T) {
	assert.Zero(t, Cosine([]float64{0, 0}, []float64{1, 1}))
	assert.Zero(t, Cosine([]float64{1, 1}, []float64{0, 0}))
}

func TestPredictRole_EmptyDataset(t *testing.T) {
	pred := PredictRole([]string{"python"}, nil, DefaultTopK)

	assert.Empty(t, pred.PredictedRole)
	assert.Zero(t, pred.Confidence)
	assert.Equal(t, "No historical data available yet.", pred.Reasoning)
	assert.Empty(t, pred.TopMatches)
}

func TestPredictRole_NoSharedSkills(t *testing.T) {
	pred := PredictRole([]string{"cobol", "fortran"}, sampleRecords(), DefaultTopK)

	assert.Empty(t, pred.PredictedRole)
	assert.Zero(t, pred.Confidence)
	assert.Equal(t, "No similar resumes found in the dataset.", pred.Reasoning)
}

func TestPredictRole_BackendProfile(t *testing.T) {
	pred := PredictRole([]string{"python", "sql", "api"}, sampleRecords(), DefaultTopK)

	assert.Equal(t, "Backend Developer", pred.PredictedRole)
	assert.Greater(t, pred.Confidence, 0.5)
	require.Len(t, pred.TopMatches, 3)
	assert.InDelta(t, 1.0, pred.TopMatches[0].Similarity, 1e-9, "exact skill match ranks first")
	assert.Equal(t, 80, pred.TopMatches[0].Score)
	assert.Contains(t, pred.Reasoning, "Backend Developer")
	assert.Equal(t, 5, pred.DatasetSize)
}

func TestPredictRole_ConfidenceIsMeanOfTopK(t *testing.T) {
	records := []types.ResumeRecord{
		{DetectedSkills: []string{"python"}, Role: "Backend Developer", FinalScore: 80},
	}

	pred := PredictRole([]string{"python"}, records, DefaultTopK)

	require.Len(t, pred.TopMatches, 1)
	assert.InDelta(t, 1.0, pred.Confidence, 1e-9)
}

func TestPredictRole_Deterministic(t *testing.T) {
	first := PredictRole([]string{"react", "css"}, sampleRecords(), DefaultTopK)
	second := PredictRole([]string{"react", "css"}, sampleRecords(), DefaultTopK)

	assert.Equal(t, first, second)
}

func TestComputeSkillImpact_EmptyDataset(t *testing.T) {
	report := ComputeSkillImpact(nil)

	assert.Zero(t, report.GlobalMeanScore)
	assert.Zero(t, report.DatasetSize)
	assert.Empty(t, report.Ranking)
}

func TestComputeSkillImpact_LabelsAndOrdering(t *testing.T) {
	records := []types.ResumeRecord{
		{DetectedSkills: []string{"kubernetes"}, FinalScore: 90},
		{DetectedSkills: []string{"kubernetes"}, FinalScore: 80},
		{DetectedSkills: []string{"html"}, FinalScore: 40},
		{DetectedSkills: []string{"html"}, FinalScore: 50},
	}

	report := ComputeSkillImpact(records)

	assert.InDelta(t, 65.0, report.GlobalMeanScore, 1e-9)
	require.Len(t, report.Ranking, 2)

	top := report.Ranking[0]
	assert.Equal(t, "kubernetes", top.Skill)
	assert.InDelta(t, 85.0, top.MeanScoreWithSkill, 1e-9)
	assert.InDelta(t, 20.0, top.DeltaFromGlobal, 1e-9)
	assert.Equal(t, types.ImpactHigh, top.ImpactLabel)
	assert.Equal(t, 2, top.SampleCount)

	bottom := report.Ranking[1]
	assert.Equal(t, "html", bottom.Skill)
	assert.Equal(t, types.ImpactLow, bottom.ImpactLabel)
	assert.InDelta(t, -20.0, bottom.DeltaFromGlobal, 1e-9)
}

func TestComputeSkillImpact_MediumLabelAtZeroDelta(t *testing.T) {
	records := []types.ResumeRecord{
		{DetectedSkills: []string{"git"}, FinalScore: 70},
		{DetectedSkills: []string{"git"}, FinalScore: 70},
	}

	report := ComputeSkillImpact(records)

	require.Len(t, report.Ranking, 1)
	assert.Equal(t, types.ImpactMedium, report.Ranking[0].ImpactLabel)
}

func TestProjectScore_EmptyDataset(t *testing.T) {
	proj := ProjectScore([]string{"python"}, "docker", nil)

	assert.Equal(t, "docker", proj.SkillAdded)
	assert.Zero(t, proj.CurrentPredictedScore)
	assert.Equal(t, "No historical data available yet.", proj.Recommendation)
}

func TestProjectScore_AddingValuableSkill(t *testing.T) {
	records := []types.ResumeRecord{
		{DetectedSkills: []string{"python", "tensorflow"}, Role: "ML Engineer", FinalScore: 90},
		{DetectedSkills: []string{"python", "tensorflow", "pytorch"}, Role: "ML Engineer", FinalScore: 95},
		{DetectedSkills: []string{"python"}, Role: "Backend Developer", FinalScore: 50},
	}

	proj := ProjectScore([]string{"python"}, "tensorflow", records)

	assert.Equal(t, "tensorflow", proj.SkillAdded)
	assert.Greater(t, proj.ExpectedImprovement, 0.0)
	assert.InDelta(t, proj.ProjectedPredictedScore-proj.CurrentPredictedScore, proj.ExpectedImprovement, 0.1)
	assert.Contains(t, proj.Recommendation, "tensorflow")
	assert.Equal(t, 3, proj.DatasetSize)
}

func TestProjectScore_AlreadyHeldSkillIsNeutral(t *testing.T) {
	records := sampleRecords()

	proj := ProjectScore([]string{"python", "sql", "api"}, "python", records)

	assert.Zero(t, proj.ExpectedImprovement)
	assert.Contains(t, proj.Recommendation, "Neutral")
}
