package registry

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/Ganesh-0509/Campus-Sync-Edge-Ai/internal/forest"
	"github.com/Ganesh-0509/Campus-Sync-Edge-Ai/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func trainedBundle(t *testing.T, version string) Bundle {
	t.Helper()
	X := [][]float64{{1, 0}, {1, 0}, {0, 1}, {0, 1}, {1, 0}, {0, 1}}
	yCls := []int{0, 0, 1, 1, 0, 1}
	yReg := []float64{80, 75, 60, 55, 85, 65}
	w := []float64{1, 1, 1, 1, 1, 1}
	params := forest.Hyperparams{NumTrees: 10, MaxDepth: 4, MinSamplesLeaf: 1}

	clf, err := forest.FitClassifier(X, yCls, w, 2, params, 42)
	require.NoError(t, err)
	reg, err := forest.FitRegressor(X, yReg, w, params, 42)
	require.NoError(t, err)

	return Bundle{
		Classifier: ClassifierBundle{Model: clf, Labels: []string{"Backend Developer", "Frontend Developer"}},
		Regressor:  reg,
		Vocabulary: []string{"python", "react"},
		Metadata: Metadata{
			Version:          version,
			TrainedOnRecords: 6,
			RealRecords:      2,
			SyntheticRecords: 4,
			Hyperparameters:  params,
			DateTrained:      time.Now().UTC(),
			RandomSeed:       42,
			VocabularySize:   2,
			FeatureDim:       7,
		},
	}
}

func TestRegistry_SaveAndLoadRoundTrip(t *testing.T) {
	r := New(t.TempDir())
	bundle := trainedBundle(t, "v1")

	require.NoError(t, r.Save("v1", bundle))

	model, err := r.Load("v1")
	require.NoError(t, err)
	assert.Equal(t, bundle.Classifier.Labels, model.Labels)
	assert.Equal(t, bundle.Vocabulary, model.Vocabulary)
	assert.Equal(t, "v1", model.Metadata.Version)
	assert.Equal(t, 7, model.Metadata.FeatureDim)

	query := []float64{1, 0}
	assert.Equal(t, bundle.Classifier.Model.Predict(query), model.Classifier.Predict(query))
	assert.Equal(t, bundle.Regressor.Predict(query), model.Regressor.Predict(query))
}

func TestRegistry_SaveNeverOverwrites(t *testing.T) {
	r := New(t.TempDir())
	require.NoError(t, r.Save("v1", trainedBundle(t, "v1")))

	err := r.Save("v1", trainedBundle(t, "v1"))

	require.ErrorIs(t, err, ErrVersionExists)
}

func TestRegistry_LoadMissingVersion(t *testing.T) {
	r := New(t.TempDir())

	_, err := r.Load("v9")

	var miss *ArtifactMissingError
	require.ErrorAs(t, err, &miss)
	assert.Equal(t, "v9", miss.Version)
	assert.Equal(t, ClassifierFile, miss.Artifact)
}

func TestRegistry_PartialVersionReportsMissingArtifact(t *testing.T) {
	dir := t.TempDir()
	r := New(dir)
	require.NoError(t, r.Save("v1", trainedBundle(t, "v1")))
	require.NoError(t, os.Remove(filepath.Join(dir, "v1", RegressorFile)))

	assert.False(t, r.Exists("v1"))

	_, err := r.Load("v1")
	var miss *ArtifactMissingError
	require.ErrorAs(t, err, &miss)
	assert.Equal(t, RegressorFile, miss.Artifact)
}

func TestRegistry_VersionsAndLatest(t *testing.T) {
	r := New(t.TempDir())
	require.NoError(t, r.Save("v2", trainedBundle(t, "v2")))
	require.NoError(t, r.Save("v10", trainedBundle(t, "v10")))
	require.NoError(t, r.Save("v1", trainedBundle(t, "v1")))

	versions, err := r.Versions()
	require.NoError(t, err)
	assert.Equal(t, []string{"v1", "v2", "v10"}, versions, "numeric version order, not lexicographic")

	latest, err := r.Latest()
	require.NoError(t, err)
	assert.Equal(t, "v10", latest)
}

func TestRegistry_LatestOnEmptyRegistry(t *testing.T) {
	r := New(t.TempDir())

	_, err := r.Latest()

	require.ErrorIs(t, err, ErrNoVersions)
}

func TestRegistry_LoadMetadataOnly(t *testing.T) {
	r := New(t.TempDir())
	require.NoError(t, r.Save("v1", trainedBundle(t, "v1")))

	meta, err := r.LoadMetadata("v1")
	require.NoError(t, err)
	assert.Equal(t, 2, meta.RealRecords)
	assert.Equal(t, 4, meta.SyntheticRecords)
	assert.EqualValues(t, 42, meta.RandomSeed)
}

func TestBuildRoleStats(t *testing.T) {
	records := []types.ResumeRecord{
		{Role: "Backend Developer", FinalScore: 80},
		{Role: "Backend Developer", FinalScore: 71},
		{Role: "Frontend Developer", FinalScore: 60},
	}

	stats := BuildRoleStats(records)

	require.Len(t, stats, 2)
	backend := stats["Backend Developer"]
	assert.InDelta(t, 75.5, backend.Avg, 1e-9)
	assert.Equal(t, 71, backend.Min)
	assert.Equal(t, 80, backend.Max)
	assert.Equal(t, 2, backend.Count)
}

func TestSnapshot_SaveLoadRoundTrip(t *testing.T) {
	r := New(t.TempDir())
	report := types.SkillImpactReport{
		GlobalMeanScore: 70.3,
		DatasetSize:     3,
		Ranking: []types.SkillImpact{
			{Skill: "python", MeanScoreWithSkill: 75.5, DeltaFromGlobal: 5.2, SampleCount: 2, ImpactLabel: types.ImpactHigh},
		},
	}
	stats := BuildRoleStats([]types.ResumeRecord{{Role: "Backend Developer", FinalScore: 80}})

	require.False(t, r.SnapshotExists())
	require.NoError(t, r.SaveSnapshot(NewSnapshot(report, stats)))
	require.True(t, r.SnapshotExists())

	loaded, err := r.LoadSnapshot()
	require.NoError(t, err)
	assert.Equal(t, "hybrid_v1", loaded.Version)
	assert.Equal(t, 3, loaded.DatasetSize)
	assert.InDelta(t, 70.3, loaded.GlobalMeanScore, 1e-9)
	require.Len(t, loaded.Ranking, 1)
	assert.Equal(t, "python", loaded.Ranking[0].Skill)
	assert.Contains(t, loaded.RoleStats, "Backend Developer")
}

func TestSnapshot_OverwriteAllowed(t *testing.T) {
	r := New(t.TempDir())
	require.NoError(t, r.SaveSnapshot(NewSnapshot(types.SkillImpactReport{DatasetSize: 1}, nil)))
	require.NoError(t, r.SaveSnapshot(NewSnapshot(types.SkillImpactReport{DatasetSize: 2}, nil)))

	loaded, err := r.LoadSnapshot()
	require.NoError(t, err)
	assert.Equal(t, 2, loaded.DatasetSize)
}

func TestSnapshot_MissingFile(t *testing.T) {
	r := New(t.TempDir())

	_, err := r.LoadSnapshot()

	var miss *ArtifactMissingError
	require.ErrorAs(t, err, &miss)
	assert.Equal(t, SnapshotFile, miss.Artifact)
}
