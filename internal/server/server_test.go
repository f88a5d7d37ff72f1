package server

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Ganesh-0509/Campus-Sync-Edge-Ai/internal/config"
	"github.com/Ganesh-0509/Campus-Sync-Edge-Ai/internal/forest"
	"github.com/Ganesh-0509/Campus-Sync-Edge-Ai/internal/inference"
	"github.com/Ganesh-0509/Campus-Sync-Edge-Ai/internal/registry"
	"github.com/Ganesh-0509/Campus-Sync-Edge-Ai/internal/scoring"
	"github.com/Ganesh-0509/Campus-Sync-Edge-Ai/internal/store"
	"github.com/Ganesh-0509/Campus-Sync-Edge-Ai/internal/training"
	"github.com/Ganesh-0509/Campus-Sync-Edge-Ai/internal/types"
)

func testServer(t *testing.T) *Server {
	t.Helper()
	scoringCfg := config.Scoring{
		Weights: config.Weights{
			Core:      0.45,
			Optional:  0.15,
			Project:   0.20,
			ATS:       0.10,
			Structure: 0.10,
		},
		Thresholds: config.Thresholds{JobReady: 75, Improving: 50},
	}
	roles := config.RoleMatrix{
		"Backend Developer":  {Core: []string{"python", "sql", "api"}, Optional: []string{"docker"}},
		"Frontend Developer": {Core: []string{"react", "javascript"}, Optional: []string{"css"}},
	}
	skills := config.SkillDictionary{
		"python":     {"python", "python3"},
		"sql":        {"sql", "postgresql"},
		"api":        {"api", "rest api"},
		"docker":     {"docker"},
		"react":      {"react", "reactjs"},
		"javascript": {"javascript", "js"},
		"css":        {"css"},
	}

	return New(Config{
		Addr:     ":0",
		Log:      zap.NewNop(),
		Scorer:   scoring.NewScorer(scoringCfg, roles),
		Skills:   skills,
		Store:    store.NewFileStore(filepath.Join(t.TempDir(), "records.json")),
		Registry: registry.New(t.TempDir()),
	})
}

func seedRecords(t *testing.T, s *Server) {
	t.Helper()
	records := []types.ResumeRecord{
		{DetectedSkills: []string{"python", "sql", "api"}, Role: "Backend Developer", FinalScore: 80},
		{DetectedSkills: []string{"python", "docker"}, Role: "Backend Developer", FinalScore: 72},
		{DetectedSkills: []string{"react", "javascript", "css"}, Role: "Frontend Developer", FinalScore: 65},
	}
	for _, r := range records {
		require.NoError(t, s.store.Append(context.Background(), r))
	}
}

// loadPredictor trains a small model and installs it on the server.
func loadPredictor(t *testing.T, s *Server) {
	t.Helper()
	trainer := training.NewTrainer(zap.NewNop(), s.registry)
	trainer.Params = forest.Hyperparams{NumTrees: 10, MaxDepth: 5, MinSamplesLeaf: 1}

	var synthetic []types.ResumeRecord
	for i := 0; i < 15; i++ {
		synthetic = append(synthetic,
			types.ResumeRecord{DetectedSkills: []string{"python", "sql", "api"}, Role: "Backend Developer", FinalScore: 75 + i%10},
			types.ResumeRecord{DetectedSkills: []string{"react", "javascript"}, Role: "Frontend Developer", FinalScore: 55 + i%10})
	}
	_, err := trainer.Run(context.Background(), nil, synthetic, "v1")
	require.NoError(t, err)

	model, err := s.registry.Load("v1")
	require.NoError(t, err)
	p, err := inference.NewPredictor(model)
	require.NoError(t, err)
	s.SetPredictor(p)
}

func doJSON(t *testing.T, s *Server, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

func TestHandleHealth_NoModel(t *testing.T) {
	s := testServer(t)

	w := doJSON(t, s, http.MethodGet, "/health", nil)

	require.Equal(t, http.StatusOK, w.Code)
	resp := decode[HealthResponse](t, w)
	assert.Equal(t, "models_not_loaded", resp.Status)
	assert.False(t, resp.ModelLoaded)
}

func TestHandleHealth_ModelLoaded(t *testing.T) {
	s := testServer(t)
	loadPredictor(t, s)

	w := doJSON(t, s, http.MethodGet, "/health", nil)

	require.Equal(t, http.StatusOK, w.Code)
	resp := decode[HealthResponse](t, w)
	assert.Equal(t, "ready", resp.Status)
	assert.True(t, resp.ModelLoaded)
	assert.Equal(t, "v1", resp.ModelVersion)
	assert.Positive(t, resp.VocabularySize)
}

func TestHandlePredict_NoModelReturns503(t *testing.T) {
	s := testServer(t)

	w := doJSON(t, s, http.MethodPost, "/predict", types.PredictionRequest{
		Skills: []string{"python"}, CoreCoverage: 70, OptionalCoverage: 60,
		ProjectScore: 70, ATSScore: 70, StructureScore: 70,
	})

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestHandlePredict_Success(t *testing.T) {
	s := testServer(t)
	loadPredictor(t, s)

	w := doJSON(t, s, http.MethodPost, "/predict", types.PredictionRequest{
		Skills: []string{"python", "sql", "api"}, CoreCoverage: 85, OptionalCoverage: 70,
		ProjectScore: 75, ATSScore: 80, StructureScore: 75,
	})

	require.Equal(t, http.StatusOK, w.Code)
	resp := decode[types.PredictionResponse](t, w)
	assert.Equal(t, "Backend Developer", resp.PredictedRole)
	assert.Equal(t, "v1", resp.ModelVersion)
	assert.NotEmpty(t, resp.WeakAreas)
}

func TestHandlePredict_ValidationFailure(t *testing.T) {
	s := testServer(t)
	loadPredictor(t, s)

	w := doJSON(t, s, http.MethodPost, "/predict", types.PredictionRequest{
		Skills: nil, CoreCoverage: 70,
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHandlePredict_RejectsOutOfRangeScores(t *testing.T) {
	s := testServer(t)
	loadPredictor(t, s)

	w := doJSON(t, s, http.MethodPost, "/predict", types.PredictionRequest{
		Skills: []string{"python"}, CoreCoverage: 150,
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHandleAnalyze_FullPipeline(t *testing.T) {
	s := testServer(t)
	body := AnalyzeRequest{
		ResumeText: "Skills Projects Education Experience. Developed a scalable api project with Python3 and PostgreSQL. jane@example.com 9876543210",
		Role:       "Backend Developer",
		SectionsDetected: []string{
			"skills", "projects", "education", "links",
		},
	}

	w := doJSON(t, s, http.MethodPost, "/analyze", body)

	require.Equal(t, http.StatusOK, w.Code)
	resp := decode[AnalyzeResponse](t, w)
	assert.Equal(t, "Backend Developer", resp.Role)
	assert.Contains(t, resp.DetectedSkills, "python")
	assert.Contains(t, resp.DetectedSkills, "sql")
	assert.Empty(t, resp.DBWarning)
	assert.Positive(t, resp.FinalScore)

	// Analysis is persisted for the hybrid engines.
	count, err := s.store.Count(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestHandleAnalyze_UnknownRole(t *testing.T) {
	s := testServer(t)

	w := doJSON(t, s, http.MethodPost, "/analyze", AnalyzeRequest{
		ResumeText: "some resume", Role: "Astronaut",
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHandleAnalyze_MissingFields(t *testing.T) {
	s := testServer(t)

	w := doJSON(t, s, http.MethodPost, "/analyze", AnalyzeRequest{Role: "Backend Developer"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(t, s, http.MethodPost, "/analyze", AnalyzeRequest{ResumeText: "text"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHandleListRoles(t *testing.T) {
	s := testServer(t)

	w := doJSON(t, s, http.MethodGet, "/roles", nil)

	require.Equal(t, http.StatusOK, w.Code)
	resp := decode[map[string][]string](t, w)
	assert.Equal(t, []string{"Backend Developer", "Frontend Developer"}, resp["valid_roles"])
}

func TestHandlePredictRole_EmptyDatasetReturns404(t *testing.T) {
	s := testServer(t)

	w := doJSON(t, s, http.MethodPost, "/ml/predict-role", RolePredictRequest{Skills: []string{"python"}})

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestHandlePredictRole_Success(t *testing.T) {
	s := testServer(t)
	seedRecords(t, s)

	w := doJSON(t, s, http.MethodPost, "/ml/predict-role", RolePredictRequest{Skills: []string{"python", "sql"}})

	require.Equal(t, http.StatusOK, w.Code)
	resp := decode[types.SimilarityPrediction](t, w)
	assert.Equal(t, "Backend Developer", resp.PredictedRole)
	assert.Equal(t, 3, resp.DatasetSize)
}

func TestHandleProjectScore_Success(t *testing.T) {
	s := testServer(t)
	seedRecords(t, s)

	w := doJSON(t, s, http.MethodPost, "/ml/project-score", ScoreProjectRequest{
		CurrentSkills: []string{"python"},
		AddSkill:      "sql",
	})

	require.Equal(t, http.StatusOK, w.Code)
	resp := decode[types.ScoreProjection](t, w)
	assert.Equal(t, "sql", resp.SkillAdded)
	assert.NotEmpty(t, resp.Recommendation)
}

func TestHandleProjectScore_MissingSkill(t *testing.T) {
	s := testServer(t)
	seedRecords(t, s)

	w := doJSON(t, s, http.MethodPost, "/ml/project-score", ScoreProjectRequest{CurrentSkills: []string{"python"}})

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHandleSkillImpact_LiveCompute(t *testing.T) {
	s := testServer(t)
	seedRecords(t, s)

	w := doJSON(t, s, http.MethodGet, "/ml/skill-impact?live=true", nil)

	require.Equal(t, http.StatusOK, w.Code)
	resp := decode[SkillImpactResponse](t, w)
	assert.Equal(t, "live_compute", resp.Source)
	assert.Equal(t, 3, resp.DatasetSize)
	assert.NotEmpty(t, resp.Ranking)
}

func TestHandleSkillImpact_CachedAfterRecompute(t *testing.T) {
	s := testServer(t)
	seedRecords(t, s)

	w := doJSON(t, s, http.MethodPost, "/ml/recompute-model", nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, s, http.MethodGet, "/ml/skill-impact", nil)
	require.Equal(t, http.StatusOK, w.Code)
	resp := decode[SkillImpactResponse](t, w)
	assert.Equal(t, "cached_model", resp.Source)
	assert.NotNil(t, resp.UpdatedAt)
}

func TestHandleRecomputeModel(t *testing.T) {
	s := testServer(t)
	seedRecords(t, s)

	w := doJSON(t, s, http.MethodPost, "/ml/recompute-model", nil)

	require.Equal(t, http.StatusOK, w.Code)
	resp := decode[RecomputeResponse](t, w)
	assert.Equal(t, "model_recomputed", resp.Status)
	assert.Equal(t, 3, resp.DatasetSize)
	assert.Equal(t, []string{"Backend Developer", "Frontend Developer"}, resp.RolesTracked)
	assert.Positive(t, resp.SkillsRanked)
	assert.LessOrEqual(t, len(resp.TopImpactSkills), 5)
}

func TestHandleRecomputeModel_EmptyDataset(t *testing.T) {
	s := testServer(t)

	w := doJSON(t, s, http.MethodPost, "/ml/recompute-model", nil)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestHandleMLStatus(t *testing.T) {
	s := testServer(t)

	w := doJSON(t, s, http.MethodGet, "/ml/status", nil)
	require.Equal(t, http.StatusOK, w.Code)
	resp := decode[MLStatusResponse](t, w)
	assert.False(t, resp.Ready)
	assert.False(t, resp.ModelCached)

	seedRecords(t, s)
	doJSON(t, s, http.MethodPost, "/ml/recompute-model", nil)

	w = doJSON(t, s, http.MethodGet, "/ml/status", nil)
	resp = decode[MLStatusResponse](t, w)
	assert.True(t, resp.Ready)
	assert.True(t, resp.ModelCached)
	assert.Equal(t, 3, resp.DatasetSize)
	assert.NotNil(t, resp.ModelUpdatedAt)
}

func TestCORS_PreflightAllowed(t *testing.T) {
	s := testServer(t)

	req := httptest.NewRequest(http.MethodOptions, "/predict", nil)
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}
