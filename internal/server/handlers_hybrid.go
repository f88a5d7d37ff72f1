package server

import (
	"encoding/json"
	"net/http"
	"sort"
	"time"

	"github.com/Ganesh-0509/Campus-Sync-Edge-Ai/internal/registry"
	"github.com/Ganesh-0509/Campus-Sync-Edge-Ai/internal/similarity"
	"github.com/Ganesh-0509/Campus-Sync-Edge-Ai/internal/types"
)

// RolePredictRequest represents the request body for /ml/predict-role
type RolePredictRequest struct {
	Skills []string `json:"skills"`
}

// ScoreProjectRequest represents the request body for /ml/project-score
type ScoreProjectRequest struct {
	CurrentSkills []string `json:"current_skills"`
	AddSkill      string   `json:"add_skill"`
}

// requireData loads all records and fails with a 404-mapped error when the
// dataset is empty.
func (s *Server) requireData(r *http.Request) ([]types.ResumeRecord, error) {
	records, err := s.store.List(r.Context())
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, &ErrNoHistoricalData{}
	}
	return records, nil
}

// handlePredictRole predicts the best-fit role via cosine similarity
func (s *Server) handlePredictRole(w http.ResponseWriter, r *http.Request) {
	var req RolePredictRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if len(req.Skills) == 0 {
		s.handleError(w, &ErrValidation{Field: "skills", Message: "required"})
		return
	}

	records, err := s.requireData(r)
	if err != nil {
		s.handleError(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, similarity.PredictRole(req.Skills, records, similarity.DefaultTopK))
}

// handleProjectScore simulates adding a skill and predicts the score change
func (s *Server) handleProjectScore(w http.ResponseWriter, r *http.Request) {
	var req ScoreProjectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if req.AddSkill == "" {
		s.handleError(w, &ErrValidation{Field: "add_skill", Message: "required"})
		return
	}

	records, err := s.requireData(r)
	if err != nil {
		s.handleError(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, similarity.ProjectScore(req.CurrentSkills, req.AddSkill, records))
}

// SkillImpactResponse represents the response for /ml/skill-impact
type SkillImpactResponse struct {
	Source          string              `json:"source"`
	UpdatedAt       *time.Time          `json:"updated_at,omitempty"`
	DatasetSize     int                 `json:"dataset_size"`
	GlobalMeanScore float64             `json:"global_mean_score"`
	Ranking         []types.SkillImpact `json:"skill_impact_ranking"`
}

// handleSkillImpact returns the skill impact ranking, cached by default or
// recomputed from live data with ?live=true
func (s *Server) handleSkillImpact(w http.ResponseWriter, r *http.Request) {
	live := r.URL.Query().Get("live") == "true"

	if !live && s.registry.SnapshotExists() {
		snap, err := s.registry.LoadSnapshot()
		if err != nil {
			s.handleError(w, err)
			return
		}
		s.jsonResponse(w, http.StatusOK, SkillImpactResponse{
			Source:          "cached_model",
			UpdatedAt:       &snap.UpdatedAt,
			DatasetSize:     snap.DatasetSize,
			GlobalMeanScore: snap.GlobalMeanScore,
			Ranking:         snap.Ranking,
		})
		return
	}

	records, err := s.requireData(r)
	if err != nil {
		s.handleError(w, err)
		return
	}
	report := similarity.ComputeSkillImpact(records)
	s.jsonResponse(w, http.StatusOK, SkillImpactResponse{
		Source:          "live_compute",
		DatasetSize:     report.DatasetSize,
		GlobalMeanScore: report.GlobalMeanScore,
		Ranking:         report.Ranking,
	})
}

// RecomputeResponse represents the response for /ml/recompute-model
type RecomputeResponse struct {
	Status          string              `json:"status"`
	DatasetSize     int                 `json:"dataset_size"`
	UpdatedAt       time.Time           `json:"updated_at"`
	GlobalMeanScore float64             `json:"global_mean_score"`
	RolesTracked    []string            `json:"roles_tracked"`
	SkillsRanked    int                 `json:"skills_ranked"`
	TopImpactSkills []types.SkillImpact `json:"top_5_impact_skills"`
}

// handleRecomputeModel rebuilds and persists the statistics snapshot
func (s *Server) handleRecomputeModel(w http.ResponseWriter, r *http.Request) {
	records, err := s.requireData(r)
	if err != nil {
		s.handleError(w, err)
		return
	}

	report := similarity.ComputeSkillImpact(records)
	stats := registry.BuildRoleStats(records)
	snap := registry.NewSnapshot(report, stats)
	if err := s.registry.SaveSnapshot(snap); err != nil {
		s.handleError(w, err)
		return
	}

	roles := make([]string, 0, len(stats))
	for role := range stats {
		roles = append(roles, role)
	}
	sort.Strings(roles)
	top := snap.Ranking
	if len(top) > 5 {
		top = top[:5]
	}
	s.jsonResponse(w, http.StatusOK, RecomputeResponse{
		Status:          "model_recomputed",
		DatasetSize:     snap.DatasetSize,
		UpdatedAt:       snap.UpdatedAt,
		GlobalMeanScore: snap.GlobalMeanScore,
		RolesTracked:    roles,
		SkillsRanked:    len(snap.Ranking),
		TopImpactSkills: top,
	})
}

// MLStatusResponse represents the response for /ml/status
type MLStatusResponse struct {
	DatasetSize    int        `json:"dataset_size"`
	ModelCached    bool       `json:"model_cached"`
	ModelUpdatedAt *time.Time `json:"model_updated_at,omitempty"`
	Ready          bool       `json:"ready"`
}

// handleMLStatus reports snapshot cache status and dataset size
func (s *Server) handleMLStatus(w http.ResponseWriter, r *http.Request) {
	count, err := s.store.Count(r.Context())
	if err != nil {
		s.handleError(w, err)
		return
	}

	resp := MLStatusResponse{
		DatasetSize: count,
		ModelCached: s.registry.SnapshotExists(),
		Ready:       count > 0,
	}
	if resp.ModelCached {
		if snap, err := s.registry.LoadSnapshot(); err == nil {
			resp.ModelUpdatedAt = &snap.UpdatedAt
		}
	}
	s.jsonResponse(w, http.StatusOK, resp)
}
