package server

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Ganesh-0509/Campus-Sync-Edge-Ai/internal/scoring"
	"github.com/Ganesh-0509/Campus-Sync-Edge-Ai/internal/types"
)

// AnalyzeRequest represents the request body for /analyze. Skills are
// optional; when omitted they are extracted from the resume text using the
// configured skill dictionary.
type AnalyzeRequest struct {
	ResumeText       string   `json:"resume_text"`
	Role             string   `json:"role"`
	Skills           []string `json:"skills,omitempty"`
	SectionsDetected []string `json:"sections_detected,omitempty"`
	Filename         string   `json:"filename,omitempty"`
}

// AnalyzeResponse represents the response for /analyze
type AnalyzeResponse struct {
	*types.ReadinessResult
	Filename         string   `json:"filename,omitempty"`
	DetectedSkills   []string `json:"detected_skills"`
	SectionsDetected []string `json:"sections_detected"`
	DBWarning        string   `json:"db_warning,omitempty"`
}

// handleAnalyze scores a resume against a target role and persists the
// result. Storage failures are non-fatal: the analysis is still returned
// with a db_warning annotation.
func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	var req AnalyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if req.ResumeText == "" {
		s.handleError(w, &ErrValidation{Field: "resume_text", Message: "required"})
		return
	}
	if req.Role == "" {
		s.handleError(w, &ErrValidation{Field: "role", Message: "required"})
		return
	}

	skills := types.NormalizeSkills(req.Skills)
	if len(skills) == 0 {
		skills = scoring.ExtractSkills(req.ResumeText, s.skills)
	}

	result, err := s.scorer.Evaluate(skills, req.SectionsDetected, req.ResumeText, req.Role)
	if err != nil {
		s.handleError(w, err)
		return
	}

	resp := AnalyzeResponse{
		ReadinessResult:  result,
		Filename:         req.Filename,
		DetectedSkills:   skills,
		SectionsDetected: req.SectionsDetected,
	}

	record := types.ResumeRecord{
		ID:                      uuid.NewString(),
		DetectedSkills:          skills,
		Role:                    result.Role,
		FinalScore:              result.FinalScore,
		ReadinessCategory:       result.ReadinessCategory,
		CoreCoveragePercent:     float64(result.CoreCoveragePercent),
		OptionalCoveragePercent: float64(result.OptionalCoveragePercent),
		ProjectScorePercent:     float64(result.ProjectScorePercent),
		ATSScorePercent:         float64(result.ATSScorePercent),
		StructureScorePercent:   float64(result.StructureScorePercent),
		MissingCoreSkills:       result.MissingCoreSkills,
		MissingOptionalSkills:   result.MissingOptionalSkills,
	}
	if err := s.store.Append(r.Context(), record); err != nil {
		s.log.Warn("record not saved", zap.Error(err))
		resp.DBWarning = "save failed (scoring still valid): " + err.Error()
	}

	s.jsonResponse(w, http.StatusOK, resp)
}

// handleListRoles returns the supported target roles
func (s *Server) handleListRoles(w http.ResponseWriter, r *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string][]string{"valid_roles": s.scorer.Roles()})
}
