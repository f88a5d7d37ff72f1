package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/Ganesh-0509/Campus-Sync-Edge-Ai/internal/types"
)

// HealthResponse represents the response for /health
type HealthResponse struct {
	Status         string  `json:"status"`
	ModelLoaded    bool    `json:"model_loaded"`
	ModelVersion   string  `json:"model_version,omitempty"`
	VocabularySize int     `json:"vocabulary_size,omitempty"`
	TrainedOn      int     `json:"trained_on,omitempty"`
	Accuracy       float64 `json:"accuracy,omitempty"`
}

// handleHealth reports model load status and key metrics
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	p := s.currentPredictor()
	if p == nil {
		s.jsonResponse(w, http.StatusOK, HealthResponse{
			Status:      "models_not_loaded",
			ModelLoaded: false,
		})
		return
	}

	meta := p.Metadata()
	s.jsonResponse(w, http.StatusOK, HealthResponse{
		Status:         "ready",
		ModelLoaded:    true,
		ModelVersion:   meta.Version,
		VocabularySize: meta.VocabularySize,
		TrainedOn:      meta.TrainedOnRecords,
		Accuracy:       meta.Accuracy,
	})
}

// handlePredict runs full model inference on a resume feature vector
func (s *Server) handlePredict(w http.ResponseWriter, r *http.Request) {
	var req types.PredictionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if err := s.validate.Struct(req); err != nil {
		var invalid validator.ValidationErrors
		if errors.As(err, &invalid) && len(invalid) > 0 {
			s.handleError(w, &ErrValidation{Field: invalid[0].Field(), Message: invalid[0].Tag()})
			return
		}
		s.errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	p := s.currentPredictor()
	if p == nil {
		s.handleError(w, &ErrModelsNotLoaded{})
		return
	}

	resp := p.Predict(req)
	s.log.Info("prediction served",
		zap.String("role", resp.PredictedRole),
		zap.Float64("score", resp.ResumeScore),
		zap.Float64("confidence", resp.Confidence),
		zap.Float64("latency_ms", resp.InferenceTimeMs))
	s.jsonResponse(w, http.StatusOK, resp)
}
