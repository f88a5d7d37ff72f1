package server

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/Ganesh-0509/Campus-Sync-Edge-Ai/internal/registry"
	"github.com/Ganesh-0509/Campus-Sync-Edge-Ai/internal/scoring"
)

// ErrNoHistoricalData indicates the record store is empty
type ErrNoHistoricalData struct{}

func (e *ErrNoHistoricalData) Error() string {
	return "no historical data found, upload and analyze at least one resume first"
}

// ErrModelsNotLoaded indicates no trained model version is being served
type ErrModelsNotLoaded struct{}

func (e *ErrModelsNotLoaded) Error() string {
	return "ML models are not loaded, train models first: edge train --seed 42"
}

// ErrValidation indicates request validation failure
type ErrValidation struct {
	Field   string
	Message string
}

func (e *ErrValidation) Error() string {
	return fmt.Sprintf("validation error: %s - %s", e.Field, e.Message)
}

// HTTPStatus returns the appropriate HTTP status code for an error
func HTTPStatus(err error) int {
	var roleErr *scoring.UnknownRoleError
	var missErr *registry.ArtifactMissingError
	switch {
	case errors.As(err, new(*ErrValidation)), errors.As(err, &roleErr):
		return http.StatusBadRequest
	case errors.As(err, new(*ErrNoHistoricalData)):
		return http.StatusNotFound
	case errors.As(err, new(*ErrModelsNotLoaded)), errors.As(err, &missErr):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
