// Package server provides the HTTP REST API for the recall agent.
package server

import (
	"fmt"
	"net/http"

	"github.com/google/uuid"
)

// ErrRecallNotFound indicates no analyzed recall exists with the given id
type ErrRecallNotFound struct {
	ID string
}

func (e *ErrRecallNotFound) Error() string {
	return fmt.Sprintf("recall not found: %s", e.ID)
}

// ErrReportNotFound indicates no report file exists with the given name
type ErrReportNotFound struct {
	Name string
}

func (e *ErrReportNotFound) Error() string {
	return fmt.Sprintf("report not found: %s", e.Name)
}

// ErrRunNotFound indicates no pipeline run exists with the given id
type ErrRunNotFound struct {
	RunID uuid.UUID
}

func (e *ErrRunNotFound) Error() string {
	return fmt.Sprintf("run not found: %s", e.RunID)
}

// ErrValidation indicates request validation failure
type ErrValidation struct {
	Field   string
	Message string
}

func (e *ErrValidation) Error() string {
	return fmt.Sprintf("validation error: %s - %s", e.Field, e.Message)
}

// ErrDatabaseUnavailable indicates a database-backed route was called
// without DATABASE_URL configured
type ErrDatabaseUnavailable struct{}

func (e *ErrDatabaseUnavailable) Error() string {
	return "database not configured"
}

// ErrRunInProgress indicates a pipeline run is already executing
type ErrRunInProgress struct{}

func (e *ErrRunInProgress) Error() string {
	return "a pipeline run is already in progress"
}

// HTTPStatus returns the appropriate HTTP status code for an error
func HTTPStatus(err error) int {
	switch err.(type) {
	case *ErrRecallNotFound, *ErrReportNotFound, *ErrRunNotFound:
		return http.StatusNotFound
	case *ErrValidation:
		return http.StatusBadRequest
	case *ErrDatabaseUnavailable:
		return http.StatusServiceUnavailable
	case *ErrRunInProgress:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
