package v1

import (
	"errors"
	"net/http"

	"github.com/rentledger/backend/internal/billing"
	"github.com/rentledger/backend/internal/models"
)

type httpError struct {
	Error string `json:"error" example:"the specified resource ID is not a valid UUID"`
}

// status returns the appropriate HTTP status for an error
func status(err error) int {
	if errors.Is(err, models.ErrGeneral) {
		return http.StatusInternalServerError
	}

	// A reconciliation failure means the stored weight data is corrupt.
	// That is a server problem, not a request problem.
	if errors.Is(err, billing.ErrReconciliation) {
		return http.StatusInternalServerError
	}

	if errors.Is(err, models.ErrResourceNotFound) {
		return http.StatusNotFound
	}

	return http.StatusBadRequest
}

var (
	errMonthNotSet    = errors.New("the month must be set")
	errPropertyNotSet = errors.New("the property must be set")
)
