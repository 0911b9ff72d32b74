package handlers

import (
	"errors"
	"net/http"

	"code_enforce_app_go/services"

	"github.com/labstack/echo/v4"
)

// Registry is the shared case-file registry. It is set once at startup and
// swapped in handler tests.
var Registry *services.CaseRegistry

// errorResponse is the uniform JSON error body.
type errorResponse struct {
	Error  string   `json:"error"`
	Fields []string `json:"fields,omitempty"`
}

// writeServiceError maps service-layer errors onto HTTP responses. Validation
// problems are 400 with the offending fields, missing records are 404,
// collaborator failures are 502.
func writeServiceError(c echo.Context, err error) error {
	var validationErr *services.ValidationError
	if errors.As(err, &validationErr) {
		return c.JSON(http.StatusBadRequest, errorResponse{
			Error:  validationErr.Error(),
			Fields: validationErr.Fields,
		})
	}

	if errors.Is(err, services.ErrCaseNotFound) || errors.Is(err, services.ErrPropertyNotFound) {
		return c.JSON(http.StatusNotFound, errorResponse{Error: err.Error()})
	}

	if errors.Is(err, services.ErrDeleteNotConfirmed) {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
	}

	var externalErr *services.ExternalServiceError
	if errors.As(err, &externalErr) {
		return c.JSON(http.StatusBadGateway, errorResponse{Error: externalErr.Error()})
	}

	return c.JSON(http.StatusInternalServerError, errorResponse{Error: err.Error()})
}
