package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ligandscope/core/internal/logging"
	"github.com/ligandscope/core/internal/models"
)

// NoInteractionsMessage is shown when a pair has nothing to color.
const NoInteractionsMessage = "No interactions to display for this cell type pair."

// ErrorResponse is the body of every failed API call.
type ErrorResponse struct {
	Error string `json:"error"`
	Kind  string `json:"kind"`
}

// classify maps a pipeline error to its HTTP status, a metrics label and the
// message shown to the user.
func classify(err error) (status int, kind, message string) {
	var (
		invalid    *models.InvalidPairError
		missing    *models.MissingDataError
		empty      *models.EmptyRangeError
		degenerate *models.ScaleDegenerateError
	)
	switch {
	case errors.As(err, &invalid):
		return http.StatusBadRequest, "invalid_pair", invalid.Error()
	case errors.As(err, &missing):
		return http.StatusNotFound, "missing_data", missing.Error()
	case errors.As(err, &empty):
		return http.StatusUnprocessableEntity, "empty_range", NoInteractionsMessage
	case errors.As(err, &degenerate):
		return http.StatusUnprocessableEntity, "scale_degenerate", NoInteractionsMessage
	default:
		return http.StatusInternalServerError, "internal", "internal server error"
	}
}

func (a *API) fail(c *gin.Context, err error) {
	status, kind, message := classify(err)
	if a.errors != nil {
		a.errors.PipelineError(kind)
	}
	if status >= http.StatusInternalServerError {
		a.log.Error("request failed", logging.String("path", c.FullPath()), logging.Err(err))
	} else {
		a.log.Debug("request rejected", logging.String("kind", kind), logging.Err(err))
	}
	c.AbortWithStatusJSON(status, ErrorResponse{Error: message, Kind: kind})
}
