package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/nktomer45/planboard/internal/dimension"
	"github.com/nktomer45/planboard/internal/metrics"
	"github.com/nktomer45/planboard/internal/planning"
	"github.com/nktomer45/planboard/internal/service"
	"github.com/nktomer45/planboard/internal/storage"
)

var errMissingParam = errors.New("missing required parameter")

// statusFor maps domain errors onto HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, planning.ErrNegativeUnits),
		errors.Is(err, dimension.ErrInvalidMember),
		errors.Is(err, service.ErrUnsupportedFormat),
		errors.Is(err, metrics.ErrNonFinite):
		return http.StatusBadRequest
	case errors.Is(err, planning.ErrRowNotFound),
		errors.Is(err, planning.ErrUnknownWeek),
		errors.Is(err, dimension.ErrMemberNotFound):
		return http.StatusNotFound
	case errors.Is(err, dimension.ErrDuplicateMember):
		return http.StatusConflict
	case errors.Is(err, storage.ErrStorageDisabled):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func respondError(c *gin.Context, message string, err error) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		log.Error().Err(err).Str("path", c.FullPath()).Msg(message)
	}
	c.JSON(status, gin.H{"error": message, "details": err.Error()})
}

func badRequest(c *gin.Context, message string, err error) {
	c.JSON(http.StatusBadRequest, gin.H{"error": message, "details": err.Error()})
}
