package api

import (
	"errors"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/ericogr/fight-tracker/internal/constants"
	"github.com/ericogr/fight-tracker/internal/logging"
	"github.com/ericogr/fight-tracker/internal/service"
)

// parseIDParam reads a positive integer route parameter.
func parseIDParam(c *gin.Context, name string) (uint, bool) {
	n, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || n == 0 {
		return 0, false
	}
	return uint(n), true
}

// bindOptionalJSON binds the body when there is one. An empty body leaves
// dst untouched.
func bindOptionalJSON(c *gin.Context, dst any) error {
	if err := c.ShouldBindJSON(dst); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

// writeError maps service errors to HTTP responses. fallback is the message
// used for unexpected storage faults.
func writeError(c *gin.Context, err error, fallback string, view *service.FightView) {
	status, msg := http.StatusInternalServerError, fallback
	body := gin.H{}
	switch {
	case errors.Is(err, service.ErrFightNotFound):
		status, msg = http.StatusNotFound, constants.ErrFightNotFound
	case errors.Is(err, service.ErrRowNotFound):
		status, msg = http.StatusNotFound, constants.ErrRowNotFound
	case errors.Is(err, service.ErrItemNotFound):
		status, msg = http.StatusNotFound, constants.ErrItemNotFound
	case errors.Is(err, service.ErrLogEntryNotFound):
		status, msg = http.StatusNotFound, constants.ErrLogEntryNotFound
	case errors.Is(err, service.ErrHistoryReadOnly):
		status, msg = http.StatusConflict, constants.ErrHistoryReadOnly
	case errors.Is(err, service.ErrNothingToRetry):
		status, msg = http.StatusConflict, constants.ErrNothingToRetry
	case errors.Is(err, service.ErrTooManyRows):
		status, msg = http.StatusBadRequest, constants.ErrTooManyRows
	case errors.Is(err, service.ErrEmptyRow):
		status, msg = http.StatusBadRequest, constants.ErrEmptyRow
	case errors.Is(err, service.ErrInvalidAttacker):
		status, msg = http.StatusBadRequest, constants.ErrInvalidAttacker
	case errors.Is(err, service.ErrInvalidDeathSave):
		status, msg = http.StatusBadRequest, constants.ErrInvalidDeathSave
		body[constants.JSONKeyDetails] = err.Error()
	case errors.Is(err, service.ErrItemNameRequired):
		status, msg = http.StatusBadRequest, constants.ErrItemNameRequired
	case errors.Is(err, service.ErrPersistFailed):
		status, msg = http.StatusServiceUnavailable, constants.ErrFailedSaveFight
		body[constants.JSONKeyRetry] = true
	default:
		logging.Error(fallback, err, logging.Fields{constants.LogFieldPath: c.FullPath()})
	}
	body[constants.JSONKeyError] = msg
	if view != nil {
		body["fight"] = view
	}
	c.JSON(status, body)
}

func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		logging.Debug("request", logging.Fields{
			"method":                c.Request.Method,
			constants.LogFieldPath:  c.FullPath(),
			constants.JSONKeyStatus: c.Writer.Status(),
			"duration_ms":           time.Since(start).Milliseconds(),
		})
	}
}
