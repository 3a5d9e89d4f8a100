package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/feed-system/social-demo/internal/models"
	"github.com/feed-system/social-demo/internal/services"
	"github.com/feed-system/social-demo/pkg/logger"
	"github.com/gin-gonic/gin"
)

// StatusClientClosedRequest is reported when the client went away before
// the service call finished.
const StatusClientClosedRequest = 499

// respondError maps a service error onto a status code. Cancellations are
// not failures of the server and are only logged at debug level; anything
// else other than a missing record is logged and reported as an internal
// error.
func respondError(c *gin.Context, log *logger.Logger, err error) {
	fields := map[string]interface{}{
		"method": c.Request.Method,
		"path":   c.FullPath(),
	}

	switch {
	case errors.Is(err, services.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, context.Canceled):
		log.WithError(err).WithFields(fields).Debug("Request cancelled by client")
		c.AbortWithStatus(StatusClientClosedRequest)
	case errors.Is(err, context.DeadlineExceeded):
		log.WithError(err).WithFields(fields).Debug("Request timed out")
		c.JSON(http.StatusGatewayTimeout, gin.H{"error": "Request timed out"})
	default:
		log.WithError(err).WithFields(fields).Error("Request failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}

// currentOr returns id, or the current user's id when id is empty.
func currentOr(id string) string {
	if id == "" {
		return models.CurrentUserID
	}
	return id
}
