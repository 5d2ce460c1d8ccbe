package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"gotolaunch/logger"
	"gotolaunch/services"
)

// ErrorResponse maps a service error onto a status code and writes it.
// Unexpected errors are logged and reported with fallback as the message.
func ErrorResponse(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, services.ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	default:
		logger.Error(fallback, "path", c.FullPath(), "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": fallback})
	}
}

// UserID returns the caller set by the access token middleware.
func UserID(c *gin.Context) string {
	return c.GetString("userId")
}
