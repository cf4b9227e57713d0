package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"performance-management-api/models"
	"performance-management-api/services"
)

// currentUser returns the authenticated user placed in the context by
// middleware.AuthMiddleware.
func currentUser(c *gin.Context) *models.User {
	v, ok := c.Get("currentUser")
	if !ok {
		return nil
	}
	user, ok := v.(models.User)
	if !ok {
		return nil
	}
	return &user
}

// respondServiceError maps service errors to HTTP responses. Unrecognized
// errors become a 500 with a generic message.
func respondServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrValidation),
		errors.Is(err, services.ErrProgressOutOfRange),
		errors.Is(err, services.ErrInvalidAction),
		errors.Is(err, services.ErrDuplicateReview),
		errors.Is(err, services.ErrNoDraftGoals),
		errors.Is(err, services.ErrNoReviewerAssigned):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrGoalNotFound),
		errors.Is(err, services.ErrReviewNotFound),
		errors.Is(err, services.ErrNotificationNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}
