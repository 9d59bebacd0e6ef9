package controllers

import (
	"errors"
	"net/http"

	"SlowDown/repositories"
	"SlowDown/services"

	"github.com/gin-gonic/gin"
)

// respondError maps service and repository sentinels onto the wire
// contract: duplicate-pending and already-processed conflicts surface as
// 400 with a message, like the rest of the validation failures.
func respondError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	message := "Internal server error"

	switch {
	case errors.Is(err, repositories.ErrNotFound):
		status, message = http.StatusNotFound, "Not found"
	case errors.Is(err, repositories.ErrDuplicatePending):
		status, message = http.StatusBadRequest, "You already have a pending request"
	case errors.Is(err, repositories.ErrAlreadyProcessed):
		status, message = http.StatusBadRequest, "Request has already been processed"
	case errors.Is(err, services.ErrInvalidInput):
		status, message = http.StatusBadRequest, err.Error()
	case errors.Is(err, services.ErrForbidden):
		status, message = http.StatusForbidden, "Access denied"
	case errors.Is(err, services.ErrAccountBlocked):
		status, message = http.StatusForbidden, "Your account has been blocked"
	case errors.Is(err, services.ErrInvalidToken):
		status, message = http.StatusUnauthorized, "Invalid or expired token"
	}

	c.JSON(status, gin.H{"success": false, "error": message})
}
