package controllers

import (
	"net/http"

	"SlowDown/middlewares"

	"github.com/gin-gonic/gin"
)

var timeRequestService TimeRequestManager

func SetTimeRequestService(service TimeRequestManager) {
	timeRequestService = service
}

// CreateTimeRequest files a request for extra minutes. A user can have
// at most one pending request at a time.
func CreateTimeRequest(c *gin.Context) {
	var input struct {
		RequestedMinutes int    `json:"requestedMinutes" binding:"required"`
		Reason           string `json:"reason"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Requested minutes are required"})
		return
	}

	user := middlewares.CurrentUser(c)
	request, err := timeRequestService.Create(user.ID, input.RequestedMinutes, input.Reason)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"success": true, "request": request})
}

// ListTimeRequests returns requests for the caller. Admins see everyone's,
// pending first, and can narrow by ?status=.
func ListTimeRequests(c *gin.Context) {
	user := middlewares.CurrentUser(c)

	if user.IsAdmin() {
		requests, err := timeRequestService.ListAll(c.Query("status"))
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "requests": requests})
		return
	}

	requests, err := timeRequestService.ListForUser(user.ID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "requests": requests})
}

// PendingTimeRequest returns the caller's pending request, or null.
func PendingTimeRequest(c *gin.Context) {
	user := middlewares.CurrentUser(c)
	request, err := timeRequestService.PendingForUser(user.ID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "request": request})
}

// ProcessTimeRequest approves or rejects a pending request. Admin only.
func ProcessTimeRequest(c *gin.Context) {
	var input struct {
		Action          string `json:"action" binding:"required"`
		ApprovedMinutes int    `json:"approvedMinutes"`
		Note            string `json:"note"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Action is required"})
		return
	}

	admin := middlewares.CurrentUser(c)
	requestID := c.Param("id")

	switch input.Action {
	case "approve":
		request, err := timeRequestService.Approve(requestID, admin.ID, input.ApprovedMinutes, input.Note)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "request": request})
	case "reject":
		request, err := timeRequestService.Reject(requestID, admin.ID, input.Note)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "request": request})
	default:
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Action must be 'approve' or 'reject'"})
	}
}

// CancelTimeRequest withdraws the caller's own pending request.
func CancelTimeRequest(c *gin.Context) {
	user := middlewares.CurrentUser(c)
	if err := timeRequestService.Cancel(c.Param("id"), user.ID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Request cancelled"})
}
