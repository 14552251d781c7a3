package handlers

import (
	"net/http"

	"advisorly/models"
	"advisorly/services/matching"
	"advisorly/utils"

	"github.com/gin-gonic/gin"
)

// MatchingService is wired in main before the routes are registered.
var MatchingService matching.MatchingService

// FindMatches ranks the expert pool against a consultation request for the
// authenticated user.
func FindMatches(c *gin.Context) {
	userID := c.GetString("userID")

	var req models.ConsultationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid request", err.Error())
		return
	}
	if req.Category == "" || req.Urgency == "" {
		utils.JSONError(c, http.StatusBadRequest, "invalid request", "category and urgency are required")
		return
	}
	req.UserID = userID

	matches, err := MatchingService.FindBestMatches(c.Request.Context(), userID, req)
	if err != nil {
		utils.JSONError(c, utils.StatusForError(err), "matching failed", err.Error())
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"matches": matches,
		"count":   len(matches),
	})
}

// NotifyMatches fans a stored request out to its top matched experts.
func NotifyMatches(c *gin.Context) {
	requestID := c.Param("requestID")

	var input struct {
		Matches []models.ExpertMatch `json:"matches"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid request", err.Error())
		return
	}

	if err := MatchingService.NotifyMatchingExperts(c.Request.Context(), requestID, input.Matches); err != nil {
		utils.JSONError(c, utils.StatusForError(err), "notification fan-out failed", err.Error())
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"requestId": requestID,
		"notified":  len(input.Matches),
	})
}

// NotifyEmergency broadcasts an emergency request to the whole expert pool.
func NotifyEmergency(c *gin.Context) {
	requestID := c.Param("requestID")

	if err := MatchingService.NotifyEmergencyRequest(c.Request.Context(), requestID); err != nil {
		utils.JSONError(c, utils.StatusForError(err), "emergency broadcast failed", err.Error())
		return
	}

	c.JSON(http.StatusOK, gin.H{"requestId": requestID, "broadcast": true})
}
