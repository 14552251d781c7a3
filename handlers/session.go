package handlers

import (
	"net/http"
	"time"

	sessionRepo "advisorly/database/repository/session"
	"advisorly/services/session"
	"advisorly/utils"

	"github.com/gin-gonic/gin"
)

// SessionService and SessionRepo are wired in main before the routes are
// registered.
var (
	SessionService session.SessionService
	SessionRepo    sessionRepo.SessionRepository
)

// ScheduleSession books a consultation session with an expert.
func ScheduleSession(c *gin.Context) {
	var input struct {
		RequestID     string    `json:"requestId" binding:"required"`
		ExpertID      string    `json:"expertId" binding:"required"`
		ScheduledTime time.Time `json:"scheduledTime" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid request", err.Error())
		return
	}

	sessionID, err := SessionService.ScheduleSession(c.Request.Context(), input.RequestID, input.ExpertID, input.ScheduledTime)
	if err != nil {
		utils.JSONError(c, utils.StatusForError(err), "failed to schedule session", err.Error())
		return
	}

	c.JSON(http.StatusCreated, gin.H{"sessionId": sessionID})
}

// StartSession activates a scheduled session, capturing payment and
// provisioning the chosen channel.
func StartSession(c *gin.Context) {
	userID := c.GetString("userID")
	sessionID := c.Param("sessionID")

	var input struct {
		SessionType string `json:"sessionType" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid request", err.Error())
		return
	}

	conn, err := SessionService.StartSession(c.Request.Context(), sessionID, userID, input.SessionType)
	if err != nil {
		utils.JSONError(c, utils.StatusForError(err), "failed to start session", err.Error())
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"sessionId":  sessionID,
		"connection": conn,
	})
}

// EndSession completes an active session and returns the final record with
// its reconciled cost and report.
func EndSession(c *gin.Context) {
	userID := c.GetString("userID")
	sessionID := c.Param("sessionID")

	var input struct {
		Summary     string   `json:"summary"`
		ActionItems []string `json:"actionItems"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid request", err.Error())
		return
	}

	sess, err := SessionService.EndSession(c.Request.Context(), sessionID, userID, input.Summary, input.ActionItems)
	if err != nil {
		utils.JSONError(c, utils.StatusForError(err), "failed to end session", err.Error())
		return
	}

	c.JSON(http.StatusOK, gin.H{"session": sess})
}

// CancelSession cancels a scheduled or active session, refunding any
// captured payment.
func CancelSession(c *gin.Context) {
	userID := c.GetString("userID")
	sessionID := c.Param("sessionID")

	var input struct {
		Reason string `json:"reason" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid request", err.Error())
		return
	}

	if err := SessionService.CancelSession(c.Request.Context(), sessionID, userID, input.Reason); err != nil {
		utils.JSONError(c, utils.StatusForError(err), "failed to cancel session", err.Error())
		return
	}

	c.JSON(http.StatusOK, gin.H{"sessionId": sessionID, "status": "cancelled"})
}

// GetSession fetches one session owned by the caller.
func GetSession(c *gin.Context) {
	userID := c.GetString("userID")
	sessionID := c.Param("sessionID")

	sess, err := SessionRepo.GetByID(sessionID)
	if err != nil {
		utils.JSONError(c, utils.StatusForError(err), "failed to fetch session", err.Error())
		return
	}
	if sess.UserID != userID && sess.ExpertID != userID {
		utils.JSONError(c, http.StatusForbidden, "not your session", "")
		return
	}

	c.JSON(http.StatusOK, gin.H{"session": sess})
}

// ListMySessions lists the caller's sessions, newest first.
func ListMySessions(c *gin.Context) {
	userID := c.GetString("userID")

	sessions, err := SessionRepo.GetByUser(userID)
	if err != nil {
		utils.JSONError(c, utils.StatusForError(err), "failed to list sessions", err.Error())
		return
	}

	c.JSON(http.StatusOK, gin.H{"sessions": sessions, "count": len(sessions)})
}
