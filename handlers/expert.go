package handlers

import (
	"net/http"
	"time"

	expertRepo "advisorly/database/repository/expert"
	"advisorly/models"
	"advisorly/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// ExpertRepo is wired in main before the routes are registered.
var ExpertRepo expertRepo.ExpertRepository

// CreateExpert registers a new expert in the directory.
func CreateExpert(c *gin.Context) {
	var expert models.Expert
	if err := c.ShouldBindJSON(&expert); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid expert", err.Error())
		return
	}
	if expert.Profile.Name == "" || expert.HourlyRate <= 0 {
		utils.JSONError(c, http.StatusBadRequest, "invalid expert", "name and a positive hourly rate are required")
		return
	}

	expert.ID = uuid.New().String()
	now := time.Now()
	expert.CreatedAt = now
	expert.UpdatedAt = now

	if err := ExpertRepo.Create(&expert); err != nil {
		utils.JSONError(c, utils.StatusForError(err), "failed to create expert", err.Error())
		return
	}

	c.JSON(http.StatusCreated, gin.H{"expert": expert})
}

// GetExpert fetches a single expert by id.
func GetExpert(c *gin.Context) {
	expert, err := ExpertRepo.GetByID(c.Param("expertID"))
	if err != nil {
		utils.JSONError(c, utils.StatusForError(err), "failed to fetch expert", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"expert": expert})
}

// ListExperts returns the full expert directory.
func ListExperts(c *gin.Context) {
	experts, err := ExpertRepo.GetAll()
	if err != nil {
		utils.JSONError(c, utils.StatusForError(err), "failed to list experts", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"experts": experts, "count": len(experts)})
}

// UpdateExpert replaces an expert record.
func UpdateExpert(c *gin.Context) {
	var expert models.Expert
	if err := c.ShouldBindJSON(&expert); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid expert", err.Error())
		return
	}
	expert.ID = c.Param("expertID")
	expert.UpdatedAt = time.Now()

	if err := ExpertRepo.Update(&expert); err != nil {
		utils.JSONError(c, utils.StatusForError(err), "failed to update expert", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"expert": expert})
}

// DeleteExpert removes an expert from the directory.
func DeleteExpert(c *gin.Context) {
	if err := ExpertRepo.Delete(c.Param("expertID")); err != nil {
		utils.JSONError(c, utils.StatusForError(err), "failed to delete expert", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": true})
}
