package controllers

import (
	"strconv"
	"time"

	"github.com/Akshay-214/WorkNest/config"
	"github.com/Akshay-214/WorkNest/models"
	"github.com/Akshay-214/WorkNest/utils"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// CreateJobRequest represents the job creation body. Budgets are minor units.
type CreateJobRequest struct {
	Title       string    `json:"title" binding:"required"`
	Description string    `json:"description" binding:"required"`
	Category    string    `json:"category" binding:"required"`
	BudgetMin   int64     `json:"budget_min" binding:"required,min=1"`
	BudgetMax   int64     `json:"budget_max" binding:"required,min=1"`
	Deadline    time.Time `json:"deadline"`
}

// CreateJob lets a client post a new job
func CreateJob(c *gin.Context) {
	utils.LogInfo("CreateJob called")
	user, ok := getUserFromContext(c)
	if !ok {
		return
	}

	var req CreateJobRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError("Invalid job creation request for user ID: %d: %v", user.ID, err)
		utils.BadRequest(c, "Invalid request format", err.Error())
		return
	}

	req.Title = utils.SanitizeString(req.Title)
	if err := utils.ValidateStringLength(req.Title, 5, 150); err != nil {
		utils.BadRequest(c, "Invalid title", err.Error())
		return
	}
	if err := utils.ValidateStringLength(req.Description, 20, 10000); err != nil {
		utils.BadRequest(c, "Invalid description", err.Error())
		return
	}
	if req.BudgetMax < req.BudgetMin {
		utils.BadRequest(c, "Maximum budget must not be below minimum budget", nil)
		return
	}
	if !req.Deadline.IsZero() && req.Deadline.Before(time.Now()) {
		utils.BadRequest(c, "Deadline must be in the future", nil)
		return
	}

	job := models.Job{
		ClientID:    user.ID,
		Title:       req.Title,
		Description: req.Description,
		Category:    utils.SanitizeString(req.Category),
		BudgetMin:   req.BudgetMin,
		BudgetMax:   req.BudgetMax,
		Deadline:    req.Deadline,
		Status:      models.JobStatusOpen,
	}
	if err := config.DB.Create(&job).Error; err != nil {
		utils.LogError("Failed to create job for user ID: %d: %v", user.ID, err)
		utils.InternalServerError(c, "Failed to create job", err.Error())
		return
	}

	utils.LogInfo("Job created - ID: %d, Client ID: %d", job.ID, user.ID)
	utils.Created(c, "Job posted successfully", gin.H{
		"job": gin.H{
			"id":         job.ID,
			"title":      job.Title,
			"category":   job.Category,
			"budget_min": job.BudgetMin,
			"budget_max": job.BudgetMax,
			"status":     job.Status,
		},
	})
}

// UpdateJobRequest represents the editable job fields
type UpdateJobRequest struct {
	Title       *string    `json:"title"`
	Description *string    `json:"description"`
	Category    *string    `json:"category"`
	BudgetMin   *int64     `json:"budget_min"`
	BudgetMax   *int64     `json:"budget_max"`
	Deadline    *time.Time `json:"deadline"`
}

// UpdateJob lets the posting client edit a job while it is still open
func UpdateJob(c *gin.Context) {
	utils.LogInfo("UpdateJob called")
	user, ok := getUserFromContext(c)
	if !ok {
		return
	}

	jobID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.BadRequest(c, "Invalid job ID", nil)
		return
	}

	var job models.Job
	if err := config.DB.First(&job, jobID).Error; err != nil {
		utils.NotFound(c, "Job not found")
		return
	}
	if job.ClientID != user.ID {
		utils.LogError("User %d attempted to edit job %d owned by %d", user.ID, job.ID, job.ClientID)
		utils.Forbidden(c, "You can only edit your own jobs")
		return
	}
	if job.Status != models.JobStatusOpen {
		utils.Conflict(c, "Only open jobs can be edited", nil)
		return
	}

	var req UpdateJobRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request format", err.Error())
		return
	}

	if req.Title != nil {
		title := utils.SanitizeString(*req.Title)
		if err := utils.ValidateStringLength(title, 5, 150); err != nil {
			utils.BadRequest(c, "Invalid title", err.Error())
			return
		}
		job.Title = title
	}
	if req.Description != nil {
		if err := utils.ValidateStringLength(*req.Description, 20, 10000); err != nil {
			utils.BadRequest(c, "Invalid description", err.Error())
			return
		}
		job.Description = *req.Description
	}
	if req.Category != nil {
		job.Category = utils.SanitizeString(*req.Category)
	}
	if req.BudgetMin != nil {
		job.BudgetMin = *req.BudgetMin
	}
	if req.BudgetMax != nil {
		job.BudgetMax = *req.BudgetMax
	}
	if job.BudgetMin <= 0 || job.BudgetMax < job.BudgetMin {
		utils.BadRequest(c, "Invalid budget range", nil)
		return
	}
	if req.Deadline != nil {
		if req.Deadline.Before(time.Now()) {
			utils.BadRequest(c, "Deadline must be in the future", nil)
			return
		}
		job.Deadline = *req.Deadline
	}

	if err := config.DB.Save(&job).Error; err != nil {
		utils.LogError("Failed to update job %d: %v", job.ID, err)
		utils.InternalServerError(c, "Failed to update job", err.Error())
		return
	}

	utils.LogInfo("Job %d updated by user %d", job.ID, user.ID)
	utils.Success(c, "Job updated successfully", gin.H{"job": job})
}

// CloseJob closes an open job without hiring anyone. Pending proposals are
// rejected so freelancers are not left waiting.
func CloseJob(c *gin.Context) {
	utils.LogInfo("CloseJob called")
	user, ok := getUserFromContext(c)
	if !ok {
		return
	}

	jobID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.BadRequest(c, "Invalid job ID", nil)
		return
	}

	var job models.Job
	if err := config.DB.First(&job, jobID).Error; err != nil {
		utils.NotFound(c, "Job not found")
		return
	}
	if job.ClientID != user.ID {
		utils.Forbidden(c, "You can only close your own jobs")
		return
	}
	if job.Status != models.JobStatusOpen {
		utils.Conflict(c, "Only open jobs can be closed", nil)
		return
	}

	err = config.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&job).Update("status", models.JobStatusClosed).Error; err != nil {
			return err
		}
		return tx.Model(&models.Proposal{}).
			Where("job_id = ? AND status = ?", job.ID, models.ProposalStatusPending).
			Update("status", models.ProposalStatusRejected).Error
	})
	if err != nil {
		utils.LogError("Failed to close job %d: %v", job.ID, err)
		utils.InternalServerError(c, "Failed to close job", err.Error())
		return
	}

	utils.LogInfo("Job %d closed by user %d", job.ID, user.ID)
	utils.Success(c, "Job closed successfully", gin.H{"job_id": job.ID})
}
