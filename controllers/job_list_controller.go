package controllers

import (
	"strconv"

	"github.com/Akshay-214/WorkNest/config"
	"github.com/Akshay-214/WorkNest/models"
	"github.com/Akshay-214/WorkNest/utils"
	"github.com/gin-gonic/gin"
)

// ListJobs returns open jobs with optional search, category filter and
// pagination. Freelancers browse this to find work.
func ListJobs(c *gin.Context) {
	utils.LogInfo("ListJobs called")

	pagination := utils.NewPagination(c)
	search := utils.SanitizeString(c.Query("search"))
	category := utils.SanitizeString(c.Query("category"))

	query := config.DB.Model(&models.Job{}).Where("status = ?", models.JobStatusOpen)
	if search != "" {
		like := "%" + search + "%"
		query = query.Where("title ILIKE ? OR description ILIKE ?", like, like)
	}
	if category != "" {
		query = query.Where("category = ?", category)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		utils.LogError("Failed to count jobs: %v", err)
		utils.InternalServerError(c, "Failed to count jobs", err.Error())
		return
	}

	var jobs []models.Job
	if err := query.Preload("Client").
		Order("created_at DESC").
		Limit(pagination.Limit).Offset(pagination.Offset).
		Find(&jobs).Error; err != nil {
		utils.LogError("Failed to list jobs: %v", err)
		utils.InternalServerError(c, "Failed to list jobs", err.Error())
		return
	}
	utils.LogDebug("Retrieved %d jobs (total %d)", len(jobs), total)

	formatted := make([]gin.H, len(jobs))
	for i, job := range jobs {
		formatted[i] = gin.H{
			"id":          job.ID,
			"title":       job.Title,
			"category":    job.Category,
			"budget_min":  job.BudgetMin,
			"budget_max":  job.BudgetMax,
			"deadline":    job.Deadline,
			"client":      gin.H{"id": job.Client.ID, "username": job.Client.Username},
			"posted_at":   job.CreatedAt.Format("2006-01-02 15:04:05"),
		}
	}

	utils.SuccessWithPagination(c, "Jobs retrieved successfully", gin.H{
		"jobs": formatted,
	}, total, pagination.Page, pagination.Limit)
}

// GetJobDetails returns a single job with its proposal count
func GetJobDetails(c *gin.Context) {
	utils.LogInfo("GetJobDetails called")

	jobID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.BadRequest(c, "Invalid job ID", nil)
		return
	}

	var job models.Job
	if err := config.DB.Preload("Client").First(&job, jobID).Error; err != nil {
		utils.LogError("Job not found: %d", jobID)
		utils.NotFound(c, "Job not found")
		return
	}

	var proposalCount int64
	if err := config.DB.Model(&models.Proposal{}).
		Where("job_id = ? AND status = ?", job.ID, models.ProposalStatusPending).
		Count(&proposalCount).Error; err != nil {
		utils.LogError("Failed to count proposals for job %d: %v", job.ID, err)
		utils.InternalServerError(c, "Failed to load job", err.Error())
		return
	}

	utils.Success(c, "Job retrieved successfully", gin.H{
		"job": gin.H{
			"id":          job.ID,
			"title":       job.Title,
			"description": job.Description,
			"category":    job.Category,
			"budget_min":  job.BudgetMin,
			"budget_max":  job.BudgetMax,
			"deadline":    job.Deadline,
			"status":      job.Status,
			"client": gin.H{
				"id":       job.Client.ID,
				"username": job.Client.Username,
			},
			"proposal_count": proposalCount,
			"posted_at":      job.CreatedAt.Format("2006-01-02 15:04:05"),
		},
	})
}

// ListMyJobs returns the authenticated client's own jobs in any status
func ListMyJobs(c *gin.Context) {
	utils.LogInfo("ListMyJobs called")
	user, ok := getUserFromContext(c)
	if !ok {
		return
	}

	pagination := utils.NewPagination(c)
	query := config.DB.Model(&models.Job{}).Where("client_id = ?", user.ID)
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		utils.InternalServerError(c, "Failed to count jobs", err.Error())
		return
	}

	var jobs []models.Job
	if err := query.Order("created_at DESC").
		Limit(pagination.Limit).Offset(pagination.Offset).
		Find(&jobs).Error; err != nil {
		utils.LogError("Failed to list jobs for user ID: %d: %v", user.ID, err)
		utils.InternalServerError(c, "Failed to list jobs", err.Error())
		return
	}

	utils.SuccessWithPagination(c, "Jobs retrieved successfully", gin.H{
		"jobs": jobs,
	}, total, pagination.Page, pagination.Limit)
}
