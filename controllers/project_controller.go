package controllers

import (
	"errors"
	"strconv"
	"time"

	"github.com/Akshay-214/WorkNest/config"
	"github.com/Akshay-214/WorkNest/models"
	"github.com/Akshay-214/WorkNest/utils"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// ListMyProjects returns projects where the user is either party
func ListMyProjects(c *gin.Context) {
	utils.LogInfo("ListMyProjects called")
	user, ok := getUserFromContext(c)
	if !ok {
		return
	}

	pagination := utils.NewPagination(c)
	query := config.DB.Model(&models.Project{}).
		Where("client_id = ? OR freelancer_id = ?", user.ID, user.ID)
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		utils.InternalServerError(c, "Failed to count projects", err.Error())
		return
	}

	var projects []models.Project
	if err := query.Preload("Job").
		Order("created_at DESC").
		Limit(pagination.Limit).Offset(pagination.Offset).
		Find(&projects).Error; err != nil {
		utils.LogError("Failed to list projects for user ID: %d: %v", user.ID, err)
		utils.InternalServerError(c, "Failed to list projects", err.Error())
		return
	}

	utils.SuccessWithPagination(c, "Projects retrieved successfully", gin.H{
		"projects": projects,
	}, total, pagination.Page, pagination.Limit)
}

// GetProjectDetails returns one project visible to either party
func GetProjectDetails(c *gin.Context) {
	utils.LogInfo("GetProjectDetails called")
	user, ok := getUserFromContext(c)
	if !ok {
		return
	}

	projectID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.BadRequest(c, "Invalid project ID", nil)
		return
	}

	var project models.Project
	if err := config.DB.Preload("Job").First(&project, projectID).Error; err != nil {
		utils.NotFound(c, "Project not found")
		return
	}
	if project.ClientID != user.ID && project.FreelancerID != user.ID {
		utils.Forbidden(c, "You are not a party to this project")
		return
	}

	utils.Success(c, "Project retrieved successfully", gin.H{
		"project": gin.H{
			"id":             project.ID,
			"job":            gin.H{"id": project.Job.ID, "title": project.Job.Title},
			"client_id":      project.ClientID,
			"freelancer_id":  project.FreelancerID,
			"agreed_amount":  project.AgreedAmount,
			"amount_display": formatAmount(project.AgreedAmount),
			"status":         project.Status,
			"started_at":     project.CreatedAt.Format("2006-01-02 15:04:05"),
			"completed_at":   project.CompletedAt,
		},
	})
}

// CompleteProject marks the project done and pays the freelancer. The agreed
// amount moves from the client wallet to the freelancer wallet atomically
// with the status flip; if the client wallet cannot cover it, nothing
// changes.
func CompleteProject(c *gin.Context) {
	utils.LogInfo("CompleteProject called")
	user, ok := getUserFromContext(c)
	if !ok {
		return
	}

	projectID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.BadRequest(c, "Invalid project ID", nil)
		return
	}

	var project models.Project
	if err := config.DB.Preload("Job").First(&project, projectID).Error; err != nil {
		utils.NotFound(c, "Project not found")
		return
	}
	if project.ClientID != user.ID {
		utils.LogError("User %d attempted to complete project %d owned by %d", user.ID, project.ID, project.ClientID)
		utils.Forbidden(c, "Only the client can complete a project")
		return
	}

	clientWallet, err := utils.GetOrCreateWallet(config.DB, project.ClientID)
	if err != nil {
		utils.InternalServerError(c, "Failed to load client wallet", err.Error())
		return
	}
	freelancerWallet, err := utils.GetOrCreateWallet(config.DB, project.FreelancerID)
	if err != nil {
		utils.InternalServerError(c, "Failed to load freelancer wallet", err.Error())
		return
	}

	now := time.Now()
	err = config.DB.Transaction(func(tx *gorm.DB) error {
		// Only the request that flips the project out of "active" pays out
		res := tx.Model(&models.Project{}).
			Where("id = ? AND status = ?", project.ID, models.ProjectStatusActive).
			Updates(map[string]interface{}{
				"status":       models.ProjectStatusCompleted,
				"completed_at": now,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return utils.ConflictError("Only active projects can be completed", nil)
		}

		if err := utils.DebitWallet(tx, clientWallet.ID, project.AgreedAmount); err != nil {
			return err
		}
		if err := utils.CreditWallet(tx, freelancerWallet.ID, project.AgreedAmount); err != nil {
			return err
		}

		reference := utils.NewOrderID("PAY", project.ClientID)
		description := "Payment for project: " + project.Job.Title
		out := models.Transaction{
			OrderID:     reference + "-OUT",
			WalletID:    clientWallet.ID,
			Amount:      project.AgreedAmount,
			Type:        models.TransactionTypePaymentOut,
			Status:      models.TransactionStatusCompleted,
			Description: description,
		}
		if err := tx.Create(&out).Error; err != nil {
			return err
		}
		in := models.Transaction{
			OrderID:     reference + "-IN",
			WalletID:    freelancerWallet.ID,
			Amount:      project.AgreedAmount,
			Type:        models.TransactionTypePaymentIn,
			Status:      models.TransactionStatusCompleted,
			Description: description,
		}
		if err := tx.Create(&in).Error; err != nil {
			return err
		}

		return tx.Model(&models.Job{}).
			Where("id = ?", project.JobID).
			Update("status", models.JobStatusCompleted).Error
	})
	if err != nil {
		if errors.Is(err, utils.ErrInsufficientBalance) {
			utils.LogError("Insufficient client balance for project %d payout", project.ID)
			utils.BadRequest(c, "Insufficient wallet balance. Please deposit funds before completing the project.", nil)
			return
		}
		if appErr := utils.GetAppError(err); appErr != nil {
			utils.Conflict(c, appErr.Message, nil)
			return
		}
		utils.LogError("Failed to complete project %d: %v", project.ID, err)
		utils.InternalServerError(c, "Failed to complete project", err.Error())
		return
	}

	utils.LogInfo("Project %d completed, freelancer %d paid %d", project.ID, project.FreelancerID, project.AgreedAmount)
	utils.Success(c, "Project completed and payment released", gin.H{
		"project_id":     project.ID,
		"amount":         project.AgreedAmount,
		"amount_display": formatAmount(project.AgreedAmount),
	})
}

// CancelProject cancels an active project with no money movement. Either
// party can cancel; disputes are settled off-platform.
func CancelProject(c *gin.Context) {
	utils.LogInfo("CancelProject called")
	user, ok := getUserFromContext(c)
	if !ok {
		return
	}

	projectID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.BadRequest(c, "Invalid project ID", nil)
		return
	}

	var project models.Project
	if err := config.DB.First(&project, projectID).Error; err != nil {
		utils.NotFound(c, "Project not found")
		return
	}
	if project.ClientID != user.ID && project.FreelancerID != user.ID {
		utils.Forbidden(c, "You are not a party to this project")
		return
	}

	err = config.DB.Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.Project{}).
			Where("id = ? AND status = ?", project.ID, models.ProjectStatusActive).
			Update("status", models.ProjectStatusCancelled)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return utils.ConflictError("Only active projects can be cancelled", nil)
		}
		// Reopen the job so the client can hire someone else
		return tx.Model(&models.Job{}).
			Where("id = ?", project.JobID).
			Update("status", models.JobStatusOpen).Error
	})
	if err != nil {
		if appErr := utils.GetAppError(err); appErr != nil {
			utils.Conflict(c, appErr.Message, nil)
			return
		}
		utils.LogError("Failed to cancel project %d: %v", project.ID, err)
		utils.InternalServerError(c, "Failed to cancel project", err.Error())
		return
	}

	utils.LogInfo("Project %d cancelled by user %d", project.ID, user.ID)
	utils.Success(c, "Project cancelled", gin.H{"project_id": project.ID})
}
