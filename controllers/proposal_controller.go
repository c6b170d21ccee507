package controllers

import (
	"strconv"

	"github.com/Akshay-214/WorkNest/config"
	"github.com/Akshay-214/WorkNest/models"
	"github.com/Akshay-214/WorkNest/utils"
	"github.com/gin-gonic/gin"
)

// SubmitProposalRequest represents a freelancer's bid on a job
type SubmitProposalRequest struct {
	JobID        uint   `json:"job_id" binding:"required"`
	CoverLetter  string `json:"cover_letter" binding:"required"`
	BidAmount    int64  `json:"bid_amount" binding:"required,min=1"`
	DeliveryDays int    `json:"delivery_days" binding:"required,min=1"`
}

// SubmitProposal lets a freelancer bid on an open job
func SubmitProposal(c *gin.Context) {
	utils.LogInfo("SubmitProposal called")
	user, ok := getUserFromContext(c)
	if !ok {
		return
	}

	var req SubmitProposalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError("Invalid proposal request for user ID: %d: %v", user.ID, err)
		utils.BadRequest(c, "Invalid request format", err.Error())
		return
	}

	var job models.Job
	if err := config.DB.First(&job, req.JobID).Error; err != nil {
		utils.NotFound(c, "Job not found")
		return
	}
	if job.Status != models.JobStatusOpen {
		utils.Conflict(c, "This job is no longer accepting proposals", nil)
		return
	}
	if job.ClientID == user.ID {
		utils.BadRequest(c, "You cannot bid on your own job", nil)
		return
	}
	if req.BidAmount < job.BudgetMin || req.BidAmount > job.BudgetMax {
		utils.BadRequest(c, "Bid amount must be within the job budget", gin.H{
			"budget_min": job.BudgetMin,
			"budget_max": job.BudgetMax,
		})
		return
	}

	// One live proposal per freelancer per job
	var existing int64
	if err := config.DB.Model(&models.Proposal{}).
		Where("job_id = ? AND freelancer_id = ? AND status IN ?",
			job.ID, user.ID, []string{models.ProposalStatusPending, models.ProposalStatusAccepted}).
		Count(&existing).Error; err != nil {
		utils.InternalServerError(c, "Failed to check existing proposals", err.Error())
		return
	}
	if existing > 0 {
		utils.Conflict(c, "You already have a proposal on this job", nil)
		return
	}

	proposal := models.Proposal{
		JobID:        job.ID,
		FreelancerID: user.ID,
		CoverLetter:  req.CoverLetter,
		BidAmount:    req.BidAmount,
		DeliveryDays: req.DeliveryDays,
		Status:       models.ProposalStatusPending,
	}
	if err := config.DB.Create(&proposal).Error; err != nil {
		utils.LogError("Failed to create proposal for user ID: %d: %v", user.ID, err)
		utils.InternalServerError(c, "Failed to submit proposal", err.Error())
		return
	}

	utils.LogInfo("Proposal %d submitted by user %d on job %d", proposal.ID, user.ID, job.ID)
	utils.Created(c, "Proposal submitted successfully", gin.H{
		"proposal": gin.H{
			"id":            proposal.ID,
			"job_id":        proposal.JobID,
			"bid_amount":    proposal.BidAmount,
			"delivery_days": proposal.DeliveryDays,
			"status":        proposal.Status,
		},
	})
}

// WithdrawProposal lets a freelancer withdraw a pending proposal
func WithdrawProposal(c *gin.Context) {
	utils.LogInfo("WithdrawProposal called")
	user, ok := getUserFromContext(c)
	if !ok {
		return
	}

	proposalID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.BadRequest(c, "Invalid proposal ID", nil)
		return
	}

	var proposal models.Proposal
	if err := config.DB.First(&proposal, proposalID).Error; err != nil {
		utils.NotFound(c, "Proposal not found")
		return
	}
	if proposal.FreelancerID != user.ID {
		utils.Forbidden(c, "You can only withdraw your own proposals")
		return
	}
	if proposal.Status != models.ProposalStatusPending {
		utils.Conflict(c, "Only pending proposals can be withdrawn", nil)
		return
	}

	if err := config.DB.Model(&proposal).Update("status", models.ProposalStatusWithdrawn).Error; err != nil {
		utils.LogError("Failed to withdraw proposal %d: %v", proposal.ID, err)
		utils.InternalServerError(c, "Failed to withdraw proposal", err.Error())
		return
	}

	utils.LogInfo("Proposal %d withdrawn by user %d", proposal.ID, user.ID)
	utils.Success(c, "Proposal withdrawn successfully", gin.H{"proposal_id": proposal.ID})
}

// ListMyProposals returns the authenticated freelancer's proposals
func ListMyProposals(c *gin.Context) {
	utils.LogInfo("ListMyProposals called")
	user, ok := getUserFromContext(c)
	if !ok {
		return
	}

	pagination := utils.NewPagination(c)
	query := config.DB.Model(&models.Proposal{}).Where("freelancer_id = ?", user.ID)
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		utils.InternalServerError(c, "Failed to count proposals", err.Error())
		return
	}

	var proposals []models.Proposal
	if err := query.Preload("Job").
		Order("created_at DESC").
		Limit(pagination.Limit).Offset(pagination.Offset).
		Find(&proposals).Error; err != nil {
		utils.LogError("Failed to list proposals for user ID: %d: %v", user.ID, err)
		utils.InternalServerError(c, "Failed to list proposals", err.Error())
		return
	}

	utils.SuccessWithPagination(c, "Proposals retrieved successfully", gin.H{
		"proposals": proposals,
	}, total, pagination.Page, pagination.Limit)
}

// ListJobProposals returns the proposals on a job for its posting client
func ListJobProposals(c *gin.Context) {
	utils.LogInfo("ListJobProposals called")
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
		utils.Forbidden(c, "You can only view proposals on your own jobs")
		return
	}

	var proposals []models.Proposal
	if err := config.DB.Preload("Freelancer").
		Where("job_id = ?", job.ID).
		Order("created_at ASC").
		Find(&proposals).Error; err != nil {
		utils.LogError("Failed to list proposals for job %d: %v", job.ID, err)
		utils.InternalServerError(c, "Failed to list proposals", err.Error())
		return
	}

	formatted := make([]gin.H, len(proposals))
	for i, p := range proposals {
		formatted[i] = gin.H{
			"id":            p.ID,
			"cover_letter":  p.CoverLetter,
			"bid_amount":    p.BidAmount,
			"delivery_days": p.DeliveryDays,
			"status":        p.Status,
			"submitted_at":  p.CreatedAt.Format("2006-01-02 15:04:05"),
			"freelancer": gin.H{
				"id":          p.Freelancer.ID,
				"username":    p.Freelancer.Username,
				"skills":      p.Freelancer.Skills,
				"hourly_rate": p.Freelancer.HourlyRate,
			},
		}
	}

	utils.Success(c, "Proposals retrieved successfully", gin.H{
		"job_id":    job.ID,
		"proposals": formatted,
	})
}
