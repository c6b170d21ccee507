package controllers

import (
	"strconv"

	"github.com/Akshay-214/WorkNest/config"
	"github.com/Akshay-214/WorkNest/models"
	"github.com/Akshay-214/WorkNest/utils"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// AcceptProposal hires the freelancer: the proposal is accepted, every other
// pending proposal on the job is rejected, the job moves to in_progress and a
// project is created, all in one database transaction.
func AcceptProposal(c *gin.Context) {
	utils.LogInfo("AcceptProposal called")
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
	if err := config.DB.Preload("Job").First(&proposal, proposalID).Error; err != nil {
		utils.NotFound(c, "Proposal not found")
		return
	}
	if proposal.Job.ClientID != user.ID {
		utils.LogError("User %d attempted to accept proposal %d on job owned by %d", user.ID, proposal.ID, proposal.Job.ClientID)
		utils.Forbidden(c, "You can only accept proposals on your own jobs")
		return
	}
	if proposal.Status != models.ProposalStatusPending {
		utils.Conflict(c, "Only pending proposals can be accepted", nil)
		return
	}
	if proposal.Job.Status != models.JobStatusOpen {
		utils.Conflict(c, "This job is no longer open", nil)
		return
	}

	var project models.Project
	err = config.DB.Transaction(func(tx *gorm.DB) error {
		// Guard against two concurrent accepts on the same job: only the
		// request that flips the job out of "open" proceeds.
		res := tx.Model(&models.Job{}).
			Where("id = ? AND status = ?", proposal.JobID, models.JobStatusOpen).
			Update("status", models.JobStatusInProgress)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return utils.ConflictError("This job is no longer open", nil)
		}

		if err := tx.Model(&models.Proposal{}).
			Where("id = ?", proposal.ID).
			Update("status", models.ProposalStatusAccepted).Error; err != nil {
			return err
		}

		if err := tx.Model(&models.Proposal{}).
			Where("job_id = ? AND id <> ? AND status = ?", proposal.JobID, proposal.ID, models.ProposalStatusPending).
			Update("status", models.ProposalStatusRejected).Error; err != nil {
			return err
		}

		project = models.Project{
			JobID:        proposal.JobID,
			ProposalID:   proposal.ID,
			ClientID:     user.ID,
			FreelancerID: proposal.FreelancerID,
			AgreedAmount: proposal.BidAmount,
			Status:       models.ProjectStatusActive,
		}
		return tx.Create(&project).Error
	})
	if err != nil {
		if appErr := utils.GetAppError(err); appErr != nil {
			utils.Conflict(c, appErr.Message, nil)
			return
		}
		utils.LogError("Failed to accept proposal %d: %v", proposal.ID, err)
		utils.InternalServerError(c, "Failed to accept proposal", err.Error())
		return
	}

	utils.LogInfo("Proposal %d accepted, project %d created", proposal.ID, project.ID)
	utils.Created(c, "Proposal accepted and project created", gin.H{
		"project": gin.H{
			"id":            project.ID,
			"job_id":        project.JobID,
			"freelancer_id": project.FreelancerID,
			"agreed_amount": project.AgreedAmount,
			"status":        project.Status,
		},
	})
}

// RejectProposal declines a pending proposal on the client's own job
func RejectProposal(c *gin.Context) {
	utils.LogInfo("RejectProposal called")
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
	if err := config.DB.Preload("Job").First(&proposal, proposalID).Error; err != nil {
		utils.NotFound(c, "Proposal not found")
		return
	}
	if proposal.Job.ClientID != user.ID {
		utils.Forbidden(c, "You can only reject proposals on your own jobs")
		return
	}
	if proposal.Status != models.ProposalStatusPending {
		utils.Conflict(c, "Only pending proposals can be rejected", nil)
		return
	}

	if err := config.DB.Model(&proposal).Update("status", models.ProposalStatusRejected).Error; err != nil {
		utils.LogError("Failed to reject proposal %d: %v", proposal.ID, err)
		utils.InternalServerError(c, "Failed to reject proposal", err.Error())
		return
	}

	utils.LogInfo("Proposal %d rejected by user %d", proposal.ID, user.ID)
	utils.Success(c, "Proposal rejected", gin.H{"proposal_id": proposal.ID})
}
