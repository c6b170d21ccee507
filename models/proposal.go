package models

import "gorm.io/gorm"

// Proposal statuses
const (
	ProposalStatusPending   = "pending"
	ProposalStatusAccepted  = "accepted"
	ProposalStatusRejected  = "rejected"
	ProposalStatusWithdrawn = "withdrawn"
)

// Proposal represents a freelancer's bid on a job. A freelancer can hold at
// most one live (pending or accepted) proposal per job.
type Proposal struct {
	gorm.Model
	JobID        uint   `json:"job_id" gorm:"index;not null"`
	Job          Job    `json:"job,omitempty" gorm:"foreignKey:JobID"`
	FreelancerID uint   `json:"freelancer_id" gorm:"index;not null"`
	Freelancer   User   `json:"freelancer,omitempty" gorm:"foreignKey:FreelancerID"`
	CoverLetter  string `json:"cover_letter"`
	BidAmount    int64  `json:"bid_amount"`
	DeliveryDays int    `json:"delivery_days"`
	Status       string `json:"status" gorm:"default:'pending'"` // pending, accepted, rejected, withdrawn
}
