package models

import (
	"time"

	"gorm.io/gorm"
)

// Project statuses
const (
	ProjectStatusActive    = "active"
	ProjectStatusCompleted = "completed"
	ProjectStatusCancelled = "cancelled"
)

// Project is created when a client accepts a proposal. AgreedAmount is the
// accepted bid in minor units; it moves from the client wallet to the
// freelancer wallet when the project is completed.
type Project struct {
	gorm.Model
	JobID        uint       `json:"job_id" gorm:"index;not null"`
	Job          Job        `json:"job,omitempty" gorm:"foreignKey:JobID"`
	ProposalID   uint       `json:"proposal_id" gorm:"uniqueIndex;not null"`
	ClientID     uint       `json:"client_id" gorm:"index;not null"`
	FreelancerID uint       `json:"freelancer_id" gorm:"index;not null"`
	AgreedAmount int64      `json:"agreed_amount"`
	Status       string     `json:"status" gorm:"default:'active'"` // active, completed, cancelled
	CompletedAt  *time.Time `json:"completed_at"`
}
