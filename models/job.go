package models

import (
	"time"

	"gorm.io/gorm"
)

// Job statuses
const (
	JobStatusOpen       = "open"
	JobStatusInProgress = "in_progress"
	JobStatusCompleted  = "completed"
	JobStatusClosed     = "closed"
)

// Job represents a job posted by a client. Budget values are minor units.
type Job struct {
	gorm.Model
	ClientID    uint       `json:"client_id" gorm:"index;not null"`
	Client      User       `json:"client,omitempty" gorm:"foreignKey:ClientID"`
	Title       string     `json:"title" gorm:"not null"`
	Description string     `json:"description"`
	Category    string     `json:"category" gorm:"index"`
	BudgetMin   int64      `json:"budget_min"`
	BudgetMax   int64      `json:"budget_max"`
	Deadline    time.Time  `json:"deadline"`
	Status      string     `json:"status" gorm:"default:'open'"` // open, in_progress, completed, closed
	Proposals   []Proposal `json:"proposals,omitempty" gorm:"foreignKey:JobID"`
}
