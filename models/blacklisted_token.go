package models

import (
	"time"

	"gorm.io/gorm"
)

// BlacklistedToken records a JWT invalidated by logout. The auth middleware
// rejects any token found here until it expires on its own.
type BlacklistedToken struct {
	gorm.Model
	Token     string    `gorm:"uniqueIndex;not null"`
	ExpiresAt time.Time `gorm:"not null"`
}
