package models

import (
	"time"

	"gorm.io/gorm"
)

// Wallet holds a user's balance in minor units (cents). The balance is only
// ever mutated in the same database transaction as the Transaction row that
// explains the change.
type Wallet struct {
	ID            uint           `gorm:"primaryKey" json:"id"`
	UserID        uint           `json:"user_id" gorm:"uniqueIndex"`
	Balance       int64          `json:"balance" gorm:"default:0"`
	BankName      string         `json:"bank_name"`
	AccountNumber string         `json:"account_number"`
	AccountHolder string         `json:"account_holder"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`
}

// Transaction represents one monetary movement tied to a wallet. OrderID is
// also the order reference sent to the payment gateway. Amount is a positive
// number of minor units; Type carries the direction. Rows are never deleted.
type Transaction struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	OrderID     string    `json:"order_id" gorm:"uniqueIndex;not null"`
	WalletID    uint      `json:"wallet_id"`
	Wallet      Wallet    `json:"-" gorm:"foreignKey:WalletID"`
	Amount      int64     `json:"amount"`
	Type        string    `json:"type"`   // deposit, withdrawal, payment_in, payment_out, refund
	Status      string    `json:"status"` // PENDING, COMPLETED, FAILED
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Transaction types
const (
	TransactionTypeDeposit    = "deposit"
	TransactionTypeWithdrawal = "withdrawal"
	TransactionTypePaymentIn  = "payment_in"
	TransactionTypePaymentOut = "payment_out"
	TransactionTypeRefund     = "refund"
)

// Transaction statuses. PENDING is the only non-terminal state; once a
// transaction reaches COMPLETED or FAILED it never changes again.
const (
	TransactionStatusPending   = "PENDING"
	TransactionStatusCompleted = "COMPLETED"
	TransactionStatusFailed    = "FAILED"
)
