package utils

import (
	"errors"
	"fmt"

	"github.com/Akshay-214/WorkNest/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ErrInsufficientBalance is returned when a debit would drive a wallet negative
var ErrInsufficientBalance = errors.New("insufficient wallet balance")

// NewOrderID builds a unique order reference for a transaction. The prefix
// identifies the transaction kind (DEP, WD, PAY, REF).
func NewOrderID(prefix string, userID uint) string {
	return fmt.Sprintf("%s-%d-%s", prefix, userID, uuid.New().String())
}

// GetOrCreateWallet retrieves or creates a wallet for a user
func GetOrCreateWallet(db *gorm.DB, userID uint) (*models.Wallet, error) {
	var wallet models.Wallet
	if err := db.Where("user_id = ?", userID).First(&wallet).Error; err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		wallet = models.Wallet{
			UserID:  userID,
			Balance: 0,
		}
		if err := db.Create(&wallet).Error; err != nil {
			return nil, err
		}
	}
	return &wallet, nil
}

// DebitWallet subtracts amount from the wallet in a single guarded statement.
// The balance check and the subtraction happen in the same UPDATE, so
// concurrent debits can never drive the balance negative. Returns
// ErrInsufficientBalance when the guard rejects the debit.
func DebitWallet(db *gorm.DB, walletID uint, amount int64) error {
	res := db.Model(&models.Wallet{}).
		Where("id = ? AND balance >= ?", walletID, amount).
		Update("balance", gorm.Expr("balance - ?", amount))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrInsufficientBalance
	}
	return nil
}

// CreditWallet adds amount to the wallet balance
func CreditWallet(db *gorm.DB, walletID uint, amount int64) error {
	res := db.Model(&models.Wallet{}).
		Where("id = ?", walletID).
		Update("balance", gorm.Expr("balance + ?", amount))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("wallet %d not found", walletID)
	}
	return nil
}

// TransferBetweenWallets moves amount from one wallet to another and records
// a payment_out/payment_in transaction pair, all inside one database
// transaction. Both balance changes and both transaction rows commit together
// or not at all.
func TransferBetweenWallets(db *gorm.DB, fromWalletID, toWalletID uint, amount int64, fromUserID uint, description string) error {
	if err := ValidateAmount(amount); err != nil {
		return err
	}

	return db.Transaction(func(tx *gorm.DB) error {
		if err := DebitWallet(tx, fromWalletID, amount); err != nil {
			return err
		}
		if err := CreditWallet(tx, toWalletID, amount); err != nil {
			return err
		}

		reference := NewOrderID("PAY", fromUserID)
		out := models.Transaction{
			OrderID:     reference + "-OUT",
			WalletID:    fromWalletID,
			Amount:      amount,
			Type:        models.TransactionTypePaymentOut,
			Status:      models.TransactionStatusCompleted,
			Description: description,
		}
		if err := tx.Create(&out).Error; err != nil {
			return err
		}

		in := models.Transaction{
			OrderID:     reference + "-IN",
			WalletID:    toWalletID,
			Amount:      amount,
			Type:        models.TransactionTypePaymentIn,
			Status:      models.TransactionStatusCompleted,
			Description: description,
		}
		return tx.Create(&in).Error
	})
}
