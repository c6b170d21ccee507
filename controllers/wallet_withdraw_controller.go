package controllers

import (
	"errors"

	"github.com/Akshay-214/WorkNest/config"
	"github.com/Akshay-214/WorkNest/models"
	"github.com/Akshay-214/WorkNest/utils"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// RequestWithdrawal debits the wallet and records the payout. Withdrawals
// are internally settled: the transaction is written COMPLETED in the same
// database transaction as the balance debit. The debit itself is a guarded
// single-statement UPDATE, so concurrent withdrawals cannot overdraw.
func RequestWithdrawal(c *gin.Context) {
	utils.LogInfo("RequestWithdrawal called")
	user, ok := getUserFromContext(c)
	if !ok {
		return
	}
	utils.LogInfo("Processing withdrawal request for user ID: %d", user.ID)

	var req struct {
		Amount int64 `json:"amount" binding:"required,min=1"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError("Invalid withdrawal request for user ID: %d: %v", user.ID, err)
		utils.BadRequest(c, "Invalid request. Amount is required and must be positive", err.Error())
		return
	}

	wallet, err := utils.GetOrCreateWallet(config.DB, user.ID)
	if err != nil {
		utils.LogError("Failed to get wallet for user ID: %d: %v", user.ID, err)
		utils.InternalServerError(c, "Failed to get wallet", err.Error())
		return
	}

	if wallet.BankName == "" || wallet.AccountNumber == "" {
		utils.LogError("Withdrawal without payout account for user ID: %d", user.ID)
		utils.BadRequest(c, "Please set up your payout account before withdrawing", nil)
		return
	}

	orderID := utils.NewOrderID("WD", user.ID)
	var transaction models.Transaction

	err = config.DB.Transaction(func(tx *gorm.DB) error {
		if err := utils.DebitWallet(tx, wallet.ID, req.Amount); err != nil {
			return err
		}

		transaction = models.Transaction{
			OrderID:     orderID,
			WalletID:    wallet.ID,
			Amount:      req.Amount,
			Type:        models.TransactionTypeWithdrawal,
			Status:      models.TransactionStatusCompleted,
			Description: "Withdrawal to " + wallet.BankName + " " + wallet.AccountNumber,
		}
		return tx.Create(&transaction).Error
	})
	if err != nil {
		if errors.Is(err, utils.ErrInsufficientBalance) {
			utils.LogError("Insufficient balance for withdrawal - User ID: %d, Amount: %d", user.ID, req.Amount)
			utils.BadRequest(c, "Insufficient wallet balance", nil)
			return
		}
		utils.LogError("Failed to process withdrawal for user ID: %d: %v", user.ID, err)
		utils.InternalServerError(c, "Failed to process withdrawal", err.Error())
		return
	}

	var updated models.Wallet
	if err := config.DB.First(&updated, wallet.ID).Error; err != nil {
		utils.LogError("Failed to reload wallet ID: %d: %v", wallet.ID, err)
		utils.InternalServerError(c, "Failed to load wallet", err.Error())
		return
	}

	utils.LogInfo("Withdrawal completed for user ID: %d, order ID: %s", user.ID, orderID)
	utils.Success(c, "Withdrawal processed successfully", gin.H{
		"order_id":       orderID,
		"amount":         req.Amount,
		"amount_display": formatAmount(req.Amount),
		"transaction_id": transaction.ID,
		"wallet_balance": updated.Balance,
	})
}
