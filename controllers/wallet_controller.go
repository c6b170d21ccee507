package controllers

import (
	"github.com/Akshay-214/WorkNest/config"
	"github.com/Akshay-214/WorkNest/models"
	"github.com/Akshay-214/WorkNest/utils"
	"github.com/gin-gonic/gin"
)

// GetWalletBalance returns the user's wallet balance
func GetWalletBalance(c *gin.Context) {
	utils.LogInfo("GetWalletBalance called")
	user, ok := getUserFromContext(c)
	if !ok {
		return
	}
	utils.LogInfo("Processing wallet balance request for user ID: %d", user.ID)

	wallet, err := utils.GetOrCreateWallet(config.DB, user.ID)
	if err != nil {
		utils.LogError("Failed to get wallet for user ID: %d: %v", user.ID, err)
		utils.InternalServerError(c, "Failed to get wallet", err.Error())
		return
	}

	utils.Success(c, "Wallet balance retrieved successfully", gin.H{
		"balance":         wallet.Balance,
		"balance_display": formatAmount(wallet.Balance),
	})
}

// GetWalletTransactions returns the user's wallet transactions
func GetWalletTransactions(c *gin.Context) {
	utils.LogInfo("GetWalletTransactions called")
	user, ok := getUserFromContext(c)
	if !ok {
		return
	}
	utils.LogInfo("Processing wallet transactions request for user ID: %d", user.ID)

	wallet, err := utils.GetOrCreateWallet(config.DB, user.ID)
	if err != nil {
		utils.LogError("Failed to get wallet for user ID: %d: %v", user.ID, err)
		utils.InternalServerError(c, "Failed to get wallet", err.Error())
		return
	}

	pagination := utils.NewPagination(c)
	utils.LogDebug("Pagination parameters - Page: %d, Limit: %d", pagination.Page, pagination.Limit)

	var total int64
	if err := config.DB.Model(&models.Transaction{}).Where("wallet_id = ?", wallet.ID).Count(&total).Error; err != nil {
		utils.LogError("Failed to count transactions for wallet ID: %d: %v", wallet.ID, err)
		utils.InternalServerError(c, "Failed to count transactions", err.Error())
		return
	}

	var transactions []models.Transaction
	if err := config.DB.Where("wallet_id = ?", wallet.ID).
		Order("created_at DESC").
		Limit(pagination.Limit).Offset(pagination.Offset).
		Find(&transactions).Error; err != nil {
		utils.LogError("Failed to get transactions for wallet ID: %d: %v", wallet.ID, err)
		utils.InternalServerError(c, "Failed to get transactions", err.Error())
		return
	}
	utils.LogInfo("Retrieved %d transactions for wallet ID: %d", len(transactions), wallet.ID)

	formatted := make([]gin.H, len(transactions))
	for i, txn := range transactions {
		formatted[i] = gin.H{
			"id":             txn.ID,
			"order_id":       txn.OrderID,
			"amount":         txn.Amount,
			"amount_display": formatAmount(txn.Amount),
			"type":           txn.Type,
			"status":         txn.Status,
			"description":    txn.Description,
			"created_at":     txn.CreatedAt.Format("2006-01-02 15:04:05"),
		}
	}

	utils.SuccessWithPagination(c, "Wallet transactions retrieved successfully", gin.H{
		"transactions": formatted,
		"wallet": gin.H{
			"balance":         wallet.Balance,
			"balance_display": formatAmount(wallet.Balance),
		},
	}, total, pagination.Page, pagination.Limit)
}

// UpdatePayoutAccount saves the bank details withdrawals are paid out to
func UpdatePayoutAccount(c *gin.Context) {
	utils.LogInfo("UpdatePayoutAccount called")
	user, ok := getUserFromContext(c)
	if !ok {
		return
	}

	var req struct {
		BankName      string `json:"bank_name" binding:"required"`
		AccountNumber string `json:"account_number" binding:"required"`
		AccountHolder string `json:"account_holder" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError("Invalid payout account request for user ID: %d: %v", user.ID, err)
		utils.BadRequest(c, "Bank name, account number and account holder are required", err.Error())
		return
	}

	wallet, err := utils.GetOrCreateWallet(config.DB, user.ID)
	if err != nil {
		utils.LogError("Failed to get wallet for user ID: %d: %v", user.ID, err)
		utils.InternalServerError(c, "Failed to get wallet", err.Error())
		return
	}

	wallet.BankName = utils.SanitizeString(req.BankName)
	wallet.AccountNumber = utils.SanitizeString(req.AccountNumber)
	wallet.AccountHolder = utils.SanitizeString(req.AccountHolder)
	if err := config.DB.Save(wallet).Error; err != nil {
		utils.LogError("Failed to update payout account for wallet ID: %d: %v", wallet.ID, err)
		utils.InternalServerError(c, "Failed to update payout account", err.Error())
		return
	}

	utils.LogInfo("Payout account updated for user ID: %d", user.ID)
	utils.Success(c, "Payout account updated successfully", gin.H{
		"bank_name":      wallet.BankName,
		"account_number": wallet.AccountNumber,
		"account_holder": wallet.AccountHolder,
	})
}
