package controllers

import (
	"github.com/Akshay-214/WorkNest/config"
	"github.com/Akshay-214/WorkNest/models"
	"github.com/Akshay-214/WorkNest/utils"
	"github.com/gin-gonic/gin"
	"github.com/midtrans/midtrans-go"
	"github.com/midtrans/midtrans-go/snap"
)

// InitiateDeposit creates a Midtrans Snap payment for adding money to the
// wallet. The deposit transaction is recorded PENDING; the notification
// webhook settles it once the gateway reports the payment captured.
func InitiateDeposit(c *gin.Context) {
	utils.LogInfo("InitiateDeposit called")
	user, ok := getUserFromContext(c)
	if !ok {
		return
	}
	utils.LogInfo("Processing deposit request for user ID: %d", user.ID)

	var req struct {
		Amount int64 `json:"amount" binding:"required,min=1"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError("Invalid deposit request for user ID: %d: %v", user.ID, err)
		utils.BadRequest(c, "Invalid request. Amount is required and must be positive", err.Error())
		return
	}
	utils.LogDebug("Deposit request - User ID: %d, Amount: %d", user.ID, req.Amount)

	wallet, err := utils.GetOrCreateWallet(config.DB, user.ID)
	if err != nil {
		utils.LogError("Failed to get wallet for user ID: %d: %v", user.ID, err)
		utils.InternalServerError(c, "Failed to get wallet", err.Error())
		return
	}

	orderID := utils.NewOrderID("DEP", user.ID)
	snapReq := &snap.Request{
		TransactionDetails: midtrans.TransactionDetails{
			OrderID:  orderID,
			GrossAmt: req.Amount,
		},
		CustomerDetail: &midtrans.CustomerDetails{
			FName: user.FirstName,
			LName: user.LastName,
			Email: user.Email,
			Phone: user.Phone,
		},
	}
	utils.LogDebug("Creating Snap transaction for order ID: %s", orderID)

	snapResp, snapErr := snapClient.CreateTransaction(snapReq)
	if snapErr != nil {
		utils.LogError("Failed to create Snap transaction for user ID: %d: %v", user.ID, snapErr)
		utils.InternalServerError(c, "Failed to create payment", snapErr.Error())
		return
	}
	utils.LogDebug("Created Snap transaction - Order ID: %s, Token: %s", orderID, snapResp.Token)

	transaction := models.Transaction{
		OrderID:     orderID,
		WalletID:    wallet.ID,
		Amount:      req.Amount,
		Type:        models.TransactionTypeDeposit,
		Status:      models.TransactionStatusPending,
		Description: "Wallet deposit via Midtrans",
	}
	if err := config.DB.Create(&transaction).Error; err != nil {
		utils.LogError("Failed to record deposit transaction for order ID: %s: %v", orderID, err)
		utils.InternalServerError(c, "Failed to record deposit", err.Error())
		return
	}

	utils.LogInfo("Deposit initiated for user ID: %d, order ID: %s", user.ID, orderID)
	utils.Success(c, "Deposit initiated successfully", gin.H{
		"order_id":       orderID,
		"amount":         req.Amount,
		"amount_display": formatAmount(req.Amount),
		"snap_token":     snapResp.Token,
		"redirect_url":   snapResp.RedirectURL,
		"wallet": gin.H{
			"id":      wallet.ID,
			"balance": wallet.Balance,
		},
	})
}
