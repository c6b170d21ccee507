package controllers

import (
	"encoding/json"

	"github.com/Akshay-214/WorkNest/config"
	"github.com/Akshay-214/WorkNest/utils"
	"github.com/gin-gonic/gin"
	"github.com/midtrans/midtrans-go"
	"github.com/midtrans/midtrans-go/snap"
)

var (
	paymentVerifier  *utils.SignatureVerifier
	settlementEngine *SettlementEngine
	snapClient       snap.Client
)

// InitPaymentGateway wires the signature verifier, the settlement engine and
// the Snap client from process configuration. Tests construct their own
// instances instead.
func InitPaymentGateway(cfg *config.Config) {
	paymentVerifier = utils.NewSignatureVerifier(cfg.MidtransServerKey)
	settlementEngine = NewSettlementEngine(config.DB)

	env := midtrans.Sandbox
	if cfg.Env == "production" {
		env = midtrans.Production
	}
	snapClient.New(cfg.MidtransServerKey, env)
}

// GrossAmount accepts the gross_amount field in either of the forms the
// gateway sends it: a JSON string ("50000.00") or a bare number. The raw
// textual form is preserved because it feeds the signature hash.
type GrossAmount string

func (g *GrossAmount) UnmarshalJSON(data []byte) error {
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*g = GrossAmount(s)
		return nil
	}
	*g = GrossAmount(data)
	return nil
}

// PaymentNotificationRequest is the webhook body Midtrans posts for every
// payment status change
type PaymentNotificationRequest struct {
	OrderID           string      `json:"order_id" binding:"required"`
	StatusCode        string      `json:"status_code"`
	GrossAmount       GrossAmount `json:"gross_amount"`
	SignatureKey      string      `json:"signature_key"`
	TransactionStatus string      `json:"transaction_status"`
}

// HandlePaymentNotification processes a payment notification from Midtrans.
// Response codes drive the gateway's retry policy: 500 means "retry later",
// 403 means the signature was forged, 200 means "stop sending this one",
// including for unknown orders and idempotent replays.
func HandlePaymentNotification(c *gin.Context) {
	utils.LogInfo("HandlePaymentNotification called")

	var req PaymentNotificationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError("Failed to parse payment notification: %v", err)
		utils.InternalServerError(c, "Invalid notification payload", err.Error())
		return
	}
	utils.LogDebug("Received notification - Order ID: %s, Status: %s", req.OrderID, req.TransactionStatus)

	if !paymentVerifier.Verify(req.OrderID, req.StatusCode, string(req.GrossAmount), req.SignatureKey) {
		utils.LogError("Signature verification failed for order ID: %s", req.OrderID)
		utils.Forbidden(c, "Invalid Signature")
		return
	}
	utils.LogDebug("Signature verified for order ID: %s", req.OrderID)

	outcome, err := settlementEngine.Settle(req.OrderID, req.TransactionStatus)
	if err != nil {
		utils.LogError("Settlement failed for order ID: %s: %v", req.OrderID, err)
		utils.InternalServerError(c, "Failed to process notification", err.Error())
		return
	}

	switch outcome {
	case SettlementCredited:
		utils.LogInfo("Wallet credited for order ID: %s", req.OrderID)
		utils.Success(c, "Payment settled", gin.H{"order_id": req.OrderID})
	case SettlementMarkedFailed:
		utils.LogInfo("Transaction marked failed for order ID: %s", req.OrderID)
		utils.Success(c, "Payment marked as failed", gin.H{"order_id": req.OrderID})
	case SettlementPending:
		utils.Success(c, "Payment pending", gin.H{"order_id": req.OrderID})
	case SettlementNotFound:
		utils.LogInfo("Notification for unknown order ID: %s", req.OrderID)
		utils.Success(c, "Order not recognized", gin.H{"order_id": req.OrderID})
	default:
		utils.LogInfo("Notification ignored for order ID: %s", req.OrderID)
		utils.Success(c, "Notification acknowledged", gin.H{"order_id": req.OrderID})
	}
}
