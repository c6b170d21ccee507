package controllers

import (
	"fmt"

	"github.com/Akshay-214/WorkNest/models"
	"github.com/Akshay-214/WorkNest/utils"
	"gorm.io/gorm"
)

// SettlementOutcome describes what the settlement engine did with a
// notification. Every outcome except an engine error is acknowledged with
// 200 so the gateway stops retrying.
type SettlementOutcome string

const (
	SettlementCredited     SettlementOutcome = "credited"
	SettlementMarkedFailed SettlementOutcome = "marked_failed"
	SettlementPending      SettlementOutcome = "pending"
	SettlementNoOp         SettlementOutcome = "no_op"
	SettlementNotFound     SettlementOutcome = "not_found"
)

// Gateway transaction statuses as Midtrans sends them
const (
	gatewayStatusCapture    = "capture"
	gatewayStatusSettlement = "settlement"
	gatewayStatusCancel     = "cancel"
	gatewayStatusDeny       = "deny"
	gatewayStatusExpire     = "expire"
	gatewayStatusPending    = "pending"
)

// SettlementEngine applies a verified payment notification to the ledger
// exactly once per order ID.
type SettlementEngine struct {
	db *gorm.DB
}

// NewSettlementEngine creates an engine bound to the given database handle
func NewSettlementEngine(db *gorm.DB) *SettlementEngine {
	return &SettlementEngine{db: db}
}

// Settle classifies the gateway status and applies the resulting action.
// Unrecognized statuses are acknowledged without effect; the gateway adds new
// statuses over time and retry storms help nobody.
func (e *SettlementEngine) Settle(orderID, gatewayStatus string) (SettlementOutcome, error) {
	switch gatewayStatus {
	case gatewayStatusCapture, gatewayStatusSettlement:
		return e.credit(orderID)
	case gatewayStatusCancel, gatewayStatusDeny, gatewayStatusExpire:
		return e.markFailed(orderID)
	case gatewayStatusPending:
		utils.LogDebug("Settlement pending for order ID: %s", orderID)
		return SettlementPending, nil
	default:
		utils.LogDebug("Unrecognized gateway status %q for order ID: %s", gatewayStatus, orderID)
		return SettlementNoOp, nil
	}
}

// credit completes the transaction and credits its wallet. The status flip is
// a compare-and-swap: only the delivery that moves the row out of PENDING
// performs the credit, so concurrent duplicate deliveries cannot double-credit.
// Both writes commit together or roll back together.
func (e *SettlementEngine) credit(orderID string) (SettlementOutcome, error) {
	outcome := SettlementNoOp

	err := e.db.Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.Transaction{}).
			Where("order_id = ? AND status = ?", orderID, models.TransactionStatusPending).
			Update("status", models.TransactionStatusCompleted)
		if res.Error != nil {
			return res.Error
		}

		if res.RowsAffected == 0 {
			// Either the order is unknown or it already left PENDING.
			var count int64
			if err := tx.Model(&models.Transaction{}).Where("order_id = ?", orderID).Count(&count).Error; err != nil {
				return err
			}
			if count == 0 {
				outcome = SettlementNotFound
			} else {
				outcome = SettlementNoOp
			}
			return nil
		}

		var txn models.Transaction
		if err := tx.Where("order_id = ?", orderID).First(&txn).Error; err != nil {
			return err
		}

		credit := tx.Model(&models.Wallet{}).
			Where("id = ?", txn.WalletID).
			Update("balance", gorm.Expr("balance + ?", txn.Amount))
		if credit.Error != nil {
			return credit.Error
		}
		if credit.RowsAffected == 0 {
			return fmt.Errorf("wallet %d not found for order %s", txn.WalletID, orderID)
		}

		outcome = SettlementCredited
		return nil
	})
	if err != nil {
		return SettlementNoOp, err
	}
	return outcome, nil
}

// markFailed moves the transaction to FAILED. The wallet is untouched: the
// money never arrived. Like credit, the flip only applies to PENDING rows so
// a transaction that already settled stays settled.
func (e *SettlementEngine) markFailed(orderID string) (SettlementOutcome, error) {
	res := e.db.Model(&models.Transaction{}).
		Where("order_id = ? AND status = ?", orderID, models.TransactionStatusPending).
		Update("status", models.TransactionStatusFailed)
	if res.Error != nil {
		return SettlementNoOp, res.Error
	}

	if res.RowsAffected == 0 {
		var count int64
		if err := e.db.Model(&models.Transaction{}).Where("order_id = ?", orderID).Count(&count).Error; err != nil {
			return SettlementNoOp, err
		}
		if count == 0 {
			return SettlementNotFound, nil
		}
		return SettlementNoOp, nil
	}

	return SettlementMarkedFailed, nil
}
