package controllers

import (
	"fmt"
	"sync"
	"testing"

	"github.com/Akshay-214/WorkNest/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDB opens an isolated in-memory database. The single-connection pool
// keeps sqlite from handing each goroutine its own empty memory database.
func newTestDB(t *testing.T, name string) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_busy_timeout=5000", name)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(&models.Wallet{}, &models.Transaction{}))
	return db
}

func seedPendingDeposit(t *testing.T, db *gorm.DB, orderID string, balance, amount int64) models.Wallet {
	t.Helper()

	wallet := models.Wallet{UserID: 1, Balance: balance}
	require.NoError(t, db.Create(&wallet).Error)

	txn := models.Transaction{
		OrderID:  orderID,
		WalletID: wallet.ID,
		Amount:   amount,
		Type:     models.TransactionTypeDeposit,
		Status:   models.TransactionStatusPending,
	}
	require.NoError(t, db.Create(&txn).Error)
	return wallet
}

func TestSettleCreditsOnSettlement(t *testing.T) {
	db := newTestDB(t, "settle_credit")
	wallet := seedPendingDeposit(t, db, "DEP-1", 10000, 5000)

	engine := NewSettlementEngine(db)
	outcome, err := engine.Settle("DEP-1", "settlement")
	require.NoError(t, err)
	assert.Equal(t, SettlementCredited, outcome)

	var got models.Wallet
	require.NoError(t, db.First(&got, wallet.ID).Error)
	assert.Equal(t, int64(15000), got.Balance)

	var txn models.Transaction
	require.NoError(t, db.Where("order_id = ?", "DEP-1").First(&txn).Error)
	assert.Equal(t, models.TransactionStatusCompleted, txn.Status)
}

func TestSettleCreditsOnCapture(t *testing.T) {
	db := newTestDB(t, "settle_capture")
	wallet := seedPendingDeposit(t, db, "DEP-2", 0, 2500)

	engine := NewSettlementEngine(db)
	outcome, err := engine.Settle("DEP-2", "capture")
	require.NoError(t, err)
	assert.Equal(t, SettlementCredited, outcome)

	var got models.Wallet
	require.NoError(t, db.First(&got, wallet.ID).Error)
	assert.Equal(t, int64(2500), got.Balance)
}

func TestSettleMarksFailed(t *testing.T) {
	for _, status := range []string{"cancel", "deny", "expire"} {
		t.Run(status, func(t *testing.T) {
			db := newTestDB(t, "settle_fail_"+status)
			wallet := seedPendingDeposit(t, db, "DEP-3", 1000, 500)

			engine := NewSettlementEngine(db)
			outcome, err := engine.Settle("DEP-3", status)
			require.NoError(t, err)
			assert.Equal(t, SettlementMarkedFailed, outcome)

			var txn models.Transaction
			require.NoError(t, db.Where("order_id = ?", "DEP-3").First(&txn).Error)
			assert.Equal(t, models.TransactionStatusFailed, txn.Status)

			var got models.Wallet
			require.NoError(t, db.First(&got, wallet.ID).Error)
			assert.Equal(t, int64(1000), got.Balance, "failed payment must not touch the balance")
		})
	}
}

func TestSettlePendingLeavesEverythingUntouched(t *testing.T) {
	db := newTestDB(t, "settle_pending")
	wallet := seedPendingDeposit(t, db, "DEP-4", 1000, 500)

	engine := NewSettlementEngine(db)
	outcome, err := engine.Settle("DEP-4", "pending")
	require.NoError(t, err)
	assert.Equal(t, SettlementPending, outcome)

	var txn models.Transaction
	require.NoError(t, db.Where("order_id = ?", "DEP-4").First(&txn).Error)
	assert.Equal(t, models.TransactionStatusPending, txn.Status)

	var got models.Wallet
	require.NoError(t, db.First(&got, wallet.ID).Error)
	assert.Equal(t, int64(1000), got.Balance)
}

func TestSettleUnknownStatusIsNoOp(t *testing.T) {
	db := newTestDB(t, "settle_unknown_status")
	seedPendingDeposit(t, db, "DEP-5", 1000, 500)

	engine := NewSettlementEngine(db)
	outcome, err := engine.Settle("DEP-5", "refund_chargeback")
	require.NoError(t, err)
	assert.Equal(t, SettlementNoOp, outcome)

	var txn models.Transaction
	require.NoError(t, db.Where("order_id = ?", "DEP-5").First(&txn).Error)
	assert.Equal(t, models.TransactionStatusPending, txn.Status)
}

func TestSettleUnknownOrderID(t *testing.T) {
	db := newTestDB(t, "settle_unknown_order")

	engine := NewSettlementEngine(db)
	outcome, err := engine.Settle("NOPE-404", "settlement")
	require.NoError(t, err)
	assert.Equal(t, SettlementNotFound, outcome)

	outcome, err = engine.Settle("NOPE-404", "expire")
	require.NoError(t, err)
	assert.Equal(t, SettlementNotFound, outcome)
}

func TestSettleReplayCreditsOnlyOnce(t *testing.T) {
	db := newTestDB(t, "settle_replay")
	wallet := seedPendingDeposit(t, db, "DEP-6", 10000, 5000)

	engine := NewSettlementEngine(db)

	outcome, err := engine.Settle("DEP-6", "settlement")
	require.NoError(t, err)
	assert.Equal(t, SettlementCredited, outcome)

	// The gateway retries delivery; replays must not credit again
	for i := 0; i < 3; i++ {
		outcome, err = engine.Settle("DEP-6", "settlement")
		require.NoError(t, err)
		assert.Equal(t, SettlementNoOp, outcome)
	}

	var got models.Wallet
	require.NoError(t, db.First(&got, wallet.ID).Error)
	assert.Equal(t, int64(15000), got.Balance)
}

func TestSettleFailureAfterSettlementIsIgnored(t *testing.T) {
	db := newTestDB(t, "settle_then_fail")
	wallet := seedPendingDeposit(t, db, "DEP-7", 0, 5000)

	engine := NewSettlementEngine(db)

	outcome, err := engine.Settle("DEP-7", "settlement")
	require.NoError(t, err)
	assert.Equal(t, SettlementCredited, outcome)

	// A late expire notification must not flip a settled transaction
	outcome, err = engine.Settle("DEP-7", "expire")
	require.NoError(t, err)
	assert.Equal(t, SettlementNoOp, outcome)

	var txn models.Transaction
	require.NoError(t, db.Where("order_id = ?", "DEP-7").First(&txn).Error)
	assert.Equal(t, models.TransactionStatusCompleted, txn.Status)

	var got models.Wallet
	require.NoError(t, db.First(&got, wallet.ID).Error)
	assert.Equal(t, int64(5000), got.Balance)
}

func TestSettleConcurrentDeliveriesCreditOnce(t *testing.T) {
	db := newTestDB(t, "settle_concurrent")
	wallet := seedPendingDeposit(t, db, "DEP-8", 10000, 5000)

	engine := NewSettlementEngine(db)

	const deliveries = 10
	outcomes := make([]SettlementOutcome, deliveries)
	errs := make([]error, deliveries)

	var wg sync.WaitGroup
	for i := 0; i < deliveries; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			outcomes[i], errs[i] = engine.Settle("DEP-8", "settlement")
		}(i)
	}
	wg.Wait()

	credited := 0
	for i := 0; i < deliveries; i++ {
		require.NoError(t, errs[i])
		if outcomes[i] == SettlementCredited {
			credited++
		} else {
			assert.Equal(t, SettlementNoOp, outcomes[i])
		}
	}
	assert.Equal(t, 1, credited, "exactly one delivery may perform the credit")

	var got models.Wallet
	require.NoError(t, db.First(&got, wallet.ID).Error)
	assert.Equal(t, int64(15000), got.Balance)
}

func TestSettleRollsBackStatusWhenCreditFails(t *testing.T) {
	db := newTestDB(t, "settle_rollback")

	// Transaction row pointing at a wallet that does not exist
	txn := models.Transaction{
		OrderID:  "DEP-9",
		WalletID: 999,
		Amount:   5000,
		Type:     models.TransactionTypeDeposit,
		Status:   models.TransactionStatusPending,
	}
	require.NoError(t, db.Create(&txn).Error)

	engine := NewSettlementEngine(db)
	_, err := engine.Settle("DEP-9", "settlement")
	require.Error(t, err)

	// The status flip must have rolled back with the failed credit
	var got models.Transaction
	require.NoError(t, db.Where("order_id = ?", "DEP-9").First(&got).Error)
	assert.Equal(t, models.TransactionStatusPending, got.Status)
}
