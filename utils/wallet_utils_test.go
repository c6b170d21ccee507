package utils

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/Akshay-214/WorkNest/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newWalletTestDB(t *testing.T, name string) *gorm.DB {
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

func TestGetOrCreateWallet(t *testing.T) {
	db := newWalletTestDB(t, "wallet_create")

	first, err := GetOrCreateWallet(db, 42)
	require.NoError(t, err)
	assert.Equal(t, uint(42), first.UserID)
	assert.Equal(t, int64(0), first.Balance)

	again, err := GetOrCreateWallet(db, 42)
	require.NoError(t, err)
	assert.Equal(t, first.ID, again.ID)

	var count int64
	require.NoError(t, db.Model(&models.Wallet{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestDebitWallet(t *testing.T) {
	db := newWalletTestDB(t, "wallet_debit")
	wallet := models.Wallet{UserID: 1, Balance: 1000}
	require.NoError(t, db.Create(&wallet).Error)

	require.NoError(t, DebitWallet(db, wallet.ID, 400))

	var got models.Wallet
	require.NoError(t, db.First(&got, wallet.ID).Error)
	assert.Equal(t, int64(600), got.Balance)

	err := DebitWallet(db, wallet.ID, 601)
	assert.True(t, errors.Is(err, ErrInsufficientBalance))

	require.NoError(t, db.First(&got, wallet.ID).Error)
	assert.Equal(t, int64(600), got.Balance, "rejected debit must not change the balance")
}

func TestConcurrentDebitsNeverOverdraw(t *testing.T) {
	db := newWalletTestDB(t, "wallet_race")
	wallet := models.Wallet{UserID: 1, Balance: 500}
	require.NoError(t, db.Create(&wallet).Error)

	// 10 debits of 100 against a balance of 500: exactly 5 can win
	const attempts = 10
	errs := make([]error, attempts)
	var wg sync.WaitGroup
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			errs[i] = DebitWallet(db, wallet.ID, 100)
		}(i)
	}
	wg.Wait()

	succeeded := 0
	for _, err := range errs {
		if err == nil {
			succeeded++
		} else {
			assert.True(t, errors.Is(err, ErrInsufficientBalance))
		}
	}
	assert.Equal(t, 5, succeeded)

	var got models.Wallet
	require.NoError(t, db.First(&got, wallet.ID).Error)
	assert.Equal(t, int64(0), got.Balance)
}

func TestCreditWalletUnknownID(t *testing.T) {
	db := newWalletTestDB(t, "wallet_credit_missing")
	err := CreditWallet(db, 999, 100)
	require.Error(t, err)
}

func TestTransferBetweenWallets(t *testing.T) {
	db := newWalletTestDB(t, "wallet_transfer")
	from := models.Wallet{UserID: 1, Balance: 1000}
	to := models.Wallet{UserID: 2, Balance: 0}
	require.NoError(t, db.Create(&from).Error)
	require.NoError(t, db.Create(&to).Error)

	require.NoError(t, TransferBetweenWallets(db, from.ID, to.ID, 750, 1, "milestone payout"))

	var gotFrom, gotTo models.Wallet
	require.NoError(t, db.First(&gotFrom, from.ID).Error)
	require.NoError(t, db.First(&gotTo, to.ID).Error)
	assert.Equal(t, int64(250), gotFrom.Balance)
	assert.Equal(t, int64(750), gotTo.Balance)

	var txns []models.Transaction
	require.NoError(t, db.Order("id").Find(&txns).Error)
	require.Len(t, txns, 2)
	assert.Equal(t, models.TransactionTypePaymentOut, txns[0].Type)
	assert.Equal(t, models.TransactionTypePaymentIn, txns[1].Type)
	for _, txn := range txns {
		assert.Equal(t, models.TransactionStatusCompleted, txn.Status)
		assert.Equal(t, int64(750), txn.Amount)
	}
}

func TestTransferRollsBackOnInsufficientBalance(t *testing.T) {
	db := newWalletTestDB(t, "wallet_transfer_fail")
	from := models.Wallet{UserID: 1, Balance: 100}
	to := models.Wallet{UserID: 2, Balance: 0}
	require.NoError(t, db.Create(&from).Error)
	require.NoError(t, db.Create(&to).Error)

	err := TransferBetweenWallets(db, from.ID, to.ID, 500, 1, "milestone payout")
	assert.True(t, errors.Is(err, ErrInsufficientBalance))

	var gotFrom, gotTo models.Wallet
	require.NoError(t, db.First(&gotFrom, from.ID).Error)
	require.NoError(t, db.First(&gotTo, to.ID).Error)
	assert.Equal(t, int64(100), gotFrom.Balance)
	assert.Equal(t, int64(0), gotTo.Balance)

	var count int64
	require.NoError(t, db.Model(&models.Transaction{}).Count(&count).Error)
	assert.Equal(t, int64(0), count, "no transaction rows may survive a failed transfer")
}

func TestNewOrderID(t *testing.T) {
	a := NewOrderID("DEP", 7)
	b := NewOrderID("DEP", 7)
	assert.True(t, strings.HasPrefix(a, "DEP-7-"))
	assert.NotEqual(t, a, b)
}
