package controllers

import (
	"bytes"
	"crypto/sha512"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Akshay-214/WorkNest/models"
	"github.com/Akshay-214/WorkNest/utils"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

const testServerKey = "test-server-key"

func newNotificationRouter(t *testing.T, db *gorm.DB) *gin.Engine {
	t.Helper()

	gin.SetMode(gin.TestMode)
	paymentVerifier = utils.NewSignatureVerifier(testServerKey)
	settlementEngine = NewSettlementEngine(db)

	router := gin.New()
	router.POST("/v1/payments/midtrans/notification", HandlePaymentNotification)
	return router
}

func signNotification(orderID, statusCode, grossAmount string) string {
	sum := sha512.Sum512([]byte(orderID + statusCode + grossAmount + testServerKey))
	return hex.EncodeToString(sum[:])
}

func postNotification(router *gin.Engine, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/v1/payments/midtrans/notification", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestNotificationSettlesAndCredits(t *testing.T) {
	db := newTestDB(t, "notif_settle")
	wallet := seedPendingDeposit(t, db, "T-100", 0, 50000)
	router := newNotificationRouter(t, db)

	body := fmt.Sprintf(`{
		"order_id": "T-100",
		"status_code": "200",
		"gross_amount": "50000.00",
		"transaction_status": "settlement",
		"signature_key": "%s"
	}`, signNotification("T-100", "200", "50000.00"))

	w := postNotification(router, body)
	assert.Equal(t, http.StatusOK, w.Code)

	var got models.Wallet
	require.NoError(t, db.First(&got, wallet.ID).Error)
	assert.Equal(t, int64(50000), got.Balance)
}

func TestNotificationNumericGrossAmount(t *testing.T) {
	db := newTestDB(t, "notif_numeric")
	wallet := seedPendingDeposit(t, db, "T-101", 0, 2500)
	router := newNotificationRouter(t, db)

	// The signature covers the exact bytes of the number as sent
	body := fmt.Sprintf(`{
		"order_id": "T-101",
		"status_code": "200",
		"gross_amount": 2500,
		"transaction_status": "capture",
		"signature_key": "%s"
	}`, signNotification("T-101", "200", "2500"))

	w := postNotification(router, body)
	assert.Equal(t, http.StatusOK, w.Code)

	var got models.Wallet
	require.NoError(t, db.First(&got, wallet.ID).Error)
	assert.Equal(t, int64(2500), got.Balance)
}

func TestNotificationBadSignatureRejectedWithoutMutation(t *testing.T) {
	db := newTestDB(t, "notif_bad_sig")
	wallet := seedPendingDeposit(t, db, "T-102", 1000, 500)
	router := newNotificationRouter(t, db)

	body := `{
		"order_id": "T-102",
		"status_code": "200",
		"gross_amount": "500",
		"transaction_status": "settlement",
		"signature_key": "deadbeef"
	}`

	w := postNotification(router, body)
	assert.Equal(t, http.StatusForbidden, w.Code)

	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Invalid Signature", resp["message"])

	var txn models.Transaction
	require.NoError(t, db.Where("order_id = ?", "T-102").First(&txn).Error)
	assert.Equal(t, models.TransactionStatusPending, txn.Status)

	var got models.Wallet
	require.NoError(t, db.First(&got, wallet.ID).Error)
	assert.Equal(t, int64(1000), got.Balance)
}

func TestNotificationMalformedBody(t *testing.T) {
	db := newTestDB(t, "notif_malformed")
	router := newNotificationRouter(t, db)

	w := postNotification(router, `{"order_id": `)
	assert.Equal(t, http.StatusInternalServerError, w.Code)

	// Missing required order_id is also a parse failure
	w = postNotification(router, `{"transaction_status": "settlement"}`)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestNotificationUnknownOrderAcknowledged(t *testing.T) {
	db := newTestDB(t, "notif_unknown")
	router := newNotificationRouter(t, db)

	body := fmt.Sprintf(`{
		"order_id": "GHOST-1",
		"status_code": "404",
		"gross_amount": "100",
		"transaction_status": "settlement",
		"signature_key": "%s"
	}`, signNotification("GHOST-1", "404", "100"))

	w := postNotification(router, body)
	assert.Equal(t, http.StatusOK, w.Code)

	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Order not recognized", resp["message"])
}

func TestNotificationReplayAcknowledged(t *testing.T) {
	db := newTestDB(t, "notif_replay")
	wallet := seedPendingDeposit(t, db, "T-103", 0, 750)
	router := newNotificationRouter(t, db)

	body := fmt.Sprintf(`{
		"order_id": "T-103",
		"status_code": "200",
		"gross_amount": "750",
		"transaction_status": "settlement",
		"signature_key": "%s"
	}`, signNotification("T-103", "200", "750"))

	for i := 0; i < 3; i++ {
		w := postNotification(router, body)
		assert.Equal(t, http.StatusOK, w.Code)
	}

	var got models.Wallet
	require.NoError(t, db.First(&got, wallet.ID).Error)
	assert.Equal(t, int64(750), got.Balance)
}
