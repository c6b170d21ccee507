package controllers

import (
	"os"
	"strconv"
	"time"

	"github.com/Akshay-214/WorkNest/config"
	"github.com/Akshay-214/WorkNest/models"
	"github.com/Akshay-214/WorkNest/utils"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt"
	"gorm.io/gorm"
)

// CreateSampleAdmin seeds an admin account on first boot so the panel is
// reachable before any real admin exists
func CreateSampleAdmin() error {
	var count int64
	if err := config.DB.Model(&models.Admin{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	password := os.Getenv("ADMIN_PASSWORD")
	if password == "" {
		password = "Admin@1234"
	}
	hashed, err := utils.HashPassword(password)
	if err != nil {
		return err
	}

	admin := models.Admin{
		Email:     "admin@worknest.io",
		Password:  hashed,
		FirstName: "Sample",
		LastName:  "Admin",
		IsActive:  true,
	}
	if err := config.DB.Create(&admin).Error; err != nil {
		return err
	}
	utils.LogInfo("Sample admin created: %s", admin.Email)
	return nil
}

// AdminLogin handles administrator login
func AdminLogin(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError("Admin login failed - Invalid request format: %v", err)
		utils.BadRequest(c, "Invalid email or password", err.Error())
		return
	}

	var admin models.Admin
	if err := config.DB.Where("email = ?", req.Email).First(&admin).Error; err != nil {
		utils.LogError("Admin login failed - Admin not found: %s", req.Email)
		utils.Unauthorized(c, "Invalid credentials")
		return
	}
	if !utils.CheckPassword(req.Password, admin.Password) {
		utils.LogError("Admin login failed - Invalid password for: %s", req.Email)
		utils.Unauthorized(c, "Invalid credentials")
		return
	}
	if !admin.IsActive {
		utils.Forbidden(c, "Admin account is inactive")
		return
	}

	admin.LastLogin = time.Now()
	if err := config.DB.Save(&admin).Error; err != nil {
		utils.LogError("Failed to update last login for admin: %s", req.Email)
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"admin_id": admin.ID,
		"email":    admin.Email,
		"exp":      time.Now().Add(time.Hour * 24).Unix(),
	})
	tokenString, err := token.SignedString([]byte(os.Getenv("JWT_SECRET")))
	if err != nil {
		utils.InternalServerError(c, "Failed to generate token", err.Error())
		return
	}

	c.SetCookie("auth_token", tokenString, 60*60*24, "/", "", false, true)

	utils.LogInfo("Admin logged in: %s", req.Email)
	utils.Success(c, "Login successful", gin.H{
		"token": tokenString,
		"admin": gin.H{"id": admin.ID, "email": admin.Email},
	})
}

// ListUsers returns all users for the admin panel
func ListUsers(c *gin.Context) {
	utils.LogInfo("ListUsers called")

	pagination := utils.NewPagination(c)
	query := config.DB.Model(&models.User{})
	if search := utils.SanitizeString(c.Query("search")); search != "" {
		like := "%" + search + "%"
		query = query.Where("username ILIKE ? OR email ILIKE ?", like, like)
	}
	if role := c.Query("role"); role != "" {
		query = query.Where("role = ?", role)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		utils.InternalServerError(c, "Failed to count users", err.Error())
		return
	}

	var users []models.User
	if err := query.Order("created_at DESC").
		Limit(pagination.Limit).Offset(pagination.Offset).
		Find(&users).Error; err != nil {
		utils.LogError("Failed to list users: %v", err)
		utils.InternalServerError(c, "Failed to list users", err.Error())
		return
	}

	formatted := make([]gin.H, len(users))
	for i, u := range users {
		formatted[i] = gin.H{
			"id":         u.ID,
			"username":   u.Username,
			"email":      u.Email,
			"role":       u.Role,
			"is_blocked": u.IsBlocked,
			"created_at": u.CreatedAt.Format("2006-01-02 15:04:05"),
		}
	}

	utils.SuccessWithPagination(c, "Users retrieved successfully", gin.H{
		"users": formatted,
	}, total, pagination.Page, pagination.Limit)
}

func setUserBlocked(c *gin.Context, blocked bool) {
	userID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.BadRequest(c, "Invalid user ID", nil)
		return
	}

	var user models.User
	if err := config.DB.First(&user, userID).Error; err != nil {
		utils.NotFound(c, "User not found")
		return
	}

	if err := config.DB.Model(&user).Update("is_blocked", blocked).Error; err != nil {
		utils.LogError("Failed to update block state for user %d: %v", user.ID, err)
		utils.InternalServerError(c, "Failed to update user", err.Error())
		return
	}

	action := "unblocked"
	if blocked {
		action = "blocked"
	}
	utils.LogInfo("User %d %s by admin", user.ID, action)
	utils.Success(c, "User "+action+" successfully", gin.H{"user_id": user.ID})
}

// BlockUser blocks a user account
func BlockUser(c *gin.Context) {
	utils.LogInfo("BlockUser called")
	setUserBlocked(c, true)
}

// UnblockUser unblocks a user account
func UnblockUser(c *gin.Context) {
	utils.LogInfo("UnblockUser called")
	setUserBlocked(c, false)
}

// ListAllTransactions returns every wallet transaction for the admin panel
func ListAllTransactions(c *gin.Context) {
	utils.LogInfo("ListAllTransactions called")

	pagination := utils.NewPagination(c)
	query := config.DB.Model(&models.Transaction{})
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}
	if txType := c.Query("type"); txType != "" {
		query = query.Where("type = ?", txType)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		utils.InternalServerError(c, "Failed to count transactions", err.Error())
		return
	}

	var transactions []models.Transaction
	if err := query.Order("created_at DESC").
		Limit(pagination.Limit).Offset(pagination.Offset).
		Find(&transactions).Error; err != nil {
		utils.LogError("Failed to list transactions: %v", err)
		utils.InternalServerError(c, "Failed to list transactions", err.Error())
		return
	}

	utils.SuccessWithPagination(c, "Transactions retrieved successfully", gin.H{
		"transactions": transactions,
	}, total, pagination.Page, pagination.Limit)
}

// ReverseWithdrawal credits a bounced withdrawal payout back to the wallet.
// Guarded so a withdrawal can only be reversed once.
func ReverseWithdrawal(c *gin.Context) {
	utils.LogInfo("ReverseWithdrawal called")

	txnID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.BadRequest(c, "Invalid transaction ID", nil)
		return
	}

	var txn models.Transaction
	if err := config.DB.First(&txn, txnID).Error; err != nil {
		utils.NotFound(c, "Transaction not found")
		return
	}
	if txn.Type != models.TransactionTypeWithdrawal || txn.Status != models.TransactionStatusCompleted {
		utils.Conflict(c, "Only completed withdrawals can be reversed", nil)
		return
	}

	refundOrderID := "REF-" + txn.OrderID
	err = config.DB.Transaction(func(tx *gorm.DB) error {
		// The unique order_id index makes the refund row the once-only
		// guard: a second reversal attempt fails the insert.
		refund := models.Transaction{
			OrderID:     refundOrderID,
			WalletID:    txn.WalletID,
			Amount:      txn.Amount,
			Type:        models.TransactionTypeRefund,
			Status:      models.TransactionStatusCompleted,
			Description: "Reversal of withdrawal " + txn.OrderID,
		}
		if err := tx.Create(&refund).Error; err != nil {
			return utils.ConflictError("This withdrawal has already been reversed", err)
		}
		return utils.CreditWallet(tx, txn.WalletID, txn.Amount)
	})
	if err != nil {
		if appErr := utils.GetAppError(err); appErr != nil {
			utils.Conflict(c, appErr.Message, nil)
			return
		}
		utils.LogError("Failed to reverse withdrawal %d: %v", txn.ID, err)
		utils.InternalServerError(c, "Failed to reverse withdrawal", err.Error())
		return
	}

	utils.LogInfo("Withdrawal %s reversed, wallet %d credited %d", txn.OrderID, txn.WalletID, txn.Amount)
	utils.Success(c, "Withdrawal reversed and wallet credited", gin.H{
		"refund_order_id": refundOrderID,
		"amount":          txn.Amount,
	})
}
