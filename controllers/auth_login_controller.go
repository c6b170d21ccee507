package controllers

import (
	"time"

	"github.com/Akshay-214/WorkNest/config"
	"github.com/Akshay-214/WorkNest/models"
	"github.com/Akshay-214/WorkNest/utils"
	"github.com/gin-gonic/gin"
)

// LoginRequest represents the login request body
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// LoginUser handles user login. The JWT is returned in the body and also set
// as an httpOnly cookie for browser clients.
func LoginUser(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError("Login attempt failed - Invalid request format: %v", err)
		utils.BadRequest(c, "Invalid email or password", err.Error())
		return
	}

	req.Email = utils.SanitizeString(req.Email)
	if valid, msg := utils.ValidateEmail(req.Email); !valid {
		utils.LogError("Login attempt failed - Invalid email format: %s", req.Email)
		utils.BadRequest(c, "Invalid email", msg)
		return
	}

	var user models.User
	if err := config.DB.Where("email = ?", req.Email).First(&user).Error; err != nil {
		utils.LogError("Login attempt failed - User not found: %s", req.Email)
		utils.Unauthorized(c, "Invalid credentials")
		return
	}

	if !utils.CheckPassword(req.Password, user.Password) {
		utils.LogError("Login attempt failed - Invalid password for user: %s", req.Email)
		utils.Unauthorized(c, "Invalid credentials")
		return
	}

	if user.IsBlocked {
		utils.LogError("Login attempt failed - Blocked account: %s", req.Email)
		utils.Forbidden(c, "Account is blocked")
		return
	}

	user.LastLoginAt = time.Now()
	if err := config.DB.Save(&user).Error; err != nil {
		utils.LogError("Failed to update last login time for user: %s", req.Email)
	}

	tokenString, err := utils.GenerateToken(&user)
	if err != nil {
		utils.LogError("Failed to generate JWT token for user: %s", req.Email)
		utils.InternalServerError(c, "Failed to generate token", err.Error())
		return
	}

	// httpOnly cookie for browsers; body token for the mobile client
	c.SetCookie("auth_token", tokenString, 60*60*24, "/", "", false, true)

	utils.LogInfo("User logged in successfully: %s", req.Email)
	utils.Success(c, "Login successful", gin.H{
		"token": tokenString,
		"user": gin.H{
			"id":       user.ID,
			"username": user.Username,
			"email":    user.Email,
			"role":     user.Role,
		},
	})
}

// LogoutUser invalidates the current token and clears the auth cookie
func LogoutUser(c *gin.Context) {
	utils.LogInfo("LogoutUser called")

	tokenString, _ := c.Cookie("auth_token")
	if tokenString == "" {
		authHeader := c.GetHeader("Authorization")
		if len(authHeader) > 7 && authHeader[:7] == "Bearer " {
			tokenString = authHeader[7:]
		}
	}

	if tokenString != "" {
		blacklisted := models.BlacklistedToken{
			Token:     tokenString,
			ExpiresAt: time.Now().Add(24 * time.Hour),
		}
		if err := config.DB.Create(&blacklisted).Error; err != nil {
			utils.LogError("Failed to blacklist token: %v", err)
		}
	}

	c.SetCookie("auth_token", "", -1, "/", "", false, true)
	utils.Success(c, "Logged out successfully", nil)
}
