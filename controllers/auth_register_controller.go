package controllers

import (
	"time"

	"github.com/Akshay-214/WorkNest/config"
	"github.com/Akshay-214/WorkNest/models"
	"github.com/Akshay-214/WorkNest/utils"
	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

// RegisterRequest represents the registration request body
type RegisterRequest struct {
	Username        string `json:"username" binding:"required"`
	Email           string `json:"email" binding:"required,email"`
	Password        string `json:"password" binding:"required"`
	ConfirmPassword string `json:"confirm_password" binding:"required"`
	Role            string `json:"role" binding:"required"`
	FirstName       string `json:"first_name"`
	LastName        string `json:"last_name"`
	Phone           string `json:"phone"`
}

// RegistrationData represents the registration data stored in session while
// the email OTP is outstanding
type RegistrationData struct {
	Email      string `json:"email"`
	Password   string `json:"password"`
	Role       string `json:"role"`
	OTP        string `json:"otp"`
	OTPExpires int64  `json:"otp_expires"`
	Username   string `json:"username"`
	FirstName  string `json:"first_name"`
	LastName   string `json:"last_name"`
	Phone      string `json:"phone"`
}

// RegisterUser handles user registration. The account is only created after
// the emailed OTP is verified.
func RegisterUser(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError("Registration attempt failed - Invalid request format: %v", err)
		utils.BadRequest(c, "Invalid request format", "Please check your input data and ensure all required fields are provided correctly.")
		return
	}

	utils.LogInfo("Registration attempt for email: %s, username: %s", req.Email, req.Username)

	req.Email = utils.SanitizeString(req.Email)
	req.Username = utils.SanitizeString(req.Username)

	if valid, msg := utils.ValidateUsername(req.Username); !valid {
		utils.LogError("Registration attempt failed - Invalid username: %s - %s", req.Username, msg)
		utils.BadRequest(c, "Invalid username", msg)
		return
	}
	if valid, msg := utils.ValidateEmail(req.Email); !valid {
		utils.LogError("Registration attempt failed - Invalid email: %s - %s", req.Email, msg)
		utils.BadRequest(c, "Invalid email", msg)
		return
	}
	if valid, msg := utils.ValidatePassword(req.Password); !valid {
		utils.LogError("Registration attempt failed - Invalid password for email: %s - %s", req.Email, msg)
		utils.BadRequest(c, "Invalid password", msg)
		return
	}
	if valid, msg := utils.ValidateConfirmPassword(req.Password, req.ConfirmPassword); !valid {
		utils.LogError("Registration attempt failed - Passwords do not match for email: %s", req.Email)
		utils.BadRequest(c, "Passwords do not match", msg)
		return
	}
	if valid, msg := utils.ValidateRole(req.Role); !valid {
		utils.LogError("Registration attempt failed - Invalid role %q for email: %s", req.Role, req.Email)
		utils.BadRequest(c, "Invalid role", msg)
		return
	}
	if valid, msg := utils.ValidatePhone(req.Phone); !valid {
		utils.BadRequest(c, "Invalid phone number", msg)
		return
	}
	if valid, msg := utils.ValidateName(req.FirstName); !valid {
		utils.BadRequest(c, "Invalid first name", msg)
		return
	}
	if valid, msg := utils.ValidateName(req.LastName); !valid {
		utils.BadRequest(c, "Invalid last name", msg)
		return
	}

	// Reject duplicate accounts before sending an OTP
	var existing models.User
	if err := config.DB.Where("email = ? OR username = ?", req.Email, req.Username).First(&existing).Error; err == nil {
		utils.LogError("Registration attempt failed - Account already exists for email: %s", req.Email)
		utils.Conflict(c, "An account with this email or username already exists", nil)
		return
	}

	hashedPassword, err := utils.HashPassword(req.Password)
	if err != nil {
		utils.LogError("Failed to hash password for email: %s: %v", req.Email, err)
		utils.InternalServerError(c, "Failed to process registration", err.Error())
		return
	}

	otp := utils.GenerateOTP()
	data := RegistrationData{
		Email:      req.Email,
		Password:   hashedPassword,
		Role:       req.Role,
		OTP:        otp,
		OTPExpires: time.Now().Add(10 * time.Minute).Unix(),
		Username:   req.Username,
		FirstName:  req.FirstName,
		LastName:   req.LastName,
		Phone:      req.Phone,
	}

	session := sessions.Default(c)
	session.Set("registration_data", data)
	if err := session.Save(); err != nil {
		utils.LogError("Failed to save registration session for email: %s: %v", req.Email, err)
		utils.InternalServerError(c, "Failed to process registration", err.Error())
		return
	}

	if err := utils.SendOTP(req.Email, otp); err != nil {
		utils.LogError("Failed to send OTP to email: %s: %v", req.Email, err)
		utils.InternalServerError(c, "Failed to send verification email", err.Error())
		return
	}

	utils.LogInfo("Registration OTP sent to email: %s", req.Email)
	utils.Success(c, "Verification code sent. Please verify your email to complete registration.", gin.H{
		"email": req.Email,
	})
}

// VerifyOTP completes registration once the emailed code is confirmed
func VerifyOTP(c *gin.Context) {
	var req struct {
		OTP string `json:"otp" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError("OTP verification failed - Invalid request format: %v", err)
		utils.BadRequest(c, "Invalid request format", "Please provide OTP")
		return
	}

	session := sessions.Default(c)
	dataVal := session.Get("registration_data")
	if dataVal == nil {
		utils.LogError("OTP verification failed - No pending registration in session")
		utils.BadRequest(c, "No pending registration found. Please register again.", nil)
		return
	}
	data, ok := dataVal.(RegistrationData)
	if !ok {
		utils.LogError("OTP verification failed - Corrupt registration session data")
		utils.BadRequest(c, "Invalid registration session. Please register again.", nil)
		return
	}

	if time.Now().Unix() > data.OTPExpires {
		utils.LogError("OTP verification failed - Expired OTP for email: %s", data.Email)
		utils.BadRequest(c, "Verification code has expired. Please register again.", nil)
		return
	}
	if req.OTP != data.OTP {
		utils.LogError("OTP verification failed - Wrong code for email: %s", data.Email)
		utils.BadRequest(c, "Invalid verification code", nil)
		return
	}

	user := models.User{
		Username:   data.Username,
		Email:      data.Email,
		Password:   data.Password,
		Role:       data.Role,
		FirstName:  data.FirstName,
		LastName:   data.LastName,
		Phone:      data.Phone,
		IsVerified: true,
	}
	if err := config.DB.Create(&user).Error; err != nil {
		utils.LogError("Failed to create user for email: %s: %v", data.Email, err)
		utils.InternalServerError(c, "Failed to create account", err.Error())
		return
	}

	// Every user gets a wallet at signup
	if _, err := utils.GetOrCreateWallet(config.DB, user.ID); err != nil {
		utils.LogError("Failed to create wallet for user ID: %d: %v", user.ID, err)
		utils.InternalServerError(c, "Failed to create wallet", err.Error())
		return
	}

	session.Delete("registration_data")
	_ = session.Save()

	utils.LogInfo("User registered successfully: %s", data.Email)
	utils.Created(c, "Account created successfully. You can now log in.", gin.H{
		"user": gin.H{
			"id":       user.ID,
			"username": user.Username,
			"email":    user.Email,
			"role":     user.Role,
		},
	})
}
