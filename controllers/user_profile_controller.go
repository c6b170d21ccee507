package controllers

import (
	"github.com/Akshay-214/WorkNest/config"
	"github.com/Akshay-214/WorkNest/utils"
	"github.com/gin-gonic/gin"
)

// GetProfile returns the authenticated user's profile
func GetProfile(c *gin.Context) {
	utils.LogInfo("GetProfile called")
	user, ok := getUserFromContext(c)
	if !ok {
		return
	}

	utils.Success(c, "Profile retrieved successfully", gin.H{
		"user": gin.H{
			"id":            user.ID,
			"username":      user.Username,
			"email":         user.Email,
			"role":          user.Role,
			"first_name":    user.FirstName,
			"last_name":     user.LastName,
			"phone":         user.Phone,
			"bio":           user.Bio,
			"skills":        user.Skills,
			"hourly_rate":   user.HourlyRate,
			"profile_image": user.ProfileImage,
			"is_verified":   user.IsVerified,
			"member_since":  user.CreatedAt.Format("2006-01-02"),
		},
	})
}

// UpdateProfileRequest represents the profile update body
type UpdateProfileRequest struct {
	FirstName  *string `json:"first_name"`
	LastName   *string `json:"last_name"`
	Phone      *string `json:"phone"`
	Bio        *string `json:"bio"`
	Skills     *string `json:"skills"`
	HourlyRate *int64  `json:"hourly_rate"`
}

// UpdateProfile updates the authenticated user's profile fields
func UpdateProfile(c *gin.Context) {
	utils.LogInfo("UpdateProfile called")
	user, ok := getUserFromContext(c)
	if !ok {
		return
	}

	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError("Invalid profile update for user ID: %d: %v", user.ID, err)
		utils.BadRequest(c, "Invalid request format", err.Error())
		return
	}

	if req.FirstName != nil {
		name := utils.SanitizeString(*req.FirstName)
		if valid, msg := utils.ValidateName(name); !valid {
			utils.BadRequest(c, "Invalid first name", msg)
			return
		}
		user.FirstName = name
	}
	if req.LastName != nil {
		name := utils.SanitizeString(*req.LastName)
		if valid, msg := utils.ValidateName(name); !valid {
			utils.BadRequest(c, "Invalid last name", msg)
			return
		}
		user.LastName = name
	}
	if req.Phone != nil {
		phone := utils.SanitizeString(*req.Phone)
		if valid, msg := utils.ValidatePhone(phone); !valid {
			utils.BadRequest(c, "Invalid phone number", msg)
			return
		}
		user.Phone = phone
	}
	if req.Bio != nil {
		bio := utils.SanitizeString(*req.Bio)
		if err := utils.ValidateStringLength(bio, 0, 2000); err != nil {
			utils.BadRequest(c, "Invalid bio", err.Error())
			return
		}
		user.Bio = bio
	}
	if req.Skills != nil {
		user.Skills = utils.SanitizeString(*req.Skills)
	}
	if req.HourlyRate != nil {
		if err := utils.ValidateAmount(*req.HourlyRate); err != nil {
			utils.BadRequest(c, "Invalid hourly rate", err.Error())
			return
		}
		user.HourlyRate = *req.HourlyRate
	}

	if err := config.DB.Save(&user).Error; err != nil {
		utils.LogError("Failed to update profile for user ID: %d: %v", user.ID, err)
		utils.InternalServerError(c, "Failed to update profile", err.Error())
		return
	}

	utils.LogInfo("Profile updated for user ID: %d", user.ID)
	utils.Success(c, "Profile updated successfully", gin.H{
		"user": gin.H{
			"id":          user.ID,
			"first_name":  user.FirstName,
			"last_name":   user.LastName,
			"phone":       user.Phone,
			"bio":         user.Bio,
			"skills":      user.Skills,
			"hourly_rate": user.HourlyRate,
		},
	})
}

// ChangePassword updates the authenticated user's password
func ChangePassword(c *gin.Context) {
	utils.LogInfo("ChangePassword called")
	user, ok := getUserFromContext(c)
	if !ok {
		return
	}

	var req struct {
		CurrentPassword string `json:"current_password" binding:"required"`
		NewPassword     string `json:"new_password" binding:"required"`
		ConfirmPassword string `json:"confirm_password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request format", err.Error())
		return
	}

	if !utils.CheckPassword(req.CurrentPassword, user.Password) {
		utils.LogError("Password change failed - wrong current password for user ID: %d", user.ID)
		utils.Unauthorized(c, "Current password is incorrect")
		return
	}
	if valid, msg := utils.ValidatePassword(req.NewPassword); !valid {
		utils.BadRequest(c, "Invalid new password", msg)
		return
	}
	if valid, msg := utils.ValidateConfirmPassword(req.NewPassword, req.ConfirmPassword); !valid {
		utils.BadRequest(c, "Passwords do not match", msg)
		return
	}

	hashed, err := utils.HashPassword(req.NewPassword)
	if err != nil {
		utils.InternalServerError(c, "Failed to update password", err.Error())
		return
	}

	user.Password = hashed
	if err := config.DB.Save(&user).Error; err != nil {
		utils.LogError("Failed to save new password for user ID: %d: %v", user.ID, err)
		utils.InternalServerError(c, "Failed to update password", err.Error())
		return
	}

	utils.LogInfo("Password changed for user ID: %d", user.ID)
	utils.Success(c, "Password changed successfully", nil)
}
