package utils

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"

	"github.com/Akshay-214/WorkNest/models"
)

var (
	emailRegex    = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)
	usernameRegex = regexp.MustCompile(`^[a-zA-Z0-9_]{3,30}$`)
	phoneRegex    = regexp.MustCompile(`^\+?[0-9]{10,15}$`)
)

// SanitizeString trims whitespace and strips control characters from input
func SanitizeString(input string) string {
	input = strings.TrimSpace(input)
	return strings.Map(func(r rune) rune {
		if unicode.IsControl(r) {
			return -1
		}
		return r
	}, input)
}

// ValidateEmail checks if the email has a valid format
func ValidateEmail(email string) (bool, string) {
	if email == "" {
		return false, "Email is required"
	}
	if len(email) > 254 {
		return false, "Email is too long"
	}
	if !emailRegex.MatchString(email) {
		return false, "Invalid email format"
	}
	return true, ""
}

// ValidateUsername checks if the username is acceptable
func ValidateUsername(username string) (bool, string) {
	if username == "" {
		return false, "Username is required"
	}
	if !usernameRegex.MatchString(username) {
		return false, "Username must be 3-30 characters and contain only letters, numbers and underscores"
	}
	return true, ""
}

// ValidatePassword enforces the password policy
func ValidatePassword(password string) (bool, string) {
	if len(password) < 8 {
		return false, "Password must be at least 8 characters long"
	}
	var hasUpper, hasLower, hasDigit bool
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsDigit(r):
			hasDigit = true
		}
	}
	if !hasUpper || !hasLower || !hasDigit {
		return false, "Password must contain uppercase, lowercase and numeric characters"
	}
	return true, ""
}

// ValidateConfirmPassword checks that both passwords match
func ValidateConfirmPassword(password, confirmPassword string) (bool, string) {
	if password != confirmPassword {
		return false, "Passwords do not match"
	}
	return true, ""
}

// ValidatePhone checks if the phone number is acceptable
func ValidatePhone(phone string) (bool, string) {
	if phone == "" {
		return true, "" // optional
	}
	if !phoneRegex.MatchString(phone) {
		return false, "Invalid phone number"
	}
	return true, ""
}

// ValidateName checks a first/last name field
func ValidateName(name string) (bool, string) {
	if name == "" {
		return true, "" // optional
	}
	if len(name) > 50 {
		return false, "Name is too long"
	}
	for _, r := range name {
		if !unicode.IsLetter(r) && r != ' ' && r != '-' && r != '\'' {
			return false, "Name contains invalid characters"
		}
	}
	return true, ""
}

// ValidateRole checks that the role is one of the known user roles
func ValidateRole(role string) (bool, string) {
	if role != models.RoleClient && role != models.RoleFreelancer {
		return false, fmt.Sprintf("Role must be %q or %q", models.RoleClient, models.RoleFreelancer)
	}
	return true, ""
}

// ValidateAmount checks a monetary amount expressed in minor units
func ValidateAmount(amount int64) error {
	if amount <= 0 {
		return fmt.Errorf("amount must be positive")
	}
	return nil
}

// ValidateStringLength checks that a string is within the given bounds
func ValidateStringLength(str string, min, max int) error {
	if len(str) < min {
		return fmt.Errorf("must be at least %d characters", min)
	}
	if len(str) > max {
		return fmt.Errorf("must be at most %d characters", max)
	}
	return nil
}
