package users

import (
	"regexp"
	"strings"
	"unicode"
)

var emailPattern = regexp.MustCompile(`^\w+([.-]?\w+)*@\w+([.-]?\w+)*(\.\w{2,3})+$`)

func validEmail(email string) bool {
	return emailPattern.MatchString(email)
}

func passwordMessage(password string) string {
	if len(password) < 8 {
		return "Password must be at least 8 characters long"
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
	if !hasUpper {
		return "Password must contain at least one uppercase letter"
	}
	if !hasLower {
		return "Password must contain at least one lowercase letter"
	}
	if !hasDigit {
		return "Password must contain at least one number"
	}
	return ""
}

func validateSignUp(name, email, password string) map[string]string {
	errs := make(map[string]string)

	trimmedName := strings.TrimSpace(name)
	if len(trimmedName) < 2 {
		errs["name"] = "Name must be at least 2 characters long"
	} else if len(trimmedName) > 50 {
		errs["name"] = "Name cannot exceed 50 characters"
	}

	if email == "" || !validEmail(email) {
		errs["email"] = "Please provide a valid email address"
	}

	if msg := passwordMessage(password); msg != "" {
		errs["password"] = msg
	}

	return errs
}

func validateLogin(email, password string) map[string]string {
	errs := make(map[string]string)

	if email == "" || !validEmail(email) {
		errs["email"] = "Please provide a valid email address"
	}
	if password == "" {
		errs["password"] = "Password is required"
	}

	return errs
}
