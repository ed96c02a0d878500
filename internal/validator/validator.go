package validator

import (
	"errors"
	"regexp"
	"time"
)

var (
	ErrInvalidUsername = errors.New("invalid username")
	ErrInvalidPassword = errors.New("password must be at least 6 characters")
	ErrInvalidCode     = errors.New("invalid person code")
	ErrInvalidDate     = errors.New("date must be YYYY-MM-DD")
	ErrInvalidType     = errors.New("type must be income or expense")
	ErrInvalidStatus   = errors.New("status must be pending or completed")
	ErrInvalidRole     = errors.New("role must be admin or user")
	ErrMissingField    = errors.New("missing required field")
)

var (
	usernameRegex = regexp.MustCompile(`^[a-zA-Z0-9_]{3,30}$`)
	codeRegex     = regexp.MustCompile(`^[a-zA-Z0-9_-]{1,20}$`)
)

func ValidateUsername(username string) error {
	if !usernameRegex.MatchString(username) {
		return ErrInvalidUsername
	}
	return nil
}

func ValidatePassword(password string) error {
	if len(password) < 6 {
		return ErrInvalidPassword
	}
	return nil
}

func ValidatePersonCode(code string) error {
	if !codeRegex.MatchString(code) {
		return ErrInvalidCode
	}
	return nil
}

func ValidateDate(date string) error {
	if _, err := time.Parse("2006-01-02", date); err != nil {
		return ErrInvalidDate
	}
	return nil
}

func ValidateTransactionType(t string) error {
	if t != "income" && t != "expense" {
		return ErrInvalidType
	}
	return nil
}

func ValidateStatus(status string) error {
	if status != "pending" && status != "completed" {
		return ErrInvalidStatus
	}
	return nil
}

func ValidateRole(role string) error {
	if role != "admin" && role != "user" {
		return ErrInvalidRole
	}
	return nil
}

func Require(fields ...string) error {
	for _, f := range fields {
		if f == "" {
			return ErrMissingField
		}
	}
	return nil
}
