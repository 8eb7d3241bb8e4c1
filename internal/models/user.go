package models

import (
	"net/mail"
	"strings"
	"time"
)

// User is an account that can sign in and own a profile.
type User struct {
	ID           int64     `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	Phone        string    `json:"phone"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

// Validate checks the identity fields of a user about to be registered.
func (u User) Validate() error {
	switch {
	case u.Username == "":
		return &ValidationError{Field: "username", Reason: "is required"}
	case strings.ContainsAny(u.Username, " \t@"):
		return &ValidationError{Field: "username", Reason: "must not contain spaces or @"}
	case u.Email == "":
		return &ValidationError{Field: "email", Reason: "is required"}
	case u.Phone == "":
		return &ValidationError{Field: "phone", Reason: "is required"}
	}
	if addr, err := mail.ParseAddress(u.Email); err != nil || addr.Address != u.Email {
		return &ValidationError{Field: "email", Reason: "is not a valid address"}
	}
	return nil
}
