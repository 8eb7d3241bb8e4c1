package dto

import (
	"strings"

	"github.com/aarthiksaathi/aarthik-be/internal/models"
)

// RegisterRequest is the body of POST /register. Older clients send the
// phone number as phoneNumber.
type RegisterRequest struct {
	Username    string `json:"username"`
	Email       string `json:"email"`
	Phone       string `json:"phone"`
	PhoneNumber string `json:"phoneNumber"`
	Password    string `json:"password"`
}

// User returns the trimmed identity fields. Emails are compared lowercased.
func (r RegisterRequest) User() models.User {
	phone := strings.TrimSpace(r.Phone)
	if phone == "" {
		phone = strings.TrimSpace(r.PhoneNumber)
	}
	return models.User{
		Username: strings.TrimSpace(r.Username),
		Email:    strings.ToLower(strings.TrimSpace(r.Email)),
		Phone:    phone,
	}
}

// LoginRequest accepts a username or an email as the identifier.
type LoginRequest struct {
	Identifier string `json:"identifier"`
	Password   string `json:"password"`
}

// Identity returns the identifier in the form users are stored under.
func (r LoginRequest) Identity() string {
	id := strings.TrimSpace(r.Identifier)
	if strings.Contains(id, "@") {
		return strings.ToLower(id)
	}
	return id
}

type LoginResponse struct {
	Token      string      `json:"token"`
	User       models.User `json:"user"`
	HasProfile bool        `json:"has_profile"`
}
