package models

import "time"

// User is the authenticated account as exposed by GET /auth/me/.
type User struct {
	ID         uint      `json:"id"`
	Nom        string    `json:"nom"`
	Email      string    `json:"email"`
	DateJoined time.Time `json:"date_joined"`
	IsActive   bool      `json:"is_active"`
}

// Tokens is the JWT pair returned by POST /auth/login/.
type Tokens struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh"`
}
