package models

import (
	"time"
)

// AdminUser is the capability document stored in the "admins" collection,
// keyed by the authenticated user's uid. The mere presence of a document
// under a uid grants admin access, there is no role hierarchy.
type AdminUser struct {
	UID          string    `bson:"_id" json:"uid"`
	Email        string    `bson:"email" json:"email"`
	Username     string    `bson:"username" json:"username"`
	PasswordHash string    `bson:"password_hash" json:"-"`
	Role         string    `bson:"role" json:"role"` // always "admin"
	CreatedAt    time.Time `bson:"created_at" json:"created_at"`
}

// LoginRequest represents an admin login request
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RegisterRequest represents an admin registration request
type RegisterRequest struct {
	Email    string `json:"email"`
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginResponse represents a successful login response
type LoginResponse struct {
	Token string    `json:"token"`
	Admin AdminUser `json:"admin"`
}

// Claims represents JWT claims
type Claims struct {
	UID      string `json:"uid"`
	Email    string `json:"email"`
	Username string `json:"username"`
	Exp      int64  `json:"exp"`
}
