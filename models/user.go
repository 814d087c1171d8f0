package models

import "time"

// UserRole separates clients from practitioners and administrators.
type UserRole string

const (
	RoleClient       UserRole = "client"
	RolePractitioner UserRole = "practitioner"
	RoleAdmin        UserRole = "admin"
)

// User is a platform account. PasswordHash is a bcrypt digest; the raw
// password never touches the store.
type User struct {
	ID            string                `bson:"id" json:"id"`
	FirstName     string                `bson:"first_name" json:"firstName"`
	LastName      string                `bson:"last_name" json:"lastName"`
	Email         string                `bson:"email" json:"email"`
	Phone         string                `bson:"phone,omitempty" json:"phone,omitempty"`
	PasswordHash  string                `bson:"password_hash" json:"-"`
	Role          UserRole              `bson:"role" json:"role"`
	EmailVerified bool                  `bson:"email_verified" json:"emailVerified"`
	FCMToken      string                `bson:"fcm_token,omitempty" json:"-"`
	Subscriptions []SubscriptionSummary `bson:"subscriptions,omitempty" json:"subscriptions,omitempty"`
	CreatedAt     time.Time             `bson:"created_at" json:"createdAt"`
	UpdatedAt     time.Time             `bson:"updated_at" json:"updatedAt"`
}

// RegisterRequest is the account-creation payload.
type RegisterRequest struct {
	FirstName string `json:"firstName" binding:"required"`
	LastName  string `json:"lastName" binding:"required"`
	Email     string `json:"email" binding:"required,email"`
	Phone     string `json:"phone"`
	Password  string `json:"password" binding:"required,min=8"`
}

// LoginRequest is the credential payload for sign-in.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// AuthResponse is returned on successful login.
type AuthResponse struct {
	ID            string   `json:"id"`
	Token         string   `json:"token"`
	FirstName     string   `json:"firstName"`
	LastName      string   `json:"lastName"`
	Email         string   `json:"email"`
	Role          UserRole `json:"role"`
	EmailVerified bool     `json:"emailVerified"`
}
