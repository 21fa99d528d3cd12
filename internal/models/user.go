package models

import "time"

// User roles.
const (
	RoleUser  = "USER"
	RoleAdmin = "ADMIN"
)

// User represents an account in the system. Guest accounts have no email or
// password and expire after GuestExpiresAt.
type User struct {
	ID             string     `db:"id" json:"id"`
	Name           string     `db:"name" json:"name"`
	Email          *string    `db:"email" json:"email,omitempty"`
	PasswordHash   string     `db:"password_hash" json:"-"` // Never expose this to the client
	Role           string     `db:"role" json:"role"`
	Avatar         string     `db:"avatar" json:"avatar,omitempty"`
	IsVerified     bool       `db:"is_verified" json:"isVerified"`
	IsGuest        bool       `db:"is_guest" json:"isGuest"`
	GuestExpiresAt *time.Time `db:"guest_expires_at" json:"guestExpiresAt,omitempty"`
	LastLogin      *time.Time `db:"last_login" json:"lastLogin,omitempty"`
	CreatedAt      time.Time  `db:"created_at" json:"createdAt"`
	UpdatedAt      time.Time  `db:"updated_at" json:"updatedAt"`
}
