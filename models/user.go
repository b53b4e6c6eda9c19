package models

import "time"

// AccountStatus is the approval state of an account. Only therapists start out pending.
type AccountStatus string

const (
	AccountPending  AccountStatus = "pending"
	AccountApproved AccountStatus = "approved"
	AccountRejected AccountStatus = "rejected"
)

// User represents any platform account.
type User struct {
	ID            string        `bson:"id" json:"id"`
	Username      string        `bson:"username" json:"username"`
	Email         string        `bson:"email" json:"email"`
	PasswordHash  string        `bson:"passwordHash,omitempty" json:"-"`
	Role          Role          `bson:"role" json:"role"`
	RoleID        string        `bson:"roleId" json:"roleId"`
	Status        AccountStatus `bson:"status" json:"status"`
	IsActive      bool          `bson:"isActive" json:"isActive"`
	LicenseNumber string        `bson:"licenseNumber,omitempty" json:"licenseNumber,omitempty"`
	Specialty     string        `bson:"specialty,omitempty" json:"specialty,omitempty"`
	CreatedAt     time.Time     `bson:"createdAt" json:"createdAt"`
	UpdatedAt     time.Time     `bson:"updatedAt" json:"updatedAt"`
}

// Eligible reports whether a therapist account can receive bookings.
func (u *User) Eligible() bool {
	return u.Role == RoleTherapist && u.Status == AccountApproved && u.IsActive
}

// PublicUser is the shape returned to other users (no credentials, no license data).
type PublicUser struct {
	ID        string `json:"id"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	Role      Role   `json:"role"`
	RoleID    string `json:"roleId,omitempty"`
	Specialty string `json:"specialty,omitempty"`
}

func (u *User) Public() PublicUser {
	return PublicUser{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		Role:      u.Role,
		RoleID:    u.RoleID,
		Specialty: u.Specialty,
	}
}

// RegisterRequest is the signup payload.
type RegisterRequest struct {
	Username      string `json:"username" binding:"required"`
	Email         string `json:"email" binding:"required,email"`
	Password      string `json:"password" binding:"required,min=6"`
	Role          string `json:"role" binding:"required"`
	LicenseNumber string `json:"licenseNumber"`
	Specialty     string `json:"specialty"`
}

// LoginRequest is the login payload.
type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
	Role     string `json:"role"`
}

// AuthResponse is returned after a successful register or login.
type AuthResponse struct {
	Token string     `json:"token"`
	User  PublicUser `json:"user"`
}
