package domain

import "time"

// Role is derived from the staff/superuser flags, never stored.
type Role string

const (
	RoleClient Role = "CLIENT"
	RoleStaff  Role = "STAFF"
	RoleAdmin  Role = "ADMIN"
)

type User struct {
	ID           int32     `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	IsActive     bool      `json:"is_active"`
	IsStaff      bool      `json:"is_staff"`
	IsSuperuser  bool      `json:"is_superuser"`
	AvatarURL    string    `json:"avatar_url,omitempty"`
	Tags         []Tag     `json:"tags,omitempty"` // Populated when needed
	CreatedOn    time.Time `json:"created_on"`
}

func (u *User) Role() Role {
	switch {
	case u.IsSuperuser:
		return RoleAdmin
	case u.IsStaff:
		return RoleStaff
	default:
		return RoleClient
	}
}

// ClientProfile holds the identity data a user must register before
// submitting rental requests. One per user.
type ClientProfile struct {
	ID            int32     `json:"id"`
	UserID        int32     `json:"user_id"`
	LicenseNumber string    `json:"license_number"`
	Phone         string    `json:"phone"`
	Address       string    `json:"address"`
	CreatedOn     time.Time `json:"created_on"`
	UpdatedOn     time.Time `json:"updated_on"`
}
