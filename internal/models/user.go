package models

import "time"

// Role identifies the kind of account a user holds.
type Role string

// Supported account roles.
const (
	RoleTeacher  Role = "teacher"
	RoleStudent  Role = "student"
	RoleGuardian Role = "guardian"
)

// Valid reports whether the role is one of the supported values.
func (r Role) Valid() bool {
	switch r {
	case RoleTeacher, RoleStudent, RoleGuardian:
		return true
	}
	return false
}

// User represents an account that can authenticate against the API.
type User struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Email        string    `gorm:"size:160;uniqueIndex;not null" json:"email"`
	FullName     string    `gorm:"size:200;not null" json:"full_name"`
	Role         Role      `gorm:"size:20;not null;default:student" json:"role"`
	PasswordHash string    `gorm:"size:128;not null" json:"-"`
	Active       bool      `gorm:"not null" json:"active"`
	IsStaff      bool      `gorm:"not null;default:false" json:"is_staff"`
	Course       *string   `gorm:"size:50" json:"course,omitempty"`
	NationalID   *string   `gorm:"size:12;uniqueIndex" json:"national_id,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// IsPrivileged reports whether the user may mutate content. Teachers and
// staff-flagged accounts are the only writers in the system.
func (u User) IsPrivileged() bool {
	return u.Role == RoleTeacher || u.IsStaff
}
