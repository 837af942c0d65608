package service

import (
	"errors"

	"github.com/bienestar-app/bienestar-api/internal/models"
)

// ErrForbidden indicates the actor is authenticated but lacks the privilege
// required for a mutation.
var ErrForbidden = errors.New("insufficient permissions")

// Actor is the resolved identity performing a request, extracted from the
// bearer token by the transport layer.
type Actor struct {
	ID       uint
	Role     models.Role
	IsStaff  bool
	SourceIP string
}

// IsPrivileged reports whether the actor may mutate content. Mirrors
// models.User.IsPrivileged as a pure function of (role, is_staff).
func (a Actor) IsPrivileged() bool {
	return a.Role == models.RoleTeacher || a.IsStaff
}
