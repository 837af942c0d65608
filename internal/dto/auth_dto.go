package dto

import (
	"time"

	"github.com/bienestar-app/bienestar-api/internal/models"
)

// RegisterRequest captures the self-service signup payload. Role defaults to
// student when omitted.
type RegisterRequest struct {
	Email      string  `json:"email" validate:"required,email,max=160"`
	Password   string  `json:"password" validate:"required,min=8"`
	FullName   string  `json:"full_name" validate:"required,min=1,max=200"`
	Role       string  `json:"role" validate:"omitempty,oneof=teacher student guardian"`
	Course     *string `json:"course" validate:"omitempty,max=50"`
	NationalID *string `json:"national_id" validate:"omitempty,max=12"`
}

// LoginRequest carries the credential payload.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse returns an issued access token plus the resolved profile.
type LoginResponse struct {
	AccessToken string       `json:"access_token"`
	TokenType   string       `json:"token_type"`
	ExpiresIn   int          `json:"expires_in"`
	User        UserResponse `json:"user"`
}

// UserResponse serializes user accounts. The password hash never leaves the
// model layer.
type UserResponse struct {
	ID         uint       `json:"id"`
	Email      string     `json:"email"`
	FullName   string     `json:"full_name"`
	Role       string     `json:"role"`
	Active     bool       `json:"active"`
	IsStaff    bool       `json:"is_staff"`
	Course     *string    `json:"course,omitempty"`
	NationalID *string    `json:"national_id,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
}

// UserListRequest defines filters for listing users.
type UserListRequest struct {
	Page     int
	PageSize int
	Search   string
	Role     string
}

// UserListResponse wraps a paginated user listing.
type UserListResponse struct {
	Items      []UserResponse `json:"items"`
	Pagination PaginationMeta `json:"pagination"`
}

// UserUpdateRequest captures partial updates to an account.
type UserUpdateRequest struct {
	FullName *string `json:"full_name" validate:"omitempty,min=1,max=200"`
	Course   *string `json:"course" validate:"omitempty,max=50"`
	Password *string `json:"password" validate:"omitempty,min=8"`
}

// NewUserResponse converts a user model into a DTO.
func NewUserResponse(user models.User) UserResponse {
	return UserResponse{
		ID:         user.ID,
		Email:      user.Email,
		FullName:   user.FullName,
		Role:       string(user.Role),
		Active:     user.Active,
		IsStaff:    user.IsStaff,
		Course:     user.Course,
		NationalID: user.NationalID,
		CreatedAt:  user.CreatedAt,
		UpdatedAt:  user.UpdatedAt,
	}
}
