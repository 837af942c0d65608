package service

import (
	"context"
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/bienestar-app/bienestar-api/internal/dto"
	"github.com/bienestar-app/bienestar-api/internal/repository"
)

// UserService exposes account management beyond self-service auth.
type UserService interface {
	List(ctx context.Context, req dto.UserListRequest, actor Actor) (dto.UserListResponse, error)
	Update(ctx context.Context, id uint, payload dto.UserUpdateRequest, actor Actor) (dto.UserResponse, error)
}

type userService struct {
	repo      repository.UserRepository
	validator *validator.Validate
	logger    zerolog.Logger
}

// NewUserService constructs the user service.
func NewUserService(repo repository.UserRepository, validator *validator.Validate, logger zerolog.Logger) UserService {
	return &userService{
		repo:      repo,
		validator: validator,
		logger:    logger.With().Str("component", "user_service").Logger(),
	}
}

func (s *userService) List(ctx context.Context, req dto.UserListRequest, actor Actor) (dto.UserListResponse, error) {
	if !actor.IsPrivileged() {
		return dto.UserListResponse{}, ErrForbidden
	}

	filter := repository.UserFilter{
		Page:     normalizePage(req.Page),
		PageSize: clampPageSize(req.PageSize),
		Search:   strings.TrimSpace(req.Search),
		Role:     strings.TrimSpace(req.Role),
	}

	users, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return dto.UserListResponse{}, err
	}

	responses := make([]dto.UserResponse, 0, len(users))
	for _, user := range users {
		responses = append(responses, dto.NewUserResponse(user))
	}

	pagination := dto.PaginationMeta{
		Page:       filter.Page,
		PageSize:   filter.PageSize,
		TotalItems: total,
		TotalPages: calculateTotalPages(total, filter.PageSize),
	}

	return dto.UserListResponse{Items: responses, Pagination: pagination}, nil
}

// Update applies a partial account update. Users may edit themselves;
// privileged actors may edit anyone.
func (s *userService) Update(ctx context.Context, id uint, payload dto.UserUpdateRequest, actor Actor) (dto.UserResponse, error) {
	if actor.ID != id && !actor.IsPrivileged() {
		return dto.UserResponse{}, ErrForbidden
	}

	if err := s.validator.Struct(payload); err != nil {
		return dto.UserResponse{}, err
	}

	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.UserResponse{}, ErrUserNotFound
		}
		return dto.UserResponse{}, err
	}

	if payload.FullName != nil {
		user.FullName = strings.TrimSpace(*payload.FullName)
	}
	if payload.Course != nil {
		user.Course = payload.Course
	}
	if payload.Password != nil {
		hash, hashErr := bcrypt.GenerateFromPassword([]byte(*payload.Password), bcryptCost)
		if hashErr != nil {
			return dto.UserResponse{}, hashErr
		}
		user.PasswordHash = string(hash)
	}

	if err := s.repo.Update(ctx, &user); err != nil {
		return dto.UserResponse{}, err
	}

	return dto.NewUserResponse(user), nil
}
