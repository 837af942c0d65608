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
	"github.com/bienestar-app/bienestar-api/internal/models"
	"github.com/bienestar-app/bienestar-api/internal/repository"
	"github.com/bienestar-app/bienestar-api/pkg/token"
)

// Auth service errors.
var (
	ErrEmailTaken         = errors.New("email already registered")
	ErrNationalIDTaken    = errors.New("national id already registered")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserNotFound       = errors.New("user not found")
)

const bcryptCost = 12

// AuthService handles self-service registration, login and profile lookups.
type AuthService interface {
	Register(ctx context.Context, payload dto.RegisterRequest) (dto.UserResponse, error)
	Login(ctx context.Context, payload dto.LoginRequest) (dto.LoginResponse, error)
	Profile(ctx context.Context, userID uint) (dto.UserResponse, error)
}

type authService struct {
	repo      repository.UserRepository
	validator *validator.Validate
	tokens    *token.Issuer
	logger    zerolog.Logger
}

// NewAuthService constructs the auth service.
func NewAuthService(repo repository.UserRepository, validator *validator.Validate, tokens *token.Issuer, logger zerolog.Logger) AuthService {
	return &authService{
		repo:      repo,
		validator: validator,
		tokens:    tokens,
		logger:    logger.With().Str("component", "auth_service").Logger(),
	}
}

// Register creates an account without prior authentication. The role defaults
// to student unless explicitly chosen.
func (s *authService) Register(ctx context.Context, payload dto.RegisterRequest) (dto.UserResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.UserResponse{}, err
	}

	email := strings.ToLower(strings.TrimSpace(payload.Email))
	if _, err := s.repo.GetByEmail(ctx, email); err == nil {
		return dto.UserResponse{}, ErrEmailTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return dto.UserResponse{}, err
	}

	role := models.Role(strings.TrimSpace(payload.Role))
	if role == "" {
		role = models.RoleStudent
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(payload.Password), bcryptCost)
	if err != nil {
		return dto.UserResponse{}, err
	}

	user := models.User{
		Email:        email,
		FullName:     strings.TrimSpace(payload.FullName),
		Role:         role,
		PasswordHash: string(hash),
		Active:       true,
		Course:       payload.Course,
		NationalID:   payload.NationalID,
	}

	if err := s.repo.Create(ctx, &user); err != nil {
		// The email pre-check races with concurrent registrations, and
		// national_id has no pre-check at all. The translated sentinel
		// carries no column, so a second email lookup tells the two
		// unique keys apart.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			if _, lookupErr := s.repo.GetByEmail(ctx, email); lookupErr == nil {
				return dto.UserResponse{}, ErrEmailTaken
			}
			return dto.UserResponse{}, ErrNationalIDTaken
		}
		s.logger.Error().Err(err).Str("email", email).Msg("failed to create user")
		return dto.UserResponse{}, err
	}

	return dto.NewUserResponse(user), nil
}

func (s *authService) Login(ctx context.Context, payload dto.LoginRequest) (dto.LoginResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.LoginResponse{}, err
	}

	email := strings.ToLower(strings.TrimSpace(payload.Email))
	user, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.LoginResponse{}, ErrInvalidCredentials
		}
		return dto.LoginResponse{}, err
	}

	if !user.Active {
		return dto.LoginResponse{}, ErrInvalidCredentials
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(payload.Password)) != nil {
		return dto.LoginResponse{}, ErrInvalidCredentials
	}

	accessToken, err := s.tokens.Issue(user)
	if err != nil {
		s.logger.Error().Err(err).Uint("user_id", user.ID).Msg("failed to issue access token")
		return dto.LoginResponse{}, err
	}

	return dto.LoginResponse{
		AccessToken: accessToken,
		TokenType:   "bearer",
		ExpiresIn:   int(s.tokens.Lifetime().Seconds()),
		User:        dto.NewUserResponse(user),
	}, nil
}

func (s *authService) Profile(ctx context.Context, userID uint) (dto.UserResponse, error) {
	user, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.UserResponse{}, ErrUserNotFound
		}
		return dto.UserResponse{}, err
	}
	return dto.NewUserResponse(user), nil
}
