package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/bienestar-app/bienestar-api/internal/dto"
	"github.com/bienestar-app/bienestar-api/internal/service"
	"github.com/bienestar-app/bienestar-api/internal/utils"
)

// AuthHandler manages registration, login and profile routes.
type AuthHandler struct {
	service service.AuthService
	logger  zerolog.Logger
}

// NewAuthHandler constructs the handler.
func NewAuthHandler(service service.AuthService, logger zerolog.Logger) *AuthHandler {
	return &AuthHandler{
		service: service,
		logger:  logger.With().Str("component", "auth_handler").Logger(),
	}
}

// Register attaches the public routes. The profile route is registered
// separately behind the JWT guard.
func (h *AuthHandler) Register(router fiber.Router) {
	router.Post("/register", h.register)
	router.Post("/login", h.login)
}

// RegisterProtected attaches routes that require an authenticated caller.
func (h *AuthHandler) RegisterProtected(router fiber.Router) {
	router.Get("/profile", h.profile)
}

func (h *AuthHandler) register(c *fiber.Ctx) error {
	var payload dto.RegisterRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	user, err := h.service.Register(c.Context(), payload)
	if err != nil {
		if isValidationError(err) {
			return sendValidationError(c, err)
		}
		if errors.Is(err, service.ErrEmailTaken) {
			return utils.SendError(c, fiber.StatusConflict, "email already registered")
		}
		if errors.Is(err, service.ErrNationalIDTaken) {
			return utils.SendError(c, fiber.StatusConflict, "national id already registered")
		}
		requestLogger(h.logger, c).Error().Err(err).Msg("failed to register user")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to register user")
	}

	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "user registered", user)
}

func (h *AuthHandler) login(c *fiber.Ctx) error {
	var payload dto.LoginRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	session, err := h.service.Login(c.Context(), payload)
	if err != nil {
		if isValidationError(err) {
			return sendValidationError(c, err)
		}
		if errors.Is(err, service.ErrInvalidCredentials) {
			return utils.SendError(c, fiber.StatusUnauthorized, "invalid credentials")
		}
		requestLogger(h.logger, c).Error().Err(err).Msg("failed to log user in")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to log in")
	}

	return utils.SendSuccess(c, "login successful", session)
}

func (h *AuthHandler) profile(c *fiber.Ctx) error {
	userID := userIDFromContext(c)
	if userID == 0 {
		return utils.SendError(c, fiber.StatusUnauthorized, "authentication required")
	}

	user, err := h.service.Profile(c.Context(), userID)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			return utils.SendError(c, fiber.StatusNotFound, "user not found")
		}
		requestLogger(h.logger, c).Error().Err(err).Msg("failed to load profile")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to load profile")
	}

	return utils.SendSuccess(c, "profile retrieved", user)
}
