package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/bienestar-app/bienestar-api/internal/dto"
	"github.com/bienestar-app/bienestar-api/internal/service"
	"github.com/bienestar-app/bienestar-api/internal/utils"
)

// CareerHandler manages career catalog routes.
type CareerHandler struct {
	service service.CareerService
	logger  zerolog.Logger
}

// NewCareerHandler constructs the handler.
func NewCareerHandler(service service.CareerService, logger zerolog.Logger) *CareerHandler {
	return &CareerHandler{
		service: service,
		logger:  logger.With().Str("component", "career_handler").Logger(),
	}
}

// Register attaches routes.
func (h *CareerHandler) Register(router fiber.Router) {
	router.Get("", h.list)
	router.Get("/:id", h.get)
	router.Post("", h.create)
	router.Patch("/:id", h.update)
	router.Delete("/:id", h.delete)
}

func (h *CareerHandler) list(c *fiber.Ctx) error {
	page, err := parseQueryInt(c, "page")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid page")
	}
	pageSize, err := parseQueryInt(c, "pageSize")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid page size")
	}

	req := dto.CareerListRequest{
		Page:     page,
		PageSize: pageSize,
		Search:   c.Query("search"),
	}

	result, err := h.service.List(c.Context(), req, actorFromContext(c))
	if err != nil {
		requestLogger(h.logger, c).Error().Err(err).Msg("failed to list careers")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to list careers")
	}

	meta := fiber.Map{"pagination": result.Pagination, "filters": fiber.Map{"search": req.Search}}
	return utils.OK(c, result.Items, "careers retrieved", meta)
}

func (h *CareerHandler) get(c *fiber.Ctx) error {
	id, err := parseIDParam(c)
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid id")
	}

	career, err := h.service.Get(c.Context(), id, actorFromContext(c))
	if err != nil {
		if errors.Is(err, service.ErrCareerNotFound) {
			return utils.SendError(c, fiber.StatusNotFound, "career not found")
		}
		requestLogger(h.logger, c).Error().Err(err).Msg("failed to fetch career")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to fetch career")
	}

	return utils.SendSuccess(c, "career retrieved", career)
}

func (h *CareerHandler) create(c *fiber.Ctx) error {
	var payload dto.CareerRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	career, err := h.service.Create(c.Context(), payload, actorFromContext(c))
	if err != nil {
		if isValidationError(err) {
			return sendValidationError(c, err)
		}
		if errors.Is(err, service.ErrForbidden) {
			return utils.SendError(c, fiber.StatusForbidden, "insufficient permissions")
		}
		requestLogger(h.logger, c).Error().Err(err).Msg("failed to create career")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to create career")
	}

	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "career created", career)
}

func (h *CareerHandler) update(c *fiber.Ctx) error {
	id, err := parseIDParam(c)
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid id")
	}

	var payload dto.CareerUpdateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	career, err := h.service.Update(c.Context(), id, payload, actorFromContext(c))
	if err != nil {
		if isValidationError(err) {
			return sendValidationError(c, err)
		}
		if errors.Is(err, service.ErrForbidden) {
			return utils.SendError(c, fiber.StatusForbidden, "insufficient permissions")
		}
		if errors.Is(err, service.ErrCareerNotFound) {
			return utils.SendError(c, fiber.StatusNotFound, "career not found")
		}
		requestLogger(h.logger, c).Error().Err(err).Msg("failed to update career")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to update career")
	}

	return utils.SendSuccess(c, "career updated", career)
}

func (h *CareerHandler) delete(c *fiber.Ctx) error {
	id, err := parseIDParam(c)
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid id")
	}

	if err := h.service.Delete(c.Context(), id, actorFromContext(c)); err != nil {
		if errors.Is(err, service.ErrForbidden) {
			return utils.SendError(c, fiber.StatusForbidden, "insufficient permissions")
		}
		if errors.Is(err, service.ErrCareerNotFound) {
			return utils.SendError(c, fiber.StatusNotFound, "career not found")
		}
		requestLogger(h.logger, c).Error().Err(err).Msg("failed to delete career")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to delete career")
	}

	return utils.SendSuccess(c, "career deactivated", nil)
}
