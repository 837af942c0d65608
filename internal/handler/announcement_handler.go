package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/bienestar-app/bienestar-api/internal/dto"
	"github.com/bienestar-app/bienestar-api/internal/service"
	"github.com/bienestar-app/bienestar-api/internal/utils"
)

// AnnouncementHandler manages announcement routes.
type AnnouncementHandler struct {
	service service.AnnouncementService
	logger  zerolog.Logger
}

// NewAnnouncementHandler constructs the handler.
func NewAnnouncementHandler(service service.AnnouncementService, logger zerolog.Logger) *AnnouncementHandler {
	return &AnnouncementHandler{
		service: service,
		logger:  logger.With().Str("component", "announcement_handler").Logger(),
	}
}

// Register attaches routes. The static /active route must precede /:id.
func (h *AnnouncementHandler) Register(router fiber.Router) {
	router.Get("", h.list)
	router.Get("/active", h.listActive)
	router.Get("/:id", h.get)
	router.Post("", h.create)
	router.Patch("/:id", h.update)
	router.Delete("/:id", h.delete)
	router.Post("/:id/view", h.registerView)
}

func (h *AnnouncementHandler) list(c *fiber.Ctx) error {
	req, err := parseListRequest(c)
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	result, err := h.service.List(c.Context(), req, actorFromContext(c))
	if err != nil {
		requestLogger(h.logger, c).Error().Err(err).Msg("failed to list announcements")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to list announcements")
	}

	meta := fiber.Map{"pagination": result.Pagination}
	return utils.OK(c, result.Items, "announcements retrieved", meta)
}

func (h *AnnouncementHandler) listActive(c *fiber.Ctx) error {
	req, err := parseListRequest(c)
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	result, err := h.service.ListActive(c.Context(), req)
	if err != nil {
		requestLogger(h.logger, c).Error().Err(err).Msg("failed to list active announcements")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to list active announcements")
	}

	meta := fiber.Map{"pagination": result.Pagination, "cache_hit": result.CacheHit}
	return utils.OK(c, result.Items, "active announcements retrieved", meta)
}

func (h *AnnouncementHandler) get(c *fiber.Ctx) error {
	id, err := parseIDParam(c)
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid id")
	}

	announcement, err := h.service.Get(c.Context(), id, actorFromContext(c))
	if err != nil {
		if errors.Is(err, service.ErrAnnouncementNotFound) {
			return utils.SendError(c, fiber.StatusNotFound, "announcement not found")
		}
		requestLogger(h.logger, c).Error().Err(err).Msg("failed to fetch announcement")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to fetch announcement")
	}

	return utils.SendSuccess(c, "announcement retrieved", announcement)
}

func (h *AnnouncementHandler) create(c *fiber.Ctx) error {
	var payload dto.AnnouncementRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	announcement, err := h.service.Create(c.Context(), payload, actorFromContext(c))
	if err != nil {
		if isValidationError(err) || errors.Is(err, service.ErrInvalidSchedule) {
			return sendValidationError(c, err)
		}
		if errors.Is(err, service.ErrForbidden) {
			return utils.SendError(c, fiber.StatusForbidden, "insufficient permissions")
		}
		requestLogger(h.logger, c).Error().Err(err).Msg("failed to create announcement")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to create announcement")
	}

	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "announcement created", announcement)
}

func (h *AnnouncementHandler) update(c *fiber.Ctx) error {
	id, err := parseIDParam(c)
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid id")
	}

	var payload dto.AnnouncementUpdateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	announcement, err := h.service.Update(c.Context(), id, payload, actorFromContext(c))
	if err != nil {
		if isValidationError(err) || errors.Is(err, service.ErrInvalidSchedule) {
			return sendValidationError(c, err)
		}
		if errors.Is(err, service.ErrForbidden) {
			return utils.SendError(c, fiber.StatusForbidden, "insufficient permissions")
		}
		if errors.Is(err, service.ErrAnnouncementNotFound) {
			return utils.SendError(c, fiber.StatusNotFound, "announcement not found")
		}
		requestLogger(h.logger, c).Error().Err(err).Msg("failed to update announcement")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to update announcement")
	}

	return utils.SendSuccess(c, "announcement updated", announcement)
}

func (h *AnnouncementHandler) delete(c *fiber.Ctx) error {
	id, err := parseIDParam(c)
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid id")
	}

	if err := h.service.Delete(c.Context(), id, actorFromContext(c)); err != nil {
		if errors.Is(err, service.ErrForbidden) {
			return utils.SendError(c, fiber.StatusForbidden, "insufficient permissions")
		}
		if errors.Is(err, service.ErrAnnouncementNotFound) {
			return utils.SendError(c, fiber.StatusNotFound, "announcement not found")
		}
		requestLogger(h.logger, c).Error().Err(err).Msg("failed to delete announcement")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to delete announcement")
	}

	return utils.SendSuccess(c, "announcement deleted", nil)
}

func (h *AnnouncementHandler) registerView(c *fiber.Ctx) error {
	id, err := parseIDParam(c)
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid id")
	}

	result, err := h.service.RegisterView(c.Context(), id, actorFromContext(c))
	if err != nil {
		if errors.Is(err, service.ErrAnnouncementNotFound) {
			return utils.SendError(c, fiber.StatusNotFound, "announcement not found")
		}
		requestLogger(h.logger, c).Error().Err(err).Msg("failed to register announcement view")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to register view")
	}

	return utils.SendSuccess(c, "view registered", result)
}

func parseListRequest(c *fiber.Ctx) (dto.AnnouncementListRequest, error) {
	page, err := parseQueryInt(c, "page")
	if err != nil {
		return dto.AnnouncementListRequest{}, errors.New("invalid page")
	}
	pageSize, err := parseQueryInt(c, "pageSize")
	if err != nil {
		return dto.AnnouncementListRequest{}, errors.New("invalid page size")
	}
	return dto.AnnouncementListRequest{Page: page, PageSize: pageSize}, nil
}
