package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"gorm.io/datatypes"

	"github.com/bienestar-app/bienestar-api/internal/dto"
	"github.com/bienestar-app/bienestar-api/internal/models"
	"github.com/bienestar-app/bienestar-api/internal/repository"
)

// AuditEvent captures the details required to append an audit entry.
type AuditEvent struct {
	Actor      Actor
	EntityType string
	EntityID   uint
	Action     models.AuditAction
	Details    map[string]interface{}
}

// AuditRecorder defines behaviour for appending audit trail entries.
type AuditRecorder interface {
	Record(ctx context.Context, event AuditEvent) error
}

// AuditService exposes methods to append and query the audit trail.
type AuditService interface {
	AuditRecorder
	List(ctx context.Context, req dto.AuditListRequest, actor Actor) (dto.AuditListResponse, error)
}

type auditService struct {
	repo   repository.AuditRepository
	logger zerolog.Logger
}

// NewAuditService constructs the audit service.
func NewAuditService(repo repository.AuditRepository, logger zerolog.Logger) AuditService {
	return &auditService{
		repo:   repo,
		logger: logger.With().Str("component", "audit_service").Logger(),
	}
}

func (s *auditService) Record(ctx context.Context, event AuditEvent) error {
	if strings.TrimSpace(event.EntityType) == "" {
		return fmt.Errorf("entity type is required")
	}
	if event.Action == "" {
		return fmt.Errorf("action is required")
	}

	entry := models.AuditEntry{
		EntityType: event.EntityType,
		EntityID:   fmt.Sprintf("%d", event.EntityID),
		Action:     event.Action,
		Details:    toJSONMap(event.Details),
	}
	if event.Actor.ID > 0 {
		actorID := event.Actor.ID
		entry.ActorID = &actorID
	}
	if ip := strings.TrimSpace(event.Actor.SourceIP); ip != "" {
		entry.SourceIP = &ip
	}

	if err := s.repo.Create(ctx, &entry); err != nil {
		s.logger.Error().Err(err).
			Str("entity_type", event.EntityType).
			Str("action", string(event.Action)).
			Msg("failed to persist audit entry")
		return err
	}
	return nil
}

func (s *auditService) List(ctx context.Context, req dto.AuditListRequest, actor Actor) (dto.AuditListResponse, error) {
	if !actor.IsPrivileged() {
		return dto.AuditListResponse{}, ErrForbidden
	}

	filter := repository.AuditFilter{
		Page:       normalizePage(req.Page),
		PageSize:   clampPageSize(req.PageSize),
		Action:     strings.TrimSpace(req.Action),
		EntityType: strings.TrimSpace(req.EntityType),
	}
	if req.ActorID > 0 {
		actorID := req.ActorID
		filter.ActorID = &actorID
	}

	entries, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return dto.AuditListResponse{}, err
	}

	responses := make([]dto.AuditEntryResponse, 0, len(entries))
	for _, entry := range entries {
		responses = append(responses, dto.NewAuditEntryResponse(entry))
	}

	pagination := dto.PaginationMeta{
		Page:       filter.Page,
		PageSize:   filter.PageSize,
		TotalItems: total,
		TotalPages: calculateTotalPages(total, filter.PageSize),
	}

	return dto.AuditListResponse{Items: responses, Pagination: pagination}, nil
}

func toJSONMap(details map[string]interface{}) datatypes.JSONMap {
	if details == nil {
		return datatypes.JSONMap{}
	}
	payload := datatypes.JSONMap{}
	for key, value := range details {
		payload[key] = value
	}
	return payload
}
