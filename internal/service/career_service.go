package service

import (
	"context"
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"gorm.io/gorm"

	"github.com/bienestar-app/bienestar-api/internal/dto"
	"github.com/bienestar-app/bienestar-api/internal/models"
	"github.com/bienestar-app/bienestar-api/internal/repository"
)

// ErrCareerNotFound indicates the referenced career does not exist or is not
// visible to the requester.
var ErrCareerNotFound = errors.New("career not found")

// CareerService exposes the career catalog use cases.
type CareerService interface {
	List(ctx context.Context, req dto.CareerListRequest, actor Actor) (dto.CareerListResponse, error)
	Get(ctx context.Context, id uint, actor Actor) (dto.CareerResponse, error)
	Create(ctx context.Context, payload dto.CareerRequest, actor Actor) (dto.CareerResponse, error)
	Update(ctx context.Context, id uint, payload dto.CareerUpdateRequest, actor Actor) (dto.CareerResponse, error)
	Delete(ctx context.Context, id uint, actor Actor) error
}

type careerService struct {
	repo      repository.CareerRepository
	validator *validator.Validate
	audit     AuditRecorder
	tracer    trace.Tracer
	logger    zerolog.Logger
}

// NewCareerService constructs the career service.
func NewCareerService(repo repository.CareerRepository, validator *validator.Validate, audit AuditRecorder, logger zerolog.Logger) CareerService {
	return &careerService{
		repo:      repo,
		validator: validator,
		audit:     audit,
		tracer:    otel.Tracer("github.com/bienestar-app/bienestar-api/internal/service/career"),
		logger:    logger.With().Str("component", "career_service").Logger(),
	}
}

func (s *careerService) List(ctx context.Context, req dto.CareerListRequest, actor Actor) (dto.CareerListResponse, error) {
	filter := repository.CareerFilter{
		Page:        normalizePage(req.Page),
		PageSize:    clampPageSize(req.PageSize),
		Search:      strings.TrimSpace(req.Search),
		VisibleOnly: !actor.IsPrivileged(),
	}

	careers, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return dto.CareerListResponse{}, err
	}

	responses := make([]dto.CareerResponse, 0, len(careers))
	for _, career := range careers {
		responses = append(responses, dto.NewCareerResponse(career))
	}

	pagination := dto.PaginationMeta{
		Page:       filter.Page,
		PageSize:   filter.PageSize,
		TotalItems: total,
		TotalPages: calculateTotalPages(total, filter.PageSize),
	}

	return dto.CareerListResponse{Items: responses, Pagination: pagination}, nil
}

func (s *careerService) Get(ctx context.Context, id uint, actor Actor) (dto.CareerResponse, error) {
	career, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.CareerResponse{}, ErrCareerNotFound
		}
		return dto.CareerResponse{}, err
	}

	// Inactive rows stay fetchable for privileged requesters only.
	if !career.Active && !actor.IsPrivileged() {
		return dto.CareerResponse{}, ErrCareerNotFound
	}

	return dto.NewCareerResponse(career), nil
}

func (s *careerService) Create(ctx context.Context, payload dto.CareerRequest, actor Actor) (dto.CareerResponse, error) {
	ctx, span := s.tracer.Start(ctx, "career.create")
	defer span.End()

	if !actor.IsPrivileged() {
		span.SetStatus(codes.Error, "forbidden")
		return dto.CareerResponse{}, ErrForbidden
	}

	if err := s.validator.Struct(payload); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "validation failed")
		return dto.CareerResponse{}, err
	}

	career := models.Career{
		Name:           strings.TrimSpace(payload.Name),
		Description:    strings.TrimSpace(payload.Description),
		Institution:    strings.TrimSpace(payload.Institution),
		Duration:       strings.TrimSpace(payload.Duration),
		Requirements:   payload.Requirements,
		JobOutlook:     payload.JobOutlook,
		InfoLink:       payload.InfoLink,
		InterestAreas:  payload.InterestAreas,
		RequiredSkills: payload.RequiredSkills,
		Active:         true,
	}
	if actor.ID > 0 {
		creatorID := actor.ID
		career.CreatedByID = &creatorID
	}

	if err := s.repo.Create(ctx, &career); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "create failed")
		return dto.CareerResponse{}, err
	}

	// Career creation is intentionally not audit-logged; only updates and
	// deletes are recorded for this entity.
	span.SetAttributes(attribute.Int64("career.id", int64(career.ID)))
	return dto.NewCareerResponse(career), nil
}

func (s *careerService) Update(ctx context.Context, id uint, payload dto.CareerUpdateRequest, actor Actor) (dto.CareerResponse, error) {
	ctx, span := s.tracer.Start(ctx, "career.update")
	defer span.End()

	if !actor.IsPrivileged() {
		span.SetStatus(codes.Error, "forbidden")
		return dto.CareerResponse{}, ErrForbidden
	}

	if err := s.validator.Struct(payload); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "validation failed")
		return dto.CareerResponse{}, err
	}

	career, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.CareerResponse{}, ErrCareerNotFound
		}
		return dto.CareerResponse{}, err
	}

	changes := map[string]interface{}{}
	if payload.Name != nil {
		career.Name = strings.TrimSpace(*payload.Name)
		changes["name"] = career.Name
	}
	if payload.Description != nil {
		career.Description = strings.TrimSpace(*payload.Description)
		changes["description"] = career.Description
	}
	if payload.Institution != nil {
		career.Institution = strings.TrimSpace(*payload.Institution)
		changes["institution"] = career.Institution
	}
	if payload.Duration != nil {
		career.Duration = strings.TrimSpace(*payload.Duration)
		changes["duration"] = career.Duration
	}
	if payload.Requirements != nil {
		career.Requirements = payload.Requirements
		changes["requirements"] = *payload.Requirements
	}
	if payload.JobOutlook != nil {
		career.JobOutlook = payload.JobOutlook
		changes["job_outlook"] = *payload.JobOutlook
	}
	if payload.InfoLink != nil {
		career.InfoLink = payload.InfoLink
		changes["info_link"] = *payload.InfoLink
	}
	if payload.InterestAreas != nil {
		career.InterestAreas = payload.InterestAreas
		changes["interest_areas"] = *payload.InterestAreas
	}
	if payload.RequiredSkills != nil {
		career.RequiredSkills = payload.RequiredSkills
		changes["required_skills"] = *payload.RequiredSkills
	}
	if payload.Active != nil {
		career.Active = *payload.Active
		changes["active"] = career.Active
	}

	if err := s.repo.Update(ctx, &career); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "update failed")
		return dto.CareerResponse{}, err
	}

	s.recordAudit(ctx, actor, models.AuditUpdate, career.ID, map[string]interface{}{"changes": changes})
	return dto.NewCareerResponse(career), nil
}

// Delete marks the career inactive. The row is never physically removed
// through the API.
func (s *careerService) Delete(ctx context.Context, id uint, actor Actor) error {
	ctx, span := s.tracer.Start(ctx, "career.delete")
	defer span.End()

	if !actor.IsPrivileged() {
		span.SetStatus(codes.Error, "forbidden")
		return ErrForbidden
	}

	career, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrCareerNotFound
		}
		return err
	}

	career.Active = false
	if err := s.repo.Update(ctx, &career); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "soft delete failed")
		return err
	}

	s.recordAudit(ctx, actor, models.AuditDelete, career.ID, map[string]interface{}{"name": career.Name})
	return nil
}

func (s *careerService) recordAudit(ctx context.Context, actor Actor, action models.AuditAction, id uint, details map[string]interface{}) {
	if s.audit == nil {
		return
	}
	event := AuditEvent{
		Actor:      actor,
		EntityType: "Career",
		EntityID:   id,
		Action:     action,
		Details:    details,
	}
	if err := s.audit.Record(ctx, event); err != nil {
		s.logger.Warn().Err(err).Uint("career_id", id).Msg("failed to record career audit entry")
	}
}
