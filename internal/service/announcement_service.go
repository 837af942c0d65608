package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/microcosm-cc/bluemonday"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"gorm.io/gorm"

	"github.com/bienestar-app/bienestar-api/internal/dto"
	"github.com/bienestar-app/bienestar-api/internal/models"
	"github.com/bienestar-app/bienestar-api/internal/observability"
	"github.com/bienestar-app/bienestar-api/internal/repository"
)

// Announcement service errors.
var (
	ErrAnnouncementNotFound = errors.New("announcement not found")
	ErrInvalidSchedule      = errors.New("invalid schedule window")
)

// AnnouncementService exposes announcement use cases.
type AnnouncementService interface {
	List(ctx context.Context, req dto.AnnouncementListRequest, actor Actor) (dto.AnnouncementListResponse, error)
	ListActive(ctx context.Context, req dto.AnnouncementListRequest) (dto.AnnouncementListResponse, error)
	Get(ctx context.Context, id uint, actor Actor) (dto.AnnouncementResponse, error)
	Create(ctx context.Context, payload dto.AnnouncementRequest, actor Actor) (dto.AnnouncementResponse, error)
	Update(ctx context.Context, id uint, payload dto.AnnouncementUpdateRequest, actor Actor) (dto.AnnouncementResponse, error)
	Delete(ctx context.Context, id uint, actor Actor) error
	RegisterView(ctx context.Context, id uint, actor Actor) (dto.AnnouncementViewResponse, error)
}

type announcementService struct {
	repo      repository.AnnouncementRepository
	validator *validator.Validate
	audit     AuditRecorder
	cache     *redis.Client
	ttl       time.Duration
	policy    *bluemonday.Policy
	tracer    trace.Tracer
	logger    zerolog.Logger
}

// NewAnnouncementService constructs the announcement service.
func NewAnnouncementService(repo repository.AnnouncementRepository, validator *validator.Validate, audit AuditRecorder, cache *redis.Client, ttl time.Duration, logger zerolog.Logger) AnnouncementService {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	policy := bluemonday.UGCPolicy()
	policy.AllowElements("p", "strong", "em", "a", "ul", "ol", "li", "br")
	policy.AllowAttrs("href", "title", "target").OnElements("a")
	return &announcementService{
		repo:      repo,
		validator: validator,
		audit:     audit,
		cache:     cache,
		ttl:       ttl,
		policy:    policy,
		tracer:    otel.Tracer("github.com/bienestar-app/bienestar-api/internal/service/announcement"),
		logger:    logger.With().Str("component", "announcement_service").Logger(),
	}
}

func (s *announcementService) List(ctx context.Context, req dto.AnnouncementListRequest, actor Actor) (dto.AnnouncementListResponse, error) {
	now := time.Now()
	filter := repository.AnnouncementFilter{
		Page:        normalizePage(req.Page),
		PageSize:    clampPageSize(req.PageSize),
		VisibleOnly: !actor.IsPrivileged(),
		Now:         now,
	}

	items, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return dto.AnnouncementListResponse{}, err
	}

	responses := make([]dto.AnnouncementResponse, 0, len(items))
	for _, item := range items {
		responses = append(responses, dto.NewAnnouncementResponse(item, now))
	}

	pagination := dto.PaginationMeta{
		Page:       filter.Page,
		PageSize:   filter.PageSize,
		TotalItems: total,
		TotalPages: calculateTotalPages(total, filter.PageSize),
	}

	return dto.AnnouncementListResponse{Items: responses, Pagination: pagination}, nil
}

// ListActive serves the forced active-window listing used by every role. The
// result is cached and bodies are sanitized before leaving the service.
func (s *announcementService) ListActive(ctx context.Context, req dto.AnnouncementListRequest) (dto.AnnouncementListResponse, error) {
	start := time.Now()
	defer func() {
		observability.AnnouncementsLatency().Observe(time.Since(start).Seconds())
	}()

	page := normalizePage(req.Page)
	pageSize := clampPageSize(req.PageSize)

	cacheKey := ""
	if s.cache != nil {
		cacheKey = fmt.Sprintf("announcements:active:v1:%d:%d", page, pageSize)
		if cached, err := s.cache.Get(ctx, cacheKey).Result(); err == nil && cached != "" {
			var response dto.AnnouncementListResponse
			if err := json.Unmarshal([]byte(cached), &response); err == nil {
				response.CacheHit = true
				observability.AnnouncementsRequests().WithLabelValues("hit").Inc()
				return response, nil
			}
		}
	}

	now := time.Now()
	items, total, err := s.repo.List(ctx, repository.AnnouncementFilter{
		Page:       page,
		PageSize:   pageSize,
		ActiveOnly: true,
		Now:        now,
	})
	if err != nil {
		observability.AnnouncementsRequests().WithLabelValues("error").Inc()
		return dto.AnnouncementListResponse{}, err
	}

	responses := make([]dto.AnnouncementResponse, 0, len(items))
	for _, item := range items {
		response := dto.NewAnnouncementResponse(item, now)
		response.Title = strings.TrimSpace(response.Title)
		response.Body = s.policy.Sanitize(response.Body)
		responses = append(responses, response)
	}

	pagination := dto.PaginationMeta{
		Page:       page,
		PageSize:   pageSize,
		TotalItems: total,
		TotalPages: calculateTotalPages(total, pageSize),
	}
	response := dto.AnnouncementListResponse{Items: responses, Pagination: pagination}

	if cacheKey != "" && s.cache != nil {
		if payload, err := json.Marshal(response); err == nil {
			if err := s.cache.Set(ctx, cacheKey, payload, s.ttl).Err(); err != nil {
				s.logger.Warn().Err(err).Msg("failed to cache announcements")
			}
		}
	}

	observability.AnnouncementsRequests().WithLabelValues("miss").Inc()
	return response, nil
}

func (s *announcementService) Get(ctx context.Context, id uint, actor Actor) (dto.AnnouncementResponse, error) {
	announcement, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.AnnouncementResponse{}, ErrAnnouncementNotFound
		}
		return dto.AnnouncementResponse{}, err
	}

	now := time.Now()
	if !actor.IsPrivileged() && !announcement.IsCurrentlyActive(now) {
		return dto.AnnouncementResponse{}, ErrAnnouncementNotFound
	}

	return dto.NewAnnouncementResponse(announcement, now), nil
}

func (s *announcementService) Create(ctx context.Context, payload dto.AnnouncementRequest, actor Actor) (dto.AnnouncementResponse, error) {
	ctx, span := s.tracer.Start(ctx, "announcement.create")
	defer span.End()

	if !actor.IsPrivileged() {
		span.SetStatus(codes.Error, "forbidden")
		return dto.AnnouncementResponse{}, ErrForbidden
	}

	if err := s.validator.Struct(payload); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "validation failed")
		return dto.AnnouncementResponse{}, err
	}

	publishAt, err := parseScheduleBound(payload.PublishAt)
	if err != nil {
		return dto.AnnouncementResponse{}, err
	}
	expireAt, err := parseScheduleBound(payload.ExpireAt)
	if err != nil {
		return dto.AnnouncementResponse{}, err
	}
	if publishAt != nil && expireAt != nil && expireAt.Before(*publishAt) {
		return dto.AnnouncementResponse{}, fmt.Errorf("%w: expire_at precedes publish_at", ErrInvalidSchedule)
	}

	kind := models.AnnouncementKind(strings.TrimSpace(payload.Kind))
	if kind == "" {
		kind = models.AnnouncementGeneral
	}

	active := true
	if payload.Active != nil {
		active = *payload.Active
	}

	announcement := models.Announcement{
		Title:         strings.TrimSpace(payload.Title),
		Body:          strings.TrimSpace(payload.Body),
		Kind:          kind,
		VideoCallLink: payload.VideoCallLink,
		SurveyLink:    payload.SurveyLink,
		ResourceLink:  payload.ResourceLink,
		PublishAt:     publishAt,
		ExpireAt:      expireAt,
		Active:        active,
	}
	if actor.ID > 0 {
		creatorID := actor.ID
		announcement.CreatedByID = &creatorID
	}

	if err := s.repo.Create(ctx, &announcement); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "create failed")
		return dto.AnnouncementResponse{}, err
	}

	s.recordAudit(ctx, actor, models.AuditCreate, announcement.ID, map[string]interface{}{
		"title": announcement.Title,
		"kind":  string(announcement.Kind),
	})
	s.flushCache(ctx)

	span.SetAttributes(attribute.Int64("announcement.id", int64(announcement.ID)))
	return dto.NewAnnouncementResponse(announcement, time.Now()), nil
}

func (s *announcementService) Update(ctx context.Context, id uint, payload dto.AnnouncementUpdateRequest, actor Actor) (dto.AnnouncementResponse, error) {
	ctx, span := s.tracer.Start(ctx, "announcement.update")
	defer span.End()

	if !actor.IsPrivileged() {
		span.SetStatus(codes.Error, "forbidden")
		return dto.AnnouncementResponse{}, ErrForbidden
	}

	if err := s.validator.Struct(payload); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "validation failed")
		return dto.AnnouncementResponse{}, err
	}

	announcement, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.AnnouncementResponse{}, ErrAnnouncementNotFound
		}
		return dto.AnnouncementResponse{}, err
	}

	changes := map[string]interface{}{}
	if payload.Title != nil {
		announcement.Title = strings.TrimSpace(*payload.Title)
		changes["title"] = announcement.Title
	}
	if payload.Body != nil {
		announcement.Body = strings.TrimSpace(*payload.Body)
		changes["body"] = announcement.Body
	}
	if payload.Kind != nil {
		announcement.Kind = models.AnnouncementKind(*payload.Kind)
		changes["kind"] = *payload.Kind
	}
	if payload.VideoCallLink != nil {
		announcement.VideoCallLink = payload.VideoCallLink
		changes["video_call_link"] = *payload.VideoCallLink
	}
	if payload.SurveyLink != nil {
		announcement.SurveyLink = payload.SurveyLink
		changes["survey_link"] = *payload.SurveyLink
	}
	if payload.ResourceLink != nil {
		announcement.ResourceLink = payload.ResourceLink
		changes["resource_link"] = *payload.ResourceLink
	}
	if payload.PublishAt != nil {
		bound, parseErr := parseScheduleBound(*payload.PublishAt)
		if parseErr != nil {
			return dto.AnnouncementResponse{}, parseErr
		}
		announcement.PublishAt = bound
		changes["publish_at"] = *payload.PublishAt
	}
	if payload.ExpireAt != nil {
		bound, parseErr := parseScheduleBound(*payload.ExpireAt)
		if parseErr != nil {
			return dto.AnnouncementResponse{}, parseErr
		}
		announcement.ExpireAt = bound
		changes["expire_at"] = *payload.ExpireAt
	}
	if payload.Active != nil {
		announcement.Active = *payload.Active
		changes["active"] = announcement.Active
	}

	if announcement.PublishAt != nil && announcement.ExpireAt != nil && announcement.ExpireAt.Before(*announcement.PublishAt) {
		return dto.AnnouncementResponse{}, fmt.Errorf("%w: expire_at precedes publish_at", ErrInvalidSchedule)
	}

	if err := s.repo.Update(ctx, &announcement); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "update failed")
		return dto.AnnouncementResponse{}, err
	}

	s.recordAudit(ctx, actor, models.AuditUpdate, announcement.ID, map[string]interface{}{"changes": changes})
	s.flushCache(ctx)
	return dto.NewAnnouncementResponse(announcement, time.Now()), nil
}

// Delete removes the announcement row for good. The DELETE audit entry is
// appended before the row disappears; a failed append aborts the removal so
// the trail never misses a hard delete.
func (s *announcementService) Delete(ctx context.Context, id uint, actor Actor) error {
	ctx, span := s.tracer.Start(ctx, "announcement.delete")
	defer span.End()

	if !actor.IsPrivileged() {
		span.SetStatus(codes.Error, "forbidden")
		return ErrForbidden
	}

	announcement, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrAnnouncementNotFound
		}
		return err
	}

	if s.audit != nil {
		event := AuditEvent{
			Actor:      actor,
			EntityType: "Announcement",
			EntityID:   announcement.ID,
			Action:     models.AuditDelete,
			Details:    map[string]interface{}{"title": announcement.Title},
		}
		if err := s.audit.Record(ctx, event); err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, "audit append failed")
			return err
		}
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrAnnouncementNotFound
		}
		span.RecordError(err)
		span.SetStatus(codes.Error, "delete failed")
		return err
	}

	s.flushCache(ctx)
	return nil
}

// RegisterView requires no privilege; any authenticated actor counts. No
// audit entry is written for views.
func (s *announcementService) RegisterView(ctx context.Context, id uint, actor Actor) (dto.AnnouncementViewResponse, error) {
	count, err := s.repo.IncrementViews(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.AnnouncementViewResponse{}, ErrAnnouncementNotFound
		}
		return dto.AnnouncementViewResponse{}, err
	}
	return dto.AnnouncementViewResponse{ViewCount: count}, nil
}

func (s *announcementService) recordAudit(ctx context.Context, actor Actor, action models.AuditAction, id uint, details map[string]interface{}) {
	if s.audit == nil {
		return
	}
	event := AuditEvent{
		Actor:      actor,
		EntityType: "Announcement",
		EntityID:   id,
		Action:     action,
		Details:    details,
	}
	if err := s.audit.Record(ctx, event); err != nil {
		s.logger.Warn().Err(err).Uint("announcement_id", id).Msg("failed to record announcement audit entry")
	}
}

func (s *announcementService) flushCache(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.FlushDB(ctx).Err(); err != nil {
		s.logger.Warn().Err(err).Msg("failed to flush announcement cache")
	}
}

func parseScheduleBound(value string) (*time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil, nil
	}
	parsed, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSchedule, err)
	}
	return &parsed, nil
}
