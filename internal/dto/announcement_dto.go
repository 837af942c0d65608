package dto

import (
	"time"

	"github.com/bienestar-app/bienestar-api/internal/models"
)

// AnnouncementRequest captures the create payload for an announcement.
// Schedule bounds are RFC3339 strings; empty means unbounded on that side.
type AnnouncementRequest struct {
	Title         string  `json:"title" validate:"required,min=1,max=200"`
	Body          string  `json:"body" validate:"required"`
	Kind          string  `json:"kind" validate:"omitempty,oneof=general video_call survey resource"`
	VideoCallLink *string `json:"video_call_link" validate:"omitempty,url,max=512"`
	SurveyLink    *string `json:"survey_link" validate:"omitempty,url,max=512"`
	ResourceLink  *string `json:"resource_link" validate:"omitempty,url,max=512"`
	PublishAt     string  `json:"publish_at" validate:"omitempty"`
	ExpireAt      string  `json:"expire_at" validate:"omitempty"`
	Active        *bool   `json:"active"`
}

// AnnouncementUpdateRequest captures partial update payloads. Only non-nil
// fields are applied.
type AnnouncementUpdateRequest struct {
	Title         *string `json:"title" validate:"omitempty,min=1,max=200"`
	Body          *string `json:"body" validate:"omitempty,min=1"`
	Kind          *string `json:"kind" validate:"omitempty,oneof=general video_call survey resource"`
	VideoCallLink *string `json:"video_call_link" validate:"omitempty,url,max=512"`
	SurveyLink    *string `json:"survey_link" validate:"omitempty,url,max=512"`
	ResourceLink  *string `json:"resource_link" validate:"omitempty,url,max=512"`
	PublishAt     *string `json:"publish_at"`
	ExpireAt      *string `json:"expire_at"`
	Active        *bool   `json:"active"`
}

// AnnouncementResponse serializes an announcement record.
type AnnouncementResponse struct {
	ID                uint          `json:"id"`
	Title             string        `json:"title"`
	Body              string        `json:"body"`
	Kind              string        `json:"kind"`
	VideoCallLink     *string       `json:"video_call_link,omitempty"`
	SurveyLink        *string       `json:"survey_link,omitempty"`
	ResourceLink      *string       `json:"resource_link,omitempty"`
	CreatedBy         *uint         `json:"created_by,omitempty"`
	CreatedByInfo     *UserResponse `json:"created_by_info,omitempty"`
	CreatedAt         time.Time     `json:"created_at"`
	UpdatedAt         time.Time     `json:"updated_at"`
	PublishAt         *time.Time    `json:"publish_at,omitempty"`
	ExpireAt          *time.Time    `json:"expire_at,omitempty"`
	Active            bool          `json:"active"`
	ViewCount         int           `json:"view_count"`
	IsCurrentlyActive bool          `json:"is_currently_active"`
}

// AnnouncementListRequest defines filters for listing announcements.
type AnnouncementListRequest struct {
	Page     int
	PageSize int
}

// AnnouncementListResponse wraps a paginated announcement listing. CacheHit is
// set when the public active listing was served from cache.
type AnnouncementListResponse struct {
	Items      []AnnouncementResponse `json:"items"`
	Pagination PaginationMeta         `json:"pagination"`
	CacheHit   bool                   `json:"cache_hit,omitempty"`
}

// AnnouncementViewResponse returns the counter after a view registration.
type AnnouncementViewResponse struct {
	ViewCount int `json:"view_count"`
}

// NewAnnouncementResponse converts an announcement model into a DTO,
// evaluating the publication window at the given instant.
func NewAnnouncementResponse(announcement models.Announcement, now time.Time) AnnouncementResponse {
	response := AnnouncementResponse{
		ID:                announcement.ID,
		Title:             announcement.Title,
		Body:              announcement.Body,
		Kind:              string(announcement.Kind),
		VideoCallLink:     announcement.VideoCallLink,
		SurveyLink:        announcement.SurveyLink,
		ResourceLink:      announcement.ResourceLink,
		CreatedBy:         announcement.CreatedByID,
		CreatedAt:         announcement.CreatedAt,
		UpdatedAt:         announcement.UpdatedAt,
		PublishAt:         announcement.PublishAt,
		ExpireAt:          announcement.ExpireAt,
		Active:            announcement.Active,
		ViewCount:         announcement.ViewCount,
		IsCurrentlyActive: announcement.IsCurrentlyActive(now),
	}
	if announcement.CreatedBy != nil {
		creator := NewUserResponse(*announcement.CreatedBy)
		response.CreatedByInfo = &creator
	}
	return response
}
