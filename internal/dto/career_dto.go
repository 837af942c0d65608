package dto

import (
	"time"

	"github.com/bienestar-app/bienestar-api/internal/models"
)

// CareerRequest captures the create payload for a career.
type CareerRequest struct {
	Name           string  `json:"name" validate:"required,min=1,max=200"`
	Description    string  `json:"description" validate:"required"`
	Institution    string  `json:"institution" validate:"required,min=1,max=200"`
	Duration       string  `json:"duration" validate:"required,min=1,max=50"`
	Requirements   *string `json:"requirements"`
	JobOutlook     *string `json:"job_outlook"`
	InfoLink       *string `json:"info_link" validate:"omitempty,url,max=512"`
	InterestAreas  *string `json:"interest_areas" validate:"omitempty,max=500"`
	RequiredSkills *string `json:"required_skills"`
}

// CareerUpdateRequest captures partial update payloads for a career. Only
// non-nil fields are applied.
type CareerUpdateRequest struct {
	Name           *string `json:"name" validate:"omitempty,min=1,max=200"`
	Description    *string `json:"description" validate:"omitempty,min=1"`
	Institution    *string `json:"institution" validate:"omitempty,min=1,max=200"`
	Duration       *string `json:"duration" validate:"omitempty,min=1,max=50"`
	Requirements   *string `json:"requirements"`
	JobOutlook     *string `json:"job_outlook"`
	InfoLink       *string `json:"info_link" validate:"omitempty,url,max=512"`
	InterestAreas  *string `json:"interest_areas" validate:"omitempty,max=500"`
	RequiredSkills *string `json:"required_skills"`
	Active         *bool   `json:"active"`
}

// CareerResponse serializes a career record.
type CareerResponse struct {
	ID             uint          `json:"id"`
	Name           string        `json:"name"`
	Description    string        `json:"description"`
	Institution    string        `json:"institution"`
	Duration       string        `json:"duration"`
	Requirements   *string       `json:"requirements,omitempty"`
	JobOutlook     *string       `json:"job_outlook,omitempty"`
	InfoLink       *string       `json:"info_link,omitempty"`
	InterestAreas  *string       `json:"interest_areas,omitempty"`
	RequiredSkills *string       `json:"required_skills,omitempty"`
	CreatedBy      *uint         `json:"created_by,omitempty"`
	CreatedByInfo  *UserResponse `json:"created_by_info,omitempty"`
	CreatedAt      time.Time     `json:"created_at"`
	UpdatedAt      time.Time     `json:"updated_at"`
	Active         bool          `json:"active"`
}

// CareerListRequest defines filters for listing careers.
type CareerListRequest struct {
	Page     int
	PageSize int
	Search   string
}

// CareerListResponse wraps a paginated career listing.
type CareerListResponse struct {
	Items      []CareerResponse `json:"items"`
	Pagination PaginationMeta   `json:"pagination"`
}

// NewCareerResponse converts a career model into a DTO.
func NewCareerResponse(career models.Career) CareerResponse {
	response := CareerResponse{
		ID:             career.ID,
		Name:           career.Name,
		Description:    career.Description,
		Institution:    career.Institution,
		Duration:       career.Duration,
		Requirements:   career.Requirements,
		JobOutlook:     career.JobOutlook,
		InfoLink:       career.InfoLink,
		InterestAreas:  career.InterestAreas,
		RequiredSkills: career.RequiredSkills,
		CreatedBy:      career.CreatedByID,
		CreatedAt:      career.CreatedAt,
		UpdatedAt:      career.UpdatedAt,
		Active:         career.Active,
	}
	if career.CreatedBy != nil {
		creator := NewUserResponse(*career.CreatedBy)
		response.CreatedByInfo = &creator
	}
	return response
}
