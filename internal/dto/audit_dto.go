package dto

import (
	"time"

	"github.com/bienestar-app/bienestar-api/internal/models"
)

// AuditListRequest defines filters for listing audit entries.
type AuditListRequest struct {
	Page       int
	PageSize   int
	ActorID    uint
	Action     string
	EntityType string
}

// AuditEntryResponse serializes an audit trail entry.
type AuditEntryResponse struct {
	ID         uint                   `json:"id"`
	ActorID    *uint                  `json:"actor_id,omitempty"`
	EntityType string                 `json:"entity_type"`
	EntityID   string                 `json:"entity_id"`
	Action     string                 `json:"action"`
	Details    map[string]interface{} `json:"details"`
	SourceIP   *string                `json:"source_ip,omitempty"`
	Timestamp  time.Time              `json:"timestamp"`
}

// AuditListResponse wraps a paginated audit listing.
type AuditListResponse struct {
	Items      []AuditEntryResponse `json:"items"`
	Pagination PaginationMeta       `json:"pagination"`
}

// NewAuditEntryResponse converts an audit entry model into a DTO.
func NewAuditEntryResponse(entry models.AuditEntry) AuditEntryResponse {
	details := map[string]interface{}{}
	for key, value := range entry.Details {
		details[key] = value
	}

	return AuditEntryResponse{
		ID:         entry.ID,
		ActorID:    entry.ActorID,
		EntityType: entry.EntityType,
		EntityID:   entry.EntityID,
		Action:     string(entry.Action),
		Details:    details,
		SourceIP:   entry.SourceIP,
		Timestamp:  entry.Timestamp,
	}
}
