package models

import "time"

// AnnouncementKind labels the purpose of an announcement.
type AnnouncementKind string

// Supported announcement kinds.
const (
	AnnouncementGeneral   AnnouncementKind = "general"
	AnnouncementVideoCall AnnouncementKind = "video_call"
	AnnouncementSurvey    AnnouncementKind = "survey"
	AnnouncementResource  AnnouncementKind = "resource"
)

// Announcement represents a broadcast message published by privileged users.
// Visibility to non-privileged users is bounded by the optional
// [PublishAt, ExpireAt] window.
type Announcement struct {
	ID            uint             `gorm:"primaryKey" json:"id"`
	Title         string           `gorm:"size:200;not null" json:"title"`
	Body          string           `gorm:"type:text;not null" json:"body"`
	Kind          AnnouncementKind `gorm:"size:20;not null;default:general" json:"kind"`
	VideoCallLink *string          `gorm:"size:512" json:"video_call_link,omitempty"`
	SurveyLink    *string          `gorm:"size:512" json:"survey_link,omitempty"`
	ResourceLink  *string          `gorm:"size:512" json:"resource_link,omitempty"`
	CreatedByID   *uint            `gorm:"index" json:"created_by,omitempty"`
	CreatedBy     *User            `gorm:"foreignKey:CreatedByID;constraint:OnDelete:SET NULL" json:"created_by_info,omitempty"`
	CreatedAt     time.Time        `gorm:"index" json:"created_at"`
	UpdatedAt     time.Time        `json:"updated_at"`
	PublishAt     *time.Time       `gorm:"index" json:"publish_at,omitempty"`
	ExpireAt      *time.Time       `gorm:"index" json:"expire_at,omitempty"`
	Active        bool             `gorm:"not null" json:"active"`
	ViewCount     int              `gorm:"not null;default:0" json:"view_count"`
}

// IsCurrentlyActive reports whether the announcement is inside its publication
// window at the given instant. A nil bound leaves that side open.
func (a Announcement) IsCurrentlyActive(now time.Time) bool {
	if !a.Active {
		return false
	}
	if a.PublishAt != nil && now.Before(*a.PublishAt) {
		return false
	}
	if a.ExpireAt != nil && now.After(*a.ExpireAt) {
		return false
	}
	return true
}
