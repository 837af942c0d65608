package models

import "time"

// Career describes an academic program offered to students for vocational
// orientation. Careers are never removed through the API: deletion flips the
// Active flag instead.
type Career struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	Name           string    `gorm:"size:200;not null" json:"name"`
	Description    string    `gorm:"type:text;not null" json:"description"`
	Institution    string    `gorm:"size:200;not null" json:"institution"`
	Duration       string    `gorm:"size:50;not null" json:"duration"`
	Requirements   *string   `gorm:"type:text" json:"requirements,omitempty"`
	JobOutlook     *string   `gorm:"type:text" json:"job_outlook,omitempty"`
	InfoLink       *string   `gorm:"size:512" json:"info_link,omitempty"`
	InterestAreas  *string   `gorm:"size:500" json:"interest_areas,omitempty"`
	RequiredSkills *string   `gorm:"type:text" json:"required_skills,omitempty"`
	CreatedByID    *uint     `gorm:"index" json:"created_by,omitempty"`
	CreatedBy      *User     `gorm:"foreignKey:CreatedByID;constraint:OnDelete:SET NULL" json:"created_by_info,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
	Active         bool      `gorm:"not null" json:"active"`
}
