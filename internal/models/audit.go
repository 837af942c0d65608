package models

import (
	"time"

	"gorm.io/datatypes"
)

// AuditAction labels the kind of mutation recorded in the audit trail.
type AuditAction string

// Audit actions. VIEW is part of the taxonomy but no code path records it.
const (
	AuditCreate AuditAction = "CREATE"
	AuditUpdate AuditAction = "UPDATE"
	AuditDelete AuditAction = "DELETE"
	AuditView   AuditAction = "VIEW"
)

// AuditEntry is an immutable record of a content mutation. Entries are only
// ever appended; no API path updates or deletes them.
type AuditEntry struct {
	ID         uint              `gorm:"primaryKey" json:"id"`
	ActorID    *uint             `gorm:"index:idx_audit_actor_time" json:"actor_id,omitempty"`
	Actor      *User             `gorm:"foreignKey:ActorID;constraint:OnDelete:SET NULL" json:"actor,omitempty"`
	EntityType string            `gorm:"size:64;not null;index:idx_audit_entity" json:"entity_type"`
	EntityID   string            `gorm:"size:64;not null;index:idx_audit_entity" json:"entity_id"`
	Action     AuditAction       `gorm:"size:10;not null" json:"action"`
	Details    datatypes.JSONMap `gorm:"type:json" json:"details"`
	SourceIP   *string           `gorm:"size:45" json:"source_ip,omitempty"`
	Timestamp  time.Time         `gorm:"autoCreateTime;index:idx_audit_actor_time" json:"timestamp"`
}
