package models

import (
	"time"

	"gorm.io/datatypes"
)

type AuditLog struct {
	ID         string         `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	ActorID    string         `gorm:"column:actor_id;type:uuid" json:"actor_id"`
	Action     string         `gorm:"column:action;type:text" json:"action"`
	Resource   string         `gorm:"column:resource;type:text" json:"resource"`
	ResourceID string         `gorm:"column:resource_id;type:text" json:"resource_id"`
	Metadata   datatypes.JSON `gorm:"column:metadata;type:jsonb" json:"metadata"`
	CreatedAt  time.Time      `gorm:"column:created_at;type:timestamptz" json:"created_at"`
}

func (AuditLog) TableName() string { return "admin_audit_logs" }
