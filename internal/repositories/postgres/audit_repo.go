package postgres

import (
	"context"

	"github.com/ecolemusique/backoffice/internal/models"
	"gorm.io/gorm"
)

type AuditRepository interface {
	Insert(ctx context.Context, entry *models.AuditLog) error
}

type auditRepo struct {
	db *gorm.DB
}

func NewAuditRepo(db *gorm.DB) AuditRepository {
	return &auditRepo{db: db}
}

func (r *auditRepo) Insert(ctx context.Context, entry *models.AuditLog) error {
	return translate(r.db.WithContext(ctx).Create(entry).Error)
}
