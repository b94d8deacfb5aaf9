package services

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/datatypes"

	"github.com/ecolemusique/backoffice/internal/models"
	pgrepo "github.com/ecolemusique/backoffice/internal/repositories/postgres"
)

// AuditService records admin mutations.
// Record is best-effort: failures are logged and never reach the caller.
type AuditService interface {
	Record(ctx context.Context, actorID, action, resource, resourceID string, metadata map[string]any)
}

type auditService struct {
	repo pgrepo.AuditRepository
	log  *logrus.Logger
}

func NewAuditService(repo pgrepo.AuditRepository, log *logrus.Logger) AuditService {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &auditService{repo: repo, log: log}
}

func (s *auditService) Record(ctx context.Context, actorID, action, resource, resourceID string, metadata map[string]any) {
	if s.repo == nil {
		return
	}
	entry := &models.AuditLog{
		ID:         uuid.NewString(),
		ActorID:    actorID,
		Action:     action,
		Resource:   resource,
		ResourceID: resourceID,
		CreatedAt:  time.Now().UTC(),
	}
	if len(metadata) > 0 {
		b, err := json.Marshal(metadata)
		if err == nil {
			entry.Metadata = datatypes.JSON(b)
		}
	}
	if err := s.repo.Insert(ctx, entry); err != nil {
		s.log.WithError(err).WithFields(logrus.Fields{
			"action":      action,
			"resource":    resource,
			"resource_id": resourceID,
		}).Warn("audit: failed to record event")
	}
}

// NopAudit drops every event.
type NopAudit struct{}

func (NopAudit) Record(context.Context, string, string, string, string, map[string]any) {}
