package services

import (
	"context"

	"github.com/ecolemusique/backoffice/internal/models"
	pgrepo "github.com/ecolemusique/backoffice/internal/repositories/postgres"
	"github.com/ecolemusique/backoffice/internal/utils"
)

const msgMissingUserID = "User ID manquant"

// AssociationService reads and replaces a user's instrument and orchestra sets.
// Ids are stored as given, duplicates included.
type AssociationService interface {
	Instruments(ctx context.Context, userID string) ([]models.InstrumentRef, error)
	Orchestras(ctx context.Context, userID string) ([]models.OrchestraRef, error)
	SetInstruments(ctx context.Context, actorID, userID string, instrumentIDs []string) error
	SetOrchestras(ctx context.Context, actorID, userID string, orchestraIDs []string) error
}

type associationService struct {
	assoc pgrepo.AssociationRepository
	audit AuditService
}

func NewAssociationService(assoc pgrepo.AssociationRepository, audit AuditService) AssociationService {
	if audit == nil {
		audit = NopAudit{}
	}
	return &associationService{assoc: assoc, audit: audit}
}

func (s *associationService) Instruments(ctx context.Context, userID string) ([]models.InstrumentRef, error) {
	const op = "AssociationService.Instruments"

	if userID == "" {
		return nil, utils.Invalid(op, msgMissingUserID)
	}
	out, err := s.assoc.ListInstruments(ctx, userID)
	if err != nil {
		return nil, storeError(op, "failed to list user instruments", err)
	}
	return out, nil
}

func (s *associationService) Orchestras(ctx context.Context, userID string) ([]models.OrchestraRef, error) {
	const op = "AssociationService.Orchestras"

	if userID == "" {
		return nil, utils.Invalid(op, msgMissingUserID)
	}
	out, err := s.assoc.ListOrchestras(ctx, userID)
	if err != nil {
		return nil, storeError(op, "failed to list user orchestras", err)
	}
	return out, nil
}

func (s *associationService) SetInstruments(ctx context.Context, actorID, userID string, instrumentIDs []string) error {
	const op = "AssociationService.SetInstruments"

	if userID == "" {
		return utils.Invalid(op, msgMissingUserID)
	}
	if err := s.assoc.ReplaceInstruments(ctx, userID, instrumentIDs); err != nil {
		return storeError(op, "failed to replace user instruments", err)
	}
	s.audit.Record(ctx, actorID, "user.instruments.replace", "user", userID, map[string]any{"instrument_ids": instrumentIDs})
	return nil
}

func (s *associationService) SetOrchestras(ctx context.Context, actorID, userID string, orchestraIDs []string) error {
	const op = "AssociationService.SetOrchestras"

	if userID == "" {
		return utils.Invalid(op, msgMissingUserID)
	}
	if err := s.assoc.ReplaceOrchestras(ctx, userID, orchestraIDs); err != nil {
		return storeError(op, "failed to replace user orchestras", err)
	}
	s.audit.Record(ctx, actorID, "user.orchestras.replace", "user", userID, map[string]any{"orchestra_ids": orchestraIDs})
	return nil
}
