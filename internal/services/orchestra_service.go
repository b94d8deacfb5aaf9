package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/ecolemusique/backoffice/internal/cache"
	"github.com/ecolemusique/backoffice/internal/models"
	pgrepo "github.com/ecolemusique/backoffice/internal/repositories/postgres"
	"github.com/ecolemusique/backoffice/internal/utils"
)

type OrchestraService interface {
	List(ctx context.Context) ([]models.Orchestra, error)
	Execute(ctx context.Context, actorID string, cmd OrchestraCommand) (*CommandResult, error)
}

type orchestraService struct {
	orchestras pgrepo.OrchestraRepository
	audit      AuditService
	cache      ListCache
}

func NewOrchestraService(orchestras pgrepo.OrchestraRepository, audit AuditService, lc ListCache) OrchestraService {
	if audit == nil {
		audit = NopAudit{}
	}
	return &orchestraService{orchestras: orchestras, audit: audit, cache: lc}
}

func (s *orchestraService) List(ctx context.Context) ([]models.Orchestra, error) {
	const op = "OrchestraService.List"

	out := []models.Orchestra{}
	if s.cache.get(ctx, cache.KeyOrchestras, &out) {
		return out, nil
	}
	rows, err := s.orchestras.List(ctx)
	if err != nil {
		return nil, storeError(op, "failed to list orchestras", err)
	}
	if rows != nil {
		out = rows
	}
	s.cache.set(ctx, cache.KeyOrchestras, out)
	return out, nil
}

func (s *orchestraService) Execute(ctx context.Context, actorID string, cmd OrchestraCommand) (*CommandResult, error) {
	const op = "OrchestraService.Execute"

	var (
		res *CommandResult
		err error
	)
	switch c := cmd.(type) {
	case CreateOrchestra:
		res, err = s.create(ctx, actorID, c)
	case UpdateOrchestra:
		res, err = s.update(ctx, actorID, c)
	case DeleteOrchestra:
		res, err = s.delete(ctx, actorID, c)
	default:
		return nil, utils.E(utils.CodeInvalidArgument, op, msgUnsupportedAction, fmt.Errorf("unknown command %T", cmd))
	}
	if err != nil {
		return nil, err
	}
	s.cache.drop(ctx, cache.KeyOrchestras)
	return res, nil
}

func (s *orchestraService) create(ctx context.Context, actorID string, c CreateOrchestra) (*CommandResult, error) {
	const op = "OrchestraService.Create"

	o := &models.Orchestra{ID: uuid.NewString(), Name: c.Name, Description: c.Description}
	if err := s.orchestras.Create(ctx, o); err != nil {
		return nil, storeError(op, "failed to create orchestra", err)
	}
	s.audit.Record(ctx, actorID, "orchestra.create", "orchestra", o.ID, map[string]any{"name": o.Name})
	return &CommandResult{Message: "Orchestre créé avec succès", Data: o}, nil
}

func (s *orchestraService) update(ctx context.Context, actorID string, c UpdateOrchestra) (*CommandResult, error) {
	const op = "OrchestraService.Update"

	o, err := s.orchestras.Update(ctx, c.ID, c.Name, c.Description)
	if err != nil {
		if errors.Is(err, utils.ErrNotFound) {
			return nil, utils.E(utils.CodeNotFound, op, "Orchestre introuvable", err)
		}
		return nil, storeError(op, "failed to update orchestra", err)
	}
	s.audit.Record(ctx, actorID, "orchestra.update", "orchestra", o.ID, map[string]any{"name": o.Name})
	return &CommandResult{Message: "Orchestre mis à jour avec succès", Data: o}, nil
}

func (s *orchestraService) delete(ctx context.Context, actorID string, c DeleteOrchestra) (*CommandResult, error) {
	const op = "OrchestraService.Delete"

	if err := s.orchestras.Delete(ctx, c.ID); err != nil {
		if errors.Is(err, utils.ErrNotFound) {
			return nil, utils.E(utils.CodeNotFound, op, "Orchestre introuvable", err)
		}
		return nil, storeError(op, "failed to delete orchestra", err)
	}
	s.audit.Record(ctx, actorID, "orchestra.delete", "orchestra", c.ID, nil)
	return &CommandResult{Message: "Orchestre supprimé avec succès"}, nil
}
