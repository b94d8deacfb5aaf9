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

// CommandResult is the body of a successful manage-* call. Data is the
// written row and is absent for deletes.
type CommandResult struct {
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

type InstrumentService interface {
	List(ctx context.Context) ([]models.Instrument, error)
	Execute(ctx context.Context, actorID string, cmd InstrumentCommand) (*CommandResult, error)
}

type instrumentService struct {
	instruments pgrepo.InstrumentRepository
	audit       AuditService
	cache       ListCache
}

func NewInstrumentService(instruments pgrepo.InstrumentRepository, audit AuditService, lc ListCache) InstrumentService {
	if audit == nil {
		audit = NopAudit{}
	}
	return &instrumentService{instruments: instruments, audit: audit, cache: lc}
}

func (s *instrumentService) List(ctx context.Context) ([]models.Instrument, error) {
	const op = "InstrumentService.List"

	out := []models.Instrument{}
	if s.cache.get(ctx, cache.KeyInstruments, &out) {
		return out, nil
	}
	rows, err := s.instruments.List(ctx)
	if err != nil {
		return nil, storeError(op, "failed to list instruments", err)
	}
	if rows != nil {
		out = rows
	}
	s.cache.set(ctx, cache.KeyInstruments, out)
	return out, nil
}

func (s *instrumentService) Execute(ctx context.Context, actorID string, cmd InstrumentCommand) (*CommandResult, error) {
	const op = "InstrumentService.Execute"

	var (
		res *CommandResult
		err error
	)
	switch c := cmd.(type) {
	case CreateInstrument:
		res, err = s.create(ctx, actorID, c)
	case UpdateInstrument:
		res, err = s.update(ctx, actorID, c)
	case DeleteInstrument:
		res, err = s.delete(ctx, actorID, c)
	default:
		return nil, utils.E(utils.CodeInvalidArgument, op, msgUnsupportedAction, fmt.Errorf("unknown command %T", cmd))
	}
	if err != nil {
		return nil, err
	}
	s.cache.drop(ctx, cache.KeyInstruments)
	return res, nil
}

func (s *instrumentService) create(ctx context.Context, actorID string, c CreateInstrument) (*CommandResult, error) {
	const op = "InstrumentService.Create"

	in := &models.Instrument{ID: uuid.NewString(), Name: c.Name}
	if err := s.instruments.Create(ctx, in); err != nil {
		return nil, storeError(op, "failed to create instrument", err)
	}
	s.audit.Record(ctx, actorID, "instrument.create", "instrument", in.ID, map[string]any{"name": in.Name})
	return &CommandResult{Message: "Instrument créé avec succès", Data: in}, nil
}

func (s *instrumentService) update(ctx context.Context, actorID string, c UpdateInstrument) (*CommandResult, error) {
	const op = "InstrumentService.Update"

	in, err := s.instruments.Rename(ctx, c.ID, c.Name)
	if err != nil {
		if errors.Is(err, utils.ErrNotFound) {
			return nil, utils.E(utils.CodeNotFound, op, "Instrument introuvable", err)
		}
		return nil, storeError(op, "failed to update instrument", err)
	}
	s.audit.Record(ctx, actorID, "instrument.update", "instrument", in.ID, map[string]any{"name": in.Name})
	return &CommandResult{Message: "Instrument mis à jour avec succès", Data: in}, nil
}

func (s *instrumentService) delete(ctx context.Context, actorID string, c DeleteInstrument) (*CommandResult, error) {
	const op = "InstrumentService.Delete"

	if err := s.instruments.Delete(ctx, c.ID); err != nil {
		if errors.Is(err, utils.ErrNotFound) {
			return nil, utils.E(utils.CodeNotFound, op, "Instrument introuvable", err)
		}
		return nil, storeError(op, "failed to delete instrument", err)
	}
	s.audit.Record(ctx, actorID, "instrument.delete", "instrument", c.ID, nil)
	return &CommandResult{Message: "Instrument supprimé avec succès"}, nil
}
