package postgres

import (
	"context"

	"github.com/ecolemusique/backoffice/internal/models"
	"gorm.io/gorm"
)

// AssociationRepository stores the user↔instrument and user↔orchestra sets.
// Replace* swaps a user's whole set inside one transaction, so readers never
// observe the intermediate empty state.
type AssociationRepository interface {
	ReplaceInstruments(ctx context.Context, userID string, instrumentIDs []string) error
	ReplaceOrchestras(ctx context.Context, userID string, orchestraIDs []string) error
	ListInstruments(ctx context.Context, userID string) ([]models.InstrumentRef, error)
	ListOrchestras(ctx context.Context, userID string) ([]models.OrchestraRef, error)
}

type associationRepo struct {
	db *gorm.DB
}

func NewAssociationRepo(db *gorm.DB) AssociationRepository {
	return &associationRepo{db: db}
}

func (r *associationRepo) ReplaceInstruments(ctx context.Context, userID string, instrumentIDs []string) error {
	return translate(r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", userID).Delete(&models.UserInstrument{}).Error; err != nil {
			return err
		}
		if len(instrumentIDs) == 0 {
			return nil
		}
		rows := make([]models.UserInstrument, 0, len(instrumentIDs))
		for _, id := range instrumentIDs {
			rows = append(rows, models.UserInstrument{UserID: userID, InstrumentID: id})
		}
		return tx.Create(&rows).Error
	}))
}

func (r *associationRepo) ReplaceOrchestras(ctx context.Context, userID string, orchestraIDs []string) error {
	return translate(r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", userID).Delete(&models.UserOrchestra{}).Error; err != nil {
			return err
		}
		if len(orchestraIDs) == 0 {
			return nil
		}
		rows := make([]models.UserOrchestra, 0, len(orchestraIDs))
		for _, id := range orchestraIDs {
			rows = append(rows, models.UserOrchestra{UserID: userID, OrchestraID: id})
		}
		return tx.Create(&rows).Error
	}))
}

func (r *associationRepo) ListInstruments(ctx context.Context, userID string) ([]models.InstrumentRef, error) {
	out := []models.InstrumentRef{}
	err := r.db.WithContext(ctx).
		Table("user_instruments AS ui").
		Select("i.id, i.name").
		Joins("JOIN instruments i ON i.id = ui.instrument_id").
		Where("ui.user_id = ?", userID).
		Order("i.name ASC").
		Scan(&out).Error
	return out, translate(err)
}

func (r *associationRepo) ListOrchestras(ctx context.Context, userID string) ([]models.OrchestraRef, error) {
	out := []models.OrchestraRef{}
	err := r.db.WithContext(ctx).
		Table("user_orchestras AS uo").
		Select("o.id, o.name, o.description").
		Joins("JOIN orchestras o ON o.id = uo.orchestra_id").
		Where("uo.user_id = ?", userID).
		Order("o.name ASC").
		Scan(&out).Error
	return out, translate(err)
}
