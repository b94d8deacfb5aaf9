package postgres

import (
	"context"

	"github.com/ecolemusique/backoffice/internal/models"
	"github.com/ecolemusique/backoffice/internal/utils"
	"gorm.io/gorm"
)

type InstrumentRepository interface {
	List(ctx context.Context) ([]models.Instrument, error)
	Create(ctx context.Context, in *models.Instrument) error
	Rename(ctx context.Context, id, name string) (*models.Instrument, error)
	Delete(ctx context.Context, id string) error
}

type instrumentRepo struct {
	db *gorm.DB
}

func NewInstrumentRepo(db *gorm.DB) InstrumentRepository {
	return &instrumentRepo{db: db}
}

func (r *instrumentRepo) List(ctx context.Context) ([]models.Instrument, error) {
	var rows []models.Instrument
	err := r.db.WithContext(ctx).Order("name ASC").Find(&rows).Error
	return rows, translate(err)
}

func (r *instrumentRepo) Create(ctx context.Context, in *models.Instrument) error {
	return translate(r.db.WithContext(ctx).Create(in).Error)
}

func (r *instrumentRepo) Rename(ctx context.Context, id, name string) (*models.Instrument, error) {
	res := r.db.WithContext(ctx).
		Model(&models.Instrument{}).
		Where("id = ?", id).
		Update("name", name)
	if res.Error != nil {
		return nil, translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, utils.ErrNotFound
	}

	var row models.Instrument
	if err := r.db.WithContext(ctx).Where("id = ?", id).Take(&row).Error; err != nil {
		return nil, translate(err)
	}
	return &row, nil
}

func (r *instrumentRepo) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Instrument{})
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return utils.ErrNotFound
	}
	return nil
}
