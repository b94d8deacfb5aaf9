package postgres

import (
	"context"

	"github.com/ecolemusique/backoffice/internal/models"
	"github.com/ecolemusique/backoffice/internal/utils"
	"gorm.io/gorm"
)

type OrchestraRepository interface {
	List(ctx context.Context) ([]models.Orchestra, error)
	Create(ctx context.Context, o *models.Orchestra) error
	Update(ctx context.Context, id, name string, description *string) (*models.Orchestra, error)
	Delete(ctx context.Context, id string) error
}

type orchestraRepo struct {
	db *gorm.DB
}

func NewOrchestraRepo(db *gorm.DB) OrchestraRepository {
	return &orchestraRepo{db: db}
}

func (r *orchestraRepo) List(ctx context.Context) ([]models.Orchestra, error) {
	var rows []models.Orchestra
	err := r.db.WithContext(ctx).Order("name ASC").Find(&rows).Error
	return rows, translate(err)
}

func (r *orchestraRepo) Create(ctx context.Context, o *models.Orchestra) error {
	return translate(r.db.WithContext(ctx).Create(o).Error)
}

// Update renames the orchestra. A nil description leaves the stored one untouched.
func (r *orchestraRepo) Update(ctx context.Context, id, name string, description *string) (*models.Orchestra, error) {
	fields := map[string]any{"name": name}
	if description != nil {
		fields["description"] = *description
	}
	res := r.db.WithContext(ctx).
		Model(&models.Orchestra{}).
		Where("id = ?", id).
		Updates(fields)
	if res.Error != nil {
		return nil, translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, utils.ErrNotFound
	}

	var row models.Orchestra
	if err := r.db.WithContext(ctx).Where("id = ?", id).Take(&row).Error; err != nil {
		return nil, translate(err)
	}
	return &row, nil
}

func (r *orchestraRepo) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Orchestra{})
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return utils.ErrNotFound
	}
	return nil
}
