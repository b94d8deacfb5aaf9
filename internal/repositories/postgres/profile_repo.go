package postgres

import (
	"context"

	"github.com/ecolemusique/backoffice/internal/models"
	"github.com/ecolemusique/backoffice/internal/utils"
	"gorm.io/gorm"
)

type ProfileRepository interface {
	Create(ctx context.Context, p *models.Profile) error
	Update(ctx context.Context, p *models.Profile) error
	GetByID(ctx context.Context, id string) (*models.Profile, error)
	List(ctx context.Context) ([]models.Profile, error)
	Summary(ctx context.Context, id string) (*models.ProfileSummary, error)
	// Delete removes the profile and every association row of the user in one transaction.
	Delete(ctx context.Context, id string) error
}

type profileRepo struct {
	db *gorm.DB
}

func NewProfileRepo(db *gorm.DB) ProfileRepository {
	return &profileRepo{db: db}
}

func (r *profileRepo) Create(ctx context.Context, p *models.Profile) error {
	return translate(r.db.WithContext(ctx).Create(p).Error)
}

// Update overwrites names and role; empty values are written as is.
func (r *profileRepo) Update(ctx context.Context, p *models.Profile) error {
	res := r.db.WithContext(ctx).
		Model(&models.Profile{}).
		Where("id = ?", p.ID).
		Updates(map[string]any{
			"first_name": p.FirstName,
			"last_name":  p.LastName,
			"role":       p.Role,
		})
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return utils.ErrNotFound
	}
	return nil
}

func (r *profileRepo) GetByID(ctx context.Context, id string) (*models.Profile, error) {
	var p models.Profile
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		Take(&p).Error
	if err != nil {
		return nil, translate(err)
	}
	return &p, nil
}

func (r *profileRepo) List(ctx context.Context) ([]models.Profile, error) {
	var rows []models.Profile
	err := r.db.WithContext(ctx).
		Order("first_name ASC").
		Find(&rows).Error
	return rows, translate(err)
}

const summaryQuery = `
SELECT p.id, p.first_name, p.last_name, p.role, p.created_at,
	COALESCE((SELECT array_agg(i.name ORDER BY i.name)
		FROM user_instruments ui JOIN instruments i ON i.id = ui.instrument_id
		WHERE ui.user_id = p.id), '{}') AS instruments,
	COALESCE((SELECT array_agg(o.name ORDER BY o.name)
		FROM user_orchestras uo JOIN orchestras o ON o.id = uo.orchestra_id
		WHERE uo.user_id = p.id), '{}') AS orchestras
FROM profiles p
WHERE p.id = ?`

func (r *profileRepo) Summary(ctx context.Context, id string) (*models.ProfileSummary, error) {
	var s models.ProfileSummary
	res := r.db.WithContext(ctx).Raw(summaryQuery, id).Scan(&s)
	if res.Error != nil {
		return nil, translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, utils.ErrNotFound
	}
	return &s, nil
}

func (r *profileRepo) Delete(ctx context.Context, id string) error {
	return translate(r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", id).Delete(&models.UserInstrument{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", id).Delete(&models.UserOrchestra{}).Error; err != nil {
			return err
		}
		return tx.Where("id = ?", id).Delete(&models.Profile{}).Error
	}))
}
