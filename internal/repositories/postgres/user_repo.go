package postgres

import (
	"context"

	"github.com/ecolemusique/backoffice/internal/models"
	"gorm.io/gorm"
)

// UserRepository answers the questions the auth layer asks about a caller.
type UserRepository interface {
	RoleOf(ctx context.Context, userID string) (models.Role, error)
}

type userRepo struct {
	db *gorm.DB
}

func NewUserRepo(db *gorm.DB) UserRepository {
	return &userRepo{db: db}
}

func (r *userRepo) RoleOf(ctx context.Context, userID string) (models.Role, error) {
	var p models.Profile
	err := r.db.WithContext(ctx).
		Select("role").
		Where("id = ?", userID).
		Take(&p).Error
	if err != nil {
		return "", translate(err)
	}
	return p.Role, nil
}
