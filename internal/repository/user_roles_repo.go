package repository

import (
	"context"

	"fluxo/internal/model"

	"gorm.io/gorm"
)

type UserRolesRepo interface {
	GetRoleNamesByUserID(ctx context.Context, userID uint64) ([]string, error)
}

type UserRolesRepoImpl struct {
	db *gorm.DB
}

func NewUserRolesRepo(db *gorm.DB) UserRolesRepo {
	return &UserRolesRepoImpl{db}
}

func (s *UserRolesRepoImpl) GetRoleNamesByUserID(ctx context.Context, userID uint64) ([]string, error) {
	var names []string
	err := s.db.WithContext(ctx).Model(&model.UserRole{}).
		Joins("JOIN roles ON roles.id = user_roles.role_id").
		Where("user_roles.user_id = ?", userID).
		Pluck("roles.name", &names).Error
	return names, err
}
