package repository

import (
	"context"

	"film-vault/internal/model"

	"gorm.io/gorm"
)

// UserRepository 用户只读查询，账号由外部系统维护
type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

// GetByID 根据 ID 查询用户
func (r *UserRepository) GetByID(ctx context.Context, id int64) (*model.User, error) {
	var user model.User
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// GetRole 查询用户角色，供管理员中间件使用
func (r *UserRepository) GetRole(ctx context.Context, id int64) (string, error) {
	user, err := r.GetByID(ctx, id)
	if err != nil {
		return "", err
	}
	return user.UserRole, nil
}
