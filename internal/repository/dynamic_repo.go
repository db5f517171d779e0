package repository

import (
	"Zheye/internal/model"
	"context"

	"gorm.io/gorm"
)

type DynamicRepo interface {
	CreateDynamic(ctx context.Context, dynamic *model.Dynamic) error
	ListByUser(ctx context.Context, userID uint64, limit int) ([]*model.Dynamic, error)
}

type DynamicRepoImpl struct {
	db *gorm.DB
}

func NewDynamicRepo(db *gorm.DB) DynamicRepo {
	return &DynamicRepoImpl{db: db}
}

func (s *DynamicRepoImpl) CreateDynamic(ctx context.Context, dynamic *model.Dynamic) error {
	return s.db.WithContext(ctx).Create(dynamic).Error
}

// ListByUser 最新的动态在前
func (s *DynamicRepoImpl) ListByUser(ctx context.Context, userID uint64, limit int) ([]*model.Dynamic, error) {
	dynamics := make([]*model.Dynamic, 0)
	result := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at desc").
		Order("id desc").
		Limit(limit).
		Find(&dynamics)
	if result.Error != nil {
		return nil, result.Error
	}
	return dynamics, nil
}
