package repository

import (
	"Zheye/internal/model"
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type TopicRepo interface {
	ListCategories(ctx context.Context) ([]*model.TopicCategory, error)
	GetCategoryById(ctx context.Context, id uint64) (*model.TopicCategory, error)
	CreateCategory(ctx context.Context, category *model.TopicCategory) error
	ListTopicsByCategory(ctx context.Context, categoryID uint64) ([]*model.Topic, error)
	ListAllTopics(ctx context.Context) ([]*model.Topic, error)
	GetTopicById(ctx context.Context, id uint64) (*model.Topic, error)
	GetTopicsByIds(ctx context.Context, ids []uint64) ([]*model.Topic, error)
	CountTopicsByIds(ctx context.Context, ids []uint64) (int64, error)
	CreateTopic(ctx context.Context, topic *model.Topic) error

	GetTopicFollow(ctx context.Context, userID, topicID uint64) (*model.TopicFollow, error)
	CreateTopicFollow(ctx context.Context, follow *model.TopicFollow) error
	DeleteTopicFollow(ctx context.Context, userID, topicID uint64) (int64, error)
	ListFollowedTopics(ctx context.Context, userID uint64) ([]*model.Topic, error)
	ListTopicFollowerIDs(ctx context.Context, topicID uint64, limit, offset int) ([]uint64, error)
	CountTopicFollowers(ctx context.Context, topicID uint64) (int64, error)
}

type TopicRepoImpl struct {
	db *gorm.DB
}

func NewTopicRepo(db *gorm.DB) TopicRepo {
	return &TopicRepoImpl{db: db}
}

func (s *TopicRepoImpl) ListCategories(ctx context.Context) ([]*model.TopicCategory, error) {
	categories := make([]*model.TopicCategory, 0)
	result := s.db.WithContext(ctx).Order("id asc").Find(&categories)
	if result.Error != nil {
		return nil, result.Error
	}
	return categories, nil
}

func (s *TopicRepoImpl) GetCategoryById(ctx context.Context, id uint64) (*model.TopicCategory, error) {
	category := &model.TopicCategory{}
	result := s.db.WithContext(ctx).First(category, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, result.Error
	}
	return category, nil
}

func (s *TopicRepoImpl) CreateCategory(ctx context.Context, category *model.TopicCategory) error {
	return s.db.WithContext(ctx).Create(category).Error
}

func (s *TopicRepoImpl) ListTopicsByCategory(ctx context.Context, categoryID uint64) ([]*model.Topic, error) {
	topics := make([]*model.Topic, 0)
	result := s.db.WithContext(ctx).
		Where("category_id = ?", categoryID).
		Order("id asc").
		Find(&topics)
	if result.Error != nil {
		return nil, result.Error
	}
	return topics, nil
}

func (s *TopicRepoImpl) ListAllTopics(ctx context.Context) ([]*model.Topic, error) {
	topics := make([]*model.Topic, 0)
	result := s.db.WithContext(ctx).Order("id asc").Find(&topics)
	if result.Error != nil {
		return nil, result.Error
	}
	return topics, nil
}

func (s *TopicRepoImpl) GetTopicById(ctx context.Context, id uint64) (*model.Topic, error) {
	topic := &model.Topic{}
	result := s.db.WithContext(ctx).First(topic, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, result.Error
	}
	return topic, nil
}

func (s *TopicRepoImpl) GetTopicsByIds(ctx context.Context, ids []uint64) ([]*model.Topic, error) {
	topics := make([]*model.Topic, 0)
	if len(ids) == 0 {
		return topics, nil
	}
	result := s.db.WithContext(ctx).Where("id IN ?", ids).Order("id asc").Find(&topics)
	if result.Error != nil {
		return nil, result.Error
	}
	return topics, nil
}

func (s *TopicRepoImpl) CountTopicsByIds(ctx context.Context, ids []uint64) (int64, error) {
	var count int64
	if len(ids) == 0 {
		return 0, nil
	}
	result := s.db.WithContext(ctx).Model(&model.Topic{}).Where("id IN ?", ids).Count(&count)
	return count, result.Error
}

func (s *TopicRepoImpl) CreateTopic(ctx context.Context, topic *model.Topic) error {
	return s.db.WithContext(ctx).Create(topic).Error
}

func (s *TopicRepoImpl) GetTopicFollow(ctx context.Context, userID, topicID uint64) (*model.TopicFollow, error) {
	follow := &model.TopicFollow{}
	result := s.db.WithContext(ctx).
		Where("user_id = ? AND topic_id = ?", userID, topicID).
		First(follow)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, result.Error
	}
	return follow, nil
}

func (s *TopicRepoImpl) CreateTopicFollow(ctx context.Context, follow *model.TopicFollow) error {
	return s.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(follow).Error
}

func (s *TopicRepoImpl) DeleteTopicFollow(ctx context.Context, userID, topicID uint64) (int64, error) {
	result := s.db.WithContext(ctx).
		Where("user_id = ? AND topic_id = ?", userID, topicID).
		Delete(&model.TopicFollow{})
	return result.RowsAffected, result.Error
}

// ListFollowedTopics 用户关注的话题，最近关注的在前
func (s *TopicRepoImpl) ListFollowedTopics(ctx context.Context, userID uint64) ([]*model.Topic, error) {
	topics := make([]*model.Topic, 0)
	result := s.db.WithContext(ctx).
		Model(&model.Topic{}).
		Joins("JOIN topic_follows ON topic_follows.topic_id = topics.id").
		Where("topic_follows.user_id = ?", userID).
		Order("topic_follows.created_at desc").
		Order("topics.id desc").
		Find(&topics)
	if result.Error != nil {
		return nil, result.Error
	}
	return topics, nil
}

func (s *TopicRepoImpl) ListTopicFollowerIDs(ctx context.Context, topicID uint64, limit, offset int) ([]uint64, error) {
	ids := make([]uint64, 0)
	result := s.db.WithContext(ctx).
		Model(&model.TopicFollow{}).
		Where("topic_id = ?", topicID).
		Order("created_at desc").
		Limit(limit).
		Offset(offset).
		Pluck("user_id", &ids)
	if result.Error != nil {
		return nil, result.Error
	}
	return ids, nil
}

func (s *TopicRepoImpl) CountTopicFollowers(ctx context.Context, topicID uint64) (int64, error) {
	var count int64
	result := s.db.WithContext(ctx).
		Model(&model.TopicFollow{}).
		Where("topic_id = ?", topicID).
		Count(&count)
	return count, result.Error
}
