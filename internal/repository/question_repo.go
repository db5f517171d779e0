package repository

import (
	"Zheye/internal/model"
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type QuestionRepo interface {
	CreateQuestion(ctx context.Context, question *model.Question, topicIDs []uint64) error
	GetQuestionById(ctx context.Context, id uint64) (*model.Question, error)
	GetQuestionsByIds(ctx context.Context, ids []uint64) ([]*model.Question, error)
	ListByUser(ctx context.Context, userID uint64, limit, offset int) ([]*model.Question, error)
	CountByUser(ctx context.Context, userID uint64) (int64, error)
	ListLatestByTopic(ctx context.Context, topicID uint64, limit int) ([]*model.Question, error)
	ListIdsByTopic(ctx context.Context, topicID uint64) ([]uint64, error)
	GetTopicIds(ctx context.Context, questionID uint64) ([]uint64, error)
	ListSince(ctx context.Context, since time.Time, limit int) ([]*model.Question, error)
	ListPopular(ctx context.Context, limit int) ([]*model.Question, error)
	AddViewCount(ctx context.Context, id uint64, delta int64) error
	SearchByKeyword(ctx context.Context, keyword string, limit, offset int) ([]*model.Question, int64, error)

	GetQuestionFollow(ctx context.Context, userID, questionID uint64) (*model.QuestionFollow, error)
	CreateQuestionFollow(ctx context.Context, follow *model.QuestionFollow) error
	DeleteQuestionFollow(ctx context.Context, userID, questionID uint64) (int64, error)
	ListFollowedQuestions(ctx context.Context, userID uint64) ([]*model.Question, error)
	ListQuestionFollowerIDs(ctx context.Context, questionID uint64, limit, offset int) ([]uint64, error)
	CountQuestionFollowers(ctx context.Context, questionID uint64) (int64, error)
	CountFollowersByQuestionIds(ctx context.Context, ids []uint64) (map[uint64]int64, error)
}

type QuestionRepoImpl struct {
	db *gorm.DB
}

func NewQuestionRepo(db *gorm.DB) QuestionRepo {
	return &QuestionRepoImpl{db: db}
}

// CreateQuestion 写入问题及其话题，提问者自动关注该问题；任一话题不存在则整体回滚
func (s *QuestionRepoImpl) CreateQuestion(ctx context.Context, question *model.Question, topicIDs []uint64) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&model.Topic{}).Where("id IN ?", topicIDs).Count(&count).Error; err != nil {
			return err
		}
		if count != int64(len(topicIDs)) {
			return gorm.ErrRecordNotFound
		}

		if err := tx.Create(question).Error; err != nil {
			return err
		}

		relations := make([]*model.QuestionTopic, 0, len(topicIDs))
		for _, topicID := range topicIDs {
			relations = append(relations, &model.QuestionTopic{QuestionID: question.ID, TopicID: topicID})
		}
		if err := tx.Create(&relations).Error; err != nil {
			return err
		}

		return tx.Create(&model.QuestionFollow{
			UserID:     question.UserID,
			QuestionID: question.ID,
			CreatedAt:  question.CreatedAt,
		}).Error
	})
}

func (s *QuestionRepoImpl) GetQuestionById(ctx context.Context, id uint64) (*model.Question, error) {
	question := &model.Question{}
	result := s.db.WithContext(ctx).First(question, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, result.Error
	}
	return question, nil
}

func (s *QuestionRepoImpl) GetQuestionsByIds(ctx context.Context, ids []uint64) ([]*model.Question, error) {
	questions := make([]*model.Question, 0)
	if len(ids) == 0 {
		return questions, nil
	}
	result := s.db.WithContext(ctx).Where("id IN ?", ids).Find(&questions)
	if result.Error != nil {
		return nil, result.Error
	}
	return questions, nil
}

func (s *QuestionRepoImpl) ListByUser(ctx context.Context, userID uint64, limit, offset int) ([]*model.Question, error) {
	questions := make([]*model.Question, 0)
	result := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at desc").
		Order("id desc").
		Limit(limit).
		Offset(offset).
		Find(&questions)
	if result.Error != nil {
		return nil, result.Error
	}
	return questions, nil
}

func (s *QuestionRepoImpl) CountByUser(ctx context.Context, userID uint64) (int64, error) {
	var count int64
	result := s.db.WithContext(ctx).Model(&model.Question{}).Where("user_id = ?", userID).Count(&count)
	return count, result.Error
}

func (s *QuestionRepoImpl) ListLatestByTopic(ctx context.Context, topicID uint64, limit int) ([]*model.Question, error) {
	questions := make([]*model.Question, 0)
	result := s.db.WithContext(ctx).
		Model(&model.Question{}).
		Joins("JOIN question_topics ON question_topics.question_id = questions.id").
		Where("question_topics.topic_id = ?", topicID).
		Order("questions.created_at desc").
		Order("questions.id desc").
		Limit(limit).
		Find(&questions)
	if result.Error != nil {
		return nil, result.Error
	}
	return questions, nil
}

func (s *QuestionRepoImpl) ListIdsByTopic(ctx context.Context, topicID uint64) ([]uint64, error) {
	ids := make([]uint64, 0)
	result := s.db.WithContext(ctx).
		Model(&model.QuestionTopic{}).
		Where("topic_id = ?", topicID).
		Pluck("question_id", &ids)
	if result.Error != nil {
		return nil, result.Error
	}
	return ids, nil
}

func (s *QuestionRepoImpl) GetTopicIds(ctx context.Context, questionID uint64) ([]uint64, error) {
	ids := make([]uint64, 0)
	result := s.db.WithContext(ctx).
		Model(&model.QuestionTopic{}).
		Where("question_id = ?", questionID).
		Order("topic_id asc").
		Pluck("topic_id", &ids)
	if result.Error != nil {
		return nil, result.Error
	}
	return ids, nil
}

// ListSince 推荐任务的候选集
func (s *QuestionRepoImpl) ListSince(ctx context.Context, since time.Time, limit int) ([]*model.Question, error) {
	questions := make([]*model.Question, 0)
	result := s.db.WithContext(ctx).
		Where("created_at >= ?", since).
		Order("created_at desc").
		Limit(limit).
		Find(&questions)
	if result.Error != nil {
		return nil, result.Error
	}
	return questions, nil
}

// ListPopular 推荐缓存缺失时的兜底排序
func (s *QuestionRepoImpl) ListPopular(ctx context.Context, limit int) ([]*model.Question, error) {
	questions := make([]*model.Question, 0)
	result := s.db.WithContext(ctx).
		Order("answer_count desc").
		Order("view_count desc").
		Order("id desc").
		Limit(limit).
		Find(&questions)
	if result.Error != nil {
		return nil, result.Error
	}
	return questions, nil
}

func (s *QuestionRepoImpl) AddViewCount(ctx context.Context, id uint64, delta int64) error {
	return s.db.WithContext(ctx).
		Model(&model.Question{}).
		Where("id = ?", id).
		UpdateColumn("view_count", gorm.Expr("view_count + ?", delta)).Error
}

// SearchByKeyword 未开启 ES 时的检索方式
func (s *QuestionRepoImpl) SearchByKeyword(ctx context.Context, keyword string, limit, offset int) ([]*model.Question, int64, error) {
	pattern := "%" + keyword + "%"
	query := s.db.WithContext(ctx).
		Model(&model.Question{}).
		Where("title LIKE ? OR description LIKE ?", pattern, pattern).
		Session(&gorm.Session{})

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	questions := make([]*model.Question, 0)
	result := query.
		Order("answer_count desc").
		Order("id desc").
		Limit(limit).
		Offset(offset).
		Find(&questions)
	if result.Error != nil {
		return nil, 0, result.Error
	}
	return questions, total, nil
}

func (s *QuestionRepoImpl) GetQuestionFollow(ctx context.Context, userID, questionID uint64) (*model.QuestionFollow, error) {
	follow := &model.QuestionFollow{}
	result := s.db.WithContext(ctx).
		Where("user_id = ? AND question_id = ?", userID, questionID).
		First(follow)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, result.Error
	}
	return follow, nil
}

func (s *QuestionRepoImpl) CreateQuestionFollow(ctx context.Context, follow *model.QuestionFollow) error {
	return s.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(follow).Error
}

func (s *QuestionRepoImpl) DeleteQuestionFollow(ctx context.Context, userID, questionID uint64) (int64, error) {
	result := s.db.WithContext(ctx).
		Where("user_id = ? AND question_id = ?", userID, questionID).
		Delete(&model.QuestionFollow{})
	return result.RowsAffected, result.Error
}

func (s *QuestionRepoImpl) ListFollowedQuestions(ctx context.Context, userID uint64) ([]*model.Question, error) {
	questions := make([]*model.Question, 0)
	result := s.db.WithContext(ctx).
		Model(&model.Question{}).
		Joins("JOIN question_follows ON question_follows.question_id = questions.id").
		Where("question_follows.user_id = ?", userID).
		Order("question_follows.created_at desc").
		Order("questions.id desc").
		Find(&questions)
	if result.Error != nil {
		return nil, result.Error
	}
	return questions, nil
}

func (s *QuestionRepoImpl) ListQuestionFollowerIDs(ctx context.Context, questionID uint64, limit, offset int) ([]uint64, error) {
	ids := make([]uint64, 0)
	result := s.db.WithContext(ctx).
		Model(&model.QuestionFollow{}).
		Where("question_id = ?", questionID).
		Order("created_at desc").
		Limit(limit).
		Offset(offset).
		Pluck("user_id", &ids)
	if result.Error != nil {
		return nil, result.Error
	}
	return ids, nil
}

func (s *QuestionRepoImpl) CountQuestionFollowers(ctx context.Context, questionID uint64) (int64, error) {
	var count int64
	result := s.db.WithContext(ctx).
		Model(&model.QuestionFollow{}).
		Where("question_id = ?", questionID).
		Count(&count)
	return count, result.Error
}

type questionFollowerCount struct {
	QuestionID uint64
	Total      int64
}

func (s *QuestionRepoImpl) CountFollowersByQuestionIds(ctx context.Context, ids []uint64) (map[uint64]int64, error) {
	counts := make(map[uint64]int64, len(ids))
	if len(ids) == 0 {
		return counts, nil
	}
	rows := make([]questionFollowerCount, 0)
	result := s.db.WithContext(ctx).
		Model(&model.QuestionFollow{}).
		Select("question_id, COUNT(*) AS total").
		Where("question_id IN ?", ids).
		Group("question_id").
		Scan(&rows)
	if result.Error != nil {
		return nil, result.Error
	}
	for _, row := range rows {
		counts[row.QuestionID] = row.Total
	}
	return counts, nil
}
