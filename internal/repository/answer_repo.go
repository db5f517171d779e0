package repository

import (
	"Zheye/internal/model"
	"context"
	"errors"

	"gorm.io/gorm"
)

type AnswerRepo interface {
	CreateAnswer(ctx context.Context, answer *model.Answer) error
	GetAnswerById(ctx context.Context, id uint64) (*model.Answer, error)
	GetAnswersByIds(ctx context.Context, ids []uint64) ([]*model.Answer, error)
	ListByQuestion(ctx context.Context, questionID uint64) ([]*model.Answer, error)
	ListByUser(ctx context.Context, userID uint64, limit, offset int) ([]*model.Answer, error)
	CountByUser(ctx context.Context, userID uint64) (int64, error)
	BestAnswers(ctx context.Context, questionIDs []uint64) (map[uint64]*model.Answer, error)
	DeleteAnswer(ctx context.Context, answer *model.Answer) error
}

type AnswerRepoImpl struct {
	db *gorm.DB
}

func NewAnswerRepo(db *gorm.DB) AnswerRepo {
	return &AnswerRepoImpl{db: db}
}

// CreateAnswer 写入回答并累加问题的回答数，问题不存在时返回 gorm.ErrRecordNotFound
func (s *AnswerRepoImpl) CreateAnswer(ctx context.Context, answer *model.Answer) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&model.Question{}).
			Where("id = ?", answer.QuestionID).
			UpdateColumn("answer_count", gorm.Expr("answer_count + 1"))
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return tx.Create(answer).Error
	})
}

func (s *AnswerRepoImpl) GetAnswerById(ctx context.Context, id uint64) (*model.Answer, error) {
	answer := &model.Answer{}
	result := s.db.WithContext(ctx).First(answer, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, result.Error
	}
	return answer, nil
}

func (s *AnswerRepoImpl) GetAnswersByIds(ctx context.Context, ids []uint64) ([]*model.Answer, error) {
	answers := make([]*model.Answer, 0)
	if len(ids) == 0 {
		return answers, nil
	}
	result := s.db.WithContext(ctx).Where("id IN ?", ids).Find(&answers)
	if result.Error != nil {
		return nil, result.Error
	}
	return answers, nil
}

func (s *AnswerRepoImpl) ListByQuestion(ctx context.Context, questionID uint64) ([]*model.Answer, error) {
	answers := make([]*model.Answer, 0)
	result := s.db.WithContext(ctx).
		Where("question_id = ?", questionID).
		Order("comment_count desc").
		Order("created_at desc").
		Order("id desc").
		Find(&answers)
	if result.Error != nil {
		return nil, result.Error
	}
	return answers, nil
}

func (s *AnswerRepoImpl) ListByUser(ctx context.Context, userID uint64, limit, offset int) ([]*model.Answer, error) {
	answers := make([]*model.Answer, 0)
	result := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at desc").
		Order("id desc").
		Limit(limit).
		Offset(offset).
		Find(&answers)
	if result.Error != nil {
		return nil, result.Error
	}
	return answers, nil
}

func (s *AnswerRepoImpl) CountByUser(ctx context.Context, userID uint64) (int64, error) {
	var count int64
	result := s.db.WithContext(ctx).Model(&model.Answer{}).Where("user_id = ?", userID).Count(&count)
	return count, result.Error
}

// BestAnswers 每个问题评论最多的回答，评论数相同取最新的；没有回答的问题不在结果中
func (s *AnswerRepoImpl) BestAnswers(ctx context.Context, questionIDs []uint64) (map[uint64]*model.Answer, error) {
	best := make(map[uint64]*model.Answer, len(questionIDs))
	if len(questionIDs) == 0 {
		return best, nil
	}
	answers := make([]*model.Answer, 0)
	result := s.db.WithContext(ctx).
		Where("question_id IN ?", questionIDs).
		Order("comment_count desc").
		Order("created_at desc").
		Order("id desc").
		Find(&answers)
	if result.Error != nil {
		return nil, result.Error
	}
	for _, a := range answers {
		if _, ok := best[a.QuestionID]; !ok {
			best[a.QuestionID] = a
		}
	}
	return best, nil
}

// DeleteAnswer 删除回答及其评论，并回退问题的回答数
func (s *AnswerRepoImpl) DeleteAnswer(ctx context.Context, answer *model.Answer) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("answer_id = ?", answer.ID).Delete(&model.Comment{}).Error; err != nil {
			return err
		}
		result := tx.Delete(&model.Answer{}, answer.ID)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return tx.Model(&model.Question{}).
			Where("id = ? AND answer_count > 0", answer.QuestionID).
			UpdateColumn("answer_count", gorm.Expr("answer_count - 1")).Error
	})
}
