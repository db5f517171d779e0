package repository

import (
	"Zheye/internal/model"
	"context"

	"gorm.io/gorm"
)

type CommentRepo interface {
	CreateComment(ctx context.Context, comment *model.Comment) error
	ListByAnswerIds(ctx context.Context, answerIDs []uint64) ([]*model.Comment, error)
}

type CommentRepoImpl struct {
	db *gorm.DB
}

func NewCommentRepo(db *gorm.DB) CommentRepo {
	return &CommentRepoImpl{db: db}
}

// CreateComment 写入评论并累加回答的评论数，回答不存在时返回 gorm.ErrRecordNotFound
func (s *CommentRepoImpl) CreateComment(ctx context.Context, comment *model.Comment) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&model.Answer{}).
			Where("id = ?", comment.AnswerID).
			UpdateColumn("comment_count", gorm.Expr("comment_count + 1"))
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return tx.Create(comment).Error
	})
}

func (s *CommentRepoImpl) ListByAnswerIds(ctx context.Context, answerIDs []uint64) ([]*model.Comment, error) {
	comments := make([]*model.Comment, 0)
	if len(answerIDs) == 0 {
		return comments, nil
	}
	result := s.db.WithContext(ctx).
		Where("answer_id IN ?", answerIDs).
		Order("created_at asc").
		Order("id asc").
		Find(&comments)
	if result.Error != nil {
		return nil, result.Error
	}
	return comments, nil
}
