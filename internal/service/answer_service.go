package service

import (
	"Zheye/internal/api/dto"
	"Zheye/internal/model"
	"Zheye/internal/pkg/consts"
	"Zheye/internal/pkg/util"
	"Zheye/internal/repository"
	"context"
	"errors"
	log "log/slog"
	"strings"

	"gorm.io/gorm"
)

const answerExcerptLen = 120

type AnswerService interface {
	SubmitAnswer(ctx context.Context, userID uint64, submit *dto.SubmitAnswerDTO) (*dto.AnswerDTO, error)
	DeleteAnswer(ctx context.Context, userID, answerID uint64) error
	SubmitComment(ctx context.Context, userID uint64, submit *dto.SubmitCommentDTO) (*dto.CommentResultDTO, error)
}

type AnswerServiceImpl struct {
	answerRepo   repository.AnswerRepo
	commentRepo  repository.CommentRepo
	questionRepo repository.QuestionRepo
	userRepo     repository.UserRepo
	dynamicSvc   DynamicService
	notifySvc    NotifyService
}

func NewAnswerService(
	answerRepo repository.AnswerRepo,
	commentRepo repository.CommentRepo,
	questionRepo repository.QuestionRepo,
	userRepo repository.UserRepo,
	dynamicSvc DynamicService,
	notifySvc NotifyService,
) AnswerService {
	return &AnswerServiceImpl{
		answerRepo:   answerRepo,
		commentRepo:  commentRepo,
		questionRepo: questionRepo,
		userRepo:     userRepo,
		dynamicSvc:   dynamicSvc,
		notifySvc:    notifySvc,
	}
}

// SubmitAnswer 回答问题，正文经过 HTML 清洗后保存
func (s *AnswerServiceImpl) SubmitAnswer(ctx context.Context, userID uint64, submit *dto.SubmitAnswerDTO) (*dto.AnswerDTO, error) {
	questionID, ok := util.ParseID(submit.QuestionID)
	if !ok || strings.TrimSpace(submit.WriteAnswer) == "" {
		return nil, ErrFail
	}
	body := util.SanitizeHTML(submit.WriteAnswer)
	excerpt := util.Excerpt(body, answerExcerptLen)
	if strings.TrimSpace(body) == "" {
		return nil, ErrFail
	}

	answer := &model.Answer{
		QuestionID: questionID,
		UserID:     userID,
		Body:       body,
		Excerpt:    excerpt,
	}
	if err := s.answerRepo.CreateAnswer(ctx, answer); err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			log.ErrorContext(ctx, "create answer failed", "question_id", questionID, "err", err)
		}
		return nil, ErrFail
	}

	if err := s.dynamicSvc.AddDynamic(ctx, userID, answer.ID, consts.DynamicAnswer); err != nil {
		log.ErrorContext(ctx, "add answer dynamic failed", "err", err)
	}
	s.notifySvc.NotifyFollowers(ctx, userID, consts.NotifyAnswer, questionID, excerpt)

	return answerDTO(answer, nil), nil
}

// DeleteAnswer 只有作者本人可以删除
func (s *AnswerServiceImpl) DeleteAnswer(ctx context.Context, userID, answerID uint64) error {
	answer, err := s.answerRepo.GetAnswerById(ctx, answerID)
	if err != nil {
		log.ErrorContext(ctx, "get answer failed", "answer_id", answerID, "err", err)
		return ErrFail
	}
	if answer == nil || answer.UserID != userID {
		return ErrFail
	}
	if err = s.answerRepo.DeleteAnswer(ctx, answer); err != nil {
		log.ErrorContext(ctx, "delete answer failed", "answer_id", answerID, "err", err)
		return ErrFail
	}
	return nil
}

func (s *AnswerServiceImpl) SubmitComment(ctx context.Context, userID uint64, submit *dto.SubmitCommentDTO) (*dto.CommentResultDTO, error) {
	answerID, ok := util.ParseID(submit.AnswerID)
	body := strings.TrimSpace(submit.CommentBody)
	if !ok || body == "" || util.RuneLen(body) > consts.MaxCommentLen {
		return nil, ErrCommentInvalid
	}

	user, err := s.userRepo.GetUserById(ctx, userID)
	if err != nil || user == nil {
		return nil, ErrFail
	}

	err = s.commentRepo.CreateComment(ctx, &model.Comment{
		AnswerID: answerID,
		UserID:   userID,
		Body:     body,
	})
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			log.ErrorContext(ctx, "create comment failed", "answer_id", answerID, "err", err)
		}
		return nil, ErrFail
	}

	return &dto.CommentResultDTO{Username: user.Username, Comment: body}, nil
}
