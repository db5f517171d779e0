package service

import (
	"Zheye/internal/api/dto"
	"Zheye/internal/model"
	"Zheye/internal/pkg/consts"
	"Zheye/internal/pkg/redis"
	"Zheye/internal/pkg/util"
	"Zheye/internal/repository"
	"context"
	"errors"
	log "log/slog"
	"strconv"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

type QuestionService interface {
	SubmitQuestion(ctx context.Context, userID uint64, submit *dto.SubmitQuestionDTO) (*dto.SubmitQuestionResultDTO, error)
	FollowQuestion(ctx context.Context, userID, questionID uint64) error
	UnfollowQuestion(ctx context.Context, userID, questionID uint64) error
	FollowedQuestions(ctx context.Context, userID uint64) ([]*dto.QuestionDTO, error)
	QuestionDetail(ctx context.Context, userID, questionID uint64) (*dto.QuestionDetailDTO, error)
	Ping(ctx context.Context, questionID uint64) error
	SyncViewCount(ctx context.Context, questionID uint64) (int64, error)
	QuestionFollowers(ctx context.Context, questionID uint64, pager util.Pager) (*dto.QuestionFollowersDTO, error)
}

type QuestionServiceImpl struct {
	questionRepo repository.QuestionRepo
	answerRepo   repository.AnswerRepo
	commentRepo  repository.CommentRepo
	topicRepo    repository.TopicRepo
	userSvc      UserService
	dynamicSvc   DynamicService
	notifySvc    NotifyService
	assembler    *contentAssembler
}

func NewQuestionService(
	questionRepo repository.QuestionRepo,
	answerRepo repository.AnswerRepo,
	commentRepo repository.CommentRepo,
	topicRepo repository.TopicRepo,
	userSvc UserService,
	dynamicSvc DynamicService,
	notifySvc NotifyService,
) QuestionService {
	return &QuestionServiceImpl{
		questionRepo: questionRepo,
		answerRepo:   answerRepo,
		commentRepo:  commentRepo,
		topicRepo:    topicRepo,
		userSvc:      userSvc,
		dynamicSvc:   dynamicSvc,
		notifySvc:    notifySvc,
		assembler:    newContentAssembler(userSvc, questionRepo),
	}
}

// SubmitQuestion 提问，提问者自动关注该问题
func (s *QuestionServiceImpl) SubmitQuestion(ctx context.Context, userID uint64, submit *dto.SubmitQuestionDTO) (*dto.SubmitQuestionResultDTO, error) {
	if strings.TrimSpace(submit.Topic) == "" {
		return nil, ErrNotValidChoice
	}
	topicIDs, ok := util.ParseIDs(submit.Topic)
	if !ok || len(topicIDs) == 0 {
		return nil, ErrNotValidChoice
	}

	title := strings.TrimSpace(submit.Question)
	if title == "" || util.RuneLen(title) > consts.MaxQuestionTitleLen ||
		util.RuneLen(submit.QuestionDesc) > consts.MaxQuestionDescLen {
		return nil, ErrQuestionInvalid
	}

	question := &model.Question{
		UserID:      userID,
		Title:       title,
		Description: submit.QuestionDesc,
	}
	if err := s.questionRepo.CreateQuestion(ctx, question, topicIDs); err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			log.ErrorContext(ctx, "create question failed", "user_id", userID, "err", err)
		}
		return nil, ErrFail
	}

	if err := s.dynamicSvc.AddDynamic(ctx, userID, question.ID, consts.DynamicAsk); err != nil {
		log.ErrorContext(ctx, "add ask dynamic failed", "err", err)
	}
	s.notifySvc.NotifyFollowers(ctx, userID, consts.NotifyAsk, question.ID, question.Title)

	return &dto.SubmitQuestionResultDTO{Result: question.ID}, nil
}

func (s *QuestionServiceImpl) FollowQuestion(ctx context.Context, userID, questionID uint64) error {
	question, err := s.questionRepo.GetQuestionById(ctx, questionID)
	if err != nil {
		log.ErrorContext(ctx, "get question failed", "question_id", questionID, "err", err)
		return ErrFail
	}
	if question == nil {
		return ErrFail
	}
	follow, err := s.questionRepo.GetQuestionFollow(ctx, userID, questionID)
	if err != nil {
		log.ErrorContext(ctx, "get question follow failed", "err", err)
		return ErrFail
	}
	if follow != nil {
		return ErrFail
	}

	err = s.questionRepo.CreateQuestionFollow(ctx, &model.QuestionFollow{UserID: userID, QuestionID: questionID, CreatedAt: time.Now()})
	if err != nil {
		log.ErrorContext(ctx, "create question follow failed", "err", err)
		return ErrFail
	}

	if err = s.dynamicSvc.AddDynamic(ctx, userID, questionID, consts.DynamicQuestion); err != nil {
		log.ErrorContext(ctx, "add question dynamic failed", "err", err)
	}
	s.notifySvc.NotifyFollowers(ctx, userID, consts.NotifyFollowQues, questionID, question.Title)
	return nil
}

func (s *QuestionServiceImpl) UnfollowQuestion(ctx context.Context, userID, questionID uint64) error {
	question, err := s.questionRepo.GetQuestionById(ctx, questionID)
	if err != nil {
		log.ErrorContext(ctx, "get question failed", "question_id", questionID, "err", err)
		return ErrFail
	}
	if question == nil {
		return ErrFail
	}
	affected, err := s.questionRepo.DeleteQuestionFollow(ctx, userID, questionID)
	if err != nil {
		log.ErrorContext(ctx, "delete question follow failed", "err", err)
		return ErrFail
	}
	if affected == 0 {
		return ErrFail
	}
	return nil
}

func (s *QuestionServiceImpl) FollowedQuestions(ctx context.Context, userID uint64) ([]*dto.QuestionDTO, error) {
	questions, err := s.questionRepo.ListFollowedQuestions(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.assembler.questions(ctx, questions)
}

// QuestionDetail 问题详情，同时累加一次浏览
func (s *QuestionServiceImpl) QuestionDetail(ctx context.Context, userID, questionID uint64) (*dto.QuestionDetailDTO, error) {
	question, err := s.questionRepo.GetQuestionById(ctx, questionID)
	if err != nil {
		return nil, err
	}
	if question == nil {
		return nil, ErrQuestionNotFound
	}

	if err = s.Ping(ctx, questionID); err != nil {
		log.WarnContext(ctx, "ping question failed", "question_id", questionID, "err", err)
	}

	var (
		pending       int64
		followerCount int64
		following     *model.QuestionFollow
		topics        []*model.Topic
		answers       []*dto.AnswerDTO
	)
	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		// 尚未写回数据库的浏览数，键不存在时为 0
		pending, _ = redis.GetInt64(gCtx, consts.QuestionViewKey+strconv.FormatUint(questionID, 10))
		return nil
	})
	g.Go(func() error {
		var err error
		followerCount, err = s.questionRepo.CountQuestionFollowers(gCtx, questionID)
		return err
	})
	g.Go(func() error {
		var err error
		following, err = s.questionRepo.GetQuestionFollow(gCtx, userID, questionID)
		return err
	})
	g.Go(func() error {
		ids, err := s.questionRepo.GetTopicIds(gCtx, questionID)
		if err != nil {
			return err
		}
		topics, err = s.topicRepo.GetTopicsByIds(gCtx, ids)
		return err
	})
	g.Go(func() error {
		var err error
		answers, err = s.answersWithComments(gCtx, questionID)
		return err
	})
	if err = g.Wait(); err != nil {
		return nil, err
	}

	author, err := s.userSvc.GetUserSimpleMap(ctx, []uint64{question.UserID})
	if err != nil {
		return nil, err
	}
	questionItem := questionDTO(question, author[question.UserID])
	questionItem.ViewCount += pending
	questionItem.Topics = make([]*dto.TopicDTO, 0, len(topics))
	for _, t := range topics {
		questionItem.Topics = append(questionItem.Topics, topicDTO(t, false))
	}

	return &dto.QuestionDetailDTO{
		Question:      questionItem,
		Answers:       answers,
		FollowerCount: followerCount,
		IsFollowing:   following != nil,
	}, nil
}

// Ping 浏览数先记入 Redis，由定时任务批量写回
func (s *QuestionServiceImpl) Ping(ctx context.Context, questionID uint64) error {
	id := strconv.FormatUint(questionID, 10)
	if _, err := redis.Incr(ctx, consts.QuestionViewKey+id); err != nil {
		return err
	}
	return redis.AddToSet(ctx, consts.QuestionViewDirtyKey, id)
}

// SyncViewCount 把 Redis 中累计的浏览数写回数据库，写库失败时归还计数
func (s *QuestionServiceImpl) SyncViewCount(ctx context.Context, questionID uint64) (int64, error) {
	key := consts.QuestionViewKey + strconv.FormatUint(questionID, 10)
	delta, err := redis.GetDelInt64(ctx, key)
	if err != nil || delta == 0 {
		return 0, err
	}
	if err = s.questionRepo.AddViewCount(ctx, questionID, delta); err != nil {
		if _, rErr := redis.IncrBy(ctx, key, delta); rErr != nil {
			log.ErrorContext(ctx, "restore view count failed", "question_id", questionID, "delta", delta, "err", rErr)
		}
		return 0, err
	}
	return delta, nil
}

func (s *QuestionServiceImpl) QuestionFollowers(ctx context.Context, questionID uint64, pager util.Pager) (*dto.QuestionFollowersDTO, error) {
	question, err := s.questionRepo.GetQuestionById(ctx, questionID)
	if err != nil {
		return nil, err
	}
	if question == nil {
		return nil, ErrQuestionNotFound
	}

	total, err := s.questionRepo.CountQuestionFollowers(ctx, questionID)
	if err != nil {
		return nil, err
	}
	ids, err := s.questionRepo.ListQuestionFollowerIDs(ctx, questionID, pager.Limit(), pager.Offset())
	if err != nil {
		return nil, err
	}
	users, err := s.userSvc.GetUserSimpleInfoByIds(ctx, ids)
	if err != nil {
		return nil, err
	}
	author, err := s.userSvc.GetUserSimpleMap(ctx, []uint64{question.UserID})
	if err != nil {
		return nil, err
	}

	return &dto.QuestionFollowersDTO{
		Question:   questionDTO(question, author[question.UserID]),
		Pagination: dto.NewPage(pager.Page, pager.PerPage, total, users),
	}, nil
}

func (s *QuestionServiceImpl) answersWithComments(ctx context.Context, questionID uint64) ([]*dto.AnswerDTO, error) {
	answers, err := s.answerRepo.ListByQuestion(ctx, questionID)
	if err != nil {
		return nil, err
	}
	res, err := s.assembler.answers(ctx, answers, false)
	if err != nil {
		return nil, err
	}
	if len(res) == 0 {
		return res, nil
	}

	answerIDs := make([]uint64, 0, len(answers))
	for _, a := range answers {
		answerIDs = append(answerIDs, a.ID)
	}
	comments, err := s.commentRepo.ListByAnswerIds(ctx, answerIDs)
	if err != nil {
		return nil, err
	}
	userIDs := make([]uint64, 0, len(comments))
	for _, c := range comments {
		userIDs = append(userIDs, c.UserID)
	}
	users, err := s.userSvc.GetUserSimpleMap(ctx, userIDs)
	if err != nil {
		return nil, err
	}

	byAnswer := make(map[uint64][]*dto.CommentDTO, len(answers))
	for _, c := range comments {
		byAnswer[c.AnswerID] = append(byAnswer[c.AnswerID], &dto.CommentDTO{
			ID:        c.ID,
			AnswerID:  c.AnswerID,
			Body:      c.Body,
			CreatedAt: c.CreatedAt,
			Author:    users[c.UserID],
		})
	}
	for _, a := range res {
		a.Comments = byAnswer[a.ID]
	}
	return res, nil
}
