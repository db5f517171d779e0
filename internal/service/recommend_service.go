package service

import (
	"Zheye/internal/api/dto"
	"Zheye/internal/model"
	"Zheye/internal/pkg/consts"
	"Zheye/internal/pkg/redis"
	"Zheye/internal/repository"
	"context"
	log "log/slog"
	"strconv"
	"time"

	redisv9 "github.com/redis/go-redis/v9"
)

const (
	recommendCandidates = 1000
	recommendExpiration = 24 * time.Hour
)

type RecommendService interface {
	Explore(ctx context.Context) ([]*dto.QuestionWithAnswerDTO, error)
	Refresh(ctx context.Context) error
}

type RecommendServiceImpl struct {
	questionRepo repository.QuestionRepo
	answerRepo   repository.AnswerRepo
	assembler    *contentAssembler
	size         int
	windowDays   int
}

func NewRecommendService(
	questionRepo repository.QuestionRepo,
	answerRepo repository.AnswerRepo,
	userSvc UserService,
	size, windowDays int,
) RecommendService {
	if size <= 0 {
		size = 20
	}
	if windowDays <= 0 {
		windowDays = 30
	}
	return &RecommendServiceImpl{
		questionRepo: questionRepo,
		answerRepo:   answerRepo,
		assembler:    newContentAssembler(userSvc, questionRepo),
		size:         size,
		windowDays:   windowDays,
	}
}

// Explore 推荐列表，缓存为空时按热度从数据库回落
func (s *RecommendServiceImpl) Explore(ctx context.Context) ([]*dto.QuestionWithAnswerDTO, error) {
	var questions []*model.Question

	members, err := redis.ZRevRange(ctx, consts.QuestionRecommendKey, 0, int64(s.size-1))
	if err != nil {
		log.WarnContext(ctx, "read recommend cache failed", "err", err)
	}
	if len(members) > 0 {
		ids := make([]uint64, 0, len(members))
		for _, m := range members {
			if id, err := strconv.ParseUint(m, 10, 64); err == nil {
				ids = append(ids, id)
			}
		}
		found, err := s.questionRepo.GetQuestionsByIds(ctx, ids)
		if err != nil {
			return nil, err
		}
		questions = orderByIds(found, ids)
	}

	if len(questions) == 0 {
		questions, err = s.questionRepo.ListPopular(ctx, s.size)
		if err != nil {
			return nil, err
		}
	}

	ids := make([]uint64, 0, len(questions))
	for _, q := range questions {
		ids = append(ids, q.ID)
	}
	best, err := s.answerRepo.BestAnswers(ctx, ids)
	if err != nil {
		return nil, err
	}
	return s.assembler.pairs(ctx, questions, best, false)
}

// Refresh 按 浏览数 + 5*回答数 + 3*关注数 重算近期问题的得分
func (s *RecommendServiceImpl) Refresh(ctx context.Context) error {
	since := time.Now().AddDate(0, 0, -s.windowDays)
	questions, err := s.questionRepo.ListSince(ctx, since, recommendCandidates)
	if err != nil {
		return err
	}

	ids := make([]uint64, 0, len(questions))
	for _, q := range questions {
		ids = append(ids, q.ID)
	}
	followers, err := s.questionRepo.CountFollowersByQuestionIds(ctx, ids)
	if err != nil {
		return err
	}

	members := make([]redisv9.Z, 0, len(questions))
	for _, q := range questions {
		members = append(members, redisv9.Z{
			Score:  recommendScore(q, followers[q.ID]),
			Member: strconv.FormatUint(q.ID, 10),
		})
	}
	return redis.ReplaceZSet(ctx, consts.QuestionRecommendKey, members, recommendExpiration)
}

func recommendScore(q *model.Question, followers int64) float64 {
	return float64(q.ViewCount) + 5*float64(q.AnswerCount) + 3*float64(followers)
}
