package service

import (
	"Zheye/internal/api/dto"
	"Zheye/internal/model"
	"Zheye/internal/pkg/consts"
	"Zheye/internal/pkg/util"
	"Zheye/internal/repository"
	"context"
	log "log/slog"
	"sort"
	"strconv"
	"time"

	"golang.org/x/sync/errgroup"
)

const latestQuestionsPerTopic = 10

type TopicService interface {
	AllTopics(ctx context.Context, userID uint64) ([]*dto.TopicDTO, error)
	TopicAll(ctx context.Context) (*dto.TopicAllDTO, error)
	Topics(ctx context.Context, userID uint64, cate string) (*dto.TopicsPageDTO, error)
	FollowedTopics(ctx context.Context, userID uint64, topic string) (*dto.FollowedTopicsDTO, bool, error)
	FollowTopic(ctx context.Context, userID, topicID uint64) error
	UnfollowTopic(ctx context.Context, userID, topicID uint64) error
	TopicDetail(ctx context.Context, userID, topicID uint64) (*dto.TopicDetailDTO, error)
	TopicFollowers(ctx context.Context, topicID uint64, pager util.Pager) (*dto.TopicFollowersDTO, error)
	FollowedTopicQuestions(ctx context.Context, userID uint64) ([]*dto.TopicQuestionsDTO, error)
}

type TopicServiceImpl struct {
	topicRepo    repository.TopicRepo
	questionRepo repository.QuestionRepo
	answerRepo   repository.AnswerRepo
	userSvc      UserService
	dynamicSvc   DynamicService
	notifySvc    NotifyService
	assembler    *contentAssembler
}

func NewTopicService(
	topicRepo repository.TopicRepo,
	questionRepo repository.QuestionRepo,
	answerRepo repository.AnswerRepo,
	userSvc UserService,
	dynamicSvc DynamicService,
	notifySvc NotifyService,
) TopicService {
	return &TopicServiceImpl{
		topicRepo:    topicRepo,
		questionRepo: questionRepo,
		answerRepo:   answerRepo,
		userSvc:      userSvc,
		dynamicSvc:   dynamicSvc,
		notifySvc:    notifySvc,
		assembler:    newContentAssembler(userSvc, questionRepo),
	}
}

// AllTopics 全部话题，并标记当前用户是否关注
func (s *TopicServiceImpl) AllTopics(ctx context.Context, userID uint64) ([]*dto.TopicDTO, error) {
	topics, err := s.topicRepo.ListAllTopics(ctx)
	if err != nil {
		return nil, err
	}
	return s.withFollowState(ctx, userID, topics)
}

func (s *TopicServiceImpl) TopicAll(ctx context.Context) (*dto.TopicAllDTO, error) {
	topics, err := s.topicRepo.ListAllTopics(ctx)
	if err != nil {
		return nil, err
	}
	res := make([][]interface{}, 0, len(topics))
	for _, t := range topics {
		res = append(res, []interface{}{t.ID, t.TopicName})
	}
	return &dto.TopicAllDTO{Topics: res}, nil
}

// Topics 话题广场，cate 无效时选中第一个分类
func (s *TopicServiceImpl) Topics(ctx context.Context, userID uint64, cate string) (*dto.TopicsPageDTO, error) {
	categories, err := s.topicRepo.ListCategories(ctx)
	if err != nil {
		return nil, err
	}

	res := &dto.TopicsPageDTO{
		Categories: make([]*dto.CategoryDTO, 0, len(categories)),
		Topics:     make([]*dto.TopicDTO, 0),
	}
	for _, c := range categories {
		res.Categories = append(res.Categories, &dto.CategoryDTO{ID: c.ID, CategoryName: c.CategoryName})
	}
	if len(res.Categories) == 0 {
		return res, nil
	}

	if cateID, err := strconv.ParseUint(cate, 10, 64); err == nil {
		for _, c := range res.Categories {
			if c.ID == cateID {
				res.Selected = c
				break
			}
		}
	}
	if res.Selected == nil {
		res.Selected = res.Categories[0]
	}

	topics, err := s.topicRepo.ListTopicsByCategory(ctx, res.Selected.ID)
	if err != nil {
		return nil, err
	}
	res.Topics, err = s.withFollowState(ctx, userID, topics)
	if err != nil {
		return nil, err
	}
	return res, nil
}

// FollowedTopics 关注的话题；指定的话题不在关注列表中时回落到第一个，并返回 notFound
func (s *TopicServiceImpl) FollowedTopics(ctx context.Context, userID uint64, topic string) (*dto.FollowedTopicsDTO, bool, error) {
	topics, err := s.topicRepo.ListFollowedTopics(ctx, userID)
	if err != nil {
		return nil, false, err
	}

	res := &dto.FollowedTopicsDTO{
		Topics:    make([]*dto.TopicDTO, 0, len(topics)),
		Questions: make([]*dto.QuestionDTO, 0),
	}
	for _, t := range topics {
		res.Topics = append(res.Topics, topicDTO(t, true))
	}
	if len(res.Topics) == 0 {
		return res, false, nil
	}

	if topicID, err := strconv.ParseUint(topic, 10, 64); err == nil {
		for _, t := range res.Topics {
			if t.ID == topicID {
				res.Selected = t
				break
			}
		}
	}
	notFound := false
	if res.Selected == nil {
		res.Selected = res.Topics[0]
		notFound = topic != ""
	}

	questions, err := s.questionRepo.ListLatestByTopic(ctx, res.Selected.ID, latestQuestionsPerTopic)
	if err != nil {
		return nil, false, err
	}
	res.Questions, err = s.assembler.questions(ctx, questions)
	if err != nil {
		return nil, false, err
	}
	return res, notFound, nil
}

func (s *TopicServiceImpl) FollowTopic(ctx context.Context, userID, topicID uint64) error {
	topic, err := s.topicRepo.GetTopicById(ctx, topicID)
	if err != nil {
		log.ErrorContext(ctx, "get topic failed", "topic_id", topicID, "err", err)
		return ErrFail
	}
	if topic == nil {
		return ErrFail
	}
	follow, err := s.topicRepo.GetTopicFollow(ctx, userID, topicID)
	if err != nil {
		log.ErrorContext(ctx, "get topic follow failed", "err", err)
		return ErrFail
	}
	if follow != nil {
		return ErrFail
	}

	err = s.topicRepo.CreateTopicFollow(ctx, &model.TopicFollow{UserID: userID, TopicID: topicID, CreatedAt: time.Now()})
	if err != nil {
		log.ErrorContext(ctx, "create topic follow failed", "err", err)
		return ErrFail
	}

	if err = s.dynamicSvc.AddDynamic(ctx, userID, topicID, consts.DynamicTopic); err != nil {
		log.ErrorContext(ctx, "add topic dynamic failed", "err", err)
	}
	s.notifySvc.NotifyFollowers(ctx, userID, consts.NotifyFollowTopic, topicID, topic.TopicName)
	return nil
}

func (s *TopicServiceImpl) UnfollowTopic(ctx context.Context, userID, topicID uint64) error {
	topic, err := s.topicRepo.GetTopicById(ctx, topicID)
	if err != nil {
		log.ErrorContext(ctx, "get topic failed", "topic_id", topicID, "err", err)
		return ErrFail
	}
	if topic == nil {
		return ErrFail
	}
	affected, err := s.topicRepo.DeleteTopicFollow(ctx, userID, topicID)
	if err != nil {
		log.ErrorContext(ctx, "delete topic follow failed", "err", err)
		return ErrFail
	}
	if affected == 0 {
		return ErrFail
	}
	return nil
}

// TopicDetail 话题详情与精彩问答：按最佳回答的评论数降序，其次问题ID降序
func (s *TopicServiceImpl) TopicDetail(ctx context.Context, userID, topicID uint64) (*dto.TopicDetailDTO, error) {
	topic, err := s.topicRepo.GetTopicById(ctx, topicID)
	if err != nil {
		return nil, err
	}
	if topic == nil {
		return nil, ErrTopicNotFound
	}

	var count int64
	var following *model.TopicFollow
	var questions []*model.Question
	var best map[uint64]*model.Answer

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		count, err = s.topicRepo.CountTopicFollowers(gCtx, topicID)
		return err
	})
	g.Go(func() error {
		var err error
		following, err = s.topicRepo.GetTopicFollow(gCtx, userID, topicID)
		return err
	})
	g.Go(func() error {
		ids, err := s.questionRepo.ListIdsByTopic(gCtx, topicID)
		if err != nil {
			return err
		}
		if questions, err = s.questionRepo.GetQuestionsByIds(gCtx, ids); err != nil {
			return err
		}
		best, err = s.answerRepo.BestAnswers(gCtx, ids)
		return err
	})
	if err = g.Wait(); err != nil {
		return nil, err
	}

	sort.SliceStable(questions, func(i, j int) bool {
		ai, aj := best[questions[i].ID], best[questions[j].ID]
		ci, cj := -1, -1
		if ai != nil {
			ci = ai.CommentCount
		}
		if aj != nil {
			cj = aj.CommentCount
		}
		if ci != cj {
			return ci > cj
		}
		return questions[i].ID > questions[j].ID
	})

	pairs, err := s.assembler.pairs(ctx, questions, best, true)
	if err != nil {
		return nil, err
	}

	return &dto.TopicDetailDTO{
		Topic:     topicDTO(topic, following != nil),
		Count:     count,
		Questions: pairs,
	}, nil
}

func (s *TopicServiceImpl) TopicFollowers(ctx context.Context, topicID uint64, pager util.Pager) (*dto.TopicFollowersDTO, error) {
	topic, err := s.topicRepo.GetTopicById(ctx, topicID)
	if err != nil {
		return nil, err
	}
	if topic == nil {
		return nil, ErrTopicNotFound
	}

	total, err := s.topicRepo.CountTopicFollowers(ctx, topicID)
	if err != nil {
		return nil, err
	}
	ids, err := s.topicRepo.ListTopicFollowerIDs(ctx, topicID, pager.Limit(), pager.Offset())
	if err != nil {
		return nil, err
	}
	users, err := s.userSvc.GetUserSimpleInfoByIds(ctx, ids)
	if err != nil {
		return nil, err
	}

	return &dto.TopicFollowersDTO{
		Topic:      topicDTO(topic, false),
		Pagination: dto.NewPage(pager.Page, pager.PerPage, total, users),
	}, nil
}

// FollowedTopicQuestions 每个关注话题下的最新问题，各话题并发加载
func (s *TopicServiceImpl) FollowedTopicQuestions(ctx context.Context, userID uint64) ([]*dto.TopicQuestionsDTO, error) {
	topics, err := s.topicRepo.ListFollowedTopics(ctx, userID)
	if err != nil {
		return nil, err
	}

	res := make([]*dto.TopicQuestionsDTO, len(topics))
	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(4)
	for i, t := range topics {
		g.Go(func() error {
			questions, err := s.questionRepo.ListLatestByTopic(gCtx, t.ID, latestQuestionsPerTopic)
			if err != nil {
				return err
			}
			items, err := s.assembler.questions(gCtx, questions)
			if err != nil {
				return err
			}
			res[i] = &dto.TopicQuestionsDTO{Topic: topicDTO(t, true), Questions: items}
			return nil
		})
	}
	if err = g.Wait(); err != nil {
		return nil, err
	}
	return res, nil
}

func (s *TopicServiceImpl) withFollowState(ctx context.Context, userID uint64, topics []*model.Topic) ([]*dto.TopicDTO, error) {
	followed := make(map[uint64]struct{})
	if userID != 0 {
		list, err := s.topicRepo.ListFollowedTopics(ctx, userID)
		if err != nil {
			return nil, err
		}
		for _, t := range list {
			followed[t.ID] = struct{}{}
		}
	}
	res := make([]*dto.TopicDTO, 0, len(topics))
	for _, t := range topics {
		_, ok := followed[t.ID]
		res = append(res, topicDTO(t, ok))
	}
	return res, nil
}
