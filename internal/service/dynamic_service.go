package service

import (
	"Zheye/internal/api/dto"
	"Zheye/internal/model"
	"Zheye/internal/pkg/consts"
	"Zheye/internal/repository"
	"context"
	"time"
)

const maxDynamics = 50

type DynamicService interface {
	AddDynamic(ctx context.Context, userID, targetID uint64, kind string) error
	SearchDynamic(ctx context.Context, userID uint64) ([]*dto.DynamicDTO, error)
}

type DynamicServiceImpl struct {
	dynamicRepo  repository.DynamicRepo
	topicRepo    repository.TopicRepo
	questionRepo repository.QuestionRepo
	answerRepo   repository.AnswerRepo
}

func NewDynamicService(
	dynamicRepo repository.DynamicRepo,
	topicRepo repository.TopicRepo,
	questionRepo repository.QuestionRepo,
	answerRepo repository.AnswerRepo,
) DynamicService {
	return &DynamicServiceImpl{
		dynamicRepo:  dynamicRepo,
		topicRepo:    topicRepo,
		questionRepo: questionRepo,
		answerRepo:   answerRepo,
	}
}

func (s *DynamicServiceImpl) AddDynamic(ctx context.Context, userID, targetID uint64, kind string) error {
	return s.dynamicRepo.CreateDynamic(ctx, &model.Dynamic{
		UserID:    userID,
		TargetID:  targetID,
		Kind:      kind,
		CreatedAt: time.Now(),
	})
}

// SearchDynamic 最新的动态在前，目标已被删除的动态标题为空
func (s *DynamicServiceImpl) SearchDynamic(ctx context.Context, userID uint64) ([]*dto.DynamicDTO, error) {
	dynamics, err := s.dynamicRepo.ListByUser(ctx, userID, maxDynamics)
	if err != nil {
		return nil, err
	}

	var topicIDs, questionIDs, answerIDs []uint64
	for _, d := range dynamics {
		switch d.Kind {
		case consts.DynamicTopic:
			topicIDs = append(topicIDs, d.TargetID)
		case consts.DynamicQuestion, consts.DynamicAsk:
			questionIDs = append(questionIDs, d.TargetID)
		case consts.DynamicAnswer:
			answerIDs = append(answerIDs, d.TargetID)
		}
	}

	topics, err := s.topicRepo.GetTopicsByIds(ctx, topicIDs)
	if err != nil {
		return nil, err
	}
	topicTitles := make(map[uint64]string, len(topics))
	for _, t := range topics {
		topicTitles[t.ID] = t.TopicName
	}

	answers, err := s.answerRepo.GetAnswersByIds(ctx, answerIDs)
	if err != nil {
		return nil, err
	}
	answerQuestion := make(map[uint64]uint64, len(answers))
	for _, a := range answers {
		answerQuestion[a.ID] = a.QuestionID
		questionIDs = append(questionIDs, a.QuestionID)
	}

	questions, err := s.questionRepo.GetQuestionsByIds(ctx, questionIDs)
	if err != nil {
		return nil, err
	}
	questionTitles := make(map[uint64]string, len(questions))
	for _, q := range questions {
		questionTitles[q.ID] = q.Title
	}

	res := make([]*dto.DynamicDTO, 0, len(dynamics))
	for _, d := range dynamics {
		item := &dto.DynamicDTO{
			ID:        d.ID,
			Kind:      d.Kind,
			TargetID:  d.TargetID,
			CreatedAt: d.CreatedAt,
		}
		switch d.Kind {
		case consts.DynamicTopic:
			item.Title = topicTitles[d.TargetID]
		case consts.DynamicQuestion, consts.DynamicAsk:
			item.Title = questionTitles[d.TargetID]
		case consts.DynamicAnswer:
			if qid, ok := answerQuestion[d.TargetID]; ok {
				item.Title = questionTitles[qid]
			}
		}
		res = append(res, item)
	}
	return res, nil
}
