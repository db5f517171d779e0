package service

import (
	"Zheye/internal/api/dto"
	"Zheye/internal/model"
	"Zheye/internal/repository"
	"context"
)

// contentAssembler 把模型转换为带作者信息的 DTO，供多个服务复用
type contentAssembler struct {
	userSvc      UserService
	questionRepo repository.QuestionRepo
}

func newContentAssembler(userSvc UserService, questionRepo repository.QuestionRepo) *contentAssembler {
	return &contentAssembler{userSvc: userSvc, questionRepo: questionRepo}
}

func (a *contentAssembler) questions(ctx context.Context, questions []*model.Question) ([]*dto.QuestionDTO, error) {
	userIDs := make([]uint64, 0, len(questions))
	for _, q := range questions {
		userIDs = append(userIDs, q.UserID)
	}
	users, err := a.userSvc.GetUserSimpleMap(ctx, userIDs)
	if err != nil {
		return nil, err
	}

	res := make([]*dto.QuestionDTO, 0, len(questions))
	for _, q := range questions {
		res = append(res, questionDTO(q, users[q.UserID]))
	}
	return res, nil
}

// answers withQuestion 为 true 时补全问题标题，用于个人主页的回答列表
func (a *contentAssembler) answers(ctx context.Context, answers []*model.Answer, withQuestion bool) ([]*dto.AnswerDTO, error) {
	userIDs := make([]uint64, 0, len(answers))
	questionIDs := make([]uint64, 0, len(answers))
	for _, ans := range answers {
		userIDs = append(userIDs, ans.UserID)
		questionIDs = append(questionIDs, ans.QuestionID)
	}
	users, err := a.userSvc.GetUserSimpleMap(ctx, userIDs)
	if err != nil {
		return nil, err
	}

	titles := make(map[uint64]string)
	if withQuestion {
		questions, err := a.questionRepo.GetQuestionsByIds(ctx, questionIDs)
		if err != nil {
			return nil, err
		}
		for _, q := range questions {
			titles[q.ID] = q.Title
		}
	}

	res := make([]*dto.AnswerDTO, 0, len(answers))
	for _, ans := range answers {
		d := answerDTO(ans, users[ans.UserID])
		d.QuestionTitle = titles[ans.QuestionID]
		res = append(res, d)
	}
	return res, nil
}

// pairs 问题与最佳回答配对，requireAnswer 为 true 时丢弃没有回答的问题
func (a *contentAssembler) pairs(ctx context.Context, questions []*model.Question, best map[uint64]*model.Answer, requireAnswer bool) ([]*dto.QuestionWithAnswerDTO, error) {
	kept := make([]*model.Question, 0, len(questions))
	answers := make([]*model.Answer, 0, len(questions))
	for _, q := range questions {
		if ans, ok := best[q.ID]; ok {
			answers = append(answers, ans)
		} else if requireAnswer {
			continue
		}
		kept = append(kept, q)
	}

	questionDTOs, err := a.questions(ctx, kept)
	if err != nil {
		return nil, err
	}
	answerDTOs, err := a.answers(ctx, answers, false)
	if err != nil {
		return nil, err
	}
	answerByQuestion := make(map[uint64]*dto.AnswerDTO, len(answerDTOs))
	for _, d := range answerDTOs {
		answerByQuestion[d.QuestionID] = d
	}

	res := make([]*dto.QuestionWithAnswerDTO, 0, len(kept))
	for _, q := range questionDTOs {
		res = append(res, &dto.QuestionWithAnswerDTO{Question: q, Answer: answerByQuestion[q.ID]})
	}
	return res, nil
}

func questionDTO(q *model.Question, author *dto.UserDTO) *dto.QuestionDTO {
	return &dto.QuestionDTO{
		ID:          q.ID,
		Title:       q.Title,
		Description: q.Description,
		ViewCount:   q.ViewCount,
		AnswerCount: q.AnswerCount,
		CreatedAt:   q.CreatedAt,
		Author:      author,
	}
}

func answerDTO(a *model.Answer, author *dto.UserDTO) *dto.AnswerDTO {
	return &dto.AnswerDTO{
		ID:           a.ID,
		QuestionID:   a.QuestionID,
		Body:         a.Body,
		Excerpt:      a.Excerpt,
		CommentCount: a.CommentCount,
		CreatedAt:    a.CreatedAt,
		Author:       author,
	}
}

func topicDTO(t *model.Topic, following bool) *dto.TopicDTO {
	return &dto.TopicDTO{
		ID:          t.ID,
		CategoryID:  t.CategoryID,
		TopicName:   t.TopicName,
		TopicDesc:   t.TopicDesc,
		IsFollowing: following,
	}
}

// orderByIds 按给定 ID 顺序重排查询结果
func orderByIds(questions []*model.Question, ids []uint64) []*model.Question {
	byID := make(map[uint64]*model.Question, len(questions))
	for _, q := range questions {
		byID[q.ID] = q
	}
	res := make([]*model.Question, 0, len(ids))
	for _, id := range ids {
		if q, ok := byID[id]; ok {
			res = append(res, q)
		}
	}
	return res
}
