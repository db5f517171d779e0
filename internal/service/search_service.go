package service

import (
	"Zheye/internal/api/dto"
	"Zheye/internal/model"
	"Zheye/internal/pkg/es"
	"Zheye/internal/pkg/util"
	"Zheye/internal/repository"
	"context"
	log "log/slog"
	"strings"
)

type SearchService interface {
	SearchQuestions(ctx context.Context, keyword string, pager util.Pager) (*dto.Page, error)
}

type SearchServiceImpl struct {
	questionES   es.QuestionRepo
	questionRepo repository.QuestionRepo
	assembler    *contentAssembler
}

// NewSearchService questionES 为空时退化为数据库模糊查询
func NewSearchService(questionES es.QuestionRepo, questionRepo repository.QuestionRepo, userSvc UserService) SearchService {
	return &SearchServiceImpl{
		questionES:   questionES,
		questionRepo: questionRepo,
		assembler:    newContentAssembler(userSvc, questionRepo),
	}
}

func (s *SearchServiceImpl) SearchQuestions(ctx context.Context, keyword string, pager util.Pager) (*dto.Page, error) {
	keyword = util.ToSimplified(strings.TrimSpace(keyword))
	if keyword == "" {
		return nil, ErrSearchKeywordRequired
	}

	// 与 ES 的 from+size 深度限制保持一致，超出深度只返回总数
	limit, offset := pager.Limit(), pager.Offset()
	beyond := offset >= es.MaxSearchDepth
	if !beyond && offset+limit > es.MaxSearchDepth {
		limit = es.MaxSearchDepth - offset
	}

	var (
		questions []*model.Question
		total     int64
		err       error
	)
	if s.questionES != nil {
		questions, total, err = s.searchES(ctx, keyword, offset, limit)
	} else {
		questions, total, err = s.questionRepo.SearchByKeyword(ctx, keyword, limit, offset)
	}
	if err != nil {
		return nil, err
	}
	if beyond {
		questions = []*model.Question{}
	}
	if total > es.MaxSearchDepth {
		total = es.MaxSearchDepth
	}

	items, err := s.assembler.questions(ctx, questions)
	if err != nil {
		return nil, err
	}
	return dto.NewPage(pager.Page, pager.PerPage, total, items), nil
}

// searchES 命中结果以数据库为准，索引滞后删除的问题直接丢弃
func (s *SearchServiceImpl) searchES(ctx context.Context, keyword string, from, size int) ([]*model.Question, int64, error) {
	hits, total, err := s.questionES.Search(ctx, keyword, from, size)
	if err != nil {
		log.ErrorContext(ctx, "search questions in es failed", "keyword", keyword, "err", err)
		return nil, 0, err
	}
	ids := make([]uint64, 0, len(hits))
	for _, h := range hits {
		ids = append(ids, h.ID)
	}
	questions, err := s.questionRepo.GetQuestionsByIds(ctx, ids)
	if err != nil {
		return nil, 0, err
	}
	return orderByIds(questions, ids), total, nil
}
