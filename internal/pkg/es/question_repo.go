package es

import (
	"context"
	"errors"
	"strconv"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/typedapi/types"
	"github.com/elastic/go-elasticsearch/v8/typedapi/types/enums/versiontype"
	"github.com/goccy/go-json"
)

const MaxSearchDepth = 400

type QuestionRepo interface {
	Search(ctx context.Context, keyword string, from, size int) ([]*QuestionES, int64, error)
	IndexQuestion(ctx context.Context, q *QuestionES, version int64) error
	DeleteQuestion(ctx context.Context, id uint64) error
}

type QuestionRepoImpl struct {
	client *elasticsearch.TypedClient
}

func NewQuestionRepo(client *elasticsearch.TypedClient) QuestionRepo {
	return &QuestionRepoImpl{client: client}
}

// Search 标题加权的全文检索，超出深度时不取文档只统计总数
func (s *QuestionRepoImpl) Search(ctx context.Context, keyword string, from, size int) ([]*QuestionES, int64, error) {
	if from >= MaxSearchDepth {
		from, size = 0, 0
	}
	if from+size > MaxSearchDepth {
		size = MaxSearchDepth - from
	}

	resp, err := s.client.Search().
		Index(QuestionIndex).
		Query(&types.Query{
			MultiMatch: &types.MultiMatchQuery{
				Query:  keyword,
				Fields: []string{"title^2", "description"},
			},
		}).
		From(from).
		Size(size).
		Do(ctx)
	if err != nil {
		return nil, 0, err
	}

	var total int64
	if resp.Hits.Total != nil {
		total = resp.Hits.Total.Value
	}

	results := make([]*QuestionES, 0, len(resp.Hits.Hits))
	for _, hit := range resp.Hits.Hits {
		if hit.Source_ == nil {
			continue
		}
		var q QuestionES
		if err = json.Unmarshal(hit.Source_, &q); err != nil {
			continue
		}
		results = append(results, &q)
	}
	return results, total, nil
}

// IndexQuestion 使用外部版本号写入，旧版本的 binlog 会被 ES 拒绝
func (s *QuestionRepoImpl) IndexQuestion(ctx context.Context, q *QuestionES, version int64) error {
	docID := strconv.FormatUint(q.ID, 10)

	_, err := s.client.Index(QuestionIndex).
		Id(docID).
		Document(q).
		Version(strconv.FormatInt(version, 10)).
		VersionType(versiontype.External).
		Do(ctx)

	if err != nil {
		var e *types.ElasticsearchError
		if errors.As(err, &e) {
			if e.Status == ConflictCode {
				return nil
			}
		}
		return err
	}

	return nil
}

func (s *QuestionRepoImpl) DeleteQuestion(ctx context.Context, id uint64) error {
	docID := strconv.FormatUint(id, 10)

	_, err := s.client.Delete(QuestionIndex, docID).Do(ctx)

	if err != nil {
		var e *types.ElasticsearchError
		if errors.As(err, &e) {
			if e.Status == NotFoundCode {
				return nil
			}
		}
		return err
	}

	return nil
}
