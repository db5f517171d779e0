package kafka

import (
	"Zheye/internal/pkg/consts"
	"Zheye/internal/pkg/es"
	"Zheye/internal/pkg/util"
	"context"
	log "log/slog"
	"time"

	"github.com/IBM/sarama"
)

// QuestionsHandler 根据 questions 表的 binlog 维护搜索索引
type QuestionsHandler struct {
	questionESRepo es.QuestionRepo
}

func NewQuestionsHandler(questionESRepo es.QuestionRepo) *QuestionsHandler {
	return &QuestionsHandler{questionESRepo: questionESRepo}
}

func (s *QuestionsHandler) Setup(sarama.ConsumerGroupSession) error {
	log.Info("questions consumer setup")
	return nil
}

func (s *QuestionsHandler) Cleanup(sarama.ConsumerGroupSession) error {
	log.Info("questions consumer cleanup")
	return nil
}

func (s *QuestionsHandler) ConsumeClaim(session sarama.ConsumerGroupSession, claim sarama.ConsumerGroupClaim) error {
	log.Info("topic-questions consume claim")
	err := pullMessageBatch(session, claim, s.logic)
	if err != nil {
		log.Error("topic-questions process batch error", "err", err)
		return err
	}
	log.Info("topic-questions consume claim end")
	return nil
}

func (s *QuestionsHandler) logic(ctx context.Context, msg *sarama.ConsumerMessage) error {
	canalMsg, err := ToCanalMessage(msg, consts.TableQuestions)
	if err != nil {
		return nil
	}

	for _, row := range canalMsg.Data {
		switch canalMsg.Type {
		case DELETE:
			if err = s.questionESRepo.DeleteQuestion(ctx, StrToUint64(row["id"])); err != nil {
				return err
			}
		case INSERT, UPDATE:
			doc := toQuestionES(row)
			if doc.ID == 0 {
				continue
			}
			// binlog 时间戳作为外部版本号，乱序到达的旧数据会被丢弃
			if err = s.questionESRepo.IndexQuestion(ctx, doc, canalMsg.TS); err != nil {
				return err
			}
		}
	}
	return nil
}

func toQuestionES(row map[string]interface{}) *es.QuestionES {
	return &es.QuestionES{
		ID:          StrToUint64(row["id"]),
		UserID:      StrToUint64(row["user_id"]),
		Title:       util.ToSimplified(StrToString(row["title"])),
		Description: util.ToSimplified(StrToString(row["description"])),
		AnswerCount: int(StrToInt64(row["answer_count"])),
		ViewCount:   StrToInt64(row["view_count"]),
		CreatedAt:   StrToTime(row["created_at"], time.Now()),
	}
}
