package kafka

import (
	"Zheye/internal/api/dto"
	"Zheye/internal/pkg/logger"
	"Zheye/internal/service"
	"context"
	log "log/slog"

	"github.com/IBM/sarama"
	"github.com/goccy/go-json"
	"github.com/google/uuid"
)

// ActivityHandler 消费用户行为并扇出到关注者收件箱
type ActivityHandler struct {
	notifySvc service.NotifyService
}

func NewActivityHandler(notifySvc service.NotifyService) *ActivityHandler {
	return &ActivityHandler{notifySvc: notifySvc}
}

func (s *ActivityHandler) Setup(sarama.ConsumerGroupSession) error {
	log.Info("activity consumer setup")
	return nil
}

func (s *ActivityHandler) Cleanup(sarama.ConsumerGroupSession) error {
	log.Info("activity consumer cleanup")
	return nil
}

func (s *ActivityHandler) ConsumeClaim(session sarama.ConsumerGroupSession, claim sarama.ConsumerGroupClaim) error {
	log.Info("topic-activity consume claim")
	err := pullMessageBatch(session, claim, s.logic)
	if err != nil {
		log.Error("topic-activity process batch error", "err", err)
		return err
	}
	log.Info("topic-activity consume claim end")
	return nil
}

func (s *ActivityHandler) logic(ctx context.Context, msg *sarama.ConsumerMessage) error {
	var event dto.ActivityEvent
	if err := json.Unmarshal(msg.Value, &event); err != nil {
		// 无法解析的消息重试也没有意义
		log.Error("unmarshal activity error", "err", err, "offset", msg.Offset)
		return nil
	}
	if event.ActorID == 0 {
		return nil
	}

	ctx = logger.WithTraceID(ctx, uuid.NewString())
	return s.notifySvc.FanOut(ctx, &event)
}
