package kafka

import (
	"Zheye/internal/api/config"
	"Zheye/internal/api/dto"
	"context"
	log "log/slog"
	"strconv"

	"github.com/IBM/sarama"
	"github.com/goccy/go-json"
	"github.com/pkg/errors"
)

// ActivityProducer 将用户行为写入 Kafka，同一用户的行为落在同一分区
type ActivityProducer struct {
	producer sarama.SyncProducer
	topic    string
}

func NewActivityProducer(cfg *config.Config) (*ActivityProducer, error) {
	producer, err := sarama.NewSyncProducer(cfg.Kafka.Brokers, newProducerConfig(cfg.Kafka))
	if err != nil {
		return nil, errors.Wrap(err, "create activity producer")
	}
	return NewActivityProducerWith(producer, cfg.KafkaActivity.Topic), nil
}

func NewActivityProducerWith(producer sarama.SyncProducer, topic string) *ActivityProducer {
	return &ActivityProducer{producer: producer, topic: topic}
}

func (p *ActivityProducer) PublishActivity(ctx context.Context, event *dto.ActivityEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return errors.Wrap(err, "marshal activity")
	}

	partition, offset, err := p.producer.SendMessage(&sarama.ProducerMessage{
		Topic: p.topic,
		Key:   sarama.StringEncoder(strconv.FormatUint(event.ActorID, 10)),
		Value: sarama.ByteEncoder(payload),
	})
	if err != nil {
		return errors.Wrapf(err, "send activity of user %d", event.ActorID)
	}
	log.DebugContext(ctx, "activity published", "kind", event.Kind, "partition", partition, "offset", offset)
	return nil
}

func (p *ActivityProducer) Close() error {
	return p.producer.Close()
}
