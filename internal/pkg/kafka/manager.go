package kafka

import (
	"Zheye/internal/api/config"
	"Zheye/internal/pkg/es"
	"Zheye/internal/service"
	"context"
	log "log/slog"

	"github.com/IBM/sarama"
)

type consumer struct {
	name    string
	topic   string
	group   sarama.ConsumerGroup
	handler sarama.ConsumerGroupHandler
}

// ConsumerManager 管理所有 Kafka 消费者
type ConsumerManager struct {
	consumers []*consumer
}

// NewConsumerManager questionESRepo 为空时不消费 questions 表的 binlog
func NewConsumerManager(
	cfg *config.Config,
	notifySvc service.NotifyService,
	questionESRepo es.QuestionRepo,
) (*ConsumerManager, error) {
	saramaCfg := newSaramaConfig(cfg.Kafka)
	m := &ConsumerManager{}

	add := func(name string, topicCfg config.KafkaTopicConfig, handler sarama.ConsumerGroupHandler) error {
		group, err := sarama.NewConsumerGroup(cfg.Kafka.Brokers, topicCfg.GroupID, saramaCfg)
		if err != nil {
			m.close()
			return err
		}
		m.consumers = append(m.consumers, &consumer{
			name:    name,
			topic:   topicCfg.Topic,
			group:   group,
			handler: handler,
		})
		return nil
	}

	if err := add("activity", cfg.KafkaActivity, NewActivityHandler(notifySvc)); err != nil {
		return nil, err
	}
	if err := add("user follows", cfg.KafkaUserFollows, NewUserFollowsHandler()); err != nil {
		return nil, err
	}
	if questionESRepo != nil {
		if err := add("questions", cfg.KafkaQuestions, NewQuestionsHandler(questionESRepo)); err != nil {
			return nil, err
		}
	}

	return m, nil
}

// Start 启动所有消费者，ctx 结束后关闭
func (m *ConsumerManager) Start(ctx context.Context) error {
	for _, c := range m.consumers {
		go func(c *consumer) {
			log.Info("consumer started", "name", c.name, "topic", c.topic)
			for {
				if err := c.group.Consume(ctx, []string{c.topic}, c.handler); err != nil {
					log.Error("Error from consumer", "name", c.name, "err", err)
				}
				if ctx.Err() != nil {
					return
				}
			}
		}(c)
	}

	<-ctx.Done()
	log.Info("Kafka Manager shutting down...")
	m.close()
	return nil
}

func (m *ConsumerManager) close() {
	for _, c := range m.consumers {
		if err := c.group.Close(); err != nil {
			log.Error("Failed to close consumer", "name", c.name, "err", err)
		}
	}
}
