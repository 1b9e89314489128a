package kafka

import (
	"Pressroom/internal/api/config"
	"context"
	log "log/slog"

	"github.com/IBM/sarama"
)

// ConsumerManager 管理 Kafka 消费者
type ConsumerManager struct {
	behaviorConsumer sarama.ConsumerGroup
	behaviorHandler  sarama.ConsumerGroupHandler
}

// NewConsumerManager 构造函数
func NewConsumerManager(cfg *config.Config, profiles ProfileInvalidator) (*ConsumerManager, error) {
	saramaCfg := newSaramaConfig(cfg.Kafka)

	behaviorConsumer, err := sarama.NewConsumerGroup(cfg.Kafka.Brokers, cfg.KafkaBehaviorConsumer.GroupID, saramaCfg)
	if err != nil {
		return nil, err
	}

	return &ConsumerManager{
		behaviorConsumer: behaviorConsumer,
		behaviorHandler:  NewBehaviorHandler(profiles),
	}, nil
}

// Start 阻塞消费直到 ctx 结束
func (m *ConsumerManager) Start(ctx context.Context, cfg *config.Config) error {
	go func() {
		for err := range m.behaviorConsumer.Errors() {
			log.Error("Behavior consumer error", "err", err)
		}
	}()

	go func() {
		topic := cfg.KafkaBehaviorConsumer.Topic
		log.Info("Behavior consumer started", "topic", topic)
		for {
			if err := m.behaviorConsumer.Consume(ctx, []string{topic}, m.behaviorHandler); err != nil {
				log.Error("Error from consumer", "err", err)
			}
			if ctx.Err() != nil {
				return
			}
		}
	}()

	<-ctx.Done()
	log.Info("Kafka Manager shutting down...")

	if err := m.behaviorConsumer.Close(); err != nil {
		log.Error("Failed to close behavior consumer", "err", err)
	}
	return nil
}
