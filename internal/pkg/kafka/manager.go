package kafka

import (
	"context"
	log "log/slog"

	"fluxo/internal/api/config"
	"fluxo/internal/pkg/cache"
	"fluxo/internal/repository"

	"github.com/IBM/sarama"
)

// ConsumerManager 管理所有 Kafka 消费者
type ConsumerManager struct {
	notifyConsumer sarama.ConsumerGroup
	notifyHandler  sarama.ConsumerGroupHandler
}

// NewConsumerManager 构造函数
func NewConsumerManager(
	cfg *config.Config,
	notificationRepo repository.NotificationRepo,
	viewCache cache.ViewCache,
) (*ConsumerManager, error) {
	saramaCfg := newSaramaConfig(cfg.Kafka)

	notifyConsumer, err := sarama.NewConsumerGroup(cfg.Kafka.Brokers, cfg.KafkaNotifyConsumer.GroupID, saramaCfg)
	if err != nil {
		return nil, err
	}
	notifyHandler := NewNotificationHandler(notificationRepo, viewCache)

	return &ConsumerManager{
		notifyConsumer: notifyConsumer,
		notifyHandler:  notifyHandler,
	}, nil
}

// Start 启动所有消费者
func (m *ConsumerManager) Start(ctx context.Context, cfg *config.Config) error {
	go func() {
		topic := cfg.KafkaNotifyConsumer.Topic
		log.Info("Notification consumer started", "topic", topic)
		for {
			if err := m.notifyConsumer.Consume(ctx, []string{topic}, m.notifyHandler); err != nil {
				log.Error("Error from consumer", "err", err)
			}
			if ctx.Err() != nil {
				return
			}
		}
	}()

	<-ctx.Done()
	log.Info("Kafka Manager shutting down...")

	if err := m.notifyConsumer.Close(); err != nil {
		log.Error("Failed to close notification consumer", "err", err)
	}

	return nil
}
