package kafka

import (
	"context"
	log "log/slog"
	"strconv"

	"fluxo/internal/api/config"

	"github.com/IBM/sarama"
	"github.com/goccy/go-json"
)

// NotificationProducer 通知事件同步生产者
type NotificationProducer struct {
	producer sarama.SyncProducer
	topic    string
}

func NewNotificationProducer(cfg *config.Config) (*NotificationProducer, error) {
	producer, err := sarama.NewSyncProducer(cfg.Kafka.Brokers, newProducerConfig(cfg.Kafka))
	if err != nil {
		return nil, err
	}
	return &NotificationProducer{
		producer: producer,
		topic:    cfg.KafkaNotifyConsumer.Topic,
	}, nil
}

// PublishNotification 投递通知事件，按接收者分区保证单用户有序
func (s *NotificationProducer) PublishNotification(ctx context.Context, event *NotificationEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}

	msg := &sarama.ProducerMessage{
		Topic: s.topic,
		Key:   sarama.StringEncoder(strconv.FormatUint(event.RecipientID, 10)),
		Value: sarama.ByteEncoder(payload),
	}

	partition, offset, err := s.producer.SendMessage(msg)
	if err != nil {
		return err
	}
	log.InfoContext(ctx, "notification event published",
		"type", event.Type, "recipient", event.RecipientID,
		"partition", partition, "offset", offset)
	return nil
}

func (s *NotificationProducer) Close() error {
	return s.producer.Close()
}
