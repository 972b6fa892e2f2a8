package publisher

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"github.com/nickisanders/CPEService/internal/config"
	"github.com/nickisanders/CPEService/internal/model"
)

// KafkaPublisher implements the Publisher interface for Kafka.
type KafkaPublisher struct {
	config *config.KafkaConfig
	writer *kafka.Writer
	logger *zap.Logger
}

// NewKafkaPublisher creates a new KafkaPublisher.
func NewKafkaPublisher(cfg *config.KafkaConfig, logger *zap.Logger) *KafkaPublisher {
	return &KafkaPublisher{
		config: cfg,
		logger: logger,
	}
}

func (k *KafkaPublisher) Connect(ctx context.Context) error {
	k.writer = &kafka.Writer{
		Addr:         kafka.TCP(k.config.Brokers...),
		Topic:        k.config.Topic,
		Balancer:     &kafka.LeastBytes{},
		BatchSize:    k.config.BatchSize,
		BatchTimeout: time.Duration(k.config.BatchTimeout) * time.Millisecond,
		RequiredAcks: kafka.RequireAll,
		Async:        false,
	}

	pingMsg := struct {
		Type    string    `json:"type"`
		Message string    `json:"message"`
		Time    time.Time `json:"time"`
	}{
		Type:    "ping",
		Message: "CPEService startup",
		Time:    time.Now(),
	}

	pingMsgBytes, err := json.Marshal(pingMsg)
	if err != nil {
		return fmt.Errorf("failed to marshal ping message: %w", err)
	}

	err = k.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte("ping"),
		Value: pingMsgBytes,
	})
	if err != nil {
		return fmt.Errorf("failed to publish to kafka topic %s: %w", k.config.Topic, err)
	}

	k.logger.Info("Connected to Kafka",
		zap.Strings("brokers", k.config.Brokers),
		zap.String("topic", k.config.Topic))

	return nil
}

func (k *KafkaPublisher) Close() error {
	if k.writer != nil {
		err := k.writer.Close()
		if err != nil {
			return fmt.Errorf("failed to close Kafka connection: %w", err)
		}
	}

	k.logger.Info("Disconnected from Kafka")
	return nil
}

func (k *KafkaPublisher) PublishMint(ctx context.Context, event *model.MintEvent) error {
	if event == nil {
		return fmt.Errorf("cannot publish nil mint event")
	}

	message := struct {
		Type string           `json:"type"`
		Data *model.MintEvent `json:"data"`
		Time time.Time        `json:"time"`
	}{
		Type: "certificate_mint",
		Data: event,
		Time: time.Now(),
	}

	msgByte, err := json.Marshal(message)
	if err != nil {
		return fmt.Errorf("failed to marshal mint event: %w", err)
	}

	err = k.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(event.TransactionHash),
		Value: msgByte,
	})
	if err != nil {
		return fmt.Errorf("failed to publish mint event: %w", err)
	}

	k.logger.Info("Published mint event",
		zap.String("hash", event.TransactionHash),
		zap.String("recipient", event.Recipient),
		zap.Uint64("status", event.Status))

	return nil
}
