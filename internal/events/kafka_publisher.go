package events

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"inventory-management/internal/config"

	"github.com/IBM/sarama"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	publishAttempts = 3
	publishTimeout  = 5 * time.Second
)

// KafkaEventPublisher implements EventPublisher using Kafka
type KafkaEventPublisher struct {
	producer  sarama.SyncProducer
	logger    *zap.Logger
	config    *config.Config
	baseDelay time.Duration
}

// NewSaramaConfig builds the producer configuration from cfg
func NewSaramaConfig(cfg *config.Config) *sarama.Config {
	config := sarama.NewConfig()
	config.ClientID = cfg.KafkaClientID
	config.Producer.Return.Successes = true
	config.Producer.Retry.Max = cfg.KafkaRetries
	config.Producer.Idempotent = true
	config.Net.MaxOpenRequests = 1

	switch cfg.KafkaAcks {
	case "0":
		config.Producer.RequiredAcks = sarama.NoResponse
	case "1":
		config.Producer.RequiredAcks = sarama.WaitForLocal
	default:
		config.Producer.RequiredAcks = sarama.WaitForAll
	}
	// idempotent producers require acks=all
	if config.Producer.Idempotent && config.Producer.RequiredAcks != sarama.WaitForAll {
		config.Producer.Idempotent = false
	}

	return config
}

// NewKafkaEventPublisher connects a sync producer to the configured brokers
func NewKafkaEventPublisher(cfg *config.Config, logger *zap.Logger) (*KafkaEventPublisher, error) {
	producer, err := sarama.NewSyncProducer(cfg.KafkaBrokers, NewSaramaConfig(cfg))
	if err != nil {
		return nil, fmt.Errorf("failed to create Kafka producer: %w", err)
	}
	return NewKafkaEventPublisherWithProducer(producer, cfg, logger), nil
}

// NewKafkaEventPublisherWithProducer wraps an existing producer
func NewKafkaEventPublisherWithProducer(producer sarama.SyncProducer, cfg *config.Config, logger *zap.Logger) *KafkaEventPublisher {
	return &KafkaEventPublisher{
		producer:  producer,
		logger:    logger,
		config:    cfg,
		baseDelay: 100 * time.Millisecond,
	}
}

// Publish publishes an event to Kafka with retries and exponential backoff
func (p *KafkaEventPublisher) Publish(ctx context.Context, event interface{}) error {
	topic, err := p.topicForEvent(event)
	if err != nil {
		return fmt.Errorf("failed to determine topic: %w", err)
	}

	eventJSON, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	eventType := EventType(event)
	message := &sarama.ProducerMessage{
		Topic: topic,
		Value: sarama.ByteEncoder(eventJSON),
		Headers: []sarama.RecordHeader{
			{Key: []byte("event-type"), Value: []byte(eventType)},
			{Key: []byte("event-id"), Value: []byte(uuid.New().String())},
			{Key: []byte("timestamp"), Value: []byte(time.Now().UTC().Format(time.RFC3339))},
		},
	}
	if key := partitionKey(event); key != "" {
		message.Key = sarama.StringEncoder(key)
	}

	for attempt := 0; attempt < publishAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("context cancelled: %w", err)
		}

		err := p.send(ctx, message)
		if err == nil {
			p.logger.Info("Event published to Kafka",
				zap.String("topic", topic),
				zap.String("event-type", eventType),
				zap.Int("attempt", attempt+1),
			)
			return nil
		}
		p.logger.Warn("Failed to publish event to Kafka, retrying",
			zap.String("topic", topic),
			zap.Error(err),
			zap.Int("attempt", attempt+1),
			zap.Int("max_retries", publishAttempts),
		)

		if attempt < publishAttempts-1 {
			delay := p.baseDelay * time.Duration(1<<uint(attempt))
			select {
			case <-ctx.Done():
				return fmt.Errorf("context cancelled during backoff: %w", ctx.Err())
			case <-time.After(delay):
			}
		}
	}

	return fmt.Errorf("failed to publish event to Kafka after %d attempts", publishAttempts)
}

// send delivers one message, giving up after publishTimeout.
func (p *KafkaEventPublisher) send(ctx context.Context, message *sarama.ProducerMessage) error {
	sendCtx, cancel := context.WithTimeout(ctx, publishTimeout)
	defer cancel()

	done := make(chan error, 1)
	go func() {
		_, _, err := p.producer.SendMessage(message)
		done <- err
	}()

	select {
	case err := <-done:
		return err
	case <-sendCtx.Done():
		return fmt.Errorf("timeout publishing event to Kafka: %w", sendCtx.Err())
	}
}

// Close closes the Kafka producer
func (p *KafkaEventPublisher) Close() error {
	if p.producer != nil {
		return p.producer.Close()
	}
	return nil
}

func (p *KafkaEventPublisher) topicForEvent(event interface{}) (string, error) {
	switch event.(type) {
	case SupplierCreatedEvent, SupplierUpdatedEvent, SupplierDeletedEvent:
		return p.config.KafkaTopicSuppliers, nil
	case ProductCreatedEvent, ProductUpdatedEvent, ProductDeletedEvent, StockQuantityUpdatedEvent:
		return p.config.KafkaTopicProducts, nil
	default:
		return "", fmt.Errorf("unknown event type: %T", event)
	}
}

// partitionKey keeps all events of one entity on one partition
func partitionKey(event interface{}) string {
	var id int64
	switch e := event.(type) {
	case SupplierCreatedEvent:
		id = e.SupplierID
	case SupplierUpdatedEvent:
		id = e.SupplierID
	case SupplierDeletedEvent:
		id = e.SupplierID
	case ProductCreatedEvent:
		id = e.ProductID
	case ProductUpdatedEvent:
		id = e.ProductID
	case ProductDeletedEvent:
		id = e.ProductID
	case StockQuantityUpdatedEvent:
		id = e.ProductID
	default:
		return ""
	}
	return strconv.FormatInt(id, 10)
}
