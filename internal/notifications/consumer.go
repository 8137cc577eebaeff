package notifications

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/IBM/sarama"

	"stagedoor/pkg/logger"
)

// Consumer drains request lifecycle events off Kafka and hands them to a
// Handler. The default handler logs decisions for the box office audit
// trail; delivery channels (email, SMS) plug in behind the same interface.
type Consumer interface {
	Start(ctx context.Context) error
	Stop() error
}

// Handler processes a single lifecycle message. Returning an error leaves
// the offset unmarked so the message is redelivered.
type Handler func(ctx context.Context, msg *RequestLifecycleMessage) error

// ConsumerConfig contains configuration for the Kafka lifecycle consumer
type ConsumerConfig struct {
	Brokers          []string
	GroupID          string
	Topics           []string
	SessionTimeoutMs int
	HeartbeatMs      int
	RetryBackoffMs   int
	OffsetOldest     bool
}

// DefaultConsumerConfig returns a default consumer configuration
func DefaultConsumerConfig() *ConsumerConfig {
	return &ConsumerConfig{
		Brokers:          []string{"localhost:9092"},
		GroupID:          "stagedoor-notifications",
		Topics:           []string{"seat-requests"},
		SessionTimeoutMs: 30000,
		HeartbeatMs:      3000,
		RetryBackoffMs:   100,
		OffsetOldest:     false,
	}
}

type KafkaConsumer struct {
	consumerGroup sarama.ConsumerGroup
	config        *ConsumerConfig
	handler       Handler
	cancel        context.CancelFunc
}

// NewKafkaConsumer creates a new Kafka lifecycle consumer. A nil handler
// falls back to LogHandler.
func NewKafkaConsumer(config *ConsumerConfig, handler Handler) (Consumer, error) {
	saramaConfig := sarama.NewConfig()

	saramaConfig.Consumer.Group.Session.Timeout = time.Duration(config.SessionTimeoutMs) * time.Millisecond
	saramaConfig.Consumer.Group.Heartbeat.Interval = time.Duration(config.HeartbeatMs) * time.Millisecond
	saramaConfig.Consumer.Retry.Backoff = time.Duration(config.RetryBackoffMs) * time.Millisecond
	saramaConfig.Consumer.Return.Errors = true
	saramaConfig.Consumer.Offsets.AutoCommit.Enable = true
	saramaConfig.Consumer.Offsets.AutoCommit.Interval = 1 * time.Second

	if config.OffsetOldest {
		saramaConfig.Consumer.Offsets.Initial = sarama.OffsetOldest
	} else {
		saramaConfig.Consumer.Offsets.Initial = sarama.OffsetNewest
	}

	consumerGroup, err := sarama.NewConsumerGroup(config.Brokers, config.GroupID, saramaConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create consumer group: %w", err)
	}

	if handler == nil {
		handler = LogHandler
	}

	return &KafkaConsumer{
		consumerGroup: consumerGroup,
		config:        config,
		handler:       handler,
	}, nil
}

// Start begins consuming in a background goroutine until ctx is done.
func (kc *KafkaConsumer) Start(ctx context.Context) error {
	ctx, kc.cancel = context.WithCancel(ctx)

	go kc.handleErrors()

	go func() {
		handler := &consumerGroupHandler{handler: kc.handler}
		for {
			select {
			case <-ctx.Done():
				log.Printf("Lifecycle consumer shutting down")
				return
			default:
				if err := kc.consumerGroup.Consume(ctx, kc.config.Topics, handler); err != nil {
					log.Printf("Error consuming lifecycle messages: %v", err)
					time.Sleep(time.Second)
				}
			}
		}
	}()

	log.Printf("Lifecycle consumer started for topics: %v", kc.config.Topics)
	return nil
}

func (kc *KafkaConsumer) handleErrors() {
	for err := range kc.consumerGroup.Errors() {
		log.Printf("Consumer group error: %v", err)
	}
}

func (kc *KafkaConsumer) Stop() error {
	if kc.cancel != nil {
		kc.cancel()
	}
	if err := kc.consumerGroup.Close(); err != nil {
		return fmt.Errorf("failed to close consumer group: %w", err)
	}
	log.Printf("Lifecycle consumer stopped")
	return nil
}

type consumerGroupHandler struct {
	handler Handler
}

func (h *consumerGroupHandler) Setup(sarama.ConsumerGroupSession) error {
	log.Printf("Consumer group session started")
	return nil
}

func (h *consumerGroupHandler) Cleanup(sarama.ConsumerGroupSession) error {
	log.Printf("Consumer group session ended")
	return nil
}

func (h *consumerGroupHandler) ConsumeClaim(session sarama.ConsumerGroupSession, claim sarama.ConsumerGroupClaim) error {
	for {
		select {
		case message := <-claim.Messages():
			if message == nil {
				return nil
			}

			msg, err := FromJSON(message.Value)
			if err != nil {
				// Poison message, mark it so it does not wedge the partition
				log.Printf("Error unmarshaling lifecycle message at offset %d: %v", message.Offset, err)
				session.MarkMessage(message, "")
				continue
			}

			if err := h.handler(session.Context(), msg); err != nil {
				log.Printf("Error handling lifecycle message %s: %v", msg.RequestID, err)
			} else {
				session.MarkMessage(message, "")
			}

		case <-session.Context().Done():
			return nil
		}
	}
}

// LogHandler records lifecycle events through the structured logger.
func LogHandler(ctx context.Context, msg *RequestLifecycleMessage) error {
	logger.GetDefault().InfoWithContext(ctx, "Seat request lifecycle event", map[string]interface{}{
		"type":       msg.Type,
		"request_id": msg.RequestID,
		"event_id":   msg.EventID,
		"status":     msg.Status,
		"seat_count": len(msg.SeatIDs),
		"customer":   msg.CustomerName,
	})
	return nil
}
