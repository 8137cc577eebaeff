package notifications

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/IBM/sarama"
)

// ProducerConfig contains configuration for the Kafka lifecycle producer
type ProducerConfig struct {
	Brokers          []string
	Topic            string
	RetryMax         int
	TimeoutMs        int
	RequiredAcks     sarama.RequiredAcks
	CompressionType  sarama.CompressionCodec
	IdempotentWrites bool
	MaxMessageBytes  int
}

// DefaultProducerConfig returns a default producer configuration
func DefaultProducerConfig() *ProducerConfig {
	return &ProducerConfig{
		Brokers:          []string{"localhost:9092"},
		Topic:            "seat-requests",
		RetryMax:         3,
		TimeoutMs:        10000,             // 10 seconds
		RequiredAcks:     sarama.WaitForAll, // Wait for all in-sync replicas
		CompressionType:  sarama.CompressionSnappy,
		IdempotentWrites: true,
		MaxMessageBytes:  1000000, // 1MB
	}
}

// KafkaProducer publishes request lifecycle events to Kafka
type KafkaProducer struct {
	producer sarama.SyncProducer
	config   *ProducerConfig
}

// NewKafkaProducer creates a new Kafka lifecycle producer
func NewKafkaProducer(config *ProducerConfig) (Producer, error) {
	saramaConfig := sarama.NewConfig()

	saramaConfig.Producer.Return.Successes = true
	saramaConfig.Producer.Return.Errors = true
	saramaConfig.Producer.RequiredAcks = config.RequiredAcks
	saramaConfig.Producer.Compression = config.CompressionType
	saramaConfig.Producer.Retry.Max = config.RetryMax
	saramaConfig.Producer.Timeout = time.Duration(config.TimeoutMs) * time.Millisecond
	saramaConfig.Producer.Idempotent = config.IdempotentWrites
	saramaConfig.Producer.MaxMessageBytes = config.MaxMessageBytes

	if config.IdempotentWrites {
		saramaConfig.Net.MaxOpenRequests = 1
	}

	// Hash partitioner keeps one event's lifecycle on one partition
	saramaConfig.Producer.Partitioner = sarama.NewHashPartitioner

	producer, err := sarama.NewSyncProducer(config.Brokers, saramaConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create Kafka producer: %w", err)
	}

	log.Printf("Kafka lifecycle producer created successfully")
	return &KafkaProducer{
		producer: producer,
		config:   config,
	}, nil
}

// PublishRequestLifecycle publishes a single lifecycle event to Kafka
func (kp *KafkaProducer) PublishRequestLifecycle(ctx context.Context, msg RequestLifecycleMessage) error {
	messageBytes, err := msg.ToJSON()
	if err != nil {
		return fmt.Errorf("failed to marshal lifecycle message: %w", err)
	}

	message := &sarama.ProducerMessage{
		Topic: kp.config.Topic,
		Key:   sarama.StringEncoder(msg.PartitionKey()),
		Value: sarama.ByteEncoder(messageBytes),
		Headers: []sarama.RecordHeader{
			{Key: []byte("type"), Value: []byte(msg.Type)},
			{Key: []byte("request_id"), Value: []byte(msg.RequestID)},
			{Key: []byte("event_id"), Value: []byte(msg.EventID)},
			{Key: []byte("occurred_at"), Value: []byte(msg.OccurredAt.Format(time.RFC3339))},
		},
		Timestamp: msg.OccurredAt,
	}

	partition, offset, err := kp.producer.SendMessage(message)
	if err != nil {
		return fmt.Errorf("failed to send lifecycle message to Kafka: %w", err)
	}

	log.Printf("Lifecycle event published - Topic: %s, Partition: %d, Offset: %d, Type: %s, Request: %s",
		kp.config.Topic, partition, offset, msg.Type, msg.RequestID)

	return nil
}

// Close closes the Kafka producer
func (kp *KafkaProducer) Close() error {
	if kp.producer != nil {
		if err := kp.producer.Close(); err != nil {
			return fmt.Errorf("failed to close Kafka producer: %w", err)
		}
		log.Printf("Kafka lifecycle producer closed")
	}
	return nil
}

// NoopProducer drops all messages. Used when Kafka is disabled so the
// request service never has to special-case a missing broker.
type NoopProducer struct{}

func NewNoopProducer() Producer {
	return &NoopProducer{}
}

func (p *NoopProducer) PublishRequestLifecycle(ctx context.Context, msg RequestLifecycleMessage) error {
	return nil
}

func (p *NoopProducer) Close() error {
	return nil
}
