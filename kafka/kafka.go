package kafka

import (
	"time"

	"github.com/confluentinc/confluent-kafka-go/kafka"
	"go.uber.org/zap"

	"github.com/shahafle/costs-manager/logger"
)

// LogTopic carries serialized log entries from every service to the
// logs service.
const LogTopic = "service_logs"

type Producer struct {
	producer *kafka.Producer
}

func NewProducer(bootstrapServers string) (*Producer, error) {
	config := &kafka.ConfigMap{
		"bootstrap.servers": bootstrapServers,
	}

	producer, err := kafka.NewProducer(config)
	if err != nil {
		return nil, err
	}

	// Drain delivery reports so the internal queue never fills up.
	// Failed deliveries are dropped: the pipeline is at-most-once.
	go func() {
		for range producer.Events() {
		}
	}()

	return &Producer{producer: producer}, nil
}

func (p *Producer) Produce(topic string, message []byte) error {
	msg := &kafka.Message{
		TopicPartition: kafka.TopicPartition{Topic: &topic, Partition: kafka.PartitionAny},
		Value:          message,
	}
	return p.producer.Produce(msg, nil)
}

// Emit satisfies logger.Emitter. Delivery failure is swallowed here on
// purpose: logging it would feed the entry straight back into this
// emitter.
func (p *Producer) Emit(payload []byte) {
	_ = p.Produce(LogTopic, payload)
}

func (p *Producer) Close() {
	p.producer.Close()
}

type Consumer struct {
	consumer *kafka.Consumer
	done     chan struct{}
}

func NewConsumer(bootstrapServers, groupID string) (*Consumer, error) {
	consumer, err := kafka.NewConsumer(&kafka.ConfigMap{
		"bootstrap.servers":  bootstrapServers,
		"group.id":           groupID,
		"session.timeout.ms": "45000",
		"auto.offset.reset":  "latest",
	})
	if err != nil {
		return nil, err
	}

	return &Consumer{consumer: consumer, done: make(chan struct{})}, nil
}

// Start subscribes to topic and feeds every message value to handle on
// a background goroutine until Close is called.
func (c *Consumer) Start(topic string, handle func([]byte)) error {
	if err := c.consumer.Subscribe(topic, nil); err != nil {
		logger.Get().Error("failed to subscribe to topic",
			zap.String("topic", topic),
			zap.Error(err))
		return err
	}

	logger.Get().Info("kafka consumer started",
		zap.String("topic", topic))

	go func() {
		for {
			select {
			case <-c.done:
				return
			default:
			}

			msg, err := c.consumer.ReadMessage(500 * time.Millisecond)
			if err != nil {
				if kerr, ok := err.(kafka.Error); ok && kerr.Code() == kafka.ErrTimedOut {
					continue
				}
				logger.Get().Error("consumer error",
					zap.String("topic", topic),
					zap.Error(err))
				continue
			}
			handle(msg.Value)
		}
	}()
	return nil
}

func (c *Consumer) Close() {
	close(c.done)
	_ = c.consumer.Close()
}
