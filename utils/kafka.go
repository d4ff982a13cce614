package utils

import (
	"context"
	"strings"
	"time"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// AuditPublisher hands audit events to Kafka so slow writes never sit on the
// request path. It is nil-safe: a nil publisher means brokers are not
// configured and callers fall back to direct database writes.
type AuditPublisher struct {
	writer *kafka.Writer
	log    *zap.Logger
}

// NewAuditPublisher returns nil when no brokers are configured.
func NewAuditPublisher(brokers, topic string, log *zap.Logger) *AuditPublisher {
	if brokers == "" {
		return nil
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &AuditPublisher{
		writer: &kafka.Writer{
			Addr:         kafka.TCP(strings.Split(brokers, ",")...),
			Topic:        topic,
			Balancer:     &kafka.LeastBytes{},
			RequiredAcks: kafka.RequireOne,
			BatchTimeout: 100 * time.Millisecond,
		},
		log: log,
	}
}

func (p *AuditPublisher) Publish(ctx context.Context, key string, payload []byte) error {
	if p == nil {
		return nil
	}
	return p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(key),
		Value: payload,
	})
}

func (p *AuditPublisher) Close() error {
	if p == nil {
		return nil
	}
	return p.writer.Close()
}

// NewAuditReader builds the consumer-side reader for the audit topic.
func NewAuditReader(brokers, topic string) *kafka.Reader {
	return kafka.NewReader(kafka.ReaderConfig{
		Brokers:  strings.Split(brokers, ","),
		Topic:    topic,
		GroupID:  "artisan-registry-audit",
		MinBytes: 1,
		MaxBytes: 10e6,
	})
}
