package config

import (
	"time"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// NewKafkaWriter نویسنده Kafka برای رویدادهای پست؛ بدون KAFKA_BROKERS مقدار nil
func NewKafkaWriter(s *Settings, logger *zap.Logger) *kafka.Writer {
	if len(s.KafkaBrokers) == 0 {
		logger.Info("KAFKA_BROKERS is not set, post events disabled")
		return nil
	}
	logger.Info("✅ Kafka writer configured", zap.Strings("brokers", s.KafkaBrokers), zap.String("topic", s.KafkaTopic))
	return &kafka.Writer{
		Addr:         kafka.TCP(s.KafkaBrokers...),
		Topic:        s.KafkaTopic,
		Balancer:     &kafka.Hash{},
		RequiredAcks: kafka.RequireOne,
		WriteTimeout: 10 * time.Second,
	}
}
