package kafka

import (
	"time"

	"github.com/hainweb/merchant-console/config"
	"github.com/segmentio/kafka-go"
)

// CreateKafkaWriter returns nil when no broker is configured.
func CreateKafkaWriter(config *config.Config) *kafka.Writer {
	if config.KafkaConfig.BrokerAddress == "" {
		return nil
	}

	return &kafka.Writer{
		Addr:                   kafka.TCP(config.KafkaConfig.BrokerAddress),
		Topic:                  config.KafkaConfig.BrokerTopic,
		Balancer:               &kafka.LeastBytes{},
		BatchTimeout:           10 * time.Millisecond,
		RequiredAcks:           kafka.RequireOne,
		AllowAutoTopicCreation: true,
	}
}
