package config

import (
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cast"
)

type Config struct {
	ServicePort       string
	MetricsPort       string
	Environment       string
	JWTSecret         string
	MerchantAPIConfig MerchantAPIConfig
	SessionConfig     SessionConfig
	UploadConfig      UploadConfig
	KafkaConfig       KafkaConfig
	TracingConfig     TracingConfig
}

func CreateNewConfig() *Config {
	godotenv.Load(".env")

	conf := Config{
		ServicePort: getEnv("SERVICE_PORT", "8080"),
		MetricsPort: getEnv("METRICS_PORT", "8081"),
		Environment: getEnv("ENVIRONMENT", "development"),
		JWTSecret:   os.Getenv("JWT_SECRET"),
		MerchantAPIConfig: MerchantAPIConfig{
			BaseURL:         os.Getenv("MERCHANT_API_BASE_URL"),
			AnalyticsLogURL: os.Getenv("ANALYTICS_LOG_URL"),
			Timeout:         cast.ToDuration(getEnv("MERCHANT_API_TIMEOUT", "10s")),
		},
		SessionConfig: SessionConfig{
			TTL:           cast.ToDuration(getEnv("SESSION_TTL", "24h")),
			DraftTTL:      cast.ToDuration(getEnv("DRAFT_TTL", "2h")),
			SweepInterval: cast.ToDuration(getEnv("SWEEP_INTERVAL", "5m")),
		},
		UploadConfig: UploadConfig{
			MaxImageBytes:   cast.ToInt64(getEnv("MAX_IMAGE_BYTES", "5242880")),
			MaxRequestBytes: cast.ToInt64(getEnv("MAX_UPLOAD_BYTES", "33554432")),
		},
		KafkaConfig: KafkaConfig{
			BrokerAddress: os.Getenv("BROKER_ADDRESS"),
			BrokerTopic:   getEnv("BROKER_TOPIC", "merchant-products"),
		},
		TracingConfig: TracingConfig{
			CollectorHost: os.Getenv("COLLECTOR_HOST"),
		},
	}

	return &conf
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

type MerchantAPIConfig struct {
	BaseURL         string
	AnalyticsLogURL string
	Timeout         time.Duration
}

type SessionConfig struct {
	TTL           time.Duration
	DraftTTL      time.Duration
	SweepInterval time.Duration
}

type UploadConfig struct {
	MaxImageBytes   int64
	MaxRequestBytes int64
}

type KafkaConfig struct {
	BrokerAddress string
	BrokerTopic   string
}

type TracingConfig struct {
	CollectorHost string
}
