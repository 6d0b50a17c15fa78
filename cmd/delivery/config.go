package main

import "github.com/timour/delivery-service/internal/config"

// Config is the environment-derived configuration for the delivery service
// (spec.md §6). ServiceName/InstanceID/ConsulAddr are ambient concerns
// carried from the teacher's per-service Config the same way
// orders/main.go builds its own.
type Config struct {
	ServiceName string
	InstanceID  string

	GRPCAddr    string
	MetricsAddr string
	ConsulAddr  string

	AMQPUser string
	AMQPPass string
	AMQPHost string
	AMQPPort string

	RedisURL    string
	DatabaseURL string

	CustomerURI string
	MerchantURI string

	DispatcherConcurrency int64
}

// LoadConfig reads Config from the environment, mirroring
// orders/main.go's inline Config literal but collapsed into its own
// function since this service has more required external dependencies.
func LoadConfig() Config {
	return Config{
		ServiceName: config.GetEnv("SERVICE_NAME", "delivery"),
		InstanceID:  config.GetEnv("INSTANCE_ID", "delivery-1"),

		GRPCAddr:    config.GetEnv("GRPC_ADDR", "0.0.0.0:"+config.GetEnv("PORT", "9090")),
		MetricsAddr: config.GetEnv("METRICS_ADDR", "0.0.0.0:9091"),
		ConsulAddr:  config.GetEnv("CONSUL_ADDR", ""),

		AMQPUser: config.MustGetEnv("RBMQ_USER"),
		AMQPPass: config.MustGetEnv("RBMQ_PASS"),
		AMQPHost: config.MustGetEnv("RBMQ_HOST"),
		AMQPPort: config.GetEnv("RBMQ_PORT", "5672"),

		RedisURL:    config.MustGetEnv("REDIS_URL"),
		DatabaseURL: config.MustGetEnv("DATABASE_URL"),

		CustomerURI: config.MustGetEnv("CUSTOMER_URI"),
		MerchantURI: config.MustGetEnv("MERCHANT_URI"),

		DispatcherConcurrency: 100,
	}
}
