package config

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"
)

// SinkKind selects the transport POS events are delivered over.
type SinkKind string

const (
	SinkSimulated SinkKind = "simulated"
	SinkWebhook   SinkKind = "webhook"
	SinkAMQP      SinkKind = "amqp"
)

// Config holds application level configuration loaded from environment and flags.
type Config struct {
	RunAddress  string
	DatabaseURI string
	JWTSecret   string

	PosSinkKind        SinkKind
	PosWebhookURL      string
	AMQPURL            string
	AMQPExchange       string
	PosDeliveryTimeout time.Duration
	MaxRetries         int
	RetryBaseDelay     time.Duration
	QueueWorkers       int

	PosSendFailureRate float64
	PosLatency         time.Duration
	WebhookFailureRate float64
	WebhookLatency     time.Duration
	PaymentDeclineRate float64
	PaymentLatency     time.Duration

	TaxRate     float64
	DeliveryFee float64

	ShutdownTimeout time.Duration
}

const (
	defaultRunAddress         = ":8080"
	defaultJWTSecret          = "change-me-in-production"
	defaultSinkKind           = SinkSimulated
	defaultAMQPExchange       = "pos.events"
	defaultDeliveryTimeout    = 10 * time.Second
	defaultMaxRetries         = 3
	defaultRetryBaseDelay     = time.Second
	defaultQueueWorkers       = 1
	defaultPosSendFailureRate = 0.10
	defaultWebhookFailureRate = 0.05
	defaultPaymentDeclineRate = 0.05
	defaultTaxRate            = 0.08
	defaultDeliveryFee        = 5.99
	defaultShutdownTimeout    = 10 * time.Second
)

// Load parses configuration from flags and environment variables.
func Load() (*Config, error) {
	return load(os.Args[1:], os.LookupEnv)
}

type envLookup func(string) (string, bool)

func load(args []string, lookup envLookup) (*Config, error) {
	cfg := &Config{
		RunAddress:         getString(lookup, "RUN_ADDRESS", defaultRunAddress),
		DatabaseURI:        getString(lookup, "DATABASE_URI", ""),
		JWTSecret:          getString(lookup, "JWT_SECRET", defaultJWTSecret),
		PosSinkKind:        SinkKind(getString(lookup, "POS_SINK", string(defaultSinkKind))),
		PosWebhookURL:      getString(lookup, "POS_WEBHOOK_URL", ""),
		AMQPURL:            getString(lookup, "AMQP_URL", ""),
		AMQPExchange:       getString(lookup, "AMQP_EXCHANGE", defaultAMQPExchange),
		PosDeliveryTimeout: getDuration(lookup, "POS_DELIVERY_TIMEOUT", defaultDeliveryTimeout),
		MaxRetries:         getInt(lookup, "POS_MAX_RETRIES", defaultMaxRetries),
		RetryBaseDelay:     getDuration(lookup, "POS_RETRY_DELAY", defaultRetryBaseDelay),
		QueueWorkers:       getInt(lookup, "POS_QUEUE_WORKERS", defaultQueueWorkers),
		PosSendFailureRate: getFloat(lookup, "POS_SEND_FAILURE_RATE", defaultPosSendFailureRate),
		PosLatency:         getDuration(lookup, "POS_LATENCY", 0),
		WebhookFailureRate: getFloat(lookup, "WEBHOOK_FAILURE_RATE", defaultWebhookFailureRate),
		WebhookLatency:     getDuration(lookup, "WEBHOOK_LATENCY", 0),
		PaymentDeclineRate: getFloat(lookup, "PAYMENT_DECLINE_RATE", defaultPaymentDeclineRate),
		PaymentLatency:     getDuration(lookup, "PAYMENT_LATENCY", 0),
		TaxRate:            getFloat(lookup, "TAX_RATE", defaultTaxRate),
		DeliveryFee:        getFloat(lookup, "DELIVERY_FEE", defaultDeliveryFee),
		ShutdownTimeout:    getDuration(lookup, "SHUTDOWN_TIMEOUT", defaultShutdownTimeout),
	}

	fs := flag.NewFlagSet("flame", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	var (
		sinkKindStr        = string(cfg.PosSinkKind)
		retryDelayStr      = cfg.RetryBaseDelay.String()
		deliveryTimeoutStr = cfg.PosDeliveryTimeout.String()
		shutdownTimeoutStr = cfg.ShutdownTimeout.String()
	)

	fs.StringVar(&cfg.RunAddress, "a", cfg.RunAddress, "HTTP server listen address")
	fs.StringVar(&cfg.DatabaseURI, "d", cfg.DatabaseURI, "PostgreSQL DSN")
	fs.StringVar(&cfg.JWTSecret, "jwt-secret", cfg.JWTSecret, "Secret for verifying auth tokens")
	fs.StringVar(&sinkKindStr, "pos-sink", sinkKindStr, "POS event transport: simulated, webhook or amqp")
	fs.StringVar(&cfg.PosWebhookURL, "pos-webhook-url", cfg.PosWebhookURL, "Webhook endpoint for POS events")
	fs.StringVar(&cfg.AMQPURL, "amqp-url", cfg.AMQPURL, "AMQP broker URL for POS events")
	fs.IntVar(&cfg.MaxRetries, "pos-max-retries", cfg.MaxRetries, "Delivery attempts per POS event")
	fs.StringVar(&retryDelayStr, "pos-retry-delay", retryDelayStr, "Base delay before the first retry")
	fs.IntVar(&cfg.QueueWorkers, "pos-workers", cfg.QueueWorkers, "Concurrent POS event delivery workers")
	fs.StringVar(&deliveryTimeoutStr, "pos-timeout", deliveryTimeoutStr, "Per-attempt POS delivery timeout")
	fs.StringVar(&shutdownTimeoutStr, "shutdown-timeout", shutdownTimeoutStr, "Graceful shutdown timeout")

	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("parse flags: %w", err)
	}

	var err error

	cfg.PosSinkKind = SinkKind(sinkKindStr)

	if cfg.RetryBaseDelay, err = time.ParseDuration(retryDelayStr); err != nil {
		return nil, fmt.Errorf("invalid retry delay: %w", err)
	}

	if cfg.PosDeliveryTimeout, err = time.ParseDuration(deliveryTimeoutStr); err != nil {
		return nil, fmt.Errorf("invalid delivery timeout: %w", err)
	}

	if cfg.ShutdownTimeout, err = time.ParseDuration(shutdownTimeoutStr); err != nil {
		return nil, fmt.Errorf("invalid shutdown timeout: %w", err)
	}

	if secretFile, ok := lookup("JWT_SECRET_FILE"); ok && secretFile != "" {
		content, err := os.ReadFile(secretFile)
		if err != nil {
			return nil, fmt.Errorf("read jwt secret file: %w", err)
		}
		cfg.JWTSecret = string(content)
	}

	switch cfg.PosSinkKind {
	case SinkSimulated:
	case SinkWebhook:
		if cfg.PosWebhookURL == "" {
			return nil, fmt.Errorf("POS webhook URL must be provided for the webhook sink")
		}
	case SinkAMQP:
		if cfg.AMQPURL == "" {
			return nil, fmt.Errorf("AMQP URL must be provided for the amqp sink")
		}
	default:
		return nil, fmt.Errorf("unknown POS sink kind: %q", cfg.PosSinkKind)
	}

	if cfg.MaxRetries <= 0 {
		cfg.MaxRetries = defaultMaxRetries
	}

	if cfg.RetryBaseDelay <= 0 {
		cfg.RetryBaseDelay = defaultRetryBaseDelay
	}

	if cfg.QueueWorkers <= 0 {
		cfg.QueueWorkers = defaultQueueWorkers
	}

	if cfg.PosDeliveryTimeout <= 0 {
		cfg.PosDeliveryTimeout = defaultDeliveryTimeout
	}

	if cfg.ShutdownTimeout <= 0 {
		cfg.ShutdownTimeout = defaultShutdownTimeout
	}

	if cfg.PosSendFailureRate < 0 || cfg.PosSendFailureRate > 1 {
		return nil, fmt.Errorf("POS send failure rate must be within [0, 1]")
	}

	if cfg.WebhookFailureRate < 0 || cfg.WebhookFailureRate > 1 {
		return nil, fmt.Errorf("webhook failure rate must be within [0, 1]")
	}

	if cfg.PaymentDeclineRate < 0 || cfg.PaymentDeclineRate > 1 {
		return nil, fmt.Errorf("payment decline rate must be within [0, 1]")
	}

	if cfg.TaxRate < 0 {
		return nil, fmt.Errorf("tax rate must not be negative")
	}

	if cfg.DeliveryFee < 0 {
		return nil, fmt.Errorf("delivery fee must not be negative")
	}

	return cfg, nil
}

func getString(lookup envLookup, key, def string) string {
	if v, ok := lookup(key); ok && v != "" {
		return v
	}
	return def
}

func getInt(lookup envLookup, key string, def int) int {
	if v, ok := lookup(key); ok && v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func getFloat(lookup envLookup, key string, def float64) float64 {
	if v, ok := lookup(key); ok && v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return def
}

func getDuration(lookup envLookup, key string, def time.Duration) time.Duration {
	if v, ok := lookup(key); ok && v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}
