package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	domainErrors "github.com/sunitsen/flame/internal/domain/errors"
	"github.com/sunitsen/flame/internal/domain/model"
	"github.com/sunitsen/flame/internal/pkg/clock"
)

// PaymentProcessor simulates a payment gateway: injected latency and a
// configurable decline rate (5% by default). Checkout aborts on decline;
// nothing about this flow touches the POS layer.
type PaymentProcessor struct {
	clock       clock.Clock
	logger      *slog.Logger
	declineRate float64
	latency     time.Duration

	randMu sync.Mutex
	rand   *rand.Rand
}

// PaymentOption tweaks simulation parameters.
type PaymentOption func(*PaymentProcessor)

// WithDeclineRate overrides the decline probability.
func WithDeclineRate(rate float64) PaymentOption {
	return func(p *PaymentProcessor) { p.declineRate = rate }
}

// WithPaymentLatency overrides the simulated gateway delay.
func WithPaymentLatency(d time.Duration) PaymentOption {
	return func(p *PaymentProcessor) { p.latency = d }
}

// WithPaymentRand injects a seeded random source.
func WithPaymentRand(r *rand.Rand) PaymentOption {
	return func(p *PaymentProcessor) { p.rand = r }
}

// NewPaymentProcessor constructs the simulated gateway.
func NewPaymentProcessor(clk clock.Clock, logger *slog.Logger, opts ...PaymentOption) *PaymentProcessor {
	p := &PaymentProcessor{
		clock:       clk,
		logger:      logger,
		declineRate: 0.05,
		rand:        rand.New(rand.NewSource(time.Now().UnixNano())),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Process charges the given amount. Returns the transaction id on success.
func (p *PaymentProcessor) Process(ctx context.Context, amount float64, details model.PaymentDetails) (string, error) {
	if details.CardName == "" || details.CardNumber == "" || details.Expiry == "" || details.CVV == "" {
		return "", domainErrors.ErrInvalidCard
	}
	if !ValidateCardNumber(details.CardNumber) {
		return "", domainErrors.ErrInvalidCard
	}

	if p.latency > 0 {
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-p.clock.After(p.latency):
		}
	}

	p.randMu.Lock()
	roll := p.rand.Float64()
	p.randMu.Unlock()
	if roll < p.declineRate {
		return "", domainErrors.ErrPaymentDeclined
	}

	transactionID := fmt.Sprintf("txn_%d_%s", p.clock.Now().UnixMilli(), strings.ReplaceAll(uuid.NewString(), "-", "")[:9])
	p.logger.Info("payment processed",
		slog.Float64("amount", amount),
		slog.String("transaction_id", transactionID),
		slog.String("card", maskCard(details.CardNumber)),
	)
	return transactionID, nil
}

func maskCard(number string) string {
	cleaned := strings.ReplaceAll(number, " ", "")
	if len(cleaned) < 4 {
		return "****"
	}
	return "****" + cleaned[len(cleaned)-4:]
}
