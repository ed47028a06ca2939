package services

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sony/gobreaker/v2"
)

type Charge struct {
	Amount  int64
	Method  string
	Details map[string]any
}

// PaymentResult is the gateway's answer. A declined charge is a result with
// Success=false and a Message, not an error.
type PaymentResult struct {
	Success       bool
	TransactionID string
	Message       string
}

type PaymentGateway interface {
	Charge(ctx context.Context, c Charge) (PaymentResult, error)
}

// MockGateway approves every charge after Delay unless Decline is set.
type MockGateway struct {
	Delay          time.Duration
	Decline        bool
	DeclineMessage string
}

func (m MockGateway) Charge(ctx context.Context, c Charge) (PaymentResult, error) {
	if m.Delay > 0 {
		t := time.NewTimer(m.Delay)
		defer t.Stop()
		select {
		case <-ctx.Done():
			return PaymentResult{}, ctx.Err()
		case <-t.C:
		}
	}
	if m.Decline {
		msg := m.DeclineMessage
		if msg == "" {
			msg = "Payment declined"
		}
		return PaymentResult{Success: false, Message: msg}, nil
	}
	return PaymentResult{Success: true, TransactionID: "txn_" + strings.ReplaceAll(uuid.NewString(), "-", "")[:9]}, nil
}

// BreakerGateway guards a gateway with a circuit breaker and a per-charge
// timeout. Only transport errors count as failures.
type BreakerGateway struct {
	next    PaymentGateway
	timeout time.Duration
	cb      *gobreaker.CircuitBreaker[PaymentResult]
}

func NewBreakerGateway(next PaymentGateway, timeout time.Duration) *BreakerGateway {
	cb := gobreaker.NewCircuitBreaker[PaymentResult](gobreaker.Settings{
		Name:        "payment",
		MaxRequests: 1,
		Interval:    time.Minute,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(c gobreaker.Counts) bool {
			return c.ConsecutiveFailures >= 5
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			log.Printf("[breaker] %s: %s -> %s", name, from, to)
		},
	})
	return &BreakerGateway{next: next, timeout: timeout, cb: cb}
}

func (b *BreakerGateway) Charge(ctx context.Context, c Charge) (PaymentResult, error) {
	if b.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, b.timeout)
		defer cancel()
	}
	res, err := b.cb.Execute(func() (PaymentResult, error) {
		return b.next.Charge(ctx, c)
	})
	if err != nil {
		return PaymentResult{}, fmt.Errorf("charge %d: %w", c.Amount, err)
	}
	return res, nil
}

func (b *BreakerGateway) State() gobreaker.State { return b.cb.State() }
