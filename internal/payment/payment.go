// Package payment simulates on-chain payments. Nothing here touches a real
// network: results are drawn from an injected random source.
package payment

import (
	"context"
	"fmt"
	"math/rand"
	"strconv"
	"sync"
	"time"

	errorvalues "github.com/limbo/sovet/internal/error_values"
	"github.com/limbo/sovet/pkg/entity"
	"go.uber.org/zap"
)

//go:generate mockgen -source=payment.go -destination=mocks/mock_gateway.go -package=mocks

// Prices in ETH.
const (
	SingleTipPrice           = "0.001"
	WeeklySubscriptionPrice  = "0.01"
	MonthlySubscriptionPrice = "0.03"
)

// EthUsdPrice is the reference rate used for displayed dollar values.
const EthUsdPrice = 2500.0

// UnlockDuration is how long a paid single tip keeps access open.
const UnlockDuration = 24 * time.Hour

var TipCosts = map[entity.Experience]string{
	entity.Beginner:     "0.001",
	entity.Intermediate: "0.002",
	entity.Advanced:     "0.003",
}

type Gateway interface {
	ProcessPayment(ctx context.Context, fromAddress, amount, tipID string) (entity.PaymentResult, error)
	CheckStatus(ctx context.Context, txHash string) (entity.TxStatus, error)
}

type SimulatedCfg struct {
	// Delay imitates network latency of every call
	Delay       time.Duration
	SuccessRate float64
	Seed        int64
}

// Simulated succeeds with SuccessRate and reports known transactions as
// pending, confirmed or failed in a 20/70/10 split.
type Simulated struct {
	mu          sync.Mutex
	rnd         *rand.Rand
	delay       time.Duration
	successRate float64
	known       map[string]struct{}
	logger      *zap.Logger
}

func NewSimulated(cfg SimulatedCfg, logger *zap.Logger) *Simulated {
	if logger == nil {
		logger = zap.NewNop()
	}
	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rate := cfg.SuccessRate
	if rate <= 0 {
		rate = 0.9
	}
	return &Simulated{
		rnd:         rand.New(rand.NewSource(seed)),
		delay:       cfg.Delay,
		successRate: rate,
		known:       make(map[string]struct{}),
		logger:      logger,
	}
}

func (s *Simulated) ProcessPayment(ctx context.Context, fromAddress, amount, tipID string) (entity.PaymentResult, error) {
	if _, err := strconv.ParseFloat(amount, 64); err != nil {
		return entity.PaymentResult{}, fmt.Errorf("%w: invalid amount %q", errorvalues.ErrValidation, amount)
	}
	if err := s.wait(ctx); err != nil {
		return entity.PaymentResult{}, err
	}
	target := tipID
	if target == "" {
		target = "subscription"
	}
	s.logger.Info("payment_processing",
		zap.String("from", fromAddress),
		zap.String("amount", amount),
		zap.String("target", target),
	)

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.rnd.Float64() >= s.successRate {
		return entity.PaymentResult{
			Success: false,
			Error:   "Payment failed - insufficient funds or network error",
		}, nil
	}
	hash := s.txHash()
	s.known[hash] = struct{}{}
	return entity.PaymentResult{Success: true, TxHash: hash}, nil
}

func (s *Simulated) CheckStatus(ctx context.Context, txHash string) (entity.TxStatus, error) {
	if err := s.wait(ctx); err != nil {
		return entity.TxStatus{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.known[txHash]; !ok {
		return entity.TxStatus{}, errorvalues.ErrTxNotFound
	}
	switch r := s.rnd.Float64(); {
	case r > 0.8:
		return entity.TxStatus{Status: entity.PaymentPending}, nil
	case r > 0.1:
		return entity.TxStatus{Status: entity.PaymentConfirmed, BlockNumber: s.rnd.Int63n(1_000_000)}, nil
	default:
		return entity.TxStatus{Status: entity.PaymentFailed}, nil
	}
}

func (s *Simulated) wait(ctx context.Context) error {
	if s.delay <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(s.delay)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// txHash must be called with mu held.
func (s *Simulated) txHash() string {
	const hexDigits = "0123456789abcdef"
	b := make([]byte, 66)
	b[0], b[1] = '0', 'x'
	for i := 2; i < len(b); i++ {
		b[i] = hexDigits[s.rnd.Intn(len(hexDigits))]
	}
	return string(b)
}

// TipCost is the single tip price for difficulty. Unknown difficulties pay
// the base price.
func TipCost(difficulty entity.Experience) string {
	if cost, ok := TipCosts[difficulty]; ok {
		return cost
	}
	return SingleTipPrice
}

func SubscriptionPrice(t entity.SubscriptionType) (string, time.Duration, error) {
	switch t {
	case entity.Weekly:
		return WeeklySubscriptionPrice, 7 * 24 * time.Hour, nil
	case entity.Monthly:
		return MonthlySubscriptionPrice, 30 * 24 * time.Hour, nil
	}
	return "", 0, errorvalues.ErrUnknownSubscriptionType
}

// FormatEth renders an amount with four decimals, e.g. "0.0010 ETH".
func FormatEth(amount string) string {
	v, _ := strconv.ParseFloat(amount, 64)
	return strconv.FormatFloat(v, 'f', 4, 64) + " ETH"
}

// UsdValue converts an amount at ethPrice dollars per ETH, e.g. "$2.50".
func UsdValue(amount string, ethPrice float64) string {
	v, _ := strconv.ParseFloat(amount, 64)
	return "$" + strconv.FormatFloat(v*ethPrice, 'f', 2, 64)
}
