package payment_test

import (
	"context"
	"strings"
	"testing"
	"time"

	errorvalues "github.com/limbo/sovet/internal/error_values"
	"github.com/limbo/sovet/internal/payment"
	"github.com/limbo/sovet/pkg/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProcessPayment(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("always succeeds with full rate", func(t *testing.T) {
		gw := payment.NewSimulated(payment.SimulatedCfg{SuccessRate: 1, Seed: 7}, nil)
		res, err := gw.ProcessPayment(ctx, "0xabc", payment.WeeklySubscriptionPrice, "")
		require.NoError(t, err)
		assert.True(t, res.Success)
		assert.Len(t, res.TxHash, 66)
		assert.True(t, strings.HasPrefix(res.TxHash, "0x"))
	})
	t.Run("never succeeds with tiny rate", func(t *testing.T) {
		gw := payment.NewSimulated(payment.SimulatedCfg{SuccessRate: 1e-12, Seed: 7}, nil)
		res, err := gw.ProcessPayment(ctx, "0xabc", payment.SingleTipPrice, "tip_1")
		require.NoError(t, err)
		assert.False(t, res.Success)
		assert.Empty(t, res.TxHash)
		assert.NotEmpty(t, res.Error)
	})
	t.Run("invalid amount", func(t *testing.T) {
		gw := payment.NewSimulated(payment.SimulatedCfg{Seed: 7}, nil)
		_, err := gw.ProcessPayment(ctx, "0xabc", "lots", "")
		assert.ErrorIs(t, err, errorvalues.ErrValidation)
	})
	t.Run("cancelled while waiting", func(t *testing.T) {
		gw := payment.NewSimulated(payment.SimulatedCfg{Seed: 7, Delay: time.Hour}, nil)
		cctx, cancel := context.WithCancel(ctx)
		cancel()
		_, err := gw.ProcessPayment(cctx, "0xabc", payment.SingleTipPrice, "")
		assert.ErrorIs(t, err, context.Canceled)
	})
}

func TestCheckStatus(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	gw := payment.NewSimulated(payment.SimulatedCfg{SuccessRate: 1, Seed: 42}, nil)

	_, err := gw.CheckStatus(ctx, "0xdeadbeef")
	assert.ErrorIs(t, err, errorvalues.ErrTxNotFound)

	res, err := gw.ProcessPayment(ctx, "0xabc", payment.MonthlySubscriptionPrice, "")
	require.NoError(t, err)
	seen := make(map[entity.PaymentStatus]int)
	for range 500 {
		st, err := gw.CheckStatus(ctx, res.TxHash)
		require.NoError(t, err)
		seen[st.Status]++
		if st.Status == entity.PaymentConfirmed {
			assert.GreaterOrEqual(t, st.BlockNumber, int64(0))
		}
	}
	assert.Len(t, seen, 3)
	assert.Greater(t, seen[entity.PaymentConfirmed], seen[entity.PaymentPending])
	assert.Greater(t, seen[entity.PaymentPending], 0)
	assert.Greater(t, seen[entity.PaymentFailed], 0)
}

func TestSubscriptionPrice(t *testing.T) {
	t.Parallel()
	price, dur, err := payment.SubscriptionPrice(entity.Weekly)
	require.NoError(t, err)
	assert.Equal(t, "0.01", price)
	assert.Equal(t, 7*24*time.Hour, dur)

	price, dur, err = payment.SubscriptionPrice(entity.Monthly)
	require.NoError(t, err)
	assert.Equal(t, "0.03", price)
	assert.Equal(t, 30*24*time.Hour, dur)

	_, _, err = payment.SubscriptionPrice("yearly")
	assert.ErrorIs(t, err, errorvalues.ErrUnknownSubscriptionType)
}

func TestFormatting(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "0.0010 ETH", payment.FormatEth(payment.SingleTipPrice))
	assert.Equal(t, "$30.00", payment.UsdValue(payment.WeeklySubscriptionPrice, 3000))
	assert.Equal(t, "0.002", payment.TipCosts[entity.Intermediate])
	assert.Equal(t, "0.003", payment.TipCost(entity.Advanced))
	assert.Equal(t, payment.SingleTipPrice, payment.TipCost("wizard"))
}
