package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	errorvalues "github.com/limbo/sovet/internal/error_values"
	"github.com/limbo/sovet/internal/payment"
	paymentmocks "github.com/limbo/sovet/internal/payment/mocks"
	"github.com/limbo/sovet/internal/repository"
	"github.com/limbo/sovet/internal/repository/mocks"
	"github.com/limbo/sovet/internal/service"
	"github.com/limbo/sovet/pkg/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testAddress = "0x52908400098527886E0F7030069857D2E4169EE7"

func TestHasAccess(t *testing.T) {
	t.Parallel()
	ctrl := gomock.NewController(t)
	accessRepo := mocks.NewMockAccessRepositoryI(ctrl)
	serv := service.NewSubscriptionService(accessRepo, nil, nil)

	testCases := []struct {
		Desc   string
		Marker string
		Error  error
		Result bool
	}{
		{Desc: "no marker means free access", Marker: "", Result: true},
		{Desc: "granted", Marker: repository.AccessGranted, Result: true},
		{Desc: "revoked", Marker: "revoked", Result: false},
		{Desc: "error store unavailable", Error: errorvalues.ErrStoreUnavailable, Result: false},
	}
	ctx := context.Background()
	for _, tc := range testCases {
		t.Run(tc.Desc, func(t *testing.T) {
			accessRepo.EXPECT().GetAccess(gomock.Any(), "user_1").Return(tc.Marker, tc.Error)
			ok, err := serv.HasAccess(ctx, "user_1")
			assert.ErrorIs(t, err, tc.Error)
			assert.Equal(t, tc.Result, ok)
		})
	}
}

func TestSubscribe(t *testing.T) {
	t.Parallel()
	ctrl := gomock.NewController(t)
	accessRepo := mocks.NewMockAccessRepositoryI(ctrl)
	now := time.Date(2025, 3, 10, 8, 0, 0, 0, time.UTC)
	okGateway := payment.NewSimulated(payment.SimulatedCfg{SuccessRate: 1, Seed: 1}, nil)
	failGateway := payment.NewSimulated(payment.SimulatedCfg{SuccessRate: 1e-12, Seed: 1}, nil)

	testCases := []struct {
		Desc         string
		Error        error
		Gateway      payment.Gateway
		Request      *service.SubscribeRequest
		ExpExpires   time.Time
		MockPrepFunc func()
	}{
		{
			Desc:       "weekly",
			Gateway:    okGateway,
			Request:    &service.SubscribeRequest{UserID: "user_1", Type: entity.Weekly, FromAddress: testAddress},
			ExpExpires: now.Add(7 * 24 * time.Hour),
			MockPrepFunc: func() {
				accessRepo.EXPECT().GrantAccess(gomock.Any(), "user_1", 7*24*time.Hour).Return(nil)
				accessRepo.EXPECT().SaveSubscription(gomock.Any(), gomock.Any()).Return(nil)
			},
		},
		{
			Desc:       "monthly",
			Gateway:    okGateway,
			Request:    &service.SubscribeRequest{UserID: "user_1", Type: entity.Monthly, FromAddress: testAddress},
			ExpExpires: now.Add(30 * 24 * time.Hour),
			MockPrepFunc: func() {
				accessRepo.EXPECT().GrantAccess(gomock.Any(), "user_1", 30*24*time.Hour).Return(nil)
				accessRepo.EXPECT().SaveSubscription(gomock.Any(), gomock.Any()).Return(nil)
			},
		},
		{
			Desc:         "error payment failed",
			Error:        errorvalues.ErrPaymentFailed,
			Gateway:      failGateway,
			Request:      &service.SubscribeRequest{UserID: "user_1", Type: entity.Weekly, FromAddress: testAddress},
			MockPrepFunc: func() {},
		},
		{
			Desc:         "error unknown type",
			Error:        errorvalues.ErrValidation,
			Gateway:      okGateway,
			Request:      &service.SubscribeRequest{UserID: "user_1", Type: "yearly", FromAddress: testAddress},
			MockPrepFunc: func() {},
		},
		{
			Desc:         "error bad address",
			Error:        errorvalues.ErrValidation,
			Gateway:      okGateway,
			Request:      &service.SubscribeRequest{UserID: "user_1", Type: entity.Weekly, FromAddress: "alice"},
			MockPrepFunc: func() {},
		},
		{
			Desc:    "error granting access",
			Error:   errorvalues.ErrStoreUnavailable,
			Gateway: okGateway,
			Request: &service.SubscribeRequest{UserID: "user_1", Type: entity.Weekly, FromAddress: testAddress},
			MockPrepFunc: func() {
				accessRepo.EXPECT().GrantAccess(gomock.Any(), "user_1", gomock.Any()).Return(errorvalues.ErrStoreUnavailable)
			},
		},
	}
	ctx := context.Background()
	for _, tc := range testCases {
		t.Run(tc.Desc, func(t *testing.T) {
			tc.MockPrepFunc()
			serv := service.NewSubscriptionService(accessRepo, tc.Gateway, fixedClock(now))
			sub, err := serv.Subscribe(ctx, tc.Request)
			assert.ErrorIs(t, err, tc.Error)
			if tc.Error != nil {
				return
			}
			require.NotNil(t, sub)
			assert.Equal(t, tc.Request.Type, sub.Type)
			assert.Equal(t, tc.ExpExpires, sub.ExpiresAt)
			assert.NotEmpty(t, sub.TxHash)

			status, err := serv.TxStatus(ctx, sub.TxHash)
			require.NoError(t, err)
			assert.NotEmpty(t, status.Status)
		})
	}
}

func TestSubscriptionStatus(t *testing.T) {
	t.Parallel()
	ctrl := gomock.NewController(t)
	accessRepo := mocks.NewMockAccessRepositoryI(ctrl)
	now := time.Date(2025, 3, 10, 8, 0, 0, 0, time.UTC)
	serv := service.NewSubscriptionService(accessRepo, nil, fixedClock(now))
	ctx := context.Background()

	accessRepo.EXPECT().GetSubscription(gomock.Any(), "user_1").Return(nil, errorvalues.ErrSubscriptionNotFound)
	status, err := serv.Status(ctx, "user_1")
	require.NoError(t, err)
	assert.False(t, status.HasActiveSubscription)

	expires := now.Add(time.Hour)
	accessRepo.EXPECT().GetSubscription(gomock.Any(), "user_2").Return(&entity.Subscription{
		UserID: "user_2", Type: entity.Monthly, ExpiresAt: expires,
	}, nil)
	status, err = serv.Status(ctx, "user_2")
	require.NoError(t, err)
	assert.True(t, status.HasActiveSubscription)
	assert.Equal(t, entity.Monthly, status.Type)
	require.NotNil(t, status.ExpiresAt)
	assert.Equal(t, expires, *status.ExpiresAt)

	accessRepo.EXPECT().GetSubscription(gomock.Any(), "user_3").Return(&entity.Subscription{
		UserID: "user_3", Type: entity.Weekly, ExpiresAt: now.Add(-time.Second),
	}, nil)
	status, err = serv.Status(ctx, "user_3")
	require.NoError(t, err)
	assert.False(t, status.HasActiveSubscription)

	accessRepo.EXPECT().GetSubscription(gomock.Any(), "user_4").Return(nil, errorvalues.ErrStoreUnavailable)
	_, err = serv.Status(ctx, "user_4")
	assert.ErrorIs(t, err, errorvalues.ErrStoreUnavailable)
}

func TestTxStatusUnknown(t *testing.T) {
	t.Parallel()
	serv := service.NewSubscriptionService(nil, payment.NewSimulated(payment.SimulatedCfg{Seed: 3}, nil), nil)
	_, err := serv.TxStatus(context.Background(), "0x00")
	assert.ErrorIs(t, err, errorvalues.ErrTxNotFound)
	_, err = serv.TxStatus(context.Background(), "")
	assert.ErrorIs(t, err, errorvalues.ErrInvalidIdentifier)
}

func TestUnlockTip(t *testing.T) {
	t.Parallel()
	ctrl := gomock.NewController(t)
	accessRepo := mocks.NewMockAccessRepositoryI(ctrl)
	gateway := paymentmocks.NewMockGateway(ctrl)
	now := time.Date(2025, 3, 10, 8, 0, 0, 0, time.UTC)
	serv := service.NewSubscriptionService(accessRepo, gateway, func() time.Time { return now })
	tip := &entity.DailyTip{ID: "tip_1", Difficulty: entity.Advanced}

	testCases := []struct {
		Desc         string
		Error        error
		Request      *service.UnlockTipRequest
		Tip          *entity.DailyTip
		MockPrepFunc func()
	}{
		{
			Desc:    "success",
			Request: &service.UnlockTipRequest{UserID: "user_1", FromAddress: testAddress},
			Tip:     tip,
			MockPrepFunc: func() {
				gomock.InOrder(
					gateway.EXPECT().ProcessPayment(gomock.Any(), testAddress, "0.003", "tip_1").
						Return(entity.PaymentResult{Success: true, TxHash: "0xabc"}, nil),
					gateway.EXPECT().CheckStatus(gomock.Any(), "0xabc").
						Return(entity.TxStatus{Status: entity.PaymentConfirmed, BlockNumber: 42}, nil),
					accessRepo.EXPECT().GrantAccess(gomock.Any(), "user_1", payment.UnlockDuration).Return(nil),
				)
			},
		},
		{
			Desc:    "error payment declined",
			Error:   errorvalues.ErrPaymentFailed,
			Request: &service.UnlockTipRequest{UserID: "user_1", FromAddress: testAddress},
			Tip:     tip,
			MockPrepFunc: func() {
				gateway.EXPECT().ProcessPayment(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					Return(entity.PaymentResult{Success: false, Error: "insufficient funds"}, nil)
			},
		},
		{
			Desc:    "error transaction pending",
			Error:   errorvalues.ErrPaymentNotConfirmed,
			Request: &service.UnlockTipRequest{UserID: "user_1", FromAddress: testAddress},
			Tip:     tip,
			MockPrepFunc: func() {
				gateway.EXPECT().ProcessPayment(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					Return(entity.PaymentResult{Success: true, TxHash: "0xabc"}, nil)
				gateway.EXPECT().CheckStatus(gomock.Any(), "0xabc").Return(entity.TxStatus{Status: entity.PaymentPending}, nil)
			},
		},
		{
			Desc:    "error granting access",
			Error:   errorvalues.ErrStoreUnavailable,
			Request: &service.UnlockTipRequest{UserID: "user_1", FromAddress: testAddress},
			Tip:     tip,
			MockPrepFunc: func() {
				gateway.EXPECT().ProcessPayment(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					Return(entity.PaymentResult{Success: true, TxHash: "0xabc"}, nil)
				gateway.EXPECT().CheckStatus(gomock.Any(), "0xabc").Return(entity.TxStatus{Status: entity.PaymentConfirmed}, nil)
				accessRepo.EXPECT().GrantAccess(gomock.Any(), "user_1", payment.UnlockDuration).Return(errorvalues.ErrStoreUnavailable)
			},
		},
		{
			Desc:         "error invalid address",
			Error:        errorvalues.ErrValidation,
			Request:      &service.UnlockTipRequest{UserID: "user_1", FromAddress: "not-an-address"},
			Tip:          tip,
			MockPrepFunc: func() {},
		},
		{
			Desc:         "error no tip",
			Error:        errorvalues.ErrTipNotFound,
			Request:      &service.UnlockTipRequest{UserID: "user_1", FromAddress: testAddress},
			MockPrepFunc: func() {},
		},
	}
	ctx := context.Background()
	for _, tc := range testCases {
		t.Run(tc.Desc, func(t *testing.T) {
			tc.MockPrepFunc()
			unlock, err := serv.UnlockTip(ctx, tc.Request, tc.Tip)
			if tc.Error != nil {
				assert.ErrorIs(t, err, tc.Error)
				assert.Nil(t, unlock)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, &entity.TipUnlock{
				TipID:       "tip_1",
				TxHash:      "0xabc",
				Amount:      "0.0030 ETH",
				AmountUSD:   "$7.50",
				Status:      entity.PaymentConfirmed,
				BlockNumber: 42,
				AccessUntil: now.Add(24 * time.Hour),
			}, unlock)
		})
	}
}
