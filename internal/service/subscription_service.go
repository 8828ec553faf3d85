package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	errorvalues "github.com/limbo/sovet/internal/error_values"
	"github.com/limbo/sovet/internal/payment"
	"github.com/limbo/sovet/internal/repository"
	"github.com/limbo/sovet/pkg/entity"
)

type SubscriptionService struct {
	access  repository.AccessRepositoryI
	gateway payment.Gateway
	clock   func() time.Time
}

func NewSubscriptionService(access repository.AccessRepositoryI, gateway payment.Gateway, clock func() time.Time) *SubscriptionService {
	if clock == nil {
		clock = time.Now
	}
	return &SubscriptionService{
		access:  access,
		gateway: gateway,
		clock:   clock,
	}
}

// HasAccess treats users without any access marker as free users.
func (ss *SubscriptionService) HasAccess(ctx context.Context, userID string) (bool, error) {
	marker, err := ss.access.GetAccess(ctx, userID)
	if err != nil {
		return false, fmt.Errorf("repository error: %w", err)
	}
	return marker == "" || marker == repository.AccessGranted, nil
}

func (ss *SubscriptionService) Subscribe(ctx context.Context, req *SubscribeRequest) (*entity.Subscription, error) {
	if req == nil {
		return nil, errorvalues.ErrValidation
	}
	if err := validateStruct(req); err != nil {
		return nil, err
	}
	price, duration, err := payment.SubscriptionPrice(req.Type)
	if err != nil {
		return nil, err
	}
	res, err := ss.gateway.ProcessPayment(ctx, req.FromAddress, price, "")
	if err != nil {
		return nil, errors.New("payment gateway error: " + err.Error())
	}
	if !res.Success {
		return nil, fmt.Errorf("%w: %s", errorvalues.ErrPaymentFailed, res.Error)
	}
	sub := &entity.Subscription{
		UserID:    req.UserID,
		Type:      req.Type,
		TxHash:    res.TxHash,
		ExpiresAt: ss.clock().UTC().Add(duration),
	}
	if err = ss.access.GrantAccess(ctx, req.UserID, duration); err != nil {
		return nil, fmt.Errorf("repository error: %w", err)
	}
	if err = ss.access.SaveSubscription(ctx, sub); err != nil {
		return nil, fmt.Errorf("repository error: %w", err)
	}
	return sub, nil
}

func (ss *SubscriptionService) Status(ctx context.Context, userID string) (entity.SubscriptionStatus, error) {
	sub, err := ss.access.GetSubscription(ctx, userID)
	if err != nil {
		if errors.Is(err, errorvalues.ErrSubscriptionNotFound) {
			return entity.SubscriptionStatus{}, nil
		}
		return entity.SubscriptionStatus{}, fmt.Errorf("repository error: %w", err)
	}
	if !sub.ExpiresAt.After(ss.clock()) {
		return entity.SubscriptionStatus{}, nil
	}
	expires := sub.ExpiresAt
	return entity.SubscriptionStatus{
		HasActiveSubscription: true,
		ExpiresAt:             &expires,
		Type:                  sub.Type,
	}, nil
}

func (ss *SubscriptionService) TxStatus(ctx context.Context, txHash string) (entity.TxStatus, error) {
	if txHash == "" {
		return entity.TxStatus{}, errorvalues.ErrInvalidIdentifier
	}
	return ss.gateway.CheckStatus(ctx, txHash)
}

func (ss *SubscriptionService) UnlockTip(ctx context.Context, req *UnlockTipRequest, tip *entity.DailyTip) (*entity.TipUnlock, error) {
	if req == nil {
		return nil, errorvalues.ErrValidation
	}
	if tip == nil {
		return nil, errorvalues.ErrTipNotFound
	}
	if err := validateStruct(req); err != nil {
		return nil, err
	}
	amount := payment.TipCost(tip.Difficulty)
	res, err := ss.gateway.ProcessPayment(ctx, req.FromAddress, amount, tip.ID)
	if err != nil {
		return nil, errors.New("payment gateway error: " + err.Error())
	}
	if !res.Success {
		return nil, fmt.Errorf("%w: %s", errorvalues.ErrPaymentFailed, res.Error)
	}
	status, err := ss.gateway.CheckStatus(ctx, res.TxHash)
	if err != nil {
		return nil, errors.New("payment gateway error: " + err.Error())
	}
	if status.Status != entity.PaymentConfirmed {
		return nil, fmt.Errorf("%w: transaction %s is %s", errorvalues.ErrPaymentNotConfirmed, res.TxHash, status.Status)
	}
	if err = ss.access.GrantAccess(ctx, req.UserID, payment.UnlockDuration); err != nil {
		return nil, fmt.Errorf("repository error: %w", err)
	}
	return &entity.TipUnlock{
		TipID:       tip.ID,
		TxHash:      res.TxHash,
		Amount:      payment.FormatEth(amount),
		AmountUSD:   payment.UsdValue(amount, payment.EthUsdPrice),
		Status:      status.Status,
		BlockNumber: status.BlockNumber,
		AccessUntil: ss.clock().UTC().Add(payment.UnlockDuration),
	}, nil
}
