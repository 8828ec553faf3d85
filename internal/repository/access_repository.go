package repository

import (
	"context"
	"errors"
	"time"

	"github.com/bytedance/sonic"
	errorvalues "github.com/limbo/sovet/internal/error_values"
	"github.com/limbo/sovet/pkg/entity"
	"github.com/limbo/sovet/pkg/kvstore"
)

const AccessGranted = "granted"

func accessKey(userID string) string {
	return "user:" + userID + ":access"
}

func subscriptionKey(userID string) string {
	return "user:" + userID + ":subscription"
}

type AccessRepository struct {
	store kvstore.Store
	now   func() time.Time
}

func NewAccessRepo(store kvstore.Store, now func() time.Time) *AccessRepository {
	if now == nil {
		now = time.Now
	}
	return &AccessRepository{
		store: store,
		now:   now,
	}
}

func (ar *AccessRepository) GetAccess(ctx context.Context, userID string) (string, error) {
	val, err := ar.store.Get(ctx, accessKey(userID))
	if err != nil {
		if errors.Is(err, kvstore.ErrNotFound) {
			return "", nil
		}
		return "", err
	}
	return string(val), nil
}

func (ar *AccessRepository) GrantAccess(ctx context.Context, userID string, ttl time.Duration) error {
	return ar.store.Set(ctx, accessKey(userID), []byte(AccessGranted), ttl)
}

func (ar *AccessRepository) SaveSubscription(ctx context.Context, sub *entity.Subscription) error {
	if sub == nil {
		return errors.New("subscription is nil")
	}
	ttl := sub.ExpiresAt.Sub(ar.now())
	if ttl <= 0 {
		return errors.New("subscription already expired")
	}
	data, err := sonic.Marshal(sub)
	if err != nil {
		return errors.New("encoding subscription error: " + err.Error())
	}
	return ar.store.Set(ctx, subscriptionKey(sub.UserID), data, ttl)
}

func (ar *AccessRepository) GetSubscription(ctx context.Context, userID string) (*entity.Subscription, error) {
	data, err := ar.store.Get(ctx, subscriptionKey(userID))
	if err != nil {
		if errors.Is(err, kvstore.ErrNotFound) {
			return nil, errorvalues.ErrSubscriptionNotFound
		}
		return nil, err
	}
	var sub entity.Subscription
	if err := sonic.Unmarshal(data, &sub); err != nil {
		return nil, errors.New("decoding subscription error: " + err.Error())
	}
	return &sub, nil
}
