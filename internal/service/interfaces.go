package service

import (
	"context"

	"github.com/limbo/sovet/pkg/entity"
)

//go:generate mockgen -source=interfaces.go -destination=mocks/mock_interfaces.go -package=mocks

type OnboardingRequest struct {
	Goal           string            `json:"goal" validate:"required,min=3,max=500"`
	Niche          string            `json:"niche" validate:"required,known_niche"`
	Experience     entity.Experience `json:"experience" validate:"required,oneof=beginner intermediate advanced"`
	TimeCommitment string            `json:"time_commitment" validate:"required,oneof=5min 15min 30min"`
}

type SubscribeRequest struct {
	UserID      string                  `json:"-" validate:"required"`
	Type        entity.SubscriptionType `json:"type" validate:"required,oneof=weekly monthly"`
	FromAddress string                  `json:"from_address" validate:"required,eth_addr"`
}

type UnlockTipRequest struct {
	UserID      string `json:"-" validate:"required"`
	FromAddress string `json:"from_address" validate:"required,eth_addr"`
}

type UserServiceI interface {
	// Validates profile, creates user. Returns user's data with ID
	Onboard(ctx context.Context, req *OnboardingRequest) (*entity.User, error)
	GetByID(ctx context.Context, id string) (*entity.User, error)
	// Returns user linked to farcaster id, creating and linking a default one on first use
	GetOrCreateFarcasterUser(ctx context.Context, fid string) (*entity.User, error)
}

type TipServiceI interface {
	// Generates and saves tip for user. Empty tipID means a fresh one
	NewTip(ctx context.Context, user *entity.User, tipID string) (*entity.DailyTip, error)
	GetTip(ctx context.Context, id string) (*entity.DailyTip, error)
}

type ProgressServiceI interface {
	// Appends a completed record. Duplicates are never rejected
	RecordCompletion(ctx context.Context, userID, tipID, notes string) (*entity.ProgressLog, error)
	// Lists records, most recent first
	ListRecords(ctx context.Context, userID string) ([]*entity.ProgressLog, error)
	GetStats(ctx context.Context, userID string) (entity.ProgressStats, error)
}

type SubscriptionServiceI interface {
	HasAccess(ctx context.Context, userID string) (bool, error)
	// Pays for subscription and grants access for its duration
	Subscribe(ctx context.Context, req *SubscribeRequest) (*entity.Subscription, error)
	Status(ctx context.Context, userID string) (entity.SubscriptionStatus, error)
	TxStatus(ctx context.Context, txHash string) (entity.TxStatus, error)
	// Buys a single tip at its difficulty's price, waits for confirmation and opens access for a day
	UnlockTip(ctx context.Context, req *UnlockTipRequest, tip *entity.DailyTip) (*entity.TipUnlock, error)
}
