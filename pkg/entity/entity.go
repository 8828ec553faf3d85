package entity

import (
	"time"
)

type Experience string

const (
	Beginner     Experience = "beginner"
	Intermediate Experience = "intermediate"
	Advanced     Experience = "advanced"
)

type NotificationPreferences struct {
	Enabled bool   `json:"enabled"`
	Time    string `json:"time"`
}

type User struct {
	ID                      string                  `json:"user_id"`
	StatedGoal              string                  `json:"stated_goal"`
	Niche                   string                  `json:"niche"`
	Experience              Experience              `json:"experience"`
	TimeCommitment          string                  `json:"time_commitment"`
	OnboardingComplete      bool                    `json:"onboarding_complete"`
	NotificationPreferences NotificationPreferences `json:"notification_preferences"`
	CreatedAt               time.Time               `json:"created_at"`
}

type DailyTip struct {
	ID          string     `json:"tip_id"`
	Content     string     `json:"content"`
	Niche       string     `json:"niche"`
	ActionItems []string   `json:"action_items"`
	GeneratedAt time.Time  `json:"generated_at"`
	Difficulty  Experience `json:"difficulty"`
}

// ProgressLog is one "mark complete" event. Records are append-only.
type ProgressLog struct {
	ID              string    `json:"log_id"`
	UserID          string    `json:"user_id"`
	TipID           string    `json:"tip_id"`
	ActionCompleted bool      `json:"action_completed"`
	LoggedAt        time.Time `json:"logged_at"`
	Notes           string    `json:"notes,omitempty"`
}

// ProgressStats is recomputed from the full log set on every request.
type ProgressStats struct {
	CurrentStreak      int `json:"current_streak"`
	LongestStreak      int `json:"longest_streak"`
	TotalTipsCompleted int `json:"total_tips_completed"`
	WeeklyProgress     int `json:"weekly_progress"`
}

type TipContent struct {
	Content     string   `json:"content"`
	ActionItems []string `json:"action_items"`
}

type SubscriptionType string

const (
	Weekly  SubscriptionType = "weekly"
	Monthly SubscriptionType = "monthly"
)

type Subscription struct {
	UserID    string           `json:"user_id"`
	Type      SubscriptionType `json:"type"`
	TxHash    string           `json:"tx_hash"`
	ExpiresAt time.Time        `json:"expires_at"`
}

type SubscriptionStatus struct {
	HasActiveSubscription bool             `json:"has_active_subscription"`
	ExpiresAt             *time.Time       `json:"expires_at,omitempty"`
	Type                  SubscriptionType `json:"type,omitempty"`
}

type PaymentStatus string

const (
	PaymentPending   PaymentStatus = "pending"
	PaymentConfirmed PaymentStatus = "confirmed"
	PaymentFailed    PaymentStatus = "failed"
)

type PaymentResult struct {
	Success bool   `json:"success"`
	TxHash  string `json:"tx_hash,omitempty"`
	Error   string `json:"error,omitempty"`
}

type TxStatus struct {
	Status      PaymentStatus `json:"status"`
	BlockNumber int64         `json:"block_number,omitempty"`
}

// TipUnlock is the receipt of a single tip purchase.
type TipUnlock struct {
	TipID       string        `json:"tip_id"`
	TxHash      string        `json:"tx_hash"`
	Amount      string        `json:"amount"`
	AmountUSD   string        `json:"amount_usd"`
	Status      PaymentStatus `json:"status"`
	BlockNumber int64         `json:"block_number,omitempty"`
	AccessUntil time.Time     `json:"access_until"`
}
