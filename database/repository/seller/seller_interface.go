package sellerRepo

import (
	"context"
	"errors"

	"blinno/models"
)

var (
	// ErrProfileNotFound is returned when no seller profile row exists for a user.
	ErrProfileNotFound = errors.New("seller profile not found")
	// ErrSubscriptionNotFound is returned when a user has no active subscription.
	ErrSubscriptionNotFound = errors.New("active subscription not found")
)

// ProfileRepository is the store of seller profile rows, keyed by user id.
type ProfileRepository interface {
	// GetByUserID returns the profile of userID or ErrProfileNotFound.
	GetByUserID(ctx context.Context, userID string) (*models.SellerProfile, error)
	// Upsert writes only the fields set in patch, creating the row if needed.
	Upsert(ctx context.Context, userID string, patch models.ProfilePatch) error
	// ListOutdatedCompleted returns users whose completed onboarding is older than version.
	ListOutdatedCompleted(ctx context.Context, version int, limit int64) ([]string, error)
}

// SubscriptionRepository reads seller pricing-plan subscriptions.
type SubscriptionRepository interface {
	// GetActiveByUserID returns the newest active subscription or ErrSubscriptionNotFound.
	GetActiveByUserID(ctx context.Context, userID string) (*models.SellerSubscription, error)
}

// RoleRepository reads role grants.
type RoleRepository interface {
	HasRole(ctx context.Context, userID, role string) (bool, error)
}

// ResetHistoryRepository archives onboarding data discarded by resets.
type ResetHistoryRepository interface {
	Create(ctx context.Context, reset models.OnboardingReset) (string, error)
	GetByUserID(ctx context.Context, userID string) ([]models.OnboardingReset, error)
}
