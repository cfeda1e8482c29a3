package onboarding

import (
	"context"
	"errors"
	"fmt"
	"time"

	sellerRepo "blinno/database/repository/seller"
	"blinno/models"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

var (
	// ErrUnknownStep is returned for step ids that are not in the registry.
	ErrUnknownStep = errors.New("unknown onboarding step")
	// ErrStepNotSaved is returned when a valid step could not be persisted.
	ErrStepNotSaved = errors.New("onboarding step could not be saved")
)

// ResetReasonVersionUpdate is recorded when a version bump forces a reset.
const ResetReasonVersionUpdate = "version_update"

// OnboardingService is the seller onboarding engine.
type OnboardingService interface {
	// Status
	CheckStatus(ctx context.Context, userID string) models.OnboardingStatus
	ShouldRedirect(ctx context.Context, userID string) bool
	StepsForUser(status models.OnboardingStatus, includeOptional bool) []models.StepID
	RequiredVersion() int

	// Writes
	SubmitStep(ctx context.Context, userID string, stepID models.StepID, answers models.StepAnswers) (models.ValidationResult, error)
	MarkStepCompleted(ctx context.Context, userID string, stepID models.StepID, stepData models.StepAnswers) bool
	MarkOnboardingComplete(ctx context.Context, userID string, sellerType models.SellerType, data models.OnboardingData) bool
	CompleteOnboarding(ctx context.Context, userID string) bool

	// Administration
	ResetOnboarding(ctx context.Context, userID, reason string) bool
	CheckAndForceVersionUpdate(ctx context.Context, userID string) bool
	ResetHistory(ctx context.Context, userID string) ([]models.OnboardingReset, error)
	OutdatedSellers(ctx context.Context, limit int64) ([]string, error)
}

// DefaultOnboardingService is the production implementation.
type DefaultOnboardingService struct {
	Profiles      sellerRepo.ProfileRepository
	Subscriptions sellerRepo.SubscriptionRepository
	Roles         sellerRepo.RoleRepository
	Resets        sellerRepo.ResetHistoryRepository
	Locker        UserLocker
	// Payouts is optional; when nil Stripe accounts are not checked remotely.
	Payouts PayoutVerifier
	// SchemaVersion is the onboarding version a completed seller must have reached.
	SchemaVersion int
	Logger        *zap.Logger
	Now           func() time.Time

	reads singleflight.Group
}

func NewDefaultOnboardingService(
	profiles sellerRepo.ProfileRepository,
	subscriptions sellerRepo.SubscriptionRepository,
	roles sellerRepo.RoleRepository,
	resets sellerRepo.ResetHistoryRepository,
	locker UserLocker,
	schemaVersion int,
	logger *zap.Logger,
) (*DefaultOnboardingService, error) {
	if profiles == nil || subscriptions == nil || roles == nil || locker == nil {
		return nil, fmt.Errorf("onboarding service initialization error: one or more dependencies are nil")
	}
	if schemaVersion < 1 {
		return nil, fmt.Errorf("onboarding service initialization error: schema version must be positive, got %d", schemaVersion)
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DefaultOnboardingService{
		Profiles:      profiles,
		Subscriptions: subscriptions,
		Roles:         roles,
		Resets:        resets,
		Locker:        locker,
		SchemaVersion: schemaVersion,
		Logger:        logger,
		Now:           time.Now,
	}, nil
}

func (s *DefaultOnboardingService) RequiredVersion() int {
	return s.SchemaVersion
}

func (s *DefaultOnboardingService) logger() *zap.Logger {
	if s.Logger == nil {
		return zap.NewNop()
	}
	return s.Logger
}

func (s *DefaultOnboardingService) now() time.Time {
	if s.Now == nil {
		return time.Now()
	}
	return s.Now()
}

// ResetHistory returns the archived onboarding data of a user's past resets.
func (s *DefaultOnboardingService) ResetHistory(ctx context.Context, userID string) ([]models.OnboardingReset, error) {
	if s.Resets == nil {
		return nil, nil
	}
	resets, err := s.Resets.GetByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load reset history: %w", err)
	}
	return resets, nil
}

// OutdatedSellers lists users whose completed onboarding predates SchemaVersion.
func (s *DefaultOnboardingService) OutdatedSellers(ctx context.Context, limit int64) ([]string, error) {
	userIDs, err := s.Profiles.ListOutdatedCompleted(ctx, s.SchemaVersion, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list outdated sellers: %w", err)
	}
	return userIDs, nil
}
