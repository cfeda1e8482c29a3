package onboarding

import (
	"context"
	"errors"
	"strings"
	"time"

	sellerRepo "blinno/database/repository/seller"
	"blinno/models"

	"go.uber.org/zap"
)

const (
	subscriptionPlanPrefix = "subscription_"
	percentagePlanPrefix   = "percentage_"
)

// sharedReadTimeout bounds a read shared by concurrent callers, which no
// longer follows any single caller's cancellation.
const sharedReadTimeout = 10 * time.Second

// CheckStatus computes the onboarding status of userID from persisted state.
// It never fails: read errors produce degradedStatus.
func (s *DefaultOnboardingService) CheckStatus(ctx context.Context, userID string) models.OnboardingStatus {
	logger := s.logger().With(zap.String("userID", userID))

	isSeller, err := s.hasSellerRole(ctx, userID)
	if err != nil {
		logger.Error("Failed to read seller role", zap.Error(err))
		return s.degradedStatus(userID)
	}
	profile, err := s.loadProfile(ctx, userID)
	if err != nil {
		logger.Error("Failed to read seller profile", zap.Error(err))
		return s.degradedStatus(userID)
	}
	sub, err := s.loadActiveSubscription(ctx, userID)
	if err != nil {
		logger.Error("Failed to read seller subscription", zap.Error(err))
		return s.degradedStatus(userID)
	}

	return composeStatus(userID, isSeller, profile, sub, s.SchemaVersion)
}

// degradedStatus is the single fallback for every failed read. It keeps
// onboarding closed so a broken read never traps a working seller.
func (s *DefaultOnboardingService) degradedStatus(userID string) models.OnboardingStatus {
	return models.OnboardingStatus{
		UserID:          userID,
		CompletedSteps:  []models.StepID{},
		RequiredSteps:   []models.StepID{},
		RequiredVersion: s.SchemaVersion,
	}
}

func composeStatus(userID string, isSeller bool, profile *models.SellerProfile, sub *models.SellerSubscription, requiredVersion int) models.OnboardingStatus {
	status := models.OnboardingStatus{
		UserID:          userID,
		CompletedSteps:  []models.StepID{},
		RequiredSteps:   []models.StepID{},
		RequiredVersion: requiredVersion,
	}

	if sub != nil {
		status.HasActivePricingPlan = true
		status.PricingModel, status.CurrentPlan = splitPlan(sub.Plan)
	}

	completedFlag := false
	if profile != nil {
		status.SellerType = profile.SellerType
		if status.SellerType == "" {
			status.SellerType = profile.OnboardingData.SellerType
		}
		status.OnboardingVersion = profile.OnboardingVersion
		completedFlag = profile.OnboardingCompleted
		status.CompletedSteps = dedupeSteps(profile.OnboardingData.CompletedSteps)
	}

	if status.SellerType != "" {
		status.RequiredSteps = StepIDs(GetOrderedSteps(status.SellerType, false))
	}
	status.NextStep = firstIncomplete(status.RequiredSteps, status.CompletedSteps)

	versionOutdated := status.OnboardingVersion < requiredVersion
	status.IsComplete = completedFlag && !versionOutdated
	status.ShouldShowOnboarding = isSeller && !status.IsComplete &&
		(!status.HasActivePricingPlan || versionOutdated || !completedFlag)

	return status
}

// splitPlan splits "subscription_pro" into (subscription, pro).
// Unprefixed plans keep their name with no pricing model.
func splitPlan(plan string) (models.PricingModel, string) {
	switch {
	case strings.HasPrefix(plan, subscriptionPlanPrefix):
		return models.PricingSubscription, strings.TrimPrefix(plan, subscriptionPlanPrefix)
	case strings.HasPrefix(plan, percentagePlanPrefix):
		return models.PricingPercentage, strings.TrimPrefix(plan, percentagePlanPrefix)
	}
	return "", plan
}

// ShouldRedirect reports whether the caller should be sent to onboarding.
// A complete seller on the current version is never redirected.
func (s *DefaultOnboardingService) ShouldRedirect(ctx context.Context, userID string) bool {
	status := s.CheckStatus(ctx, userID)
	if status.IsComplete && status.OnboardingVersion >= status.RequiredVersion {
		return false
	}
	return status.ShouldShowOnboarding
}

func (s *DefaultOnboardingService) StepsForUser(status models.OnboardingStatus, includeOptional bool) []models.StepID {
	return StepsForUser(status, includeOptional)
}

// StepsForUser returns the steps a user should be walked through next.
func StepsForUser(status models.OnboardingStatus, includeOptional bool) []models.StepID {
	if status.SellerType == "" {
		return []models.StepID{models.StepCategory}
	}

	required := StepIDs(GetOrderedSteps(status.SellerType, false))
	ordered := required
	if includeOptional {
		ordered = StepIDs(GetOrderedSteps(status.SellerType, true))
	}
	completed := models.OnboardingData{CompletedSteps: status.CompletedSteps}

	if status.HasActivePricingPlan {
		if completed.HasCompleted(models.StepPricing) && completed.HasCompleted(models.StepPayment) {
			return remainingSteps(required, status.CompletedSteps)
		}
		remaining := remainingSteps(ordered, status.CompletedSteps)
		if len(remaining) == 0 {
			return required
		}
		return remaining
	}

	if completed.HasCompleted(models.StepCategory) {
		return remainingSteps(ordered, status.CompletedSteps)
	}
	return required
}

func (s *DefaultOnboardingService) hasSellerRole(ctx context.Context, userID string) (bool, error) {
	v, err := s.sharedRead(ctx, "role:"+userID, func(ctx context.Context) (interface{}, error) {
		return s.Roles.HasRole(ctx, userID, models.RoleSeller)
	})
	if err != nil {
		return false, err
	}
	return v.(bool), nil
}

// loadProfile returns (nil, nil) when the user has no profile row yet.
func (s *DefaultOnboardingService) loadProfile(ctx context.Context, userID string) (*models.SellerProfile, error) {
	v, err := s.sharedRead(ctx, "profile:"+userID, func(ctx context.Context) (interface{}, error) {
		return s.Profiles.GetByUserID(ctx, userID)
	})
	if errors.Is(err, sellerRepo.ErrProfileNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return v.(*models.SellerProfile), nil
}

// loadActiveSubscription returns (nil, nil) when there is no active subscription.
func (s *DefaultOnboardingService) loadActiveSubscription(ctx context.Context, userID string) (*models.SellerSubscription, error) {
	v, err := s.sharedRead(ctx, "subscription:"+userID, func(ctx context.Context) (interface{}, error) {
		return s.Subscriptions.GetActiveByUserID(ctx, userID)
	})
	if errors.Is(err, sellerRepo.ErrSubscriptionNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return v.(*models.SellerSubscription), nil
}

// sharedRead collapses concurrent reads of key into one repository call. The
// call runs detached from the first caller so its cancellation cannot fail
// the others.
func (s *DefaultOnboardingService) sharedRead(ctx context.Context, key string, read func(context.Context) (interface{}, error)) (interface{}, error) {
	v, err, _ := s.reads.Do(key, func() (interface{}, error) {
		readCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), sharedReadTimeout)
		defer cancel()
		return read(readCtx)
	})
	return v, err
}

func firstIncomplete(required, completed []models.StepID) models.StepID {
	remaining := remainingSteps(required, completed)
	if len(remaining) == 0 {
		return ""
	}
	return remaining[0]
}

func remainingSteps(steps, completed []models.StepID) []models.StepID {
	done := make(map[models.StepID]struct{}, len(completed))
	for _, s := range completed {
		done[s] = struct{}{}
	}
	out := []models.StepID{}
	for _, s := range steps {
		if _, ok := done[s]; !ok {
			out = append(out, s)
		}
	}
	return out
}

func dedupeSteps(steps []models.StepID) []models.StepID {
	seen := make(map[models.StepID]struct{}, len(steps))
	out := make([]models.StepID, 0, len(steps))
	for _, s := range steps {
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}
