package onboarding

import (
	"context"
	"errors"

	sellerRepo "blinno/database/repository/seller"
	"blinno/models"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// MarkStepCompleted records stepID as done with its latest answers.
// Completing a step twice keeps one entry and overwrites the answers.
func (s *DefaultOnboardingService) MarkStepCompleted(ctx context.Context, userID string, stepID models.StepID, stepData models.StepAnswers) bool {
	logger := s.logger().With(zap.String("userID", userID), zap.String("step", string(stepID)))
	if _, ok := LookupStep(stepID); !ok {
		logger.Warn("Refusing to mark unknown onboarding step")
		return false
	}

	return s.withUserLock(ctx, userID, logger, func() bool {
		profile, err := s.profileForWrite(ctx, userID)
		if err != nil {
			logger.Error("Failed to load seller profile for step write", zap.Error(err))
			return false
		}

		data := profile.OnboardingData.Clone()
		if !data.HasCompleted(stepID) {
			data.CompletedSteps = append(data.CompletedSteps, stepID)
		}
		if data.Answers == nil {
			data.Answers = make(map[models.StepID]models.StepAnswers)
		}
		data.Answers[stepID] = stepData.Clone()
		data.UpdatedAt = s.now()

		patch := models.ProfilePatch{OnboardingData: &data}

		sellerType, source := resolveSellerType(sellerTypeInput{
			StepID:   stepID,
			StepData: stepData,
			Stored:   profile.OnboardingData,
			Profile:  profile,
		})
		if sellerType != "" {
			data.SellerType = sellerType
			patch.SellerType = &sellerType
			if len(profile.CategorySpecificData) == 0 {
				patch.CategorySpecificData = GetDefaultFields(sellerType)
			}
		}

		// A seller already complete on the current version keeps the flag;
		// only MarkOnboardingComplete ever sets it to true.
		if !s.isCompleteAndCurrent(profile) {
			completed := false
			patch.OnboardingCompleted = &completed
		}

		if err := s.Profiles.Upsert(ctx, userID, patch); err != nil {
			logger.Error("Failed to save onboarding step", zap.Error(err))
			return false
		}
		logger.Info("Onboarding step completed",
			zap.String("sellerType", string(sellerType)),
			zap.String("sellerTypeSource", source),
			zap.Int("completedSteps", len(data.CompletedSteps)),
		)
		return true
	})
}

// MarkOnboardingComplete is the only write that sets onboardingCompleted to
// true. It refuses, without writing, unless data covers every required step.
func (s *DefaultOnboardingService) MarkOnboardingComplete(ctx context.Context, userID string, sellerType models.SellerType, data models.OnboardingData) bool {
	logger := s.logger().With(zap.String("userID", userID), zap.String("sellerType", string(sellerType)))

	def := GetSellerTypeConfig(sellerType)
	if missing := remainingSteps(def.RequiredSteps, data.CompletedSteps); len(missing) > 0 {
		logger.Warn("Refusing to complete onboarding with required steps missing",
			zap.Strings("missing", stepStrings(missing)),
		)
		return false
	}

	return s.withUserLock(ctx, userID, logger, func() bool {
		profile, err := s.profileForWrite(ctx, userID)
		if err != nil {
			logger.Error("Failed to load seller profile for completion", zap.Error(err))
			return false
		}

		// An unrecognized argument never replaces a concrete stored type.
		resolved := def.ID
		overwriteType := IsKnownSellerType(sellerType) || profile.SellerType == ""
		if !overwriteType {
			resolved = profile.SellerType
		}

		now := s.now()
		merged := mergeOnboardingData(profile.OnboardingData, data)
		merged.SellerType = resolved
		merged.Completion = &models.CompletionRecord{
			ID:          uuid.New().String(),
			SellerType:  resolved,
			Version:     s.SchemaVersion,
			CompletedAt: now,
		}
		merged.UpdatedAt = now

		completed := true
		version := s.SchemaVersion
		patch := models.ProfilePatch{
			OnboardingCompleted: &completed,
			OnboardingVersion:   &version,
			OnboardingData:      &merged,
		}
		if overwriteType {
			patch.SellerType = &resolved
		}
		if err := s.Profiles.Upsert(ctx, userID, patch); err != nil {
			logger.Error("Failed to mark onboarding complete", zap.Error(err))
			return false
		}
		logger.Info("Onboarding completed", zap.Int("version", version))
		return true
	})
}

// CompleteOnboarding completes onboarding from the seller's stored progress.
func (s *DefaultOnboardingService) CompleteOnboarding(ctx context.Context, userID string) bool {
	profile, err := s.loadProfile(ctx, userID)
	if err != nil {
		s.logger().Error("Failed to load seller profile", zap.String("userID", userID), zap.Error(err))
		return false
	}
	if profile == nil {
		s.logger().Warn("Cannot complete onboarding without a seller profile", zap.String("userID", userID))
		return false
	}
	sellerType := profile.SellerType
	if sellerType == "" {
		sellerType = profile.OnboardingData.SellerType
	}
	return s.MarkOnboardingComplete(ctx, userID, sellerType, profile.OnboardingData)
}

// ResetOnboarding clears the completed flag and replaces onboarding data with
// a reset marker. The discarded data is archived first when a history store is set.
func (s *DefaultOnboardingService) ResetOnboarding(ctx context.Context, userID, reason string) bool {
	logger := s.logger().With(zap.String("userID", userID), zap.String("reason", reason))

	return s.withUserLock(ctx, userID, logger, func() bool {
		profile, err := s.profileForWrite(ctx, userID)
		if err != nil {
			// The reset itself is unconditional; only the archive is lost.
			logger.Warn("Could not read profile before reset, history not archived", zap.Error(err))
		}
		return s.resetLocked(ctx, logger, userID, reason, profile)
	})
}

// resetLocked writes the reset marker. The caller holds the user lock.
// A nil profile skips the archive.
func (s *DefaultOnboardingService) resetLocked(ctx context.Context, logger *zap.Logger, userID, reason string, profile *models.SellerProfile) bool {
	previousVersion := 0
	if profile != nil {
		s.archiveReset(ctx, logger, profile, reason)
		previousVersion = profile.OnboardingVersion
	}

	now := s.now()
	data := models.OnboardingData{
		CompletedSteps: []models.StepID{},
		Reset: &models.ResetRecord{
			ID:              uuid.New().String(),
			Reason:          reason,
			PreviousVersion: previousVersion,
			ResetAt:         now,
		},
		UpdatedAt: now,
	}
	completed := false
	patch := models.ProfilePatch{
		OnboardingCompleted: &completed,
		OnboardingData:      &data,
	}
	if err := s.Profiles.Upsert(ctx, userID, patch); err != nil {
		logger.Error("Failed to reset onboarding", zap.Error(err))
		return false
	}
	logger.Info("Onboarding reset")
	return true
}

// CheckAndForceVersionUpdate resets a completed seller whose onboarding
// version is behind SchemaVersion. It reports whether a reset happened.
// The read, the check and the reset share one hold of the user lock.
func (s *DefaultOnboardingService) CheckAndForceVersionUpdate(ctx context.Context, userID string) bool {
	logger := s.logger().With(zap.String("userID", userID))

	return s.withUserLock(ctx, userID, logger, func() bool {
		profile, err := s.Profiles.GetByUserID(ctx, userID)
		if errors.Is(err, sellerRepo.ErrProfileNotFound) {
			return false
		}
		if err != nil {
			logger.Error("Failed to read seller profile for version check", zap.Error(err))
			return false
		}
		if !profile.OnboardingCompleted || profile.OnboardingVersion >= s.SchemaVersion {
			return false
		}
		if profile.UserID == "" {
			profile.UserID = userID
		}

		logger.Info("Onboarding version outdated, forcing reset",
			zap.Int("version", profile.OnboardingVersion),
			zap.Int("requiredVersion", s.SchemaVersion),
		)
		return s.resetLocked(ctx, logger.With(zap.String("reason", ResetReasonVersionUpdate)), userID, ResetReasonVersionUpdate, profile)
	})
}

func (s *DefaultOnboardingService) archiveReset(ctx context.Context, logger *zap.Logger, profile *models.SellerProfile, reason string) {
	if s.Resets == nil {
		return
	}
	_, err := s.Resets.Create(ctx, models.OnboardingReset{
		ID:                 uuid.New().String(),
		UserID:             profile.UserID,
		Reason:             reason,
		PreviousCompleted:  profile.OnboardingCompleted,
		PreviousVersion:    profile.OnboardingVersion,
		PreviousSellerType: profile.SellerType,
		PreviousData:       profile.OnboardingData.Clone(),
		ResetAt:            s.now(),
	})
	if err != nil {
		logger.Warn("Failed to archive onboarding data before reset", zap.Error(err))
	}
}

func (s *DefaultOnboardingService) isCompleteAndCurrent(profile *models.SellerProfile) bool {
	return profile.OnboardingCompleted && profile.OnboardingVersion >= s.SchemaVersion
}

// profileForWrite reads the profile directly, bypassing the shared read
// group, and returns an empty profile when none exists yet.
func (s *DefaultOnboardingService) profileForWrite(ctx context.Context, userID string) (*models.SellerProfile, error) {
	profile, err := s.Profiles.GetByUserID(ctx, userID)
	if errors.Is(err, sellerRepo.ErrProfileNotFound) {
		return &models.SellerProfile{UserID: userID}, nil
	}
	if err != nil {
		return nil, err
	}
	if profile.UserID == "" {
		profile.UserID = userID
	}
	return profile, nil
}

func (s *DefaultOnboardingService) withUserLock(ctx context.Context, userID string, logger *zap.Logger, fn func() bool) bool {
	unlock, err := s.Locker.Lock(ctx, userID)
	if err != nil {
		logger.Error("Failed to acquire onboarding write lock", zap.Error(err))
		return false
	}
	defer unlock()
	return fn()
}

// mergeOnboardingData overlays incoming on stored: completed steps are
// unioned and incoming answers replace stored ones per step.
func mergeOnboardingData(stored, incoming models.OnboardingData) models.OnboardingData {
	merged := stored.Clone()
	for _, step := range incoming.CompletedSteps {
		if !merged.HasCompleted(step) {
			merged.CompletedSteps = append(merged.CompletedSteps, step)
		}
	}
	if len(incoming.Answers) > 0 && merged.Answers == nil {
		merged.Answers = make(map[models.StepID]models.StepAnswers, len(incoming.Answers))
	}
	for step, answers := range incoming.Answers {
		merged.Answers[step] = answers.Clone()
	}
	merged.Reset = nil
	return merged
}

func stepStrings(steps []models.StepID) []string {
	out := make([]string, 0, len(steps))
	for _, s := range steps {
		out = append(out, string(s))
	}
	return out
}
