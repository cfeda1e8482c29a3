package onboarding

import (
	"context"
	"errors"
	"testing"

	"blinno/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitPlan(t *testing.T) {
	tests := []struct {
		plan      string
		wantModel models.PricingModel
		wantPlan  string
	}{
		{"subscription_pro", models.PricingSubscription, "pro"},
		{"percentage_standard", models.PricingPercentage, "standard"},
		{"legacy", "", "legacy"},
		{"", "", ""},
	}
	for _, tt := range tests {
		model, plan := splitPlan(tt.plan)
		assert.Equal(t, tt.wantModel, model, tt.plan)
		assert.Equal(t, tt.wantPlan, plan, tt.plan)
	}
}

func TestCheckStatus_NewSellerWithoutProfile(t *testing.T) {
	env := newTestEnv(t, 2)
	env.seller("u1")

	status := env.svc.CheckStatus(context.Background(), "u1")
	assert.Equal(t, "u1", status.UserID)
	assert.Empty(t, status.SellerType)
	assert.Empty(t, status.CompletedSteps)
	assert.Empty(t, status.RequiredSteps)
	assert.False(t, status.HasNextStep())
	assert.False(t, status.IsComplete)
	assert.True(t, status.ShouldShowOnboarding)
	assert.Equal(t, 2, status.RequiredVersion)
}

func TestCheckStatus_NonSellerNeverShown(t *testing.T) {
	env := newTestEnv(t, 2)

	status := env.svc.CheckStatus(context.Background(), "buyer")
	assert.False(t, status.ShouldShowOnboarding)
	assert.False(t, env.svc.ShouldRedirect(context.Background(), "buyer"))
}

func TestCheckStatus_InProgress(t *testing.T) {
	env := newTestEnv(t, 2)
	env.seller("u1")
	env.activePlan("u1", "percentage_growth")
	env.prof.put(models.SellerProfile{
		UserID:     "u1",
		SellerType: models.SellerRestaurant,
		OnboardingData: models.OnboardingData{
			CompletedSteps: []models.StepID{models.StepCategory, models.StepBusinessInfo, models.StepCategory},
		},
	})

	status := env.svc.CheckStatus(context.Background(), "u1")
	assert.Equal(t, models.SellerRestaurant, status.SellerType)
	assert.True(t, status.HasActivePricingPlan)
	assert.Equal(t, models.PricingPercentage, status.PricingModel)
	assert.Equal(t, "growth", status.CurrentPlan)
	assert.Equal(t, []models.StepID{models.StepCategory, models.StepBusinessInfo}, status.CompletedSteps)
	assert.Equal(t, models.StepMenuInfo, status.NextStep)
	assert.Len(t, status.RequiredSteps, 6)
	assert.False(t, status.IsComplete)
	assert.True(t, status.ShouldShowOnboarding)
}

func TestCheckStatus_SellerTypeFromOnboardingData(t *testing.T) {
	env := newTestEnv(t, 2)
	env.seller("u1")
	env.prof.put(models.SellerProfile{
		UserID:         "u1",
		OnboardingData: models.OnboardingData{SellerType: models.SellerWriter, CompletedSteps: []models.StepID{models.StepCategory}},
	})

	status := env.svc.CheckStatus(context.Background(), "u1")
	assert.Equal(t, models.SellerWriter, status.SellerType)
	assert.Equal(t, models.StepWritingInfo, status.NextStep)
}

func TestCheckStatus_DegradedOnReadFailure(t *testing.T) {
	failures := map[string]func(env *testEnv){
		"role":         func(env *testEnv) { env.roles.err = errors.New("connection refused") },
		"profile":      func(env *testEnv) { env.prof.getErr = errors.New("connection refused") },
		"subscription": func(env *testEnv) { env.subs.err = errors.New("connection refused") },
	}
	for name, fail := range failures {
		t.Run(name, func(t *testing.T) {
			env := newTestEnv(t, 2)
			env.seller("u1")
			env.prof.put(models.SellerProfile{UserID: "u1", SellerType: models.SellerIndividual})
			fail(env)

			status := env.svc.CheckStatus(context.Background(), "u1")
			assert.False(t, status.IsComplete)
			assert.False(t, status.ShouldShowOnboarding)
			assert.Empty(t, status.CompletedSteps)
			assert.Empty(t, status.RequiredSteps)
			assert.False(t, env.svc.ShouldRedirect(context.Background(), "u1"))
		})
	}
}

type ctxCheckingProfiles struct {
	*fakeProfiles
}

func (p ctxCheckingProfiles) GetByUserID(ctx context.Context, userID string) (*models.SellerProfile, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return p.fakeProfiles.GetByUserID(ctx, userID)
}

func TestCheckStatus_SharedReadIgnoresCallerCancellation(t *testing.T) {
	profiles := ctxCheckingProfiles{fakeProfiles: newFakeProfiles()}
	roles := &fakeRoles{sellers: map[string]bool{"u1": true}}
	svc, err := NewDefaultOnboardingService(profiles, &fakeSubscriptions{}, roles, nil, NewMemoryLocker(), 2, nil)
	require.NoError(t, err)
	profiles.put(models.SellerProfile{UserID: "u1", SellerType: models.SellerWriter, OnboardingVersion: 2})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	status := svc.CheckStatus(ctx, "u1")
	assert.Equal(t, models.SellerWriter, status.SellerType)
	assert.NotEmpty(t, status.RequiredSteps)
}

func TestCheckStatus_Idempotent(t *testing.T) {
	env := newTestEnv(t, 2)
	env.seller("u1")
	env.activePlan("u1", "subscription_basic")
	env.prof.put(models.SellerProfile{
		UserID:         "u1",
		SellerType:     models.SellerArtist,
		OnboardingData: models.OnboardingData{CompletedSteps: []models.StepID{models.StepCategory}},
	})

	first := env.svc.CheckStatus(context.Background(), "u1")
	second := env.svc.CheckStatus(context.Background(), "u1")
	assert.Equal(t, first, second)
	assert.Zero(t, env.prof.upserts)
}

func completedSeller(env *testEnv, userID string, version int) {
	env.seller(userID)
	env.prof.put(models.SellerProfile{
		UserID:              userID,
		SellerType:          models.SellerIndividual,
		OnboardingCompleted: true,
		OnboardingVersion:   version,
		OnboardingData: models.OnboardingData{
			SellerType:     models.SellerIndividual,
			CompletedSteps: GetRequiredSteps(models.SellerIndividual),
		},
	})
}

func TestShouldRedirect_CompleteSellerIgnoresSubscription(t *testing.T) {
	env := newTestEnv(t, 2)
	completedSeller(env, "u1", 2)

	assert.False(t, env.svc.ShouldRedirect(context.Background(), "u1"), "no subscription")

	env.activePlan("u1", "subscription_pro")
	assert.False(t, env.svc.ShouldRedirect(context.Background(), "u1"), "active subscription")

	env.subs.err = errors.New("timeout")
	assert.False(t, env.svc.ShouldRedirect(context.Background(), "u1"), "subscription read failure")
}

func TestShouldRedirect_OutdatedVersion(t *testing.T) {
	env := newTestEnv(t, 2)
	completedSeller(env, "u1", 1)
	env.activePlan("u1", "subscription_pro")

	status := env.svc.CheckStatus(context.Background(), "u1")
	assert.False(t, status.IsComplete)
	assert.True(t, status.ShouldShowOnboarding)
	assert.True(t, env.svc.ShouldRedirect(context.Background(), "u1"))
}

func TestShouldRedirect_IncompleteSeller(t *testing.T) {
	env := newTestEnv(t, 2)
	env.seller("u1")
	env.activePlan("u1", "subscription_pro")
	env.prof.put(models.SellerProfile{UserID: "u1", SellerType: models.SellerIndividual, OnboardingVersion: 2})

	assert.True(t, env.svc.ShouldRedirect(context.Background(), "u1"))
}

func TestStepsForUser(t *testing.T) {
	individual := models.SellerIndividual
	tests := []struct {
		name            string
		status          models.OnboardingStatus
		includeOptional bool
		want            []models.StepID
	}{
		{
			name:   "no seller type",
			status: models.OnboardingStatus{},
			want:   []models.StepID{models.StepCategory},
		},
		{
			name: "active plan with pricing and payment done",
			status: models.OnboardingStatus{
				SellerType:           individual,
				HasActivePricingPlan: true,
				CompletedSteps:       []models.StepID{models.StepCategory, models.StepPricing, models.StepPayment},
			},
			want: []models.StepID{models.StepProfile},
		},
		{
			name: "active plan pricing done payment pending",
			status: models.OnboardingStatus{
				SellerType:           individual,
				HasActivePricingPlan: true,
				CompletedSteps:       []models.StepID{models.StepCategory, models.StepPricing},
			},
			want: []models.StepID{models.StepProfile, models.StepPayment},
		},
		{
			name: "active plan everything done",
			status: models.OnboardingStatus{
				SellerType:           individual,
				HasActivePricingPlan: true,
				CompletedSteps:       GetRequiredSteps(individual),
			},
			want: []models.StepID{},
		},
		{
			name: "active plan only payment pending",
			status: models.OnboardingStatus{
				SellerType:           individual,
				HasActivePricingPlan: true,
				CompletedSteps:       []models.StepID{models.StepCategory, models.StepProfile, models.StepPricing},
			},
			want: []models.StepID{models.StepPayment},
		},
		{
			name: "no plan category done",
			status: models.OnboardingStatus{
				SellerType:     individual,
				CompletedSteps: []models.StepID{models.StepCategory},
			},
			want: []models.StepID{models.StepProfile, models.StepPricing, models.StepPayment},
		},
		{
			name: "no plan category done with optional",
			status: models.OnboardingStatus{
				SellerType:     individual,
				CompletedSteps: []models.StepID{models.StepCategory, models.StepProfile},
			},
			includeOptional: true,
			want: []models.StepID{
				models.StepSocialLinks, models.StepPricing, models.StepPayment,
				models.StepShipping, models.StepIdentityVerification,
			},
		},
		{
			name:   "no plan nothing done",
			status: models.OnboardingStatus{SellerType: individual},
			want:   []models.StepID{models.StepCategory, models.StepProfile, models.StepPricing, models.StepPayment},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, StepsForUser(tt.status, tt.includeOptional))
		})
	}
}

func TestStepsForUser_ResumptionFromStatus(t *testing.T) {
	env := newTestEnv(t, 2)
	env.seller("u1")
	env.activePlan("u1", "subscription_pro")
	env.prof.put(models.SellerProfile{
		UserID:     "u1",
		SellerType: models.SellerIndividual,
		OnboardingData: models.OnboardingData{
			CompletedSteps: []models.StepID{models.StepCategory, models.StepPricing, models.StepPayment},
		},
	})

	status := env.svc.CheckStatus(context.Background(), "u1")
	require.Equal(t, models.PricingSubscription, status.PricingModel)
	assert.Equal(t, []models.StepID{models.StepProfile}, env.svc.StepsForUser(status, false))
}
