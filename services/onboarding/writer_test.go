package onboarding

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"blinno/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarkStepCompleted_Idempotent(t *testing.T) {
	env := newTestEnv(t, 2)
	ctx := context.Background()

	require.True(t, env.svc.MarkStepCompleted(ctx, "u1", models.StepProfile, models.StepAnswers{"displayName": "First"}))
	require.True(t, env.svc.MarkStepCompleted(ctx, "u1", models.StepProfile, models.StepAnswers{"displayName": "Second"}))

	row := env.prof.get("u1")
	assert.Equal(t, []models.StepID{models.StepProfile}, row.OnboardingData.CompletedSteps)
	assert.Equal(t, "Second", row.OnboardingData.Answers[models.StepProfile].String("displayName"))
	assert.False(t, row.OnboardingCompleted)
	assert.Equal(t, fixedNow, row.OnboardingData.UpdatedAt)
}

func TestMarkStepCompleted_UnknownStep(t *testing.T) {
	env := newTestEnv(t, 2)

	assert.False(t, env.svc.MarkStepCompleted(context.Background(), "u1", "bogus", nil))
	assert.Zero(t, env.prof.upserts)
}

func TestMarkStepCompleted_CategorySetsTypeAndDefaults(t *testing.T) {
	env := newTestEnv(t, 2)
	ctx := context.Background()

	require.True(t, env.svc.MarkStepCompleted(ctx, "u1", models.StepCategory, models.StepAnswers{"sellerType": "musician"}))
	row := env.prof.get("u1")
	assert.Equal(t, models.SellerMusician, row.SellerType)
	assert.Equal(t, models.SellerMusician, row.OnboardingData.SellerType)
	assert.Equal(t, GetDefaultFields(models.SellerMusician), row.CategorySpecificData)

	// Later steps keep the type and leave existing category data alone.
	row.CategorySpecificData["genre"] = "bongo flava"
	env.prof.put(row)
	require.True(t, env.svc.MarkStepCompleted(ctx, "u1", models.StepMusicInfo, models.StepAnswers{"stageName": "Zuchu"}))
	row = env.prof.get("u1")
	assert.Equal(t, models.SellerMusician, row.SellerType)
	assert.Equal(t, "bongo flava", row.CategorySpecificData["genre"])
	assert.Equal(t, []models.StepID{models.StepCategory, models.StepMusicInfo}, row.OnboardingData.CompletedSteps)
}

func TestResolveSellerType_Precedence(t *testing.T) {
	profile := &models.SellerProfile{SellerType: models.SellerBusiness}
	stored := models.OnboardingData{SellerType: models.SellerArtist}

	tests := []struct {
		name       string
		in         sellerTypeInput
		want       models.SellerType
		wantSource string
	}{
		{
			name: "category step wins",
			in: sellerTypeInput{
				StepID: models.StepCategory, StepData: models.StepAnswers{"sellerType": "writer"},
				Stored: stored, Profile: profile,
			},
			want: models.SellerWriter, wantSource: "category-step",
		},
		{
			name: "step data on a later step",
			in: sellerTypeInput{
				StepID: models.StepProfile, StepData: models.StepAnswers{"sellerType": "musician"},
				Stored: stored, Profile: profile,
			},
			want: models.SellerMusician, wantSource: "step-data",
		},
		{
			name: "stored onboarding data",
			in:   sellerTypeInput{StepID: models.StepProfile, Stored: stored, Profile: profile},
			want: models.SellerArtist, wantSource: "onboarding-data",
		},
		{
			name: "profile row",
			in:   sellerTypeInput{StepID: models.StepProfile, Profile: profile},
			want: models.SellerBusiness, wantSource: "profile-row",
		},
		{
			name: "nothing known",
			in:   sellerTypeInput{StepID: models.StepProfile},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, source := resolveSellerType(tt.in)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.wantSource, source)
		})
	}
}

func TestMarkStepCompleted_WriteFailure(t *testing.T) {
	env := newTestEnv(t, 2)
	env.prof.upsertErr = errors.New("write conflict")

	assert.False(t, env.svc.MarkStepCompleted(context.Background(), "u1", models.StepProfile, models.StepAnswers{}))
}

func TestMarkStepCompleted_ReadFailure(t *testing.T) {
	env := newTestEnv(t, 2)
	env.prof.getErr = errors.New("connection reset")

	assert.False(t, env.svc.MarkStepCompleted(context.Background(), "u1", models.StepProfile, models.StepAnswers{}))
	assert.Zero(t, env.prof.upserts)
}

func TestMarkStepCompleted_ConcurrentStepsAllPersist(t *testing.T) {
	env := newTestEnv(t, 2)
	steps := GetRequiredSteps(models.SellerBusiness)

	var wg sync.WaitGroup
	for _, step := range steps {
		wg.Add(1)
		go func(step models.StepID) {
			defer wg.Done()
			assert.True(t, env.svc.MarkStepCompleted(context.Background(), "u1", step, models.StepAnswers{"n": string(step)}))
		}(step)
	}
	wg.Wait()

	assert.ElementsMatch(t, steps, env.prof.get("u1").OnboardingData.CompletedSteps)
}

func TestMarkOnboardingComplete_RefusesMissingSteps(t *testing.T) {
	env := newTestEnv(t, 2)
	env.prof.put(models.SellerProfile{UserID: "u1", SellerType: models.SellerIndividual})

	data := models.OnboardingData{CompletedSteps: []models.StepID{models.StepCategory, models.StepProfile, models.StepPricing}}
	assert.False(t, env.svc.MarkOnboardingComplete(context.Background(), "u1", models.SellerIndividual, data))
	assert.Zero(t, env.prof.upserts)
	assert.False(t, env.prof.get("u1").OnboardingCompleted)
}

func TestMarkOnboardingComplete_MonotonicUntilReset(t *testing.T) {
	env := newTestEnv(t, 2)
	ctx := context.Background()
	env.seller("u1")

	for _, step := range GetRequiredSteps(models.SellerIndividual) {
		answers := models.StepAnswers{}
		if step == models.StepCategory {
			answers["sellerType"] = "individual"
		}
		require.True(t, env.svc.MarkStepCompleted(ctx, "u1", step, answers))
	}
	stored := env.prof.get("u1")
	require.True(t, env.svc.MarkOnboardingComplete(ctx, "u1", models.SellerIndividual, stored.OnboardingData))

	row := env.prof.get("u1")
	assert.True(t, row.OnboardingCompleted)
	assert.Equal(t, 2, row.OnboardingVersion)
	require.NotNil(t, row.OnboardingData.Completion)
	assert.Equal(t, 2, row.OnboardingData.Completion.Version)
	assert.True(t, env.svc.CheckStatus(ctx, "u1").IsComplete)

	// Optional steps and resubmissions after completion keep the flag.
	require.True(t, env.svc.MarkStepCompleted(ctx, "u1", models.StepSocialLinks, models.StepAnswers{"instagram": "https://instagram.com/amina"}))
	require.True(t, env.svc.MarkStepCompleted(ctx, "u1", models.StepProfile, models.StepAnswers{"displayName": "Amina"}))
	assert.True(t, env.svc.CheckStatus(ctx, "u1").IsComplete)
	assert.False(t, env.svc.CheckAndForceVersionUpdate(ctx, "u1"))
	assert.True(t, env.svc.CheckStatus(ctx, "u1").IsComplete)

	require.True(t, env.svc.ResetOnboarding(ctx, "u1", "support request"))
	assert.False(t, env.svc.CheckStatus(ctx, "u1").IsComplete)
}

func TestMarkOnboardingComplete_MergesStoredProgress(t *testing.T) {
	env := newTestEnv(t, 2)
	env.prof.put(models.SellerProfile{
		UserID: "u1",
		OnboardingData: models.OnboardingData{
			CompletedSteps: []models.StepID{models.StepCategory, models.StepSocialLinks},
			Answers:        map[models.StepID]models.StepAnswers{models.StepSocialLinks: {"website": "https://amina.co.tz"}},
			Reset:          &models.ResetRecord{Reason: "version_update"},
		},
	})

	data := models.OnboardingData{
		CompletedSteps: GetRequiredSteps(models.SellerIndividual),
		Answers:        map[models.StepID]models.StepAnswers{models.StepProfile: {"displayName": "Amina"}},
	}
	require.True(t, env.svc.MarkOnboardingComplete(context.Background(), "u1", models.SellerIndividual, data))

	row := env.prof.get("u1")
	assert.ElementsMatch(t, append(GetRequiredSteps(models.SellerIndividual), models.StepSocialLinks), row.OnboardingData.CompletedSteps)
	assert.Contains(t, row.OnboardingData.Answers, models.StepSocialLinks)
	assert.Contains(t, row.OnboardingData.Answers, models.StepProfile)
	assert.Nil(t, row.OnboardingData.Reset)
	assert.Equal(t, models.SellerIndividual, row.SellerType)
}

func TestMarkOnboardingComplete_UnknownTypeUsesOther(t *testing.T) {
	env := newTestEnv(t, 2)

	data := models.OnboardingData{CompletedSteps: GetRequiredSteps(models.SellerOther)}
	require.True(t, env.svc.MarkOnboardingComplete(context.Background(), "u1", "florist", data))
	assert.Equal(t, models.SellerOther, env.prof.get("u1").SellerType)
}

func TestMarkOnboardingComplete_UnknownTypeKeepsStoredType(t *testing.T) {
	env := newTestEnv(t, 2)
	env.prof.put(models.SellerProfile{UserID: "u1", SellerType: models.SellerWriter})

	data := models.OnboardingData{CompletedSteps: GetRequiredSteps(models.SellerOther)}
	require.True(t, env.svc.MarkOnboardingComplete(context.Background(), "u1", "", data))

	row := env.prof.get("u1")
	assert.True(t, row.OnboardingCompleted)
	assert.Equal(t, models.SellerWriter, row.SellerType)
	require.NotNil(t, row.OnboardingData.Completion)
	assert.Equal(t, models.SellerWriter, row.OnboardingData.Completion.SellerType)
}

func TestMarkOnboardingComplete_KnownTypeReplacesStoredType(t *testing.T) {
	env := newTestEnv(t, 2)
	env.prof.put(models.SellerProfile{UserID: "u1", SellerType: models.SellerWriter})

	data := models.OnboardingData{CompletedSteps: GetRequiredSteps(models.SellerArtist)}
	require.True(t, env.svc.MarkOnboardingComplete(context.Background(), "u1", models.SellerArtist, data))
	assert.Equal(t, models.SellerArtist, env.prof.get("u1").SellerType)
}

func TestCompleteOnboarding_FromStoredProgress(t *testing.T) {
	env := newTestEnv(t, 2)
	ctx := context.Background()

	assert.False(t, env.svc.CompleteOnboarding(ctx, "u1"), "no profile yet")

	env.prof.put(models.SellerProfile{
		UserID:         "u1",
		SellerType:     models.SellerWriter,
		OnboardingData: models.OnboardingData{CompletedSteps: []models.StepID{models.StepCategory}},
	})
	assert.False(t, env.svc.CompleteOnboarding(ctx, "u1"), "steps missing")

	row := env.prof.get("u1")
	row.OnboardingData.CompletedSteps = GetRequiredSteps(models.SellerWriter)
	env.prof.put(row)
	assert.True(t, env.svc.CompleteOnboarding(ctx, "u1"))
	assert.True(t, env.prof.get("u1").OnboardingCompleted)
}

func TestCheckAndForceVersionUpdate_VersionBump(t *testing.T) {
	env := newTestEnv(t, 2)
	ctx := context.Background()
	completedSeller(env, "u1", 1)

	assert.True(t, env.svc.CheckAndForceVersionUpdate(ctx, "u1"))

	status := env.svc.CheckStatus(ctx, "u1")
	assert.False(t, status.IsComplete)
	assert.Empty(t, status.CompletedSteps)

	row := env.prof.get("u1")
	require.NotNil(t, row.OnboardingData.Reset)
	assert.Equal(t, ResetReasonVersionUpdate, row.OnboardingData.Reset.Reason)
	assert.Equal(t, 1, row.OnboardingData.Reset.PreviousVersion)

	history, err := env.svc.ResetHistory(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.True(t, history[0].PreviousCompleted)
	assert.Equal(t, GetRequiredSteps(models.SellerIndividual), history[0].PreviousData.CompletedSteps)

	// Already reset, nothing more to do.
	assert.False(t, env.svc.CheckAndForceVersionUpdate(ctx, "u1"))
}

func TestCheckAndForceVersionUpdate_NoOp(t *testing.T) {
	env := newTestEnv(t, 2)
	ctx := context.Background()

	assert.False(t, env.svc.CheckAndForceVersionUpdate(ctx, "missing"))

	completedSeller(env, "current", 2)
	assert.False(t, env.svc.CheckAndForceVersionUpdate(ctx, "current"))

	env.prof.put(models.SellerProfile{UserID: "incomplete", OnboardingVersion: 0})
	assert.False(t, env.svc.CheckAndForceVersionUpdate(ctx, "incomplete"))

	assert.Zero(t, env.prof.upserts)
	assert.Empty(t, env.resets.resets)
}

func TestCheckAndForceVersionUpdate_WaitsForInFlightCompletion(t *testing.T) {
	env := newTestEnv(t, 2)
	ctx := context.Background()
	completedSeller(env, "u1", 1)

	// Hold the user lock the way an in-flight completion would.
	unlock, err := env.svc.Locker.Lock(ctx, "u1")
	require.NoError(t, err)

	result := make(chan bool, 1)
	go func() { result <- env.svc.CheckAndForceVersionUpdate(ctx, "u1") }()
	time.Sleep(50 * time.Millisecond)

	row := env.prof.get("u1")
	row.OnboardingVersion = 2
	env.prof.put(row)
	unlock()

	select {
	case reset := <-result:
		assert.False(t, reset)
	case <-time.After(time.Second):
		t.Fatal("version check never finished")
	}
	row = env.prof.get("u1")
	assert.True(t, row.OnboardingCompleted)
	assert.Equal(t, 2, row.OnboardingVersion)
	assert.Nil(t, row.OnboardingData.Reset)
	assert.Empty(t, env.resets.resets)
}

type trackingLocker struct {
	inner UserLocker
	mu    sync.Mutex
	held  map[string]bool
}

func (l *trackingLocker) Lock(ctx context.Context, userID string) (func(), error) {
	unlock, err := l.inner.Lock(ctx, userID)
	if err != nil {
		return nil, err
	}
	l.mu.Lock()
	l.held[userID] = true
	l.mu.Unlock()
	return func() {
		l.mu.Lock()
		l.held[userID] = false
		l.mu.Unlock()
		unlock()
	}, nil
}

func (l *trackingLocker) isHeld(userID string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.held[userID]
}

type lockCheckingProfiles struct {
	*fakeProfiles
	locks         *trackingLocker
	unlockedReads int
}

func (p *lockCheckingProfiles) GetByUserID(ctx context.Context, userID string) (*models.SellerProfile, error) {
	if !p.locks.isHeld(userID) {
		p.unlockedReads++
	}
	return p.fakeProfiles.GetByUserID(ctx, userID)
}

func TestCheckAndForceVersionUpdate_ReadsUnderLock(t *testing.T) {
	locks := &trackingLocker{inner: NewMemoryLocker(), held: make(map[string]bool)}
	profiles := &lockCheckingProfiles{fakeProfiles: newFakeProfiles(), locks: locks}
	resets := &fakeResets{}
	svc, err := NewDefaultOnboardingService(profiles, &fakeSubscriptions{}, &fakeRoles{}, resets, locks, 2, nil)
	require.NoError(t, err)

	profiles.put(models.SellerProfile{
		UserID:              "u1",
		SellerType:          models.SellerIndividual,
		OnboardingCompleted: true,
		OnboardingVersion:   1,
		OnboardingData:      models.OnboardingData{CompletedSteps: GetRequiredSteps(models.SellerIndividual)},
	})

	assert.True(t, svc.CheckAndForceVersionUpdate(context.Background(), "u1"))
	assert.Zero(t, profiles.unlockedReads)
	assert.False(t, profiles.get("u1").OnboardingCompleted)
	require.Len(t, resets.resets, 1)
	assert.Equal(t, 1, resets.resets[0].PreviousVersion)
}

func TestResetOnboarding_ArchiveFailureStillResets(t *testing.T) {
	env := newTestEnv(t, 2)
	completedSeller(env, "u1", 2)
	env.resets.err = errors.New("archive unavailable")

	require.True(t, env.svc.ResetOnboarding(context.Background(), "u1", "fraud review"))
	row := env.prof.get("u1")
	assert.False(t, row.OnboardingCompleted)
	assert.Empty(t, row.OnboardingData.CompletedSteps)
	assert.Equal(t, "fraud review", row.OnboardingData.Reset.Reason)
}

func TestResetOnboarding_WriteFailure(t *testing.T) {
	env := newTestEnv(t, 2)
	completedSeller(env, "u1", 2)
	env.prof.upsertErr = errors.New("write failed")

	assert.False(t, env.svc.ResetOnboarding(context.Background(), "u1", "support"))
	assert.True(t, env.prof.get("u1").OnboardingCompleted)
}

func TestOutdatedSellers(t *testing.T) {
	env := newTestEnv(t, 3)
	for i, version := range []int{1, 2, 3} {
		completedSeller(env, fmt.Sprintf("u%d", i), version)
	}

	ids, err := env.svc.OutdatedSellers(context.Background(), 100)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"u0", "u1"}, ids)
}

func TestNewDefaultOnboardingService_Validation(t *testing.T) {
	env := newTestEnv(t, 1)

	_, err := NewDefaultOnboardingService(nil, env.subs, env.roles, env.resets, NewMemoryLocker(), 1, nil)
	assert.Error(t, err)

	_, err = NewDefaultOnboardingService(env.prof, env.subs, env.roles, env.resets, NewMemoryLocker(), 0, nil)
	assert.Error(t, err)

	svc, err := NewDefaultOnboardingService(env.prof, env.subs, env.roles, nil, NewMemoryLocker(), 4, nil)
	require.NoError(t, err)
	assert.Equal(t, 4, svc.RequiredVersion())
}
