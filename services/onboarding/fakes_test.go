package onboarding

import (
	"context"
	"sync"
	"testing"
	"time"

	sellerRepo "blinno/database/repository/seller"
	"blinno/models"

	"go.uber.org/zap"
)

type fakeProfiles struct {
	mu        sync.Mutex
	rows      map[string]models.SellerProfile
	getErr    error
	upsertErr error
	upserts   int
}

func newFakeProfiles() *fakeProfiles {
	return &fakeProfiles{rows: make(map[string]models.SellerProfile)}
}

func (f *fakeProfiles) GetByUserID(_ context.Context, userID string) (*models.SellerProfile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.getErr != nil {
		return nil, f.getErr
	}
	row, ok := f.rows[userID]
	if !ok {
		return nil, sellerRepo.ErrProfileNotFound
	}
	row.OnboardingData = row.OnboardingData.Clone()
	return &row, nil
}

func (f *fakeProfiles) Upsert(_ context.Context, userID string, patch models.ProfilePatch) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.upsertErr != nil {
		return f.upsertErr
	}
	f.upserts++
	row, ok := f.rows[userID]
	if !ok {
		row = models.SellerProfile{UserID: userID}
	}
	if patch.SellerType != nil {
		row.SellerType = *patch.SellerType
	}
	if patch.OnboardingCompleted != nil {
		row.OnboardingCompleted = *patch.OnboardingCompleted
	}
	if patch.OnboardingVersion != nil {
		row.OnboardingVersion = *patch.OnboardingVersion
	}
	if patch.OnboardingData != nil {
		row.OnboardingData = patch.OnboardingData.Clone()
	}
	if patch.CategorySpecificData != nil {
		row.CategorySpecificData = patch.CategorySpecificData
	}
	f.rows[userID] = row
	return nil
}

func (f *fakeProfiles) ListOutdatedCompleted(_ context.Context, version int, _ int64) ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []string
	for id, row := range f.rows {
		if row.OnboardingCompleted && row.OnboardingVersion < version {
			out = append(out, id)
		}
	}
	return out, nil
}

func (f *fakeProfiles) put(p models.SellerProfile) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.rows[p.UserID] = p
}

func (f *fakeProfiles) get(userID string) models.SellerProfile {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.rows[userID]
}

type fakeSubscriptions struct {
	subs map[string]models.SellerSubscription
	err  error
}

func (f *fakeSubscriptions) GetActiveByUserID(_ context.Context, userID string) (*models.SellerSubscription, error) {
	if f.err != nil {
		return nil, f.err
	}
	sub, ok := f.subs[userID]
	if !ok {
		return nil, sellerRepo.ErrSubscriptionNotFound
	}
	return &sub, nil
}

type fakeRoles struct {
	sellers map[string]bool
	err     error
}

func (f *fakeRoles) HasRole(_ context.Context, userID, role string) (bool, error) {
	if f.err != nil {
		return false, f.err
	}
	return role == models.RoleSeller && f.sellers[userID], nil
}

type fakeResets struct {
	mu     sync.Mutex
	resets []models.OnboardingReset
	err    error
}

func (f *fakeResets) Create(_ context.Context, reset models.OnboardingReset) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return "", f.err
	}
	f.resets = append(f.resets, reset)
	return reset.ID, nil
}

func (f *fakeResets) GetByUserID(_ context.Context, userID string) ([]models.OnboardingReset, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.OnboardingReset
	for _, r := range f.resets {
		if r.UserID == userID {
			out = append(out, r)
		}
	}
	return out, nil
}

type fakePayouts struct {
	err     error
	checked []string
}

func (f *fakePayouts) VerifyAccount(_ context.Context, accountID string) error {
	f.checked = append(f.checked, accountID)
	return f.err
}

type testEnv struct {
	svc    *DefaultOnboardingService
	prof   *fakeProfiles
	subs   *fakeSubscriptions
	roles  *fakeRoles
	resets *fakeResets
}

var fixedNow = time.Date(2026, 5, 4, 10, 30, 0, 0, time.UTC)

func newTestEnv(t *testing.T, version int) *testEnv {
	t.Helper()
	env := &testEnv{
		prof:   newFakeProfiles(),
		subs:   &fakeSubscriptions{subs: make(map[string]models.SellerSubscription)},
		roles:  &fakeRoles{sellers: make(map[string]bool)},
		resets: &fakeResets{},
	}
	svc, err := NewDefaultOnboardingService(env.prof, env.subs, env.roles, env.resets, NewMemoryLocker(), version, zap.NewNop())
	if err != nil {
		t.Fatalf("failed to build service: %v", err)
	}
	svc.Now = func() time.Time { return fixedNow }
	env.svc = svc
	return env
}

func (e *testEnv) seller(userID string) {
	e.roles.sellers[userID] = true
}

func (e *testEnv) activePlan(userID, plan string) {
	e.subs.subs[userID] = models.SellerSubscription{
		ID:     "sub-" + userID,
		UserID: userID,
		Plan:   plan,
		Status: models.SubscriptionStatusActive,
	}
}
