package models

import (
	"fmt"
	"strings"
	"time"
)

// StepAnswers holds the submitted values of one step keyed by field id.
type StepAnswers map[string]any

// String returns the trimmed string value of key, or "" when absent or not a string.
func (a StepAnswers) String(key string) string {
	if a == nil {
		return ""
	}
	switch v := a[key].(type) {
	case string:
		return strings.TrimSpace(v)
	case fmt.Stringer:
		return strings.TrimSpace(v.String())
	}
	return ""
}

// Clone returns a shallow copy.
func (a StepAnswers) Clone() StepAnswers {
	if a == nil {
		return nil
	}
	out := make(StepAnswers, len(a))
	for k, v := range a {
		out[k] = v
	}
	return out
}

// CompletionRecord is written once when onboarding is marked complete.
type CompletionRecord struct {
	ID          string     `bson:"id" json:"id"`
	SellerType  SellerType `bson:"sellerType" json:"sellerType"`
	Version     int        `bson:"version" json:"version"`
	CompletedAt time.Time  `bson:"completedAt" json:"completedAt"`
}

// ResetRecord marks onboarding data that was wiped by an administrative reset.
type ResetRecord struct {
	ID              string    `bson:"id" json:"id"`
	Reason          string    `bson:"reason" json:"reason"`
	PreviousVersion int       `bson:"previousVersion" json:"previousVersion"`
	ResetAt         time.Time `bson:"resetAt" json:"resetAt"`
}

// OnboardingData is the persisted progress of a seller's onboarding.
// CompletedSteps is kept apart from the per-step answers.
type OnboardingData struct {
	SellerType     SellerType             `bson:"sellerType,omitempty" json:"sellerType,omitempty"`
	CompletedSteps []StepID               `bson:"completedSteps" json:"completedSteps"`
	Answers        map[StepID]StepAnswers `bson:"answers,omitempty" json:"answers,omitempty"`
	Completion     *CompletionRecord      `bson:"completion,omitempty" json:"completion,omitempty"`
	Reset          *ResetRecord           `bson:"reset,omitempty" json:"reset,omitempty"`
	UpdatedAt      time.Time              `bson:"updatedAt,omitempty" json:"updatedAt,omitzero"`
}

// HasCompleted reports whether step is in CompletedSteps.
func (d OnboardingData) HasCompleted(step StepID) bool {
	for _, s := range d.CompletedSteps {
		if s == step {
			return true
		}
	}
	return false
}

// Clone copies the data deeply enough that mutating the result never touches d.
func (d OnboardingData) Clone() OnboardingData {
	out := d
	out.CompletedSteps = append([]StepID(nil), d.CompletedSteps...)
	if d.Answers != nil {
		out.Answers = make(map[StepID]StepAnswers, len(d.Answers))
		for k, v := range d.Answers {
			out.Answers[k] = v.Clone()
		}
	}
	if d.Completion != nil {
		c := *d.Completion
		out.Completion = &c
	}
	if d.Reset != nil {
		r := *d.Reset
		out.Reset = &r
	}
	return out
}

// SellerProfile is the persisted seller row, keyed by user id.
type SellerProfile struct {
	UserID               string         `bson:"userId" json:"userId"`
	SellerType           SellerType     `bson:"sellerType,omitempty" json:"sellerType,omitempty"`
	OnboardingCompleted  bool           `bson:"onboardingCompleted" json:"onboardingCompleted"`
	OnboardingVersion    int            `bson:"onboardingVersion" json:"onboardingVersion"`
	OnboardingData       OnboardingData `bson:"onboardingData" json:"onboardingData"`
	CategorySpecificData map[string]any `bson:"categorySpecificData,omitempty" json:"categorySpecificData,omitempty"`
	CreatedAt            time.Time      `bson:"createdAt" json:"createdAt,omitzero"`
	UpdatedAt            time.Time      `bson:"updatedAt" json:"updatedAt,omitzero"`
}

// ProfilePatch is a partial update of a SellerProfile. Nil fields are left untouched.
type ProfilePatch struct {
	SellerType           *SellerType
	OnboardingCompleted  *bool
	OnboardingVersion    *int
	OnboardingData       *OnboardingData
	CategorySpecificData map[string]any
}

// SubscriptionStatusActive marks the subscription row that currently applies.
const SubscriptionStatusActive = "active"

// SellerSubscription records the pricing plan a seller is on.
// Plan is prefixed with the pricing model, e.g. "subscription_pro" or "percentage_standard".
type SellerSubscription struct {
	ID        string    `bson:"id" json:"id"`
	UserID    string    `bson:"userId" json:"userId"`
	Plan      string    `bson:"plan" json:"plan"`
	Status    string    `bson:"status" json:"status"`
	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	ExpiresAt time.Time `bson:"expiresAt,omitempty" json:"expiresAt,omitzero"`
}

// UserRole grants a role to a user.
type UserRole struct {
	UserID string `bson:"userId" json:"userId"`
	Role   string `bson:"role" json:"role"`
}

// RoleSeller is the role that makes a user eligible for seller onboarding.
const RoleSeller = "seller"

// OnboardingReset archives the onboarding data discarded by a reset.
type OnboardingReset struct {
	ID                 string         `bson:"id" json:"id"`
	UserID             string         `bson:"userId" json:"userId"`
	Reason             string         `bson:"reason" json:"reason"`
	PreviousCompleted  bool           `bson:"previousCompleted" json:"previousCompleted"`
	PreviousVersion    int            `bson:"previousVersion" json:"previousVersion"`
	PreviousSellerType SellerType     `bson:"previousSellerType,omitempty" json:"previousSellerType,omitempty"`
	PreviousData       OnboardingData `bson:"previousData" json:"previousData"`
	ResetAt            time.Time      `bson:"resetAt" json:"resetAt"`
}

// CategoryAnswer is the typed view of the category step.
type CategoryAnswer struct {
	SellerType SellerType
}

// CategoryAnswerFrom decodes the category step answers.
func CategoryAnswerFrom(a StepAnswers) CategoryAnswer {
	return CategoryAnswer{SellerType: SellerType(a.String("sellerType"))}
}

// PricingAnswer is the typed view of the pricing step.
type PricingAnswer struct {
	Model PricingModel
	Plan  string
}

// PricingAnswerFrom decodes the pricing step answers.
func PricingAnswerFrom(a StepAnswers) PricingAnswer {
	return PricingAnswer{
		Model: PricingModel(a.String("pricingModel")),
		Plan:  a.String("plan"),
	}
}

// Payout methods accepted on the payment step.
const (
	PayoutMobileMoney = "mobile_money"
	PayoutBank        = "bank_transfer"
	PayoutStripe      = "stripe"
)

// PaymentAnswer is the typed view of the payment step.
type PaymentAnswer struct {
	PayoutMethod      string
	MobileProvider    string
	MobileNumber      string
	BankName          string
	BankAccountNumber string
	StripeAccountID   string
}

// PaymentAnswerFrom decodes the payment step answers.
func PaymentAnswerFrom(a StepAnswers) PaymentAnswer {
	return PaymentAnswer{
		PayoutMethod:      a.String("payoutMethod"),
		MobileProvider:    a.String("mobileProvider"),
		MobileNumber:      a.String("mobileNumber"),
		BankName:          a.String("bankName"),
		BankAccountNumber: a.String("bankAccountNumber"),
		StripeAccountID:   a.String("stripeAccountId"),
	}
}
