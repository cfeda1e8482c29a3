package onboarding

import (
	"context"
	"errors"
	"fmt"

	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/client"
)

// ErrPayoutAccountNotReady means the account exists but cannot receive payouts.
var ErrPayoutAccountNotReady = errors.New("payout account cannot receive payouts yet")

// PayoutVerifier checks a seller's payout account with the payment provider.
type PayoutVerifier interface {
	VerifyAccount(ctx context.Context, accountID string) error
}

// StripePayoutVerifier verifies Stripe Connect accounts.
type StripePayoutVerifier struct {
	api *client.API
}

func NewStripePayoutVerifier(secretKey string) *StripePayoutVerifier {
	sc := &client.API{}
	sc.Init(secretKey, nil)
	return &StripePayoutVerifier{api: sc}
}

func (v *StripePayoutVerifier) VerifyAccount(ctx context.Context, accountID string) error {
	params := &stripe.AccountParams{}
	params.Context = ctx
	acct, err := v.api.Accounts.GetByID(accountID, params)
	if err != nil {
		return fmt.Errorf("failed to fetch stripe account %s: %w", accountID, err)
	}
	if !acct.DetailsSubmitted || !acct.PayoutsEnabled {
		return ErrPayoutAccountNotReady
	}
	return nil
}
