package onboarding

import (
	"context"

	"blinno/models"

	"go.uber.org/zap"
)

// SubmitStep validates answers and, when valid, records the step.
// Validation problems come back in the result; err is ErrUnknownStep or ErrStepNotSaved.
func (s *DefaultOnboardingService) SubmitStep(ctx context.Context, userID string, stepID models.StepID, answers models.StepAnswers) (models.ValidationResult, error) {
	if _, ok := LookupStep(stepID); !ok {
		return models.ValidationResult{Valid: false, Errors: []string{}}, ErrUnknownStep
	}

	result := ValidateStep(stepID, answers)
	if !result.Valid {
		return result, nil
	}

	if stepID == models.StepPayment && s.Payouts != nil {
		payment := models.PaymentAnswerFrom(answers)
		if payment.PayoutMethod == models.PayoutStripe {
			if err := s.Payouts.VerifyAccount(ctx, payment.StripeAccountID); err != nil {
				s.logger().Warn("Stripe payout account rejected",
					zap.String("userID", userID),
					zap.String("account", payment.StripeAccountID),
					zap.Error(err),
				)
				return models.ValidationResult{
					Valid:  false,
					Errors: []string{"Stripe account is not ready to receive payouts"},
				}, nil
			}
		}
	}

	if !s.MarkStepCompleted(ctx, userID, stepID, answers) {
		return result, ErrStepNotSaved
	}
	return result, nil
}
