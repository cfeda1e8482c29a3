package onboarding

import (
	"fmt"
	"strings"

	"blinno/models"
)

// Custom step validators. They must not reference stepRegistry, which holds them.

func validateCategory(answers models.StepAnswers) models.ValidationResult {
	errs := []string{}
	category := models.CategoryAnswerFrom(answers)
	switch {
	case category.SellerType == "":
		errs = append(errs, "Seller Type is required")
	case !IsKnownSellerType(category.SellerType):
		errs = append(errs, fmt.Sprintf("Seller Type %q is not supported", category.SellerType))
	}
	return models.ValidationResult{Valid: len(errs) == 0, Errors: errs}
}

func validatePricing(answers models.StepAnswers) models.ValidationResult {
	errs := []string{}
	pricing := models.PricingAnswerFrom(answers)

	var plans []string
	switch pricing.Model {
	case "":
		errs = append(errs, "Pricing Model is required")
	case models.PricingSubscription:
		plans = subscriptionPlans
	case models.PricingPercentage:
		plans = percentagePlans
	default:
		errs = append(errs, "Pricing Model must be subscription or percentage")
	}

	switch {
	case pricing.Plan == "":
		errs = append(errs, "Plan is required")
	case plans != nil && !contains(plans, pricing.Plan):
		errs = append(errs, fmt.Sprintf("Plan must be one of: %s", strings.Join(plans, ", ")))
	}
	return models.ValidationResult{Valid: len(errs) == 0, Errors: errs}
}

func validatePayment(answers models.StepAnswers) models.ValidationResult {
	errs := []string{}
	payment := models.PaymentAnswerFrom(answers)

	switch payment.PayoutMethod {
	case "":
		errs = append(errs, "Payout Method is required")
	case models.PayoutMobileMoney:
		if payment.MobileProvider == "" {
			errs = append(errs, "Mobile Money Provider is required")
		} else if !contains(mobileProviders, payment.MobileProvider) {
			errs = append(errs, fmt.Sprintf("Mobile Money Provider must be one of: %s", strings.Join(mobileProviders, ", ")))
		}
		if payment.MobileNumber == "" {
			errs = append(errs, "Mobile Money Number is required")
		} else if validate.Var(payment.MobileNumber, "e164") != nil {
			errs = append(errs, "Mobile Money Number must be a valid phone number in international format")
		}
	case models.PayoutBank:
		if payment.BankName == "" {
			errs = append(errs, "Bank Name is required")
		}
		if payment.BankAccountNumber == "" {
			errs = append(errs, "Bank Account Number is required")
		} else if validate.Var(payment.BankAccountNumber, "numeric,min=6,max=20") != nil {
			errs = append(errs, "Bank Account Number must be 6 to 20 digits")
		}
	case models.PayoutStripe:
		if payment.StripeAccountID == "" {
			errs = append(errs, "Stripe Account ID is required")
		} else if !strings.HasPrefix(payment.StripeAccountID, "acct_") {
			errs = append(errs, "Stripe Account ID must start with acct_")
		}
	default:
		errs = append(errs, fmt.Sprintf("Payout Method must be one of: %s", strings.Join(payoutMethods, ", ")))
	}
	return models.ValidationResult{Valid: len(errs) == 0, Errors: errs}
}

func validateSocialLinks(answers models.StepAnswers) models.ValidationResult {
	res := validateFields(socialLinkFields, answers)
	provided := false
	for _, f := range socialLinkFields {
		if !isEmptyValue(answers[f.ID]) {
			provided = true
			break
		}
	}
	if !provided {
		res.Errors = append(res.Errors, "Add at least one social link")
		res.Valid = false
	}
	return res
}

func contains(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}
