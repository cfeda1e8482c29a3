package onboarding

import "blinno/models"

// sellerTypeInput is everything a step write knows about the seller's type.
type sellerTypeInput struct {
	StepID   models.StepID
	StepData models.StepAnswers
	Stored   models.OnboardingData
	Profile  *models.SellerProfile
}

// sellerTypeSource is one place a seller type may come from.
type sellerTypeSource struct {
	Name    string
	Resolve func(in sellerTypeInput) models.SellerType
}

// sellerTypeSources are evaluated in order; the first non-empty answer wins.
// The category step sets the type and every later step preserves it.
var sellerTypeSources = []sellerTypeSource{
	{Name: "category-step", Resolve: fromCategoryStep},
	{Name: "step-data", Resolve: fromStepData},
	{Name: "onboarding-data", Resolve: fromOnboardingData},
	{Name: "profile-row", Resolve: fromProfileRow},
}

func fromCategoryStep(in sellerTypeInput) models.SellerType {
	if in.StepID != models.StepCategory {
		return ""
	}
	return models.CategoryAnswerFrom(in.StepData).SellerType
}

func fromStepData(in sellerTypeInput) models.SellerType {
	return models.SellerType(in.StepData.String("sellerType"))
}

func fromOnboardingData(in sellerTypeInput) models.SellerType {
	return in.Stored.SellerType
}

func fromProfileRow(in sellerTypeInput) models.SellerType {
	if in.Profile == nil {
		return ""
	}
	return in.Profile.SellerType
}

// resolveSellerType returns the winning seller type and the name of its source.
func resolveSellerType(in sellerTypeInput) (models.SellerType, string) {
	for _, src := range sellerTypeSources {
		if t := src.Resolve(in); t != "" {
			return t, src.Name
		}
	}
	return "", ""
}
