package onboarding

import "blinno/models"

var sellerTypes = map[models.SellerType]models.SellerTypeDefinition{
	models.SellerIndividual: {
		ID:          models.SellerIndividual,
		Label:       "Individual Seller",
		Description: "Sell personal items, crafts or second-hand goods.",
		RequiredSteps: []models.StepID{
			models.StepCategory, models.StepProfile, models.StepPricing, models.StepPayment,
		},
		OptionalSteps: []models.StepID{
			models.StepSocialLinks, models.StepShipping, models.StepIdentityVerification,
		},
		DefaultFields: map[string]any{
			"shopName":        "",
			"shippingEnabled": true,
			"returnPolicy":    "none",
		},
	},
	models.SellerBusiness: {
		ID:          models.SellerBusiness,
		Label:       "Business",
		Description: "Registered companies selling physical or digital products.",
		RequiredSteps: []models.StepID{
			models.StepCategory, models.StepBusinessInfo, models.StepLocation, models.StepTaxInfo,
			models.StepPricing, models.StepPayment,
		},
		OptionalSteps: []models.StepID{
			models.StepShipping, models.StepInventory, models.StepBusinessHours, models.StepSocialLinks,
		},
		DefaultFields: map[string]any{
			"businessName":     "",
			"registrationType": "limited_company",
			"shippingEnabled":  true,
			"inventoryTracked": true,
		},
	},
	models.SellerArtist: {
		ID:          models.SellerArtist,
		Label:       "Artist",
		Description: "Original artwork, prints and commissions.",
		RequiredSteps: []models.StepID{
			models.StepCategory, models.StepArtistProfile, models.StepPortfolio, models.StepPricing,
			models.StepPayment,
		},
		OptionalSteps: []models.StepID{
			models.StepSocialLinks, models.StepShipping, models.StepCertifications,
		},
		DefaultFields: map[string]any{
			"artStyle":          "",
			"acceptCommissions": false,
			"shippingEnabled":   true,
		},
	},
	models.SellerContentCreator: {
		ID:          models.SellerContentCreator,
		Label:       "Content Creator",
		Description: "Digital media, presets, templates and exclusive content.",
		RequiredSteps: []models.StepID{
			models.StepCategory, models.StepContentInfo, models.StepSocialLinks, models.StepPricing,
			models.StepPayment,
		},
		OptionalSteps: []models.StepID{
			models.StepPortfolio, models.StepAvailability,
		},
		DefaultFields: map[string]any{
			"contentFormat":   "video",
			"digitalDelivery": true,
		},
	},
	models.SellerOnlineTeacher: {
		ID:          models.SellerOnlineTeacher,
		Label:       "Online Teacher",
		Description: "Courses, tutoring sessions and learning material.",
		RequiredSteps: []models.StepID{
			models.StepCategory, models.StepCourseInfo, models.StepTeachingCredentials,
			models.StepPricing, models.StepPayment,
		},
		OptionalSteps: []models.StepID{
			models.StepAvailability, models.StepSocialLinks,
		},
		DefaultFields: map[string]any{
			"teachingMode":    "recorded",
			"digitalDelivery": true,
			"maxClassSize":    30,
		},
	},
	models.SellerMusician: {
		ID:          models.SellerMusician,
		Label:       "Musician",
		Description: "Music releases, beats, merchandise and bookings.",
		RequiredSteps: []models.StepID{
			models.StepCategory, models.StepMusicInfo, models.StepDiscography, models.StepPricing,
			models.StepPayment,
		},
		OptionalSteps: []models.StepID{
			models.StepSocialLinks, models.StepAvailability,
		},
		DefaultFields: map[string]any{
			"genre":           "",
			"digitalDelivery": true,
			"acceptBookings":  false,
		},
	},
	models.SellerPhotographer: {
		ID:          models.SellerPhotographer,
		Label:       "Photographer",
		Description: "Photo sessions, stock images and prints.",
		RequiredSteps: []models.StepID{
			models.StepCategory, models.StepPhotographyInfo, models.StepPortfolio,
			models.StepServiceArea, models.StepPricing, models.StepPayment,
		},
		OptionalSteps: []models.StepID{
			models.StepEquipment, models.StepAvailability,
		},
		DefaultFields: map[string]any{
			"specialty":       "",
			"acceptBookings":  true,
			"digitalDelivery": true,
		},
	},
	models.SellerWriter: {
		ID:          models.SellerWriter,
		Label:       "Writer",
		Description: "E-books, articles and writing services.",
		RequiredSteps: []models.StepID{
			models.StepCategory, models.StepWritingInfo, models.StepPublications, models.StepPricing,
			models.StepPayment,
		},
		OptionalSteps: []models.StepID{
			models.StepSocialLinks,
		},
		DefaultFields: map[string]any{
			"writingGenre":    "",
			"digitalDelivery": true,
		},
	},
	models.SellerRestaurant: {
		ID:          models.SellerRestaurant,
		Label:       "Restaurant",
		Description: "Restaurants, cafes and food vendors.",
		RequiredSteps: []models.StepID{
			models.StepCategory, models.StepBusinessInfo, models.StepMenuInfo, models.StepLocation,
			models.StepPricing, models.StepPayment,
		},
		OptionalSteps: []models.StepID{
			models.StepBusinessHours, models.StepDeliveryOptions, models.StepCertifications,
		},
		DefaultFields: map[string]any{
			"cuisineType":         "",
			"deliveryAvailable":   false,
			"acceptsReservations": false,
		},
	},
	models.SellerEventOrganizer: {
		ID:          models.SellerEventOrganizer,
		Label:       "Event Organizer",
		Description: "Tickets for concerts, conferences and experiences.",
		RequiredSteps: []models.StepID{
			models.StepCategory, models.StepEventInfo, models.StepVenueInfo, models.StepPricing,
			models.StepPayment,
		},
		OptionalSteps: []models.StepID{
			models.StepSocialLinks, models.StepCertifications,
		},
		DefaultFields: map[string]any{
			"eventTypes":    []string{},
			"ticketingMode": "e_ticket",
		},
	},
	models.SellerServiceProvider: {
		ID:          models.SellerServiceProvider,
		Label:       "Service Provider",
		Description: "Professional and home services billed per job or hour.",
		RequiredSteps: []models.StepID{
			models.StepCategory, models.StepServiceInfo, models.StepServiceArea, models.StepPricing,
			models.StepPayment,
		},
		OptionalSteps: []models.StepID{
			models.StepAvailability, models.StepCertifications, models.StepBusinessHours,
		},
		DefaultFields: map[string]any{
			"serviceCategory": "",
			"acceptBookings":  true,
		},
	},
	models.SellerOther: {
		ID:          models.SellerOther,
		Label:       "Other",
		Description: "Anything that does not fit the other categories.",
		RequiredSteps: []models.StepID{
			models.StepCategory, models.StepProfile, models.StepPricing, models.StepPayment,
		},
		OptionalSteps: []models.StepID{
			models.StepSocialLinks,
		},
		DefaultFields: map[string]any{},
	},
}

// sellerTypeOrder is the display order of the seller type picker.
var sellerTypeOrder = []models.SellerType{
	models.SellerIndividual,
	models.SellerBusiness,
	models.SellerArtist,
	models.SellerContentCreator,
	models.SellerOnlineTeacher,
	models.SellerMusician,
	models.SellerPhotographer,
	models.SellerWriter,
	models.SellerRestaurant,
	models.SellerEventOrganizer,
	models.SellerServiceProvider,
	models.SellerOther,
}

// IsKnownSellerType reports whether t is one of the fixed seller types.
func IsKnownSellerType(t models.SellerType) bool {
	_, ok := sellerTypes[t]
	return ok
}

// GetSellerTypeConfig returns the definition of t, falling back to "other" for
// anything unrecognized. The returned slices and map are copies.
func GetSellerTypeConfig(t models.SellerType) models.SellerTypeDefinition {
	def, ok := sellerTypes[t]
	if !ok {
		def = sellerTypes[models.SellerOther]
	}
	def.RequiredSteps = append([]models.StepID(nil), def.RequiredSteps...)
	def.OptionalSteps = append([]models.StepID(nil), def.OptionalSteps...)
	def.DefaultFields = copyFields(def.DefaultFields)
	return def
}

// AllSellerTypes returns every definition in picker order.
func AllSellerTypes() []models.SellerTypeDefinition {
	out := make([]models.SellerTypeDefinition, 0, len(sellerTypeOrder))
	for _, t := range sellerTypeOrder {
		out = append(out, GetSellerTypeConfig(t))
	}
	return out
}

func GetRequiredSteps(t models.SellerType) []models.StepID {
	return GetSellerTypeConfig(t).RequiredSteps
}

func GetOptionalSteps(t models.SellerType) []models.StepID {
	return GetSellerTypeConfig(t).OptionalSteps
}

// GetAllSteps returns required steps followed by optional steps.
func GetAllSteps(t models.SellerType) []models.StepID {
	def := GetSellerTypeConfig(t)
	return append(def.RequiredSteps, def.OptionalSteps...)
}

func IsStepRequired(t models.SellerType, step models.StepID) bool {
	for _, s := range sellerTypeDef(t).RequiredSteps {
		if s == step {
			return true
		}
	}
	return false
}

func GetDefaultFields(t models.SellerType) map[string]any {
	return copyFields(sellerTypeDef(t).DefaultFields)
}

// sellerTypeDef is the non-copying lookup used internally.
func sellerTypeDef(t models.SellerType) models.SellerTypeDefinition {
	if def, ok := sellerTypes[t]; ok {
		return def
	}
	return sellerTypes[models.SellerOther]
}

func copyFields(in map[string]any) map[string]any {
	out := make(map[string]any, len(in))
	for k, v := range in {
		if s, ok := v.([]string); ok {
			v = append([]string{}, s...)
		}
		out[k] = v
	}
	return out
}
