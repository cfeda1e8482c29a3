package onboarding

import (
	"fmt"
	"sort"

	"blinno/models"
)

// Options shared between step fields and custom validators.
var (
	subscriptionPlans = []string{"basic", "pro", "premium"}
	percentagePlans   = []string{"standard", "growth"}
	mobileProviders   = []string{"mpesa", "airtel_money", "tigo_pesa", "halopesa"}
	payoutMethods     = []string{models.PayoutMobileMoney, models.PayoutBank, models.PayoutStripe}

	socialLinkFields = []models.FieldDefinition{
		{ID: "instagram", Label: "Instagram", Type: models.FieldURL},
		{ID: "youtube", Label: "YouTube", Type: models.FieldURL},
		{ID: "tiktok", Label: "TikTok", Type: models.FieldURL},
		{ID: "website", Label: "Website", Type: models.FieldURL},
	}
)

func sellerTypeOptions() []string {
	out := make([]string, 0, len(sellerTypeOrder))
	for _, t := range sellerTypeOrder {
		out = append(out, string(t))
	}
	return out
}

var stepRegistry = map[models.StepID]models.StepDefinition{
	models.StepCategory: {
		ID:          models.StepCategory,
		Title:       "What do you sell?",
		Description: "Pick the category that best describes your shop.",
		Order:       1,
		Fields: []models.FieldDefinition{
			{ID: "sellerType", Label: "Seller Type", Type: models.FieldSelect, Required: true, Options: sellerTypeOptions()},
		},
		Validate: validateCategory,
	},
	models.StepProfile: {
		ID:          models.StepProfile,
		Title:       "Your seller profile",
		Description: "Tell buyers who you are.",
		Order:       2,
		Fields: []models.FieldDefinition{
			{ID: "displayName", Label: "Display Name", Type: models.FieldText, Required: true, Validation: &models.FieldValidation{Min: 2, Max: 80}},
			{ID: "businessDescription", Label: "Business Description", Type: models.FieldTextarea, Required: true, Validation: &models.FieldValidation{Min: 10, Max: 1000}},
			{ID: "phone", Label: "Phone Number", Type: models.FieldPhone, Required: true, Placeholder: "+255712345678"},
			{ID: "avatar", Label: "Profile Photo", Type: models.FieldFile},
		},
	},
	models.StepBusinessInfo: {
		ID:          models.StepBusinessInfo,
		Title:       "Business details",
		Description: "Registered name and contact details of your business.",
		Order:       2,
		Fields: []models.FieldDefinition{
			{ID: "businessName", Label: "Business Name", Type: models.FieldText, Required: true, Validation: &models.FieldValidation{Min: 2, Max: 120}},
			{ID: "registrationNumber", Label: "Registration Number", Type: models.FieldText, Required: true},
			{ID: "businessEmail", Label: "Business Email", Type: models.FieldEmail, Required: true},
			{ID: "businessPhone", Label: "Business Phone", Type: models.FieldPhone, Required: true},
			{ID: "website", Label: "Website", Type: models.FieldURL},
			{ID: "businessDescription", Label: "Business Description", Type: models.FieldTextarea, Validation: &models.FieldValidation{Max: 1000}},
		},
	},
	models.StepArtistProfile: {
		ID:          models.StepArtistProfile,
		Title:       "Artist profile",
		Description: "Your practice, medium and story.",
		Order:       2,
		Fields: []models.FieldDefinition{
			{ID: "artistName", Label: "Artist Name", Type: models.FieldText, Required: true},
			{ID: "mediums", Label: "Mediums", Type: models.FieldMultiSelect, Required: true, Options: []string{"painting", "sculpture", "digital", "printmaking", "textile", "mixed_media"}},
			{ID: "bio", Label: "Artist Bio", Type: models.FieldTextarea, Required: true, Validation: &models.FieldValidation{Min: 20, Max: 2000}},
			{ID: "acceptCommissions", Label: "Accept Commissions", Type: models.FieldCheckbox},
		},
	},
	models.StepContentInfo: {
		ID:          models.StepContentInfo,
		Title:       "Your content",
		Description: "What kind of digital content you publish.",
		Order:       2,
		Fields: []models.FieldDefinition{
			{ID: "creatorName", Label: "Creator Name", Type: models.FieldText, Required: true},
			{ID: "contentTypes", Label: "Content Types", Type: models.FieldMultiSelect, Required: true, Options: []string{"video", "audio", "templates", "presets", "ebooks", "memberships"}},
			{ID: "niche", Label: "Niche", Type: models.FieldText, Required: true},
			{ID: "audienceSize", Label: "Audience Size", Type: models.FieldNumber, Validation: &models.FieldValidation{Min: 0}},
		},
	},
	models.StepCourseInfo: {
		ID:          models.StepCourseInfo,
		Title:       "Courses",
		Description: "Subjects and format of your teaching.",
		Order:       2,
		Fields: []models.FieldDefinition{
			{ID: "subjects", Label: "Subjects", Type: models.FieldText, Required: true},
			{ID: "teachingMode", Label: "Teaching Mode", Type: models.FieldSelect, Required: true, Options: []string{"live", "recorded", "hybrid"}},
			{ID: "level", Label: "Level", Type: models.FieldSelect, Required: true, Options: []string{"beginner", "intermediate", "advanced", "all"}},
			{ID: "courseDescription", Label: "Course Description", Type: models.FieldTextarea, Required: true, Validation: &models.FieldValidation{Min: 20}},
		},
	},
	models.StepMusicInfo: {
		ID:          models.StepMusicInfo,
		Title:       "Music",
		Description: "Your act and sound.",
		Order:       2,
		Fields: []models.FieldDefinition{
			{ID: "stageName", Label: "Stage Name", Type: models.FieldText, Required: true},
			{ID: "genre", Label: "Genre", Type: models.FieldText, Required: true},
			{ID: "offerings", Label: "Offerings", Type: models.FieldMultiSelect, Required: true, Options: []string{"tracks", "albums", "beats", "merch", "live_shows"}},
		},
	},
	models.StepPhotographyInfo: {
		ID:          models.StepPhotographyInfo,
		Title:       "Photography",
		Description: "Your specialty and services.",
		Order:       2,
		Fields: []models.FieldDefinition{
			{ID: "studioName", Label: "Studio Name", Type: models.FieldText, Required: true},
			{ID: "specialties", Label: "Specialties", Type: models.FieldMultiSelect, Required: true, Options: []string{"wedding", "portrait", "event", "product", "stock", "wildlife"}},
			{ID: "yearsExperience", Label: "Years of Experience", Type: models.FieldNumber, Validation: &models.FieldValidation{Max: 80}},
		},
	},
	models.StepWritingInfo: {
		ID:          models.StepWritingInfo,
		Title:       "Writing",
		Description: "What you write and for whom.",
		Order:       2,
		Fields: []models.FieldDefinition{
			{ID: "penName", Label: "Pen Name", Type: models.FieldText, Required: true},
			{ID: "genres", Label: "Genres", Type: models.FieldText, Required: true},
			{ID: "services", Label: "Writing Services", Type: models.FieldMultiSelect, Options: []string{"ebooks", "copywriting", "editing", "ghostwriting"}},
		},
	},
	models.StepEventInfo: {
		ID:          models.StepEventInfo,
		Title:       "Events",
		Description: "The events you organize.",
		Order:       2,
		Fields: []models.FieldDefinition{
			{ID: "organizerName", Label: "Organizer Name", Type: models.FieldText, Required: true},
			{ID: "eventTypes", Label: "Event Types", Type: models.FieldMultiSelect, Required: true, Options: []string{"concert", "conference", "festival", "workshop", "sports", "party"}},
			{ID: "expectedAttendance", Label: "Expected Attendance", Type: models.FieldNumber, Validation: &models.FieldValidation{Min: 1}},
		},
	},
	models.StepServiceInfo: {
		ID:          models.StepServiceInfo,
		Title:       "Services",
		Description: "The services you offer.",
		Order:       2,
		Fields: []models.FieldDefinition{
			{ID: "serviceName", Label: "Service Name", Type: models.FieldText, Required: true},
			{ID: "serviceCategory", Label: "Service Category", Type: models.FieldSelect, Required: true, Options: []string{"cleaning", "repairs", "beauty", "tutoring", "consulting", "transport", "other"}},
			{ID: "serviceDescription", Label: "Service Description", Type: models.FieldTextarea, Required: true, Validation: &models.FieldValidation{Min: 20}},
			{ID: "billingUnit", Label: "Billing Unit", Type: models.FieldSelect, Options: []string{"hour", "job", "day"}},
		},
	},
	models.StepMenuInfo: {
		ID:          models.StepMenuInfo,
		Title:       "Menu",
		Description: "Cuisine and menu highlights.",
		Order:       3,
		Fields: []models.FieldDefinition{
			{ID: "cuisineType", Label: "Cuisine Type", Type: models.FieldText, Required: true},
			{ID: "menuHighlights", Label: "Menu Highlights", Type: models.FieldTextarea, Required: true, Validation: &models.FieldValidation{Min: 10}},
			{ID: "averagePrice", Label: "Average Meal Price", Type: models.FieldNumber, Required: true, Validation: &models.FieldValidation{Min: 1}},
			{ID: "menuFile", Label: "Menu File", Type: models.FieldFile},
		},
	},
	models.StepPortfolio: {
		ID:          models.StepPortfolio,
		Title:       "Portfolio",
		Description: "Show buyers your best work.",
		Order:       3,
		Fields: []models.FieldDefinition{
			{ID: "portfolioUrl", Label: "Portfolio URL", Type: models.FieldURL},
			{ID: "samples", Label: "Sample Uploads", Type: models.FieldFile, Required: true},
		},
	},
	models.StepSocialLinks: {
		ID:          models.StepSocialLinks,
		Title:       "Social links",
		Description: "Where buyers can follow you.",
		Order:       3,
		Fields:      socialLinkFields,
		Validate:    validateSocialLinks,
	},
	models.StepTeachingCredentials: {
		ID:          models.StepTeachingCredentials,
		Title:       "Credentials",
		Description: "Qualifications that back your courses.",
		Order:       3,
		Fields: []models.FieldDefinition{
			{ID: "highestQualification", Label: "Highest Qualification", Type: models.FieldText, Required: true},
			{ID: "yearsTeaching", Label: "Years Teaching", Type: models.FieldNumber, Required: true, Validation: &models.FieldValidation{Max: 70}},
			{ID: "certificate", Label: "Certificate", Type: models.FieldFile},
		},
	},
	models.StepDiscography: {
		ID:          models.StepDiscography,
		Title:       "Discography",
		Description: "Releases and where to hear them.",
		Order:       3,
		Fields: []models.FieldDefinition{
			{ID: "releases", Label: "Releases", Type: models.FieldTextarea, Required: true},
			{ID: "streamingUrl", Label: "Streaming Profile", Type: models.FieldURL},
		},
	},
	models.StepPublications: {
		ID:          models.StepPublications,
		Title:       "Publications",
		Description: "Work you have published.",
		Order:       3,
		Fields: []models.FieldDefinition{
			{ID: "publishedWorks", Label: "Published Works", Type: models.FieldTextarea, Required: true},
			{ID: "writingSample", Label: "Writing Sample", Type: models.FieldFile},
		},
	},
	models.StepVenueInfo: {
		ID:          models.StepVenueInfo,
		Title:       "Venues",
		Description: "Where your events take place.",
		Order:       3,
		Fields: []models.FieldDefinition{
			{ID: "venueName", Label: "Venue Name", Type: models.FieldText, Required: true},
			{ID: "venueCity", Label: "Venue City", Type: models.FieldText, Required: true},
			{ID: "capacity", Label: "Capacity", Type: models.FieldNumber, Required: true, Validation: &models.FieldValidation{Min: 1}},
		},
	},
	models.StepEquipment: {
		ID:          models.StepEquipment,
		Title:       "Equipment",
		Description: "Gear you bring to a shoot.",
		Order:       3,
		CanSkip:     true,
		Fields: []models.FieldDefinition{
			{ID: "cameras", Label: "Cameras", Type: models.FieldText},
			{ID: "lighting", Label: "Lighting", Type: models.FieldText},
			{ID: "drone", Label: "Drone Available", Type: models.FieldCheckbox},
		},
	},
	models.StepLocation: {
		ID:          models.StepLocation,
		Title:       "Location",
		Description: "Where you operate from.",
		Order:       4,
		Fields: []models.FieldDefinition{
			{ID: "country", Label: "Country", Type: models.FieldText, Required: true},
			{ID: "region", Label: "Region", Type: models.FieldText, Required: true},
			{ID: "city", Label: "City", Type: models.FieldText, Required: true},
			{ID: "address", Label: "Street Address", Type: models.FieldText, Required: true},
		},
	},
	models.StepTaxInfo: {
		ID:          models.StepTaxInfo,
		Title:       "Tax information",
		Description: "Tax identification for invoicing.",
		Order:       4,
		Fields: []models.FieldDefinition{
			{ID: "tin", Label: "Taxpayer Identification Number", Type: models.FieldText, Required: true, Validation: &models.FieldValidation{Pattern: `^[0-9-]{9,15}$`, Message: "Taxpayer Identification Number must contain 9 to 15 digits"}},
			{ID: "vatRegistered", Label: "VAT Registered", Type: models.FieldCheckbox},
			{ID: "vatNumber", Label: "VAT Number", Type: models.FieldText},
		},
	},
	models.StepServiceArea: {
		ID:          models.StepServiceArea,
		Title:       "Service area",
		Description: "Where you can travel to serve clients.",
		Order:       4,
		Fields: []models.FieldDefinition{
			{ID: "baseCity", Label: "Base City", Type: models.FieldText, Required: true},
			{ID: "radiusKm", Label: "Travel Radius (km)", Type: models.FieldNumber, Required: true, Validation: &models.FieldValidation{Min: 1, Max: 500}},
			{ID: "remote", Label: "Offers Remote Service", Type: models.FieldCheckbox},
		},
	},
	models.StepPricing: {
		ID:          models.StepPricing,
		Title:       "Choose a pricing plan",
		Description: "Pay a flat monthly fee or a commission on each sale.",
		Order:       5,
		Fields: []models.FieldDefinition{
			{ID: "pricingModel", Label: "Pricing Model", Type: models.FieldSelect, Required: true, Options: []string{string(models.PricingSubscription), string(models.PricingPercentage)}},
			{ID: "plan", Label: "Plan", Type: models.FieldSelect, Required: true, Options: append(append([]string{}, subscriptionPlans...), percentagePlans...)},
		},
		Validate: validatePricing,
	},
	models.StepPayment: {
		ID:          models.StepPayment,
		Title:       "Payout details",
		Description: "How you receive money from sales.",
		Order:       6,
		Fields: []models.FieldDefinition{
			{ID: "payoutMethod", Label: "Payout Method", Type: models.FieldSelect, Required: true, Options: payoutMethods},
			{ID: "mobileProvider", Label: "Mobile Money Provider", Type: models.FieldSelect, Options: mobileProviders},
			{ID: "mobileNumber", Label: "Mobile Money Number", Type: models.FieldPhone},
			{ID: "bankName", Label: "Bank Name", Type: models.FieldText},
			{ID: "bankAccountNumber", Label: "Bank Account Number", Type: models.FieldText},
			{ID: "stripeAccountId", Label: "Stripe Account ID", Type: models.FieldText},
		},
		Validate: validatePayment,
	},
	models.StepShipping: {
		ID:          models.StepShipping,
		Title:       "Shipping",
		Description: "How physical orders reach buyers.",
		Order:       7,
		CanSkip:     true,
		Fields: []models.FieldDefinition{
			{ID: "shipsFrom", Label: "Ships From", Type: models.FieldText, Required: true},
			{ID: "carriers", Label: "Carriers", Type: models.FieldMultiSelect, Options: []string{"courier", "postal", "pickup", "own_delivery"}},
			{ID: "handlingDays", Label: "Handling Time (days)", Type: models.FieldNumber, Validation: &models.FieldValidation{Min: 0, Max: 30}},
		},
	},
	models.StepInventory: {
		ID:          models.StepInventory,
		Title:       "Inventory",
		Description: "Stock levels and SKUs.",
		Order:       7,
		CanSkip:     true,
		Fields: []models.FieldDefinition{
			{ID: "skuCount", Label: "Number of SKUs", Type: models.FieldNumber, Validation: &models.FieldValidation{Min: 0}},
			{ID: "trackStock", Label: "Track Stock", Type: models.FieldCheckbox},
		},
	},
	models.StepDeliveryOptions: {
		ID:          models.StepDeliveryOptions,
		Title:       "Delivery",
		Description: "Food delivery and pickup options.",
		Order:       7,
		CanSkip:     true,
		Fields: []models.FieldDefinition{
			{ID: "deliveryModes", Label: "Delivery Modes", Type: models.FieldMultiSelect, Required: true, Options: []string{"dine_in", "pickup", "own_delivery", "partner_delivery"}},
			{ID: "deliveryRadiusKm", Label: "Delivery Radius (km)", Type: models.FieldNumber, Validation: &models.FieldValidation{Max: 100}},
		},
	},
	models.StepBusinessHours: {
		ID:          models.StepBusinessHours,
		Title:       "Opening hours",
		Description: "When buyers can reach you.",
		Order:       8,
		CanSkip:     true,
		Fields: []models.FieldDefinition{
			{ID: "openingTime", Label: "Opening Time", Type: models.FieldText, Required: true, Validation: &models.FieldValidation{Pattern: `^([01][0-9]|2[0-3]):[0-5][0-9]$`, Message: "Opening Time must be in HH:MM format"}},
			{ID: "closingTime", Label: "Closing Time", Type: models.FieldText, Required: true, Validation: &models.FieldValidation{Pattern: `^([01][0-9]|2[0-3]):[0-5][0-9]$`, Message: "Closing Time must be in HH:MM format"}},
			{ID: "openDays", Label: "Open Days", Type: models.FieldMultiSelect, Options: []string{"mon", "tue", "wed", "thu", "fri", "sat", "sun"}},
		},
	},
	models.StepAvailability: {
		ID:          models.StepAvailability,
		Title:       "Availability",
		Description: "When you take bookings.",
		Order:       8,
		CanSkip:     true,
		Fields: []models.FieldDefinition{
			{ID: "availableDays", Label: "Available Days", Type: models.FieldMultiSelect, Required: true, Options: []string{"mon", "tue", "wed", "thu", "fri", "sat", "sun"}},
			{ID: "leadTimeDays", Label: "Booking Lead Time (days)", Type: models.FieldNumber, Validation: &models.FieldValidation{Min: 0, Max: 90}},
		},
	},
	models.StepCertifications: {
		ID:          models.StepCertifications,
		Title:       "Certifications",
		Description: "Licenses, permits and health certificates.",
		Order:       9,
		CanSkip:     true,
		Fields: []models.FieldDefinition{
			{ID: "certificationName", Label: "Certification Name", Type: models.FieldText, Required: true},
			{ID: "issuedBy", Label: "Issued By", Type: models.FieldText},
			{ID: "expiresOn", Label: "Expiry Date", Type: models.FieldDate},
			{ID: "document", Label: "Certificate Document", Type: models.FieldFile},
		},
	},
	models.StepIdentityVerification: {
		ID:          models.StepIdentityVerification,
		Title:       "Verify your identity",
		Description: "Verified sellers get a badge on their shop.",
		Order:       9,
		CanSkip:     true,
		Fields: []models.FieldDefinition{
			{ID: "idType", Label: "ID Type", Type: models.FieldSelect, Required: true, Options: []string{"national_id", "passport", "drivers_license", "voter_id"}},
			{ID: "idNumber", Label: "ID Number", Type: models.FieldText, Required: true, Validation: &models.FieldValidation{Min: 5, Max: 30}},
			{ID: "idDocument", Label: "ID Document", Type: models.FieldFile, Required: true},
		},
	},
}

// LookupStep returns the definition for id and whether it exists.
// Use it for ids that come from outside the process.
func LookupStep(id models.StepID) (models.StepDefinition, bool) {
	def, ok := stepRegistry[id]
	return def, ok
}

// GetStepConfig returns the definition for id. Step ids are a closed set, so
// a miss means a registry or caller bug and panics.
func GetStepConfig(id models.StepID) models.StepDefinition {
	def, ok := stepRegistry[id]
	if !ok {
		panic(fmt.Sprintf("onboarding: unknown step %q", id))
	}
	return def
}

// GetOrderedSteps resolves the steps of sellerType into display order:
// ascending Order, ties kept in seller-type list order.
func GetOrderedSteps(sellerType models.SellerType, includeOptional bool) []models.StepDefinition {
	ids := GetRequiredSteps(sellerType)
	if includeOptional {
		ids = append(ids, GetOptionalSteps(sellerType)...)
	}
	steps := make([]models.StepDefinition, 0, len(ids))
	for _, id := range ids {
		steps = append(steps, GetStepConfig(id))
	}
	sort.SliceStable(steps, func(i, j int) bool {
		return steps[i].Order < steps[j].Order
	})
	return steps
}

// StepIDs projects definitions to their ids.
func StepIDs(steps []models.StepDefinition) []models.StepID {
	out := make([]models.StepID, 0, len(steps))
	for _, s := range steps {
		out = append(out, s.ID)
	}
	return out
}
