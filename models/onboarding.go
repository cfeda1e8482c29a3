package models

// SellerType is one of the fixed seller categories offered at signup.
type SellerType string

const (
	SellerIndividual      SellerType = "individual"
	SellerBusiness        SellerType = "business"
	SellerArtist          SellerType = "artist"
	SellerContentCreator  SellerType = "content_creator"
	SellerOnlineTeacher   SellerType = "online_teacher"
	SellerMusician        SellerType = "musician"
	SellerPhotographer    SellerType = "photographer"
	SellerWriter          SellerType = "writer"
	SellerRestaurant      SellerType = "restaurant"
	SellerEventOrganizer  SellerType = "event_organizer"
	SellerServiceProvider SellerType = "service_provider"
	SellerOther           SellerType = "other"
)

// StepID identifies a single page of the seller onboarding wizard.
type StepID string

const (
	StepCategory             StepID = "category"
	StepProfile              StepID = "profile"
	StepBusinessInfo         StepID = "business_info"
	StepArtistProfile        StepID = "artist_profile"
	StepContentInfo          StepID = "content_info"
	StepCourseInfo           StepID = "course_info"
	StepMusicInfo            StepID = "music_info"
	StepPhotographyInfo      StepID = "photography_info"
	StepWritingInfo          StepID = "writing_info"
	StepEventInfo            StepID = "event_info"
	StepServiceInfo          StepID = "service_info"
	StepMenuInfo             StepID = "menu_info"
	StepPortfolio            StepID = "portfolio"
	StepSocialLinks          StepID = "social_links"
	StepTeachingCredentials  StepID = "teaching_credentials"
	StepDiscography          StepID = "discography"
	StepPublications         StepID = "publications"
	StepVenueInfo            StepID = "venue_info"
	StepEquipment            StepID = "equipment"
	StepLocation             StepID = "location"
	StepTaxInfo              StepID = "tax_info"
	StepServiceArea          StepID = "service_area"
	StepPricing              StepID = "pricing"
	StepPayment              StepID = "payment"
	StepShipping             StepID = "shipping"
	StepInventory            StepID = "inventory"
	StepDeliveryOptions      StepID = "delivery_options"
	StepBusinessHours        StepID = "business_hours"
	StepAvailability         StepID = "availability"
	StepCertifications       StepID = "certifications"
	StepIdentityVerification StepID = "identity_verification"
)

// FieldType drives both rendering and the default validation rule of a field.
type FieldType string

const (
	FieldText        FieldType = "text"
	FieldTextarea    FieldType = "textarea"
	FieldEmail       FieldType = "email"
	FieldURL         FieldType = "url"
	FieldPhone       FieldType = "tel"
	FieldNumber      FieldType = "number"
	FieldSelect      FieldType = "select"
	FieldMultiSelect FieldType = "multiselect"
	FieldCheckbox    FieldType = "checkbox"
	FieldFile        FieldType = "file"
	FieldDate        FieldType = "date"
)

// FieldValidation holds optional constraints. Min/Max bound the length of text
// values and the magnitude of number values; zero means unbounded.
type FieldValidation struct {
	Min     int    `json:"min,omitempty"`
	Max     int    `json:"max,omitempty"`
	Pattern string `json:"pattern,omitempty"`
	Message string `json:"message,omitempty"`
}

// FieldDefinition describes one input of an onboarding step.
type FieldDefinition struct {
	ID          string           `json:"id"`
	Label       string           `json:"label"`
	Type        FieldType        `json:"type"`
	Required    bool             `json:"required"`
	Placeholder string           `json:"placeholder,omitempty"`
	HelpText    string           `json:"helpText,omitempty"`
	Options     []string         `json:"options,omitempty"`
	Validation  *FieldValidation `json:"validation,omitempty"`
}

// ValidationResult is the outcome of validating a step's answers.
type ValidationResult struct {
	Valid  bool     `json:"valid"`
	Errors []string `json:"errors"`
}

// StepValidator is a step-specific replacement for the default required-field rule.
type StepValidator func(answers StepAnswers) ValidationResult

// StepDefinition is the static description of an onboarding step.
type StepDefinition struct {
	ID          StepID            `json:"id"`
	Title       string            `json:"title"`
	Description string            `json:"description"`
	Fields      []FieldDefinition `json:"fields"`
	Order       int               `json:"order"`
	CanSkip     bool              `json:"canSkip"`
	Validate    StepValidator     `json:"-"`
}

// SellerTypeDefinition lists the onboarding steps and profile defaults for a seller type.
type SellerTypeDefinition struct {
	ID            SellerType     `json:"id"`
	Label         string         `json:"label"`
	Description   string         `json:"description"`
	RequiredSteps []StepID       `json:"requiredSteps"`
	OptionalSteps []StepID       `json:"optionalSteps"`
	DefaultFields map[string]any `json:"defaultFields"`
}

// PricingModel is how a seller pays the marketplace.
type PricingModel string

const (
	PricingSubscription PricingModel = "subscription"
	PricingPercentage   PricingModel = "percentage"
)

// OnboardingStatus is derived on every query and never stored.
type OnboardingStatus struct {
	UserID               string       `json:"userId"`
	SellerType           SellerType   `json:"sellerType,omitempty"`
	HasActivePricingPlan bool         `json:"hasActivePricingPlan"`
	PricingModel         PricingModel `json:"pricingModel,omitempty"`
	CurrentPlan          string       `json:"currentPlan,omitempty"`
	CompletedSteps       []StepID     `json:"completedSteps"`
	RequiredSteps        []StepID     `json:"requiredSteps"`
	NextStep             StepID       `json:"nextStep,omitempty"`
	IsComplete           bool         `json:"isComplete"`
	ShouldShowOnboarding bool         `json:"shouldShowOnboarding"`
	OnboardingVersion    int          `json:"onboardingVersion"`
	RequiredVersion      int          `json:"requiredVersion"`
}

// HasNextStep reports whether a required step is still outstanding.
func (s OnboardingStatus) HasNextStep() bool {
	return s.NextStep != ""
}
