package lookup

// Codes holds the configured reference codes the matching engine depends on.
// The language decision table is expressed over these values, never over literals.
type Codes struct {
	ProfileStatusApproved      string                `mapstructure:"profile_status_approved" json:"profile_status_approved" validate:"required"`
	MatchStatusPendingApproval string                `mapstructure:"match_status_pending_approval" json:"match_status_pending_approval" validate:"required"`
	LanguageRequirements       LanguageRequirements  `mapstructure:"language_requirements" json:"language_requirements"`
	LanguageReferralTypes      LanguageReferralTypes `mapstructure:"language_referral_types" json:"language_referral_types"`
}

// LanguageRequirements holds the request-side language requirement codes.
type LanguageRequirements struct {
	BilingualImperative    string `mapstructure:"bilingual_imperative" json:"bilingual_imperative" validate:"required"`
	BilingualNonImperative string `mapstructure:"bilingual_non_imperative" json:"bilingual_non_imperative" validate:"required"`
	EnglishEssential       string `mapstructure:"english_essential" json:"english_essential" validate:"required"`
	FrenchEssential        string `mapstructure:"french_essential" json:"french_essential" validate:"required"`
	EitherOr               string `mapstructure:"either_or" json:"either_or" validate:"required"`
	Various                string `mapstructure:"various" json:"various" validate:"required"`
}

// LanguageReferralTypes holds the profile-side language referral codes.
type LanguageReferralTypes struct {
	Bilingual string `mapstructure:"bilingual" json:"bilingual" validate:"required"`
	English   string `mapstructure:"english" json:"english" validate:"required"`
	French    string `mapstructure:"french" json:"french" validate:"required"`
}

// DefaultCodes returns the codes seeded by the initial migration.
func DefaultCodes() Codes {
	return Codes{
		ProfileStatusApproved:      "APPROVED",
		MatchStatusPendingApproval: "PENDING",
		LanguageRequirements: LanguageRequirements{
			BilingualImperative:    "BI",
			BilingualNonImperative: "BNI",
			EnglishEssential:       "EE",
			FrenchEssential:        "FE",
			EitherOr:               "EEAE",
			Various:                "VAR",
		},
		LanguageReferralTypes: LanguageReferralTypes{
			Bilingual: "BILINGUAL",
			English:   "ENGLISH",
			French:    "FRENCH",
		},
	}
}

// required pairs every configured code with the table it must exist in.
func (c Codes) required() []MissingCode {
	lr := c.LanguageRequirements
	rt := c.LanguageReferralTypes
	return []MissingCode{
		{TableProfileStatuses, c.ProfileStatusApproved},
		{TableMatchStatuses, c.MatchStatusPendingApproval},
		{TableLanguageRequirements, lr.BilingualImperative},
		{TableLanguageRequirements, lr.BilingualNonImperative},
		{TableLanguageRequirements, lr.EnglishEssential},
		{TableLanguageRequirements, lr.FrenchEssential},
		{TableLanguageRequirements, lr.EitherOr},
		{TableLanguageRequirements, lr.Various},
		{TableLanguageReferralTypes, rt.Bilingual},
		{TableLanguageReferralTypes, rt.English},
		{TableLanguageReferralTypes, rt.French},
	}
}
