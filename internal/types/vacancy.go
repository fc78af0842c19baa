package types

import (
	"time"

	"github.com/google/uuid"
)

// Request is a staffing vacancy that candidates are matched against.
type Request struct {
	ID                      uuid.UUID `json:"id"`
	ClassificationCode      string    `json:"classification_code"`
	CityCodes               []string  `json:"city_codes"`
	LanguageRequirementCode string    `json:"language_requirement_code"`
	StatusCode              string    `json:"status_code,omitempty"`
	CreatedAt               time.Time `json:"created_at"`
	UpdatedAt               time.Time `json:"updated_at"`
}

// Profile is a candidate employee with referral preferences and workforce adjustment status.
type Profile struct {
	ID                          uuid.UUID  `json:"id"`
	IsAvailableForReferral      bool       `json:"is_available_for_referral"`
	PreferredClassificationCode string     `json:"preferred_classification_code"`
	PreferredCityCodes          []string   `json:"preferred_city_codes"`
	PreferredLanguageCodes      []string   `json:"preferred_language_referral_codes"`
	StatusCode                  string     `json:"status_code"`
	WFAStatus                   *WFAStatus `json:"wfa_status,omitempty"`
	WFAStartDate                *time.Time `json:"wfa_start_date,omitempty"`
	WFAEndDate                  *time.Time `json:"wfa_end_date,omitempty"`
	CreatedAt                   time.Time  `json:"created_at"`
	UpdatedAt                   time.Time  `json:"updated_at"`
}

// Date truncates t to a calendar date at UTC midnight, keeping t's local calendar day.
func Date(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
