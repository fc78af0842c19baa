package criteria

import (
	"fmt"
	"time"

	"github.com/jonathan/vacancy-matching/internal/types"
)

type availableForReferral struct{}

// AvailableForReferral matches profiles flagged as available for referral.
func AvailableForReferral() Criterion { return availableForReferral{} }

func (availableForReferral) Name() string { return "available-for-referral" }

func (availableForReferral) Matches(p *types.Profile) bool { return p.IsAvailableForReferral }

func (availableForReferral) SQL(_ *Args) string { return "p.is_available_for_referral = TRUE" }

type languageIn struct{ codes []string }

// LanguageReferralIn matches profiles preferring at least one of codes.
// An empty code set is a wildcard and matches every profile.
func LanguageReferralIn(codes []string) Criterion { return languageIn{codes: codes} }

func (languageIn) Name() string { return "language-in" }

func (c languageIn) Matches(p *types.Profile) bool {
	if len(c.codes) == 0 {
		return true
	}
	return intersects(p.PreferredLanguageCodes, c.codes)
}

func (c languageIn) SQL(args *Args) string {
	if len(c.codes) == 0 {
		return "TRUE"
	}
	return fmt.Sprintf(`EXISTS (
    SELECT 1 FROM profile_language_referral_types plrt
    JOIN language_referral_types lrt ON lrt.id = plrt.language_referral_type_id
    WHERE plrt.profile_id = p.id AND lrt.code = ANY(%s))`, args.Add(c.codes))
}

type classificationEquals struct{ code string }

// ClassificationEquals matches profiles whose preferred classification is code.
func ClassificationEquals(code string) Criterion { return classificationEquals{code: code} }

func (classificationEquals) Name() string { return "classification-equals" }

func (c classificationEquals) Matches(p *types.Profile) bool {
	return p.PreferredClassificationCode == c.code
}

func (c classificationEquals) SQL(args *Args) string {
	return fmt.Sprintf("pc.code = %s", args.Add(c.code))
}

type cityIn struct{ codes []string }

// CityIn matches profiles preferring at least one of codes. An empty set matches nothing.
func CityIn(codes []string) Criterion { return cityIn{codes: codes} }

func (cityIn) Name() string { return "city-in" }

func (c cityIn) Matches(p *types.Profile) bool { return intersects(p.PreferredCityCodes, c.codes) }

func (c cityIn) SQL(args *Args) string {
	codes := c.codes
	if codes == nil {
		codes = []string{}
	}
	return fmt.Sprintf(`EXISTS (
    SELECT 1 FROM profile_cities pci
    JOIN cities ci ON ci.id = pci.city_id
    WHERE pci.profile_id = p.id AND ci.code = ANY(%s))`, args.Add(codes))
}

type statusEquals struct{ code string }

// StatusEquals matches profiles whose status is code.
func StatusEquals(code string) Criterion { return statusEquals{code: code} }

func (statusEquals) Name() string { return "status-equals" }

func (c statusEquals) Matches(p *types.Profile) bool { return p.StatusCode == c.code }

func (c statusEquals) SQL(args *Args) string {
	return fmt.Sprintf("ps.code = %s", args.Add(c.code))
}

type wfaStartBefore struct{ day time.Time }

// WFAStartOnOrBefore matches profiles with no WFA start date or one on or before day.
func WFAStartOnOrBefore(day time.Time) Criterion { return wfaStartBefore{day: types.Date(day)} }

func (wfaStartBefore) Name() string { return "wfa-start-before" }

func (c wfaStartBefore) Matches(p *types.Profile) bool {
	return p.WFAStartDate == nil || !types.Date(*p.WFAStartDate).After(c.day)
}

func (c wfaStartBefore) SQL(args *Args) string {
	return fmt.Sprintf("(p.wfa_start_date IS NULL OR p.wfa_start_date <= %s::date)", args.Add(c.day))
}

type wfaEndAfter struct{ day time.Time }

// WFAEndOnOrAfter matches profiles with no WFA end date or one on or after day.
func WFAEndOnOrAfter(day time.Time) Criterion { return wfaEndAfter{day: types.Date(day)} }

func (wfaEndAfter) Name() string { return "wfa-end-after" }

func (c wfaEndAfter) Matches(p *types.Profile) bool {
	return p.WFAEndDate == nil || !types.Date(*p.WFAEndDate).Before(c.day)
}

func (c wfaEndAfter) SQL(args *Args) string {
	return fmt.Sprintf("(p.wfa_end_date IS NULL OR p.wfa_end_date >= %s::date)", args.Add(c.day))
}
