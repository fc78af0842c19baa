package matching

import (
	"github.com/jonathan/vacancy-matching/internal/lookup"
)

// LanguageResolver maps a request's language requirement to the profile
// language referral codes it accepts.
type LanguageResolver struct {
	table map[string][]string
}

// NewLanguageResolver builds the decision table from configured codes.
func NewLanguageResolver(codes lookup.Codes) *LanguageResolver {
	req := codes.LanguageRequirements
	ref := codes.LanguageReferralTypes
	return &LanguageResolver{table: map[string][]string{
		req.BilingualImperative:    {ref.Bilingual},
		req.BilingualNonImperative: {ref.Bilingual},
		req.EnglishEssential:       {ref.English},
		req.FrenchEssential:        {ref.French},
		req.EitherOr:               {ref.English, ref.French},
		req.Various:                {},
	}}
}

// Compatible returns the accepted referral codes for requirementCode.
// An empty, non-nil result means any language is accepted.
func (r *LanguageResolver) Compatible(requirementCode string) ([]string, error) {
	codes, ok := r.table[requirementCode]
	if !ok {
		return nil, invalidArgument(ErrUnknownLanguageRequirement, "language requirement %q", requirementCode)
	}
	out := make([]string, len(codes))
	copy(out, codes)
	return out, nil
}
