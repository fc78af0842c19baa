package matching

import (
	"context"
	"time"

	"github.com/jonathan/vacancy-matching/internal/criteria"
	"github.com/jonathan/vacancy-matching/internal/types"
)

// EligibilityCriteria composes the conjunction a profile must satisfy to be
// considered for request. languages is the resolver output; empty disables the
// language predicate.
func EligibilityCriteria(request *types.Request, languages []string, approvedStatus string, today time.Time) criteria.Conjunction {
	return criteria.And(
		criteria.AvailableForReferral(),
		criteria.LanguageReferralIn(languages),
		criteria.ClassificationEquals(request.ClassificationCode),
		criteria.CityIn(request.CityCodes),
		criteria.StatusEquals(approvedStatus),
		criteria.WFAStartOnOrBefore(today),
		criteria.WFAEndOnOrAfter(today),
	)
}

// FindCandidates resolves language compatibility for request and queries store
// for every eligible profile.
func FindCandidates(ctx context.Context, store ProfileStore, resolver *LanguageResolver, request *types.Request, approvedStatus string, today time.Time) ([]types.Profile, error) {
	languages, err := resolver.Compatible(request.LanguageRequirementCode)
	if err != nil {
		return nil, err
	}

	profiles, err := store.FindProfiles(ctx, EligibilityCriteria(request, languages, approvedStatus, today))
	if err != nil {
		return nil, storeError(err, "failed to query eligible profiles")
	}
	return profiles, nil
}
