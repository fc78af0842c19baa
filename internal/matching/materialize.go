package matching

import (
	"context"

	"github.com/jonathan/vacancy-matching/internal/lookup"
	"github.com/jonathan/vacancy-matching/internal/types"
)

// ResolveMatchStatus loads the initial match status. A missing code is a configuration error.
func ResolveMatchStatus(ctx context.Context, finder lookup.Finder, code string) (*types.CodeEntity, error) {
	status, err := finder.FindByCode(ctx, lookup.TableMatchStatuses, code)
	if err != nil {
		return nil, storeError(err, "failed to resolve match status %q", code)
	}
	if status == nil {
		return nil, &Error{
			Kind:    KindConfiguration,
			Message: "match status " + code + " is missing from reference data",
			Cause:   ErrMatchStatusNotFound,
		}
	}
	return status, nil
}

// Materialize builds one match per candidate with the given status and persists
// them in a single bulk save. It preserves candidate order.
func Materialize(ctx context.Context, store MatchStore, status *types.CodeEntity, request *types.Request, candidates []types.Profile) ([]types.Match, error) {
	if len(candidates) == 0 {
		return []types.Match{}, nil
	}

	matches := make([]types.Match, 0, len(candidates))
	for i := range candidates {
		profile := candidates[i]
		matches = append(matches, types.Match{
			ProfileID:   profile.ID,
			RequestID:   request.ID,
			Profile:     &profile,
			Request:     request,
			MatchStatus: *status,
		})
	}

	saved, err := store.SaveMatches(ctx, matches)
	if err != nil {
		return nil, storeError(err, "failed to save %d matches", len(matches))
	}
	return saved, nil
}
