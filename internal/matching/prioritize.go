package matching

import (
	"cmp"
	"math"
	"math/rand/v2"
	"slices"
	"time"

	"github.com/jonathan/vacancy-matching/internal/types"
)

// wfaSortOrder returns the primary priority key. Profiles without a WFA status sort last.
func wfaSortOrder(p *types.Profile) int {
	if p.WFAStatus == nil {
		return math.MaxInt
	}
	return p.WFAStatus.SortOrder
}

// IsUrgent reports whether p's WFA end date falls on or before today + grace.
func IsUrgent(p *types.Profile, today time.Time, grace time.Duration) bool {
	if p.WFAEndDate == nil {
		return false
	}
	deadline := types.Date(today).Add(grace)
	return !types.Date(*p.WFAEndDate).After(deadline)
}

// Prioritize shuffles candidates with rng, stably sorts them by WFA sort order
// then urgency, and keeps the first limit. Ties keep their shuffled order.
// The input slice is not modified.
func Prioritize(candidates []types.Profile, rng *rand.Rand, today time.Time, grace time.Duration, limit int) []types.Profile {
	ordered := slices.Clone(candidates)
	rng.Shuffle(len(ordered), func(i, j int) {
		ordered[i], ordered[j] = ordered[j], ordered[i]
	})

	slices.SortStableFunc(ordered, func(a, b types.Profile) int {
		if c := cmp.Compare(wfaSortOrder(&a), wfaSortOrder(&b)); c != 0 {
			return c
		}
		ua, ub := IsUrgent(&a, today, grace), IsUrgent(&b, today, grace)
		switch {
		case ua == ub:
			return 0
		case ua:
			return -1
		default:
			return 1
		}
	})

	if len(ordered) > limit {
		ordered = ordered[:limit]
	}
	return ordered
}
