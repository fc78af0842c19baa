// Package lookup provides access to the static reference code tables consumed by matching.
package lookup

import (
	"context"

	"github.com/jonathan/vacancy-matching/internal/types"
)

// Table names a lookup reference table.
type Table string

// Reference tables consumed by the matching engine.
const (
	TableLanguageReferralTypes Table = "language_referral_types"
	TableLanguageRequirements  Table = "language_requirements"
	TableMatchStatuses         Table = "match_statuses"
	TableProfileStatuses       Table = "profile_statuses"
	TableWFAStatuses           Table = "wfa_statuses"
)

// Tables lists every reference table in load order.
var Tables = []Table{
	TableLanguageReferralTypes,
	TableLanguageRequirements,
	TableMatchStatuses,
	TableProfileStatuses,
	TableWFAStatuses,
}

// Valid reports whether t is a known reference table.
func (t Table) Valid() bool {
	for _, known := range Tables {
		if t == known {
			return true
		}
	}
	return false
}

// Finder resolves a code to its reference entity. A missing code returns (nil, nil).
type Finder interface {
	FindByCode(ctx context.Context, table Table, code string) (*types.CodeEntity, error)
}

// Source lists every entity of a reference table.
type Source interface {
	ListCodes(ctx context.Context, table Table) ([]types.CodeEntity, error)
}
