package lookup

import (
	"context"
	"fmt"
)

// MissingCode is a configured code absent from its reference table.
type MissingCode struct {
	Table Table
	Code  string
}

func (m MissingCode) String() string {
	return fmt.Sprintf("%s/%s", m.Table, m.Code)
}

// VerifyCodes checks every configured code against the reference data and returns
// the ones that cannot be resolved. A lookup failure aborts the check.
func VerifyCodes(ctx context.Context, finder Finder, codes Codes) ([]MissingCode, error) {
	var missing []MissingCode
	for _, want := range codes.required() {
		entity, err := finder.FindByCode(ctx, want.Table, want.Code)
		if err != nil {
			return nil, fmt.Errorf("failed to look up %s: %w", want, err)
		}
		if entity == nil {
			missing = append(missing, want)
		}
	}
	return missing, nil
}
