// Package criteria composes profile eligibility predicates that can be evaluated
// in memory or pushed down to PostgreSQL as a parameterized WHERE clause.
//
// SQL fragments assume the profiles table is aliased as "p", with its preferred
// classification joined as "pc" and its profile status joined as "ps".
package criteria

import (
	"fmt"
	"strings"

	"github.com/jonathan/vacancy-matching/internal/types"
)

// Criterion is a single named predicate over a profile.
type Criterion interface {
	Name() string
	Matches(p *types.Profile) bool
	SQL(args *Args) string
}

// Args collects positional query arguments while fragments are rendered.
type Args struct {
	values []any
}

// Add appends v and returns its placeholder.
func (a *Args) Add(v any) string {
	a.values = append(a.values, v)
	return fmt.Sprintf("$%d", len(a.values))
}

// Values returns the collected arguments in placeholder order.
func (a *Args) Values() []any {
	return a.values
}

// Conjunction is a logical AND of criteria. An empty conjunction matches everything.
type Conjunction struct {
	criteria []Criterion
}

// And combines criteria into a conjunction.
func And(cs ...Criterion) Conjunction {
	return Conjunction{criteria: cs}
}

// Matches reports whether p satisfies every criterion.
func (c Conjunction) Matches(p *types.Profile) bool {
	for _, cr := range c.criteria {
		if !cr.Matches(p) {
			return false
		}
	}
	return true
}

// Where renders the conjunction as a SQL boolean expression.
func (c Conjunction) Where(args *Args) string {
	if len(c.criteria) == 0 {
		return "TRUE"
	}
	parts := make([]string, 0, len(c.criteria))
	for _, cr := range c.criteria {
		parts = append(parts, cr.SQL(args))
	}
	return strings.Join(parts, "\n  AND ")
}

// Names lists the criterion names in order.
func (c Conjunction) Names() []string {
	names := make([]string, 0, len(c.criteria))
	for _, cr := range c.criteria {
		names = append(names, cr.Name())
	}
	return names
}

// Filter returns the profiles that satisfy the conjunction, preserving input order.
func (c Conjunction) Filter(profiles []types.Profile) []types.Profile {
	out := make([]types.Profile, 0, len(profiles))
	for i := range profiles {
		if c.Matches(&profiles[i]) {
			out = append(out, profiles[i])
		}
	}
	return out
}

func intersects(have []string, want []string) bool {
	if len(have) == 0 || len(want) == 0 {
		return false
	}
	set := make(map[string]struct{}, len(want))
	for _, w := range want {
		set[w] = struct{}{}
	}
	for _, h := range have {
		if _, ok := set[h]; ok {
			return true
		}
	}
	return false
}
