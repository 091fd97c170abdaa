package reconciliation

import (
	"github.com/savegress/ledgermatch/pkg/models"
)

// Matcher decides whether two transactions represent the same real-world
// event.
type Matcher interface {
	Name() string
	Match(a, b models.Transaction) bool
}

// ExactMatcher matches transactions whose fields and dates are identical
type ExactMatcher struct{}

// NewExactMatcher creates a new exact matcher
func NewExactMatcher() *ExactMatcher {
	return &ExactMatcher{}
}

func (m *ExactMatcher) Name() string { return "exact" }

func (m *ExactMatcher) Match(a, b models.Transaction) bool {
	return a.MatchesFields(b) && a.Date.Equal(b.Date)
}

// ToleranceMatcher matches transactions with identical department, amount
// and beneficiary whose dates differ by at most a fixed number of days.
type ToleranceMatcher struct {
	days int
}

// NewToleranceMatcher creates a matcher with the given date tolerance in days
func NewToleranceMatcher(days int) *ToleranceMatcher {
	return &ToleranceMatcher{days: days}
}

func (m *ToleranceMatcher) Name() string { return "tolerance" }

// Days returns the configured date tolerance
func (m *ToleranceMatcher) Days() int { return m.days }

func (m *ToleranceMatcher) Match(a, b models.Transaction) bool {
	return a.MatchesFields(b) && a.WithinDateTolerance(b, m.days)
}
