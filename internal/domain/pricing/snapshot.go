package pricing

import (
	"github.com/chairflow/chairflow/internal/domain/bulkdiscount"
	"github.com/chairflow/chairflow/internal/domain/seasonal"
	"github.com/chairflow/chairflow/internal/domain/tier"
)

// RuleTable identifies one of the independently fetched rule tables.
type RuleTable string

const (
	RuleTableBulkDiscounts RuleTable = "bulk_discounts"
	RuleTableClientTier    RuleTable = "client_tier"
	RuleTableSeasonal      RuleTable = "seasonal_windows"
	RuleTableCatalog       RuleTable = "price_catalog"
)

// RuleSnapshot is the point-in-time view of the rule tables one calculation
// runs against. A table whose fetch failed is left empty and recorded in
// Degraded; the evaluators then contribute nothing for it instead of
// failing the calculation.
type RuleSnapshot struct {
	BulkRules       []*bulkdiscount.Rule
	Tier            *tier.PricingTier
	SeasonalWindows []*seasonal.Window

	Degraded []RuleTable
}

// MarkDegraded records a failed table fetch.
func (s *RuleSnapshot) MarkDegraded(table RuleTable) {
	s.Degraded = append(s.Degraded, table)
}

// IsDegraded reports whether the given table failed to load.
func (s *RuleSnapshot) IsDegraded(table RuleTable) bool {
	for _, t := range s.Degraded {
		if t == table {
			return true
		}
	}
	return false
}
