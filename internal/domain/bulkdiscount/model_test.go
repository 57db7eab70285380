package bulkdiscount

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/chairflow/chairflow/internal/types"
)

func TestRuleQualifies(t *testing.T) {
	cleaningRule := &Rule{
		AppliesTo:       types.BulkScopeCleaning,
		MinimumQuantity: 5,
		IsActive:        true,
	}
	allRule := &Rule{
		AppliesTo:       types.BulkScopeAll,
		MinimumQuantity: 10,
		IsActive:        true,
	}

	counts := map[types.ServiceCategory]int{
		types.ServiceCategoryCleaning: 6,
		types.ServiceCategoryRepair:   2,
	}

	assert.True(t, cleaningRule.Qualifies(8, counts))
	assert.False(t, cleaningRule.Qualifies(8, map[types.ServiceCategory]int{
		types.ServiceCategoryCleaning: 4,
	}))

	// scope "all" counts chairs, not service lines
	assert.True(t, allRule.Qualifies(10, counts))
	assert.False(t, allRule.Qualifies(9, counts))

	inactive := &Rule{AppliesTo: types.BulkScopeCleaning, MinimumQuantity: 1}
	assert.False(t, inactive.Qualifies(100, counts))
}

func TestRuleDiscountFor(t *testing.T) {
	percentage := &Rule{
		DiscountType:       types.DiscountTypePercentage,
		DiscountPercentage: decimal.NewFromInt(10),
	}
	assert.Equal(t, "90", percentage.DiscountFor(decimal.NewFromInt(900)).String())

	fixed := &Rule{
		DiscountType:  types.DiscountTypeFixedAmount,
		DiscountValue: decimal.NewFromInt(50),
	}
	assert.Equal(t, "50", fixed.DiscountFor(decimal.NewFromInt(900)).String())

	// a fixed discount contributes its full value even when it exceeds
	// the subtotal it matched on; only the final total is floored
	assert.Equal(t, "50", fixed.DiscountFor(decimal.NewFromInt(30)).String())
}

func TestRuleValidate(t *testing.T) {
	rule := &Rule{
		Name:               "5+ cleans",
		AppliesTo:          types.BulkScopeCleaning,
		MinimumQuantity:    5,
		DiscountType:       types.DiscountTypePercentage,
		DiscountPercentage: decimal.NewFromInt(10),
		IsActive:           true,
	}
	assert.NoError(t, rule.Validate())

	bad := *rule
	bad.MinimumQuantity = 0
	assert.Error(t, bad.Validate())

	bad = *rule
	bad.DiscountPercentage = decimal.NewFromInt(120)
	assert.Error(t, bad.Validate())

	bad = *rule
	bad.AppliesTo = "upholstery"
	assert.Error(t, bad.Validate())
}
