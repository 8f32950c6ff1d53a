package daytype

import "math"

type budgetRule struct {
	factor float64
	cap    int
}

var budgets = map[Tier]budgetRule{
	TierMinimum:  {factor: 0.5, cap: 60},
	TierRecovery: {factor: 0.4, cap: 60},
	TierNormal:   {factor: 1.0, cap: 180},
	TierBeast:    {factor: 1.5, cap: 300},
}

// TimeBudget scales the base study time for a tier and caps it so an
// inflated base can't produce a runaway schedule. Unknown tiers use the
// normal rule.
func TimeBudget(t Tier, baseMinutes int) int {
	rule, ok := budgets[t]
	if !ok {
		rule = budgets[TierNormal]
	}
	minutes := int(math.Round(float64(baseMinutes) * rule.factor))
	if minutes > rule.cap {
		return rule.cap
	}
	return minutes
}

// BudgetCap returns the maximum minutes a tier can be scheduled for.
func BudgetCap(t Tier) int {
	if rule, ok := budgets[t]; ok {
		return rule.cap
	}
	return budgets[TierNormal].cap
}
