package daytype

import "testing"

func TestTimeBudget(t *testing.T) {
	tests := []struct {
		tier Tier
		base int
		want int
	}{
		{TierMinimum, 60, 30},
		{TierMinimum, 200, 60},
		{TierRecovery, 100, 40},
		{TierRecovery, 500, 60},
		{TierNormal, 120, 120},
		{TierNormal, 240, 180},
		{TierBeast, 100, 150},
		{TierBeast, 300, 300},
		{TierBeast, 1000, 300},
		{Tier("unknown"), 90, 90},
		{TierBeast, 0, 0},
	}
	for _, tt := range tests {
		got := TimeBudget(tt.tier, tt.base)
		if got != tt.want {
			t.Errorf("TimeBudget(%q, %d) = %d, want %d", tt.tier, tt.base, got, tt.want)
		}
	}
}

func TestTimeBudget_Rounding(t *testing.T) {
	// 45 * 0.5 = 22.5 rounds half away from zero.
	if got := TimeBudget(TierMinimum, 45); got != 23 {
		t.Errorf("TimeBudget(minimum, 45) = %d, want 23", got)
	}
	// 37 * 0.4 = 14.8
	if got := TimeBudget(TierRecovery, 37); got != 15 {
		t.Errorf("TimeBudget(recovery, 37) = %d, want 15", got)
	}
}

func TestTimeBudget_NeverExceedsCap(t *testing.T) {
	for _, tier := range AllTiers() {
		for base := 0; base <= 1000; base += 7 {
			if got := TimeBudget(tier, base); got > BudgetCap(tier) {
				t.Fatalf("TimeBudget(%q, %d) = %d exceeds cap %d", tier, base, got, BudgetCap(tier))
			}
		}
	}
}
