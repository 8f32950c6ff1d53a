package gamification

import (
	"testing"

	"github.com/abhisek/studyflow/internal/daytype"
)

func TestAwardXP(t *testing.T) {
	tests := []struct {
		tier       daytype.Tier
		completion float64
		want       int
	}{
		{daytype.TierBeast, 100, 120},
		{daytype.TierBeast, 0, 48},
		{daytype.TierBeast, 40, 48},
		{daytype.TierBeast, 75, 90},
		{daytype.TierNormal, 100, 60},
		{daytype.TierNormal, 50, 30},
		{daytype.TierMinimum, 100, 30},
		{daytype.TierMinimum, 10, 12},
		{daytype.TierRecovery, 100, 20},
		{daytype.TierRecovery, 0, 8},
		{daytype.Tier("mystery"), 100, 40},
		{daytype.Tier("mystery"), 0, 16},
	}
	for _, tt := range tests {
		got := AwardXP(tt.tier, tt.completion)
		if got != tt.want {
			t.Errorf("AwardXP(%q, %.0f) = %d, want %d", tt.tier, tt.completion, got, tt.want)
		}
	}
}

func TestAwardXP_NeverZero(t *testing.T) {
	for _, tier := range daytype.AllTiers() {
		if got := AwardXP(tier, 0); got <= 0 {
			t.Errorf("AwardXP(%q, 0) = %d, want > 0", tier, got)
		}
	}
}

func TestAwardXP_Rounding(t *testing.T) {
	// 60 * 0.67 = 40.2 -> 40; 30 * 0.85 = 25.5 -> 26
	if got := AwardXP(daytype.TierNormal, 67); got != 40 {
		t.Errorf("AwardXP(normal, 67) = %d, want 40", got)
	}
	if got := AwardXP(daytype.TierMinimum, 85); got != 26 {
		t.Errorf("AwardXP(minimum, 85) = %d, want 26", got)
	}
}
