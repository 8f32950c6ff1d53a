package gamification

import (
	"math"

	"github.com/abhisek/studyflow/internal/daytype"
)

// UnknownTierXP is the base award for a day type the engine doesn't know.
const UnknownTierXP = 40

// MinCompletionMultiplier keeps low-completion sessions from earning nothing.
const MinCompletionMultiplier = 0.4

var baseXP = map[daytype.Tier]int{
	daytype.TierMinimum:  30,
	daytype.TierNormal:   60,
	daytype.TierBeast:    120,
	daytype.TierRecovery: 20,
}

// BaseXP returns the full-completion XP for a day type.
func BaseXP(t daytype.Tier) int {
	if xp, ok := baseXP[t]; ok {
		return xp
	}
	return UnknownTierXP
}

// AwardXP returns the XP for a completed session: the day type's base rate
// scaled by completion (0-100), never below 40% of the base.
func AwardXP(t daytype.Tier, completionRate float64) int {
	multiplier := completionRate / 100
	if multiplier < MinCompletionMultiplier {
		multiplier = MinCompletionMultiplier
	}
	return int(math.Round(float64(BaseXP(t)) * multiplier))
}
