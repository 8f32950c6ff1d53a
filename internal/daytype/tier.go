package daytype

import (
	"fmt"
	"strings"
)

// Tier is the effort classification for a single day.
type Tier string

const (
	TierMinimum  Tier = "minimum"
	TierNormal   Tier = "normal"
	TierBeast    Tier = "beast"
	TierRecovery Tier = "recovery"
)

// AllTiers returns all tiers from lightest to heaviest.
func AllTiers() []Tier {
	return []Tier{TierRecovery, TierMinimum, TierNormal, TierBeast}
}

// Parse converts a tier name to a Tier. Matching is case-insensitive.
func Parse(s string) (Tier, error) {
	t := Tier(strings.ToLower(strings.TrimSpace(s)))
	switch t {
	case TierMinimum, TierNormal, TierBeast, TierRecovery:
		return t, nil
	default:
		return "", fmt.Errorf("unknown day type %q", s)
	}
}

// IsLight reports whether the tier counts toward the burnout guard.
func (t Tier) IsLight() bool {
	return t == TierMinimum || t == TierRecovery
}

// DisplayName returns a human-readable label for the tier.
func (t Tier) DisplayName() string {
	switch t {
	case TierMinimum:
		return "Minimum"
	case TierNormal:
		return "Normal"
	case TierBeast:
		return "Beast"
	case TierRecovery:
		return "Recovery"
	default:
		return string(t)
	}
}

// ConsecutiveBeastDays counts the trailing run of beast days in history
// (most recent last).
func ConsecutiveBeastDays(history []Tier) int {
	n := 0
	for i := len(history) - 1; i >= 0; i-- {
		if history[i] != TierBeast {
			break
		}
		n++
	}
	return n
}
