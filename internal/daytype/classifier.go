package daytype

// HistoryWindow is how many trailing history entries the burnout guard inspects.
const HistoryWindow = 3

// DeloadAfterBeastDays forces a minimum day after this many beast days in a row.
const DeloadAfterBeastDays = 3

// Input is everything the classifier looks at.
type Input struct {
	Energy               float64 // 1-5
	History              []Tier  // most recent last
	ConsecutiveBeastDays int
}

// RuleID names a classification rule.
type RuleID string

const (
	RuleDeload     RuleID = "deload"
	RuleBurnout    RuleID = "burnout"
	RuleLowEnergy  RuleID = "low-energy"
	RuleSteady     RuleID = "steady"
	RuleHighEnergy RuleID = "high-energy"
	RuleFallback   RuleID = "fallback"
)

// Rule is one entry in the ordered classification list.
type Rule struct {
	ID    RuleID
	Tier  Tier
	Match func(in Input) bool
}

// Decision is the classifier's output.
type Decision struct {
	Tier Tier
	Rule RuleID
}

// Rules is evaluated top to bottom; the first match wins.
var Rules = []Rule{
	{ID: RuleDeload, Tier: TierMinimum, Match: deload},
	{ID: RuleBurnout, Tier: TierRecovery, Match: burnout},
	{ID: RuleLowEnergy, Tier: TierMinimum, Match: func(in Input) bool { return in.Energy <= 2 }},
	{ID: RuleSteady, Tier: TierNormal, Match: func(in Input) bool { return in.Energy == 3 }},
	{ID: RuleHighEnergy, Tier: TierBeast, Match: func(in Input) bool { return in.Energy >= 4 }},
}

// Classify picks the day's tier. Energies between the documented thresholds
// (e.g. a blended 3.4) fall through to normal.
func Classify(in Input) Decision {
	for _, r := range Rules {
		if r.Match(in) {
			return Decision{Tier: r.Tier, Rule: r.ID}
		}
	}
	return Decision{Tier: TierNormal, Rule: RuleFallback}
}

func deload(in Input) bool {
	return in.ConsecutiveBeastDays >= DeloadAfterBeastDays
}

func burnout(in Input) bool {
	if in.Energy > 2 || len(in.History) < HistoryWindow {
		return false
	}
	for _, t := range in.History[len(in.History)-HistoryWindow:] {
		if !t.IsLight() {
			return false
		}
	}
	return true
}
