package gamification

// badgeDef ties a badge to the state predicate that unlocks it.
type badgeDef struct {
	Badge     Badge
	Predicate func(State) bool
}

var badgeDefs = []badgeDef{
	{Badge: BadgeStreak7, Predicate: func(s State) bool { return s.CurrentStreak >= 7 }},
	{Badge: BadgeXP1000, Predicate: func(s State) bool { return s.TotalXP >= 1000 }},
	{Badge: BadgeStreak30, Predicate: func(s State) bool { return s.LongestStreak >= 30 }},
}

// CheckBadges returns the badges whose thresholds the state meets but which
// it does not hold yet, in display order. Once the caller adds them to the
// state, checking again yields nothing.
func CheckBadges(s State) []Badge {
	var unlocked []Badge
	for _, def := range badgeDefs {
		if s.HasBadge(def.Badge) {
			continue
		}
		if def.Predicate(s) {
			unlocked = append(unlocked, def.Badge)
		}
	}
	return unlocked
}
