package gamification

import (
	"fmt"

	"cloud.google.com/go/civil"
)

// StreakMode selects how consecutive activity days are counted.
type StreakMode string

const (
	// StreakLiteral reproduces the legacy rule: every update yields a streak
	// of 1, and a same-day repeat keeps the stored date.
	StreakLiteral StreakMode = "literal"

	// StreakConsecutive counts consecutive active days: same-day repeats keep
	// the streak, next-day activity extends it, any gap resets it to 1.
	StreakConsecutive StreakMode = "consecutive"
)

// ParseStreakMode converts a config value to a StreakMode.
func ParseStreakMode(s string) (StreakMode, error) {
	switch StreakMode(s) {
	case StreakLiteral, StreakConsecutive:
		return StreakMode(s), nil
	case "":
		return StreakLiteral, nil
	default:
		return "", fmt.Errorf("unknown streak mode %q", s)
	}
}

// StreakUpdate is the result of recording activity on a day.
type StreakUpdate struct {
	Streak           int
	LastActivityDate civil.Date
}

// UpdateStreak computes the streak after activity on today. current is the
// streak before this activity and last the previous activity date (nil if
// none). The caller folds the result into current/longest streak.
func UpdateStreak(current int, last *civil.Date, today civil.Date, mode StreakMode) StreakUpdate {
	if last == nil {
		return StreakUpdate{Streak: 1, LastActivityDate: today}
	}
	gap := today.DaysSince(*last)

	if mode == StreakConsecutive {
		switch {
		case gap <= 0:
			return StreakUpdate{Streak: max(current, 1), LastActivityDate: *last}
		case gap == 1:
			return StreakUpdate{Streak: current + 1, LastActivityDate: today}
		default:
			return StreakUpdate{Streak: 1, LastActivityDate: today}
		}
	}

	if gap == 0 {
		return StreakUpdate{Streak: 1, LastActivityDate: *last}
	}
	return StreakUpdate{Streak: 1, LastActivityDate: today}
}
