package gamification

import (
	"slices"

	"cloud.google.com/go/civil"

	"github.com/abhisek/studyflow/internal/daytype"
)

// State is a learner's progression. It is a value: every engine call takes a
// State and returns a new one.
type State struct {
	CurrentStreak    int
	LongestStreak    int
	TotalXP          int
	Level            int
	Badges           []Badge // unique, sorted
	LastActivityDate *civil.Date
}

// NewState returns the state of a learner with no sessions.
func NewState() State {
	return State{Level: 1}
}

// HasBadge reports whether the badge is already held.
func (s State) HasBadge(b Badge) bool {
	return slices.Contains(s.Badges, b)
}

// WithBadges returns a copy of s holding the given badges as well.
func (s State) WithBadges(badges ...Badge) State {
	next := s.Clone()
	slices.Sort(next.Badges)
	next.Badges = slices.Compact(next.Badges)
	for _, b := range badges {
		i, found := slices.BinarySearch(next.Badges, b)
		if !found {
			next.Badges = slices.Insert(next.Badges, i, b)
		}
	}
	return next
}

// Clone returns a deep copy of s.
func (s State) Clone() State {
	next := s
	next.Badges = slices.Clone(s.Badges)
	if s.LastActivityDate != nil {
		d := *s.LastActivityDate
		next.LastActivityDate = &d
	}
	return next
}

// Normalize repairs a state loaded from storage so its invariants hold:
// non-negative counters, derived level, longest >= current, sorted unique
// badges.
func (s State) Normalize() State {
	next := s.Clone()
	next.TotalXP = max(next.TotalXP, 0)
	next.CurrentStreak = max(next.CurrentStreak, 0)
	next.LongestStreak = max(next.LongestStreak, next.CurrentStreak)
	next.Level = CalculateLevel(next.TotalXP)
	slices.Sort(next.Badges)
	next.Badges = slices.Compact(next.Badges)
	return next
}

// SessionOutcome is what the engine needs to know about a completed session.
type SessionOutcome struct {
	DayType        daytype.Tier
	CompletionRate float64 // 0-100
	Date           civil.Date
}

// Award summarizes what a session earned.
type Award struct {
	XPEarned       int
	TotalXP        int
	Level          int
	PreviousLevel  int
	LeveledUp      bool
	Streak         int
	LongestStreak  int
	BadgesUnlocked []Badge
}

// Advance applies a completed session to the state: award XP, update the
// streak, re-derive the level and unlock badges.
func Advance(s State, outcome SessionOutcome, mode StreakMode) (State, Award) {
	next := s.Normalize()
	prevLevel := next.Level

	xp := AwardXP(outcome.DayType, outcome.CompletionRate)
	next.TotalXP += xp

	su := UpdateStreak(next.CurrentStreak, next.LastActivityDate, outcome.Date, mode)
	next.CurrentStreak = su.Streak
	next.LongestStreak = max(next.LongestStreak, next.CurrentStreak)
	last := su.LastActivityDate
	next.LastActivityDate = &last

	next.Level = CalculateLevel(next.TotalXP)

	unlocked := CheckBadges(next)
	next = next.WithBadges(unlocked...)

	return next, Award{
		XPEarned:       xp,
		TotalXP:        next.TotalXP,
		Level:          next.Level,
		PreviousLevel:  prevLevel,
		LeveledUp:      next.Level > prevLevel,
		Streak:         next.CurrentStreak,
		LongestStreak:  next.LongestStreak,
		BadgesUnlocked: unlocked,
	}
}
