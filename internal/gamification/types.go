package gamification

// Badge identifies a one-time achievement.
type Badge string

const (
	BadgeStreak7  Badge = "streak_7"
	BadgeXP1000   Badge = "xp_1000"
	BadgeStreak30 Badge = "streak_30"
)

// AllBadges returns all badges in display order.
func AllBadges() []Badge {
	return []Badge{BadgeStreak7, BadgeXP1000, BadgeStreak30}
}

// DisplayName returns a human-readable label for the badge.
func (b Badge) DisplayName() string {
	switch b {
	case BadgeStreak7:
		return "Week Warrior"
	case BadgeXP1000:
		return "Thousand Club"
	case BadgeStreak30:
		return "Unbreakable"
	default:
		return string(b)
	}
}

// Icon returns the display icon for the badge.
func (b Badge) Icon() string {
	switch b {
	case BadgeStreak7:
		return "🔥"
	case BadgeXP1000:
		return "💎"
	case BadgeStreak30:
		return "🏆"
	default:
		return "✦"
	}
}
