package gamification

// XPPerLevel is the amount of XP between consecutive levels.
const XPPerLevel = 500

// CalculateLevel derives the level from total XP. Level 1 covers 0-499.
func CalculateLevel(totalXP int) int {
	if totalXP < 0 {
		return 1
	}
	return totalXP/XPPerLevel + 1
}

// XPToNextLevel returns how much more XP is needed to reach the next level.
func XPToNextLevel(totalXP int) int {
	return CalculateLevel(totalXP)*XPPerLevel - max(totalXP, 0)
}
