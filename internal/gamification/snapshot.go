package gamification

import "cloud.google.com/go/civil"

// SnapshotData is the persisted form of State. Dates are YYYY-MM-DD.
type SnapshotData struct {
	CurrentStreak    int      `json:"current_streak"`
	LongestStreak    int      `json:"longest_streak"`
	TotalXP          int      `json:"total_xp"`
	Level            int      `json:"level"`
	Badges           []string `json:"badges,omitempty"`
	LastActivityDate string   `json:"last_activity_date,omitempty"`
}

// SnapshotData exports the state for persistence.
func (s State) SnapshotData() *SnapshotData {
	data := &SnapshotData{
		CurrentStreak: s.CurrentStreak,
		LongestStreak: s.LongestStreak,
		TotalXP:       s.TotalXP,
		Level:         s.Level,
	}
	for _, b := range s.Badges {
		data.Badges = append(data.Badges, string(b))
	}
	if s.LastActivityDate != nil {
		data.LastActivityDate = s.LastActivityDate.String()
	}
	return data
}

// StateFromSnapshot restores a state. A nil snapshot yields NewState; an
// unparseable date is dropped. The result is normalized.
func StateFromSnapshot(data *SnapshotData) State {
	if data == nil {
		return NewState()
	}
	s := State{
		CurrentStreak: data.CurrentStreak,
		LongestStreak: data.LongestStreak,
		TotalXP:       data.TotalXP,
	}
	for _, b := range data.Badges {
		s.Badges = append(s.Badges, Badge(b))
	}
	if data.LastActivityDate != "" {
		if d, err := civil.ParseDate(data.LastActivityDate); err == nil {
			s.LastActivityDate = &d
		}
	}
	return s.Normalize()
}
