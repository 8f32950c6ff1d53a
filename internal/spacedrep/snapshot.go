package spacedrep

import "time"

// SnapshotData is the persisted form of all review items.
type SnapshotData struct {
	Items map[string]*ReviewStateData `json:"items"`
}

// ReviewStateData is the persisted form of one review item. Times are RFC3339.
type ReviewStateData struct {
	ItemID       string  `json:"item_id"`
	Topic        string  `json:"topic,omitempty"`
	EaseFactor   float64 `json:"ease_factor"`
	IntervalDays int     `json:"interval_days"`
	Repetitions  int     `json:"repetitions"`
	NextReviewAt *string `json:"next_review_at,omitempty"`
	LastReviewAt *string `json:"last_review_at,omitempty"`
}

func toData(rs *ReviewState) *ReviewStateData {
	return &ReviewStateData{
		ItemID:       rs.ItemID,
		Topic:        rs.Topic,
		EaseFactor:   rs.EaseFactor,
		IntervalDays: rs.IntervalDays,
		Repetitions:  rs.Repetitions,
		NextReviewAt: formatTime(rs.NextReviewAt),
		LastReviewAt: formatTime(rs.LastReviewAt),
	}
}

func fromData(id string, d *ReviewStateData) (*ReviewState, error) {
	next, err := parseTime(d.NextReviewAt)
	if err != nil {
		return nil, err
	}
	last, err := parseTime(d.LastReviewAt)
	if err != nil {
		return nil, err
	}
	itemID := d.ItemID
	if itemID == "" {
		itemID = id
	}
	return &ReviewState{
		ItemID:       itemID,
		Topic:        d.Topic,
		EaseFactor:   d.EaseFactor,
		IntervalDays: d.IntervalDays,
		Repetitions:  d.Repetitions,
		NextReviewAt: next,
		LastReviewAt: last,
	}, nil
}

func formatTime(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.UTC().Format(time.RFC3339)
	return &s
}

func parseTime(s *string) (*time.Time, error) {
	if s == nil || *s == "" {
		return nil, nil
	}
	t, err := time.Parse(time.RFC3339, *s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
