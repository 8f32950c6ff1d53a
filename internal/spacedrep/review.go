package spacedrep

import "time"

// ReviewState holds the SM-2 state for a single review item.
type ReviewState struct {
	ItemID       string
	Topic        string
	EaseFactor   float64
	IntervalDays int
	Repetitions  int
	NextReviewAt *time.Time
	LastReviewAt *time.Time
}

// IsDue returns true if the item is due for review (at or past the review
// time). Items that were never scheduled are always due.
func (rs *ReviewState) IsDue(now time.Time) bool {
	if rs.NextReviewAt == nil {
		return true
	}
	return !now.Before(*rs.NextReviewAt)
}

// OverdueDays returns how many days past due the item is. Returns 0 if not
// yet due or never scheduled.
func (rs *ReviewState) OverdueDays(now time.Time) float64 {
	if rs.NextReviewAt == nil || now.Before(*rs.NextReviewAt) {
		return 0
	}
	return now.Sub(*rs.NextReviewAt).Hours() / 24.0
}

// IsOverdue returns true once the item has been due for longer than half of
// its current interval.
func (rs *ReviewState) IsOverdue(now time.Time) bool {
	if rs.NextReviewAt == nil || !rs.IsDue(now) {
		return false
	}
	graceHours := float64(rs.currentInterval()) * 0.5 * 24.0
	threshold := rs.NextReviewAt.Add(time.Duration(graceHours * float64(time.Hour)))
	return now.After(threshold)
}

func (rs *ReviewState) currentInterval() int {
	if rs.IntervalDays < 1 {
		return DefaultIntervalDays
	}
	return rs.IntervalDays
}

// ReviewStatus describes an item's review status for display.
type ReviewStatus string

const (
	ReviewNew     ReviewStatus = "new"
	ReviewNotDue  ReviewStatus = "not_due"
	ReviewDue     ReviewStatus = "due"
	ReviewOverdue ReviewStatus = "overdue"
)

// Status returns the review status for display.
func (rs *ReviewState) Status(now time.Time) ReviewStatus {
	switch {
	case rs.NextReviewAt == nil:
		return ReviewNew
	case rs.IsOverdue(now):
		return ReviewOverdue
	case rs.IsDue(now):
		return ReviewDue
	default:
		return ReviewNotDue
	}
}

// DaysUntilReview returns the number of days until the next review.
// Returns 0 if already due.
func (rs *ReviewState) DaysUntilReview(now time.Time) int {
	if rs.IsDue(now) {
		return 0
	}
	return int(rs.NextReviewAt.Sub(now).Hours()/24.0) + 1
}
