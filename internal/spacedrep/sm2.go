package spacedrep

import (
	"math"
	"time"
)

const (
	// DefaultEaseFactor is the ease of an item that has never been graded.
	DefaultEaseFactor = 2.5

	// MinEaseFactor is the floor the ease factor can never drop below.
	MinEaseFactor = 1.3

	// DefaultIntervalDays is the interval of a new or lapsed item.
	DefaultIntervalDays = 1

	// SecondIntervalDays is the interval after the second successful review.
	SecondIntervalDays = 6

	// PassingGrade is the lowest grade (0-5) that counts as a successful recall.
	PassingGrade = 3
)

// InitialState returns the state for an item that has never been reviewed.
func InitialState() ReviewState {
	return ReviewState{
		EaseFactor:   DefaultEaseFactor,
		IntervalDays: DefaultIntervalDays,
		Repetitions:  0,
	}
}

// ApplyGrade runs one SM-2 step for a recall grade in 0-5 and returns the
// new state. prev is not modified. The grade is not validated; values
// outside 0-5 give defined but meaningless results.
func ApplyGrade(prev ReviewState, quality int, now time.Time) ReviewState {
	next := prev
	if next.EaseFactor == 0 {
		next.EaseFactor = DefaultEaseFactor
	}
	if next.IntervalDays == 0 {
		next.IntervalDays = DefaultIntervalDays
	}

	if quality >= PassingGrade {
		next.Repetitions++
		switch next.Repetitions {
		case 1:
			next.IntervalDays = DefaultIntervalDays
		case 2:
			next.IntervalDays = SecondIntervalDays
		default:
			next.IntervalDays = int(math.Round(float64(next.IntervalDays) * next.EaseFactor))
		}
	} else {
		next.Repetitions = 0
		next.IntervalDays = DefaultIntervalDays
	}

	next.EaseFactor = UpdateEase(next.EaseFactor, quality)

	days := next.IntervalDays
	if days < 1 {
		days = 1
	}
	due := now.AddDate(0, 0, days)
	reviewed := now
	next.NextReviewAt = &due
	next.LastReviewAt = &reviewed
	return next
}

// UpdateEase applies the SM-2 ease adjustment for a grade, floored at
// MinEaseFactor.
func UpdateEase(ease float64, quality int) float64 {
	q := float64(5 - quality)
	ease += 0.1 - q*(0.08+q*0.02)
	if ease < MinEaseFactor {
		return MinEaseFactor
	}
	return ease
}
