package planner

import "github.com/abhisek/studyflow/internal/daytype"

// Request is what the learner asks for when planning a day.
type Request struct {
	Topic     string
	Phase     string
	Energy    float64 // 1-5
	TimeBlock int     // base minutes available
	Day       string  // optional, e.g. "monday" or "2025-03-10"

	// RespectUserInput skips all energy adjustments.
	RespectUserInput bool
}

// HistoricalStats summarizes the learner's past, as supplied by the caller.
type HistoricalStats struct {
	AvgEnergy            *float64 // nil when no energy has been logged
	SessionCount         int
	RecentDayTypes       []daytype.Tier // most recent last
	ConsecutiveBeastDays int
}

// Plan is the orchestrator's output for one planning request.
type Plan struct {
	Topic             string
	Phase             string
	DayType           daytype.Tier
	Rule              daytype.RuleID
	Energy            float64 // after adjustment
	TimeBudgetMinutes int
	EmphasizeReview   bool
	Insights          []string
}
