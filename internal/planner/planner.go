package planner

import (
	"math"
	"strings"

	"github.com/abhisek/studyflow/internal/daytype"
)

const (
	// requestedWeight is the share of the requested energy when blending
	// with the historical average.
	requestedWeight = 0.7

	// BusyLearnerSessions is the session count at which a day-specific
	// request has its energy reduced.
	BusyLearnerSessions = 5

	// minAdjustedEnergy is the floor for the busy-learner reduction.
	minAdjustedEnergy = 2
)

// ReviewInsight is added when the plan should emphasize review.
const ReviewInsight = "Emphasize review today: revisit earlier material before starting anything new."

// WeakTopicsPrefix starts the insight listing weak topics.
const WeakTopicsPrefix = "Weak topics: "

// BuildPlan turns a planning request into a day plan.
func BuildPlan(req Request, stats HistoricalStats, weakTopics []string) Plan {
	energy := AdjustEnergy(req, stats)

	decision := daytype.Classify(daytype.Input{
		Energy:               energy,
		History:              stats.RecentDayTypes,
		ConsecutiveBeastDays: stats.ConsecutiveBeastDays,
	})

	budget := daytype.TimeBudget(decision.Tier, req.TimeBlock)
	if budget < 1 {
		budget = 1
	}

	emphasize := decision.Tier == daytype.TierMinimum || len(weakTopics) > 0

	var insights []string
	if emphasize {
		insights = append(insights, ReviewInsight)
	}
	if len(weakTopics) > 0 {
		insights = append(insights, WeakTopicsPrefix+strings.Join(weakTopics, ", "))
	}

	return Plan{
		Topic:             req.Topic,
		Phase:             req.Phase,
		DayType:           decision.Tier,
		Rule:              decision.Rule,
		Energy:            energy,
		TimeBudgetMinutes: budget,
		EmphasizeReview:   emphasize,
		Insights:          insights,
	}
}

// AdjustEnergy applies the history-based energy adjustments to the
// requested energy, unless the request opts out.
func AdjustEnergy(req Request, stats HistoricalStats) float64 {
	energy := req.Energy
	if req.RespectUserInput {
		return energy
	}
	if stats.AvgEnergy != nil {
		blended := requestedWeight*energy + (1-requestedWeight)*(*stats.AvgEnergy)
		energy = math.Round(blended*10) / 10
	}
	if stats.SessionCount >= BusyLearnerSessions && req.Day != "" {
		energy = math.Max(minAdjustedEnergy, energy-1)
	}
	return energy
}
