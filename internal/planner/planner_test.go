package planner

import (
	"math"
	"slices"
	"testing"

	"github.com/abhisek/studyflow/internal/daytype"
)

func avg(v float64) *float64 { return &v }

func TestAdjustEnergy(t *testing.T) {
	tests := []struct {
		name  string
		req   Request
		stats HistoricalStats
		want  float64
	}{
		{"no history", Request{Energy: 4}, HistoricalStats{}, 4},
		{"blend", Request{Energy: 4}, HistoricalStats{AvgEnergy: avg(2)}, 3.4},
		{"blend rounds to one decimal", Request{Energy: 5}, HistoricalStats{AvgEnergy: avg(3.33)}, 4.5},
		{"busy learner with day", Request{Energy: 4, Day: "monday"}, HistoricalStats{SessionCount: 5}, 3},
		{"busy learner floor", Request{Energy: 2, Day: "monday"}, HistoricalStats{SessionCount: 9}, 2},
		{"busy learner no day", Request{Energy: 4}, HistoricalStats{SessionCount: 9}, 4},
		{"few sessions with day", Request{Energy: 4, Day: "monday"}, HistoricalStats{SessionCount: 4}, 4},
		{"blend then reduce", Request{Energy: 5, Day: "friday"}, HistoricalStats{AvgEnergy: avg(5), SessionCount: 6}, 4},
		{
			"respect input",
			Request{Energy: 5, Day: "friday", RespectUserInput: true},
			HistoricalStats{AvgEnergy: avg(1), SessionCount: 20},
			5,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := AdjustEnergy(tt.req, tt.stats)
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("AdjustEnergy() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestBuildPlan_HighEnergy(t *testing.T) {
	p := BuildPlan(Request{Topic: "calculus", Phase: "practice", Energy: 5, TimeBlock: 120}, HistoricalStats{}, nil)

	if p.DayType != daytype.TierBeast {
		t.Errorf("DayType = %q, want %q", p.DayType, daytype.TierBeast)
	}
	if p.TimeBudgetMinutes != 180 {
		t.Errorf("TimeBudgetMinutes = %d, want 180", p.TimeBudgetMinutes)
	}
	if p.EmphasizeReview {
		t.Error("EmphasizeReview = true, want false")
	}
	if len(p.Insights) != 0 {
		t.Errorf("Insights = %v, want none", p.Insights)
	}
	if p.Topic != "calculus" || p.Phase != "practice" {
		t.Errorf("topic/phase = %q/%q", p.Topic, p.Phase)
	}
}

func TestBuildPlan_MinimumEmphasizesReview(t *testing.T) {
	p := BuildPlan(Request{Energy: 1, TimeBlock: 90}, HistoricalStats{}, nil)
	if p.DayType != daytype.TierMinimum {
		t.Fatalf("DayType = %q, want minimum", p.DayType)
	}
	if !p.EmphasizeReview {
		t.Error("EmphasizeReview = false, want true")
	}
	if len(p.Insights) != 1 || p.Insights[0] != ReviewInsight {
		t.Errorf("Insights = %v, want only the review insight", p.Insights)
	}
	if p.TimeBudgetMinutes != 45 {
		t.Errorf("TimeBudgetMinutes = %d, want 45", p.TimeBudgetMinutes)
	}
}

func TestBuildPlan_WeakTopics(t *testing.T) {
	p := BuildPlan(Request{Energy: 5, TimeBlock: 60}, HistoricalStats{}, []string{"x"})

	if !p.EmphasizeReview {
		t.Error("EmphasizeReview = false, want true")
	}
	if !slices.Contains(p.Insights, ReviewInsight) {
		t.Errorf("Insights = %v, missing review insight", p.Insights)
	}
	if !slices.Contains(p.Insights, "Weak topics: x") {
		t.Errorf("Insights = %v, missing weak topics line", p.Insights)
	}
}

func TestBuildPlan_WeakTopicsJoined(t *testing.T) {
	p := BuildPlan(Request{Energy: 3, TimeBlock: 60}, HistoricalStats{}, []string{"limits", "series", "vectors"})
	want := []string{ReviewInsight, "Weak topics: limits, series, vectors"}
	if !slices.Equal(p.Insights, want) {
		t.Errorf("Insights = %v, want %v", p.Insights, want)
	}
}

func TestBuildPlan_DeloadAfterBeastRun(t *testing.T) {
	stats := HistoricalStats{
		RecentDayTypes:       []daytype.Tier{daytype.TierBeast, daytype.TierBeast, daytype.TierBeast},
		ConsecutiveBeastDays: 3,
	}
	p := BuildPlan(Request{Energy: 5, TimeBlock: 200, RespectUserInput: true}, stats, nil)
	if p.DayType != daytype.TierMinimum || p.Rule != daytype.RuleDeload {
		t.Errorf("got %q via %q, want minimum via deload", p.DayType, p.Rule)
	}
	if p.TimeBudgetMinutes != 60 {
		t.Errorf("TimeBudgetMinutes = %d, want 60", p.TimeBudgetMinutes)
	}
}

func TestBuildPlan_BlendedEnergyFallsBackToNormal(t *testing.T) {
	// 0.7*4 + 0.3*2 = 3.4 -> between thresholds -> normal
	p := BuildPlan(Request{Energy: 4, TimeBlock: 100}, HistoricalStats{AvgEnergy: avg(2)}, nil)
	if p.DayType != daytype.TierNormal {
		t.Errorf("DayType = %q, want normal", p.DayType)
	}
	if p.Energy != 3.4 {
		t.Errorf("Energy = %v, want 3.4", p.Energy)
	}
}

func TestBuildPlan_BudgetAtLeastOneMinute(t *testing.T) {
	p := BuildPlan(Request{Energy: 1, TimeBlock: 1}, HistoricalStats{}, nil)
	if p.TimeBudgetMinutes != 1 {
		t.Errorf("TimeBudgetMinutes = %d, want 1", p.TimeBudgetMinutes)
	}
}
