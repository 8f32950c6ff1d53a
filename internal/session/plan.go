package session

import (
	"context"
	"fmt"

	"cloud.google.com/go/civil"
	"go.uber.org/zap"

	"github.com/abhisek/studyflow/internal/daytype"
	"github.com/abhisek/studyflow/internal/input"
	"github.com/abhisek/studyflow/internal/planner"
	"github.com/abhisek/studyflow/internal/store"
)

// PlanResult is a day plan plus the reviews due when it was made.
type PlanResult struct {
	Plan     planner.Plan
	Stats    planner.HistoricalStats
	DueItems []string
}

// Plan builds and records the plan for today. Replanning the same day is
// allowed; the latest plan for a date wins.
func (s *Service) Plan(ctx context.Context, req input.PlanRequest, today civil.Date) (*PlanResult, error) {
	if err := input.Validate(input.SchemaPlanRequest, req); err != nil {
		return nil, err
	}

	stats, err := s.historicalStats(ctx, today)
	if err != nil {
		return nil, err
	}
	weak, err := s.WeakTopics(ctx)
	if err != nil {
		return nil, err
	}

	preq := planner.Request{
		Topic:            req.Topic,
		Phase:            req.Phase,
		Energy:           req.Energy,
		TimeBlock:        req.TimeBlock,
		Day:              req.Day,
		RespectUserInput: s.cfg.Plan.RespectUserInput,
	}
	if preq.TimeBlock == 0 {
		preq.TimeBlock = s.cfg.Plan.BaseMinutes
	}
	if req.RespectUserInput != nil {
		preq.RespectUserInput = *req.RespectUserInput
	}

	plan := planner.BuildPlan(preq, stats, topicNames(weak))

	err = s.events.AppendDayEvent(ctx, store.DayEventData{
		Date:            today.String(),
		DayType:         string(plan.DayType),
		Rule:            string(plan.Rule),
		RequestedEnergy: req.Energy,
		Energy:          plan.Energy,
		TimeBudget:      plan.TimeBudgetMinutes,
		Topic:           plan.Topic,
	})
	if err != nil {
		return nil, fmt.Errorf("record plan: %w", err)
	}

	l, err := s.load(ctx)
	if err != nil {
		return nil, err
	}

	s.log.Info("day planned",
		zap.String("date", today.String()),
		zap.String("day_type", string(plan.DayType)),
		zap.String("rule", string(plan.Rule)),
		zap.Float64("requested_energy", req.Energy),
		zap.Float64("energy", plan.Energy),
		zap.Int("time_budget", plan.TimeBudgetMinutes),
		zap.Strings("weak_topics", topicNames(weak)),
	)

	return &PlanResult{Plan: plan, Stats: stats, DueItems: l.reviews.DueItems(s.now())}, nil
}

// historicalStats gathers the planner's view of past days and sessions
// before today.
func (s *Service) historicalStats(ctx context.Context, today civil.Date) (planner.HistoricalStats, error) {
	var stats planner.HistoricalStats

	days, err := s.events.RecentDays(ctx, today.String(), historyLookback)
	if err != nil {
		return stats, err
	}
	for _, d := range days {
		t, err := daytype.Parse(d.DayType)
		if err != nil {
			s.log.Warn("skipping day with unknown type", zap.String("date", d.Date), zap.String("day_type", d.DayType))
			continue
		}
		stats.RecentDayTypes = append(stats.RecentDayTypes, t)
	}
	stats.ConsecutiveBeastDays = daytype.ConsecutiveBeastDays(stats.RecentDayTypes)

	energy, err := s.events.EnergyStats(ctx, today.String())
	if err != nil {
		return stats, err
	}
	if energy.Days > 0 {
		avg := energy.Average
		stats.AvgEnergy = &avg
	}

	if stats.SessionCount, err = s.events.SessionCount(ctx); err != nil {
		return stats, err
	}
	return stats, nil
}

// WeakTopics returns topics whose mean quality over the configured window
// of recent sessions is below the threshold, weakest first.
func (s *Service) WeakTopics(ctx context.Context) ([]store.TopicQuality, error) {
	all, err := s.events.TopicQuality(ctx, s.cfg.WeakTopics.Window)
	if err != nil {
		return nil, err
	}
	var weak []store.TopicQuality
	for _, tq := range all {
		if tq.Mean >= s.cfg.WeakTopics.Threshold {
			continue
		}
		if len(weak) == s.cfg.WeakTopics.Limit {
			break
		}
		weak = append(weak, tq)
	}
	return weak, nil
}

func topicNames(tqs []store.TopicQuality) []string {
	names := make([]string, len(tqs))
	for i, tq := range tqs {
		names[i] = tq.Topic
	}
	return names
}
