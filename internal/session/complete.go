package session

import (
	"context"
	"fmt"

	"cloud.google.com/go/civil"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/abhisek/studyflow/internal/daytype"
	"github.com/abhisek/studyflow/internal/gamification"
	"github.com/abhisek/studyflow/internal/input"
	"github.com/abhisek/studyflow/internal/quality"
	"github.com/abhisek/studyflow/internal/store"
)

// SessionResult reports what a finished session earned.
type SessionResult struct {
	SessionID    string
	DayType      daytype.Tier
	Quality      float64
	QualityLabel quality.Label
	Award        gamification.Award
	State        gamification.State
}

// Complete scores a finished session, advances the learner's progression
// and records the session.
func (s *Service) Complete(ctx context.Context, fb input.SessionFeedback, today civil.Date) (*SessionResult, error) {
	if err := input.Validate(input.SchemaSessionFeedback, fb); err != nil {
		return nil, err
	}

	score := quality.Score(quality.Input{
		Understanding:  fb.Understanding,
		Difficulty:     fb.Difficulty,
		MoodAfter:      fb.MoodAfter,
		CompletionRate: fb.CompletionRate,
	})

	tier, err := s.dayTypeFor(ctx, fb.DayType, today)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	l, err := s.load(ctx)
	if err != nil {
		return nil, err
	}

	next, award := gamification.Advance(l.progress, gamification.SessionOutcome{
		DayType:        tier,
		CompletionRate: fb.CompletionRate,
		Date:           today,
	}, s.cfg.StreakMode())

	sessionID := uuid.New().String()
	err = s.events.AppendSessionEvent(ctx, store.SessionEventData{
		SessionID:      sessionID,
		Date:           today.String(),
		Topic:          fb.Topic,
		Phase:          fb.Phase,
		DayType:        string(tier),
		Understanding:  fb.Understanding,
		Difficulty:     fb.Difficulty,
		MoodAfter:      fb.MoodAfter,
		CompletionRate: fb.CompletionRate,
		Quality:        score,
		XPEarned:       award.XPEarned,
		Level:          award.Level,
		Streak:         award.Streak,
	})
	if err != nil {
		return nil, fmt.Errorf("record session: %w", err)
	}

	l.progress = next
	if err := s.save(ctx, l); err != nil {
		return nil, fmt.Errorf("save progress: %w", err)
	}

	s.log.Info("session completed",
		zap.String("session_id", sessionID),
		zap.String("topic", fb.Topic),
		zap.String("day_type", string(tier)),
		zap.Float64("quality", score),
		zap.Int("xp_earned", award.XPEarned),
		zap.Int("streak", award.Streak),
	)
	if award.LeveledUp {
		s.log.Info("level up", zap.Int("from", award.PreviousLevel), zap.Int("to", award.Level))
	}
	for _, b := range award.BadgesUnlocked {
		s.log.Info("badge unlocked", zap.String("badge", string(b)))
	}

	return &SessionResult{
		SessionID:    sessionID,
		DayType:      tier,
		Quality:      score,
		QualityLabel: quality.LabelFor(score),
		Award:        award,
		State:        next,
	}, nil
}

// dayTypeFor resolves the tier a session counts toward: the explicit
// override, else the latest plan for the day, else normal.
func (s *Service) dayTypeFor(ctx context.Context, override string, today civil.Date) (daytype.Tier, error) {
	if override != "" {
		return daytype.Parse(override)
	}
	ev, err := s.events.DayEventFor(ctx, today.String())
	if err != nil {
		return "", err
	}
	if ev == nil {
		return daytype.TierNormal, nil
	}
	t, err := daytype.Parse(ev.DayType)
	if err != nil {
		s.log.Warn("unknown planned day type, using normal", zap.String("day_type", ev.DayType))
		return daytype.TierNormal, nil
	}
	return t, nil
}
