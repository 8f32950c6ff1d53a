package session

import (
	"context"

	"github.com/abhisek/studyflow/internal/gamification"
	"github.com/abhisek/studyflow/internal/store"
)

// Stats is the learner overview shown by the stats command.
type Stats struct {
	Progress      gamification.State
	XPToNextLevel int
	Sessions      int
	Energy        store.EnergyStats
	ReviewItems   int
	DueReviews    int
	WeakTopics    []store.TopicQuality
}

// Stats gathers the learner overview.
func (s *Service) Stats(ctx context.Context) (*Stats, error) {
	l, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	sessions, err := s.events.SessionCount(ctx)
	if err != nil {
		return nil, err
	}
	// Today's plan counts in the overview.
	energy, err := s.events.EnergyStats(ctx, s.Today().AddDays(1).String())
	if err != nil {
		return nil, err
	}
	weak, err := s.WeakTopics(ctx)
	if err != nil {
		return nil, err
	}
	return &Stats{
		Progress:      l.progress,
		XPToNextLevel: gamification.XPToNextLevel(l.progress.TotalXP),
		Sessions:      sessions,
		Energy:        energy,
		ReviewItems:   l.reviews.Len(),
		DueReviews:    len(l.reviews.DueItems(s.now())),
		WeakTopics:    weak,
	}, nil
}
