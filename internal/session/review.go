package session

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/abhisek/studyflow/internal/input"
	"github.com/abhisek/studyflow/internal/spacedrep"
	"github.com/abhisek/studyflow/internal/store"
)

// AddReviewItem starts tracking an item for spaced review. New items are
// due immediately.
func (s *Service) AddReviewItem(ctx context.Context, itemID, topic string) (spacedrep.ReviewState, error) {
	if itemID == "" {
		return spacedrep.ReviewState{}, errors.New("review item id is required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	l, err := s.load(ctx)
	if err != nil {
		return spacedrep.ReviewState{}, err
	}
	if !l.reviews.Add(itemID, topic) {
		return spacedrep.ReviewState{}, fmt.Errorf("add %q: %w", itemID, ErrItemExists)
	}
	if err := s.save(ctx, l); err != nil {
		return spacedrep.ReviewState{}, fmt.Errorf("save reviews: %w", err)
	}

	s.log.Debug("review item added", zap.String("item_id", itemID), zap.String("topic", topic))
	rs, _ := l.reviews.Get(itemID)
	return rs, nil
}

// RemoveReviewItem stops tracking an item.
func (s *Service) RemoveReviewItem(ctx context.Context, itemID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	l, err := s.load(ctx)
	if err != nil {
		return err
	}
	if !l.reviews.Remove(itemID) {
		return fmt.Errorf("remove %q: %w", itemID, spacedrep.ErrUnknownItem)
	}
	if err := s.save(ctx, l); err != nil {
		return fmt.Errorf("save reviews: %w", err)
	}
	return nil
}

// GradeReviewItem applies a 0-5 recall grade and reschedules the item.
func (s *Service) GradeReviewItem(ctx context.Context, g input.ReviewGrade) (spacedrep.ReviewState, error) {
	if err := input.Validate(input.SchemaReviewGrade, g); err != nil {
		return spacedrep.ReviewState{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	l, err := s.load(ctx)
	if err != nil {
		return spacedrep.ReviewState{}, err
	}
	next, err := l.reviews.Grade(g.ItemID, g.Grade, s.now())
	if err != nil {
		return spacedrep.ReviewState{}, err
	}

	err = s.events.AppendReviewEvent(ctx, store.ReviewEventData{
		ItemID:       g.ItemID,
		Grade:        g.Grade,
		EaseFactor:   next.EaseFactor,
		IntervalDays: next.IntervalDays,
		Repetitions:  next.Repetitions,
		NextReviewAt: *next.NextReviewAt,
	})
	if err != nil {
		return spacedrep.ReviewState{}, fmt.Errorf("record review: %w", err)
	}
	if err := s.save(ctx, l); err != nil {
		return spacedrep.ReviewState{}, fmt.Errorf("save reviews: %w", err)
	}

	s.log.Info("review graded",
		zap.String("item_id", g.ItemID),
		zap.Int("grade", g.Grade),
		zap.Float64("ease", next.EaseFactor),
		zap.Int("interval_days", next.IntervalDays),
		zap.Time("next_review_at", *next.NextReviewAt),
	)
	return next, nil
}

// DueReviews returns the items due now, most overdue first.
func (s *Service) DueReviews(ctx context.Context) ([]spacedrep.ReviewState, error) {
	l, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	ids := l.reviews.DueItems(s.now())
	due := make([]spacedrep.ReviewState, 0, len(ids))
	for _, id := range ids {
		rs, _ := l.reviews.Get(id)
		due = append(due, rs)
	}
	return due, nil
}

// Reviews returns every tracked item, sorted by id.
func (s *Service) Reviews(ctx context.Context) ([]spacedrep.ReviewState, error) {
	l, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	return l.reviews.All(), nil
}
