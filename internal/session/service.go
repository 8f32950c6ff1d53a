// Package session runs planning, session logging and reviews against the
// store. It is the only layer that holds learner state across calls.
package session

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"cloud.google.com/go/civil"
	"go.uber.org/zap"

	"github.com/abhisek/studyflow/internal/config"
	"github.com/abhisek/studyflow/internal/gamification"
	"github.com/abhisek/studyflow/internal/spacedrep"
	"github.com/abhisek/studyflow/internal/store"
)

// historyLookback is how many past planned days feed the classifier.
const historyLookback = 30

// ErrItemExists is returned when adding a review item that is already tracked.
var ErrItemExists = errors.New("review item already exists")

// Clock returns the current time.
type Clock func() time.Time

// Options configures a Service.
type Options struct {
	Store  *store.Store
	Config *config.Config // nil means config.Defaults()
	Logger *zap.Logger    // nil means no logging
	Clock  Clock          // nil means time.Now
}

// Service composes the scheduling core with persistence.
type Service struct {
	// mu serializes snapshot read-modify-write cycles.
	mu sync.Mutex

	store  *store.Store
	snaps  store.SnapshotRepo
	events store.EventRepo
	cfg    config.Config
	log    *zap.Logger
	now    Clock
}

// NewService creates a Service.
func NewService(opts Options) (*Service, error) {
	if opts.Store == nil {
		return nil, errors.New("session: store is required")
	}
	cfg := config.Defaults()
	if opts.Config != nil {
		cfg = *opts.Config
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("session: %w", err)
	}
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	now := opts.Clock
	if now == nil {
		now = time.Now
	}
	return &Service{
		store:  opts.Store,
		snaps:  opts.Store.SnapshotRepo(),
		events: opts.Store.EventRepo(),
		cfg:    cfg,
		log:    log,
		now:    now,
	}, nil
}

// Today returns the current local calendar date.
func (s *Service) Today() civil.Date {
	return civil.DateOf(s.now())
}

// learner is the state restored from the latest snapshot.
type learner struct {
	progress gamification.State
	reviews  *spacedrep.Scheduler
}

// load restores learner state from the latest snapshot. Callers that write
// the state back must hold mu.
func (s *Service) load(ctx context.Context) (*learner, error) {
	snap, err := s.snaps.Latest(ctx)
	if err != nil {
		return nil, fmt.Errorf("load snapshot: %w", err)
	}
	if snap == nil {
		return &learner{progress: gamification.NewState(), reviews: spacedrep.NewScheduler(nil)}, nil
	}
	return &learner{
		progress: gamification.StateFromSnapshot(snap.Data.Gamification),
		reviews:  spacedrep.NewScheduler(snap.Data.Reviews),
	}, nil
}

// save writes a new snapshot and prunes old ones.
func (s *Service) save(ctx context.Context, l *learner) error {
	seq, err := s.events.LatestSequence(ctx)
	if err != nil {
		return err
	}
	snap := &store.Snapshot{
		Sequence:  seq,
		Timestamp: s.now(),
		Data: store.SnapshotData{
			Version:      store.SnapshotVersion,
			Gamification: l.progress.SnapshotData(),
			Reviews:      l.reviews.SnapshotData(),
		},
	}
	if err := s.snaps.Save(ctx, snap); err != nil {
		return err
	}
	if err := s.snaps.Prune(ctx, s.cfg.Snapshots.Keep); err != nil {
		s.log.Warn("prune snapshots failed", zap.Error(err))
	}
	return nil
}

// Progress returns the current gamification state.
func (s *Service) Progress(ctx context.Context) (gamification.State, error) {
	l, err := s.load(ctx)
	if err != nil {
		return gamification.State{}, err
	}
	return l.progress, nil
}

// History returns the most recent sessions, newest first.
func (s *Service) History(ctx context.Context, limit int) ([]store.SessionEventRecord, error) {
	return s.events.QuerySessionEvents(ctx, store.QueryOpts{Limit: limit})
}

// Reset deletes all learner data.
func (s *Service) Reset(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.store.Reset(ctx); err != nil {
		return err
	}
	s.log.Info("learner data reset")
	return nil
}
