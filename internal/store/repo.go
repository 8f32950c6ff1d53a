package store

import (
	"context"
	"time"

	"github.com/abhisek/studyflow/internal/gamification"
	"github.com/abhisek/studyflow/internal/spacedrep"
)

// QueryOpts configures event queries with filtering and pagination.
type QueryOpts struct {
	Limit  int       // max results (0 = unlimited)
	After  int64     // sequence > After
	Before int64     // sequence < Before
	From   time.Time // timestamp >= From
	To     time.Time // timestamp <= To
}

// SnapshotVersion is the current SnapshotData layout version.
const SnapshotVersion = 1

// SnapshotData captures the full learner state at a point in time.
type SnapshotData struct {
	Version      int                        `json:"version"`
	Gamification *gamification.SnapshotData `json:"gamification,omitempty"`
	Reviews      *spacedrep.SnapshotData    `json:"reviews,omitempty"`
}

// Snapshot represents a point-in-time capture of learner state.
type Snapshot struct {
	ID        int
	Sequence  int64
	Timestamp time.Time
	Data      SnapshotData
}

// SnapshotRepo manages learner state snapshots.
type SnapshotRepo interface {
	// Save stores a new snapshot.
	Save(ctx context.Context, snap *Snapshot) error

	// Latest returns the most recent snapshot, or nil if none exist.
	Latest(ctx context.Context) (*Snapshot, error)

	// Prune deletes all but the N most recent snapshots.
	Prune(ctx context.Context, keep int) error

	// Count returns the number of stored snapshots.
	Count(ctx context.Context) (int, error)
}

// DayEventData records the plan chosen for a day.
type DayEventData struct {
	Date            string // YYYY-MM-DD
	DayType         string
	Rule            string
	RequestedEnergy float64
	Energy          float64
	TimeBudget      int
	Topic           string
}

// DayEventRecord is a stored day event.
type DayEventRecord struct {
	DayEventData
	Sequence  int64
	Timestamp time.Time
}

// SessionEventData records a completed study session.
type SessionEventData struct {
	SessionID      string
	Date           string // YYYY-MM-DD
	Topic          string
	Phase          string
	DayType        string
	Understanding  int
	Difficulty     int
	MoodAfter      int
	CompletionRate float64
	Quality        float64
	XPEarned       int
	Level          int
	Streak         int
}

// SessionEventRecord is a stored session event.
type SessionEventRecord struct {
	SessionEventData
	Sequence  int64
	Timestamp time.Time
}

// ReviewEventData records one graded review.
type ReviewEventData struct {
	ItemID       string
	Grade        int
	EaseFactor   float64
	IntervalDays int
	Repetitions  int
	NextReviewAt time.Time
}

// ReviewEventRecord is a stored review event.
type ReviewEventRecord struct {
	ReviewEventData
	Sequence  int64
	Timestamp time.Time
}

// EnergyStats summarizes requested energy over planned days.
type EnergyStats struct {
	Average float64
	Days    int
}

// TopicQuality is the mean session quality for one topic.
type TopicQuality struct {
	Topic    string
	Mean     float64
	Sessions int
}

// EventRepo provides append and query access to domain events.
type EventRepo interface {
	AppendDayEvent(ctx context.Context, data DayEventData) error
	AppendSessionEvent(ctx context.Context, data SessionEventData) error
	AppendReviewEvent(ctx context.Context, data ReviewEventData) error

	// RecentDays returns the latest day event for each of the most recent
	// limit dates strictly before the given date, oldest first.
	RecentDays(ctx context.Context, before string, limit int) ([]DayEventRecord, error)

	// DayEventFor returns the latest day event for a date, or nil.
	DayEventFor(ctx context.Context, date string) (*DayEventRecord, error)

	// EnergyStats averages the latest requested energy of each date
	// strictly before the given date.
	EnergyStats(ctx context.Context, before string) (EnergyStats, error)

	// SessionCount returns the number of completed sessions.
	SessionCount(ctx context.Context) (int, error)

	// TopicQuality returns per-topic mean quality over the last window sessions.
	TopicQuality(ctx context.Context, window int) ([]TopicQuality, error)

	QuerySessionEvents(ctx context.Context, opts QueryOpts) ([]SessionEventRecord, error)
	QueryReviewEvents(ctx context.Context, opts QueryOpts) ([]ReviewEventRecord, error)

	// LatestSequence returns the last sequence number handed out.
	LatestSequence(ctx context.Context) (int64, error)
}
