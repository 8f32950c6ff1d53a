package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/studyflow/internal/gamification"
	"github.com/abhisek/studyflow/internal/spacedrep"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestPragmasApplied(t *testing.T) {
	s := openTestStore(t)

	tests := []struct {
		pragma string
		want   string
	}{
		{"journal_mode", "wal"},
		{"foreign_keys", "1"},
		{"synchronous", "1"}, // NORMAL
		{"busy_timeout", "5000"},
	}
	for _, tt := range tests {
		var got string
		require.NoError(t, s.DB().QueryRow("PRAGMA "+tt.pragma).Scan(&got))
		assert.Equal(t, tt.want, got, "PRAGMA %s", tt.pragma)
	}
}

func TestMigrationCreatesTables(t *testing.T) {
	s := openTestStore(t)
	for _, table := range append([]string{"global_sequence"}, tableNames()...) {
		var name string
		err := s.DB().QueryRow(`SELECT name FROM sqlite_master WHERE type='table' AND name=?`, table).Scan(&name)
		assert.NoError(t, err, "table %s", table)
	}
}

func TestReopenKeepsData(t *testing.T) {
	path := filepath.Join(t.TempDir(), "reopen.db")
	ctx := context.Background()

	s, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, s.EventRepo().AppendDayEvent(ctx, DayEventData{Date: "2025-01-01", DayType: "normal"}))
	require.NoError(t, s.Close())

	s, err = Open(path)
	require.NoError(t, err)
	defer s.Close()

	ev, err := s.EventRepo().DayEventFor(ctx, "2025-01-01")
	require.NoError(t, err)
	require.NotNil(t, ev)
	assert.Equal(t, "normal", ev.DayType)

	seq, err := s.EventRepo().LatestSequence(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), seq)
}

func TestSequenceIsSharedAcrossTables(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	events := s.EventRepo()

	require.NoError(t, events.AppendDayEvent(ctx, DayEventData{Date: "2025-01-01", DayType: "normal"}))
	require.NoError(t, events.AppendSessionEvent(ctx, SessionEventData{SessionID: "a", Date: "2025-01-01", DayType: "normal"}))
	require.NoError(t, events.AppendReviewEvent(ctx, ReviewEventData{ItemID: "x", Grade: 4, NextReviewAt: time.Now()}))

	seq, err := events.LatestSequence(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(3), seq)

	sessions, err := events.QuerySessionEvents(ctx, QueryOpts{})
	require.NoError(t, err)
	require.Len(t, sessions, 1)
	assert.Equal(t, int64(2), sessions[0].Sequence)

	reviews, err := events.QueryReviewEvents(ctx, QueryOpts{})
	require.NoError(t, err)
	require.Len(t, reviews, 1)
	assert.Equal(t, int64(3), reviews[0].Sequence)
}

func TestSnapshotSaveAndLatest(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	repo := s.SnapshotRepo()

	latest, err := repo.Latest(ctx)
	require.NoError(t, err)
	assert.Nil(t, latest)

	state := gamification.NewState()
	state.TotalXP = 120
	reviews := spacedrep.NewScheduler(nil)
	reviews.Add("go-maps", "go")

	snap := &Snapshot{
		Sequence:  7,
		Timestamp: time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC),
		Data: SnapshotData{
			Version:      SnapshotVersion,
			Gamification: state.SnapshotData(),
			Reviews:      reviews.SnapshotData(),
		},
	}
	require.NoError(t, repo.Save(ctx, snap))

	latest, err = repo.Latest(ctx)
	require.NoError(t, err)
	require.NotNil(t, latest)
	assert.Equal(t, int64(7), latest.Sequence)
	assert.True(t, latest.Timestamp.Equal(snap.Timestamp))
	assert.Equal(t, SnapshotVersion, latest.Data.Version)
	require.NotNil(t, latest.Data.Gamification)
	assert.Equal(t, 120, latest.Data.Gamification.TotalXP)
	require.NotNil(t, latest.Data.Reviews)
	assert.Contains(t, latest.Data.Reviews.Items, "go-maps")
}

func TestSnapshotPrune(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	repo := s.SnapshotRepo()

	for i := 1; i <= 5; i++ {
		require.NoError(t, repo.Save(ctx, &Snapshot{Sequence: int64(i), Timestamp: time.Now()}))
	}

	require.NoError(t, repo.Prune(ctx, 10))
	n, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 5, n)

	require.NoError(t, repo.Prune(ctx, 2))
	n, err = repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	latest, err := repo.Latest(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(5), latest.Sequence)
}

func TestRecentDays(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	events := s.EventRepo()

	for _, d := range []DayEventData{
		{Date: "2025-01-01", DayType: "beast"},
		{Date: "2025-01-02", DayType: "normal"},
		{Date: "2025-01-02", DayType: "minimum"}, // replan, latest wins
		{Date: "2025-01-03", DayType: "beast"},
		{Date: "2025-01-04", DayType: "recovery"}, // today, excluded
	} {
		require.NoError(t, events.AppendDayEvent(ctx, d))
	}

	days, err := events.RecentDays(ctx, "2025-01-04", 3)
	require.NoError(t, err)
	require.Len(t, days, 3)
	assert.Equal(t, []string{"2025-01-01", "2025-01-02", "2025-01-03"}, dayDates(days))
	assert.Equal(t, "minimum", days[1].DayType)

	days, err = events.RecentDays(ctx, "2025-01-04", 2)
	require.NoError(t, err)
	assert.Equal(t, []string{"2025-01-02", "2025-01-03"}, dayDates(days))

	days, err = events.RecentDays(ctx, "2025-01-01", 3)
	require.NoError(t, err)
	assert.Empty(t, days)
}

func TestDayEventForMissing(t *testing.T) {
	s := openTestStore(t)
	ev, err := s.EventRepo().DayEventFor(context.Background(), "2025-01-01")
	require.NoError(t, err)
	assert.Nil(t, ev)
}

func TestEnergyStats(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	events := s.EventRepo()

	stats, err := events.EnergyStats(ctx, "2025-01-10")
	require.NoError(t, err)
	assert.Equal(t, EnergyStats{}, stats)

	for _, e := range []struct {
		date   string
		energy float64
	}{
		{"2025-01-01", 4},
		{"2025-01-02", 1},
		{"2025-01-02", 6},
		{"2025-01-03", 8},
	} {
		require.NoError(t, events.AppendDayEvent(ctx, DayEventData{Date: e.date, DayType: "normal", RequestedEnergy: e.energy}))
	}

	stats, err = events.EnergyStats(ctx, "2025-01-10")
	require.NoError(t, err)
	assert.Equal(t, 3, stats.Days)
	assert.InDelta(t, 6.0, stats.Average, 1e-9)

	stats, err = events.EnergyStats(ctx, "2025-01-03")
	require.NoError(t, err)
	assert.Equal(t, 2, stats.Days)
	assert.InDelta(t, 5.0, stats.Average, 1e-9)

	stats, err = events.EnergyStats(ctx, "2025-01-01")
	require.NoError(t, err)
	assert.Equal(t, EnergyStats{}, stats)
}

func TestTopicQuality(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	events := s.EventRepo()

	for _, e := range []SessionEventData{
		{SessionID: "1", Topic: "sql", Quality: 0.9}, // outside a window of 4
		{SessionID: "2", Topic: "sql", Quality: 0.3},
		{SessionID: "3", Topic: "go", Quality: 0.8},
		{SessionID: "4", Topic: "sql", Quality: 0.5},
		{SessionID: "5", Topic: "", Quality: 0.1},
	} {
		require.NoError(t, events.AppendSessionEvent(ctx, e))
	}

	got, err := events.TopicQuality(ctx, 4)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "sql", got[0].Topic)
	assert.InDelta(t, 0.4, got[0].Mean, 1e-9)
	assert.Equal(t, 2, got[0].Sessions)
	assert.Equal(t, "go", got[1].Topic)

	n, err := events.SessionCount(ctx)
	require.NoError(t, err)
	assert.Equal(t, 5, n)
}

func TestQueryOpts(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	events := s.EventRepo()

	base := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	orig := nowFunc
	t.Cleanup(func() { nowFunc = orig })
	for i := 0; i < 5; i++ {
		ts := base.Add(time.Duration(i) * time.Hour)
		nowFunc = func() time.Time { return ts }
		require.NoError(t, events.AppendSessionEvent(ctx, SessionEventData{SessionID: string(rune('a' + i))}))
	}

	got, err := events.QuerySessionEvents(ctx, QueryOpts{Limit: 2})
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "e", got[0].SessionID)

	got, err = events.QuerySessionEvents(ctx, QueryOpts{After: 1, Before: 4})
	require.NoError(t, err)
	assert.Len(t, got, 2)

	got, err = events.QuerySessionEvents(ctx, QueryOpts{From: base.Add(time.Hour), To: base.Add(3 * time.Hour)})
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.True(t, got[0].Timestamp.Equal(base.Add(3*time.Hour)))
}

func TestReset(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	events := s.EventRepo()

	require.NoError(t, events.AppendDayEvent(ctx, DayEventData{Date: "2025-01-01", DayType: "normal"}))
	require.NoError(t, events.AppendSessionEvent(ctx, SessionEventData{SessionID: "a"}))
	require.NoError(t, s.SnapshotRepo().Save(ctx, &Snapshot{Sequence: 2, Timestamp: time.Now()}))

	require.NoError(t, s.Reset(ctx))

	for _, table := range tableNames() {
		n, err := countRows(ctx, s.DB(), table)
		require.NoError(t, err)
		assert.Zero(t, n, "rows in %s", table)
	}
	seq, err := events.LatestSequence(ctx)
	require.NoError(t, err)
	assert.Zero(t, seq)
}

func TestDefaultDBPath(t *testing.T) {
	dir := t.TempDir()

	t.Setenv("STUDYFLOW_DB", filepath.Join(dir, "env", "x.db"))
	p, err := DefaultDBPath()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "env", "x.db"), p)
	assert.DirExists(t, filepath.Join(dir, "env"))

	t.Setenv("STUDYFLOW_DB", "")
	t.Setenv("XDG_DATA_HOME", dir)
	p, err = DefaultDBPath()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "studyflow", "studyflow.db"), p)
}

func TestTimestampRoundTrip(t *testing.T) {
	ts := time.Date(2025, 6, 1, 8, 30, 0, 123, time.FixedZone("X", 3600))
	got := parseTimestamp(formatTimestamp(ts))
	assert.True(t, got.Equal(ts), "got %v, want %v", got, ts)
	assert.Less(t, formatTimestamp(ts), formatTimestamp(ts.Add(time.Nanosecond)))
}

func tableNames() []string {
	names := make([]string, len(Tables))
	for i, t := range Tables {
		names[i] = t.Name
	}
	return names
}

func dayDates(days []DayEventRecord) []string {
	out := make([]string, len(days))
	for i, d := range days {
		out[i] = d.Date
	}
	return out
}
