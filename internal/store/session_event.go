package store

import (
	"context"
	"fmt"
	"sort"

	entsql "entgo.io/ent/dialect/sql"
)

var sessionEventColumns = []string{
	"sequence", "timestamp", "session_id", "date", "topic", "phase", "day_type",
	"understanding", "difficulty", "mood_after", "completion_rate", "quality",
	"xp_earned", "level", "streak",
}

func (r *eventRepo) AppendSessionEvent(ctx context.Context, data SessionEventData) error {
	err := r.appendRow(ctx, SessionEventsTable.Name, sessionEventColumns[2:], []any{
		data.SessionID, data.Date, data.Topic, data.Phase, data.DayType,
		data.Understanding, data.Difficulty, data.MoodAfter, data.CompletionRate, data.Quality,
		data.XPEarned, data.Level, data.Streak,
	})
	if err != nil {
		return fmt.Errorf("save session event: %w", err)
	}
	return nil
}

func (r *eventRepo) SessionCount(ctx context.Context) (int, error) {
	return countRows(ctx, r.db, SessionEventsTable.Name)
}

func (r *eventRepo) TopicQuality(ctx context.Context, window int) ([]TopicQuality, error) {
	b := builder()
	sel := b.Select("topic", "quality").
		From(b.Table(SessionEventsTable.Name)).
		Where(entsql.NEQ("topic", "")).
		OrderBy(entsql.Desc("sequence"))
	if window > 0 {
		sel = sel.Limit(window)
	}
	query, args := sel.Query()

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query topic quality: %w", err)
	}
	defer rows.Close()

	sums := make(map[string]*TopicQuality)
	for rows.Next() {
		var (
			topic string
			q     float64
		)
		if err := rows.Scan(&topic, &q); err != nil {
			return nil, fmt.Errorf("scan topic quality: %w", err)
		}
		tq, ok := sums[topic]
		if !ok {
			tq = &TopicQuality{Topic: topic}
			sums[topic] = tq
		}
		tq.Mean += q
		tq.Sessions++
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate topic quality: %w", err)
	}

	out := make([]TopicQuality, 0, len(sums))
	for _, tq := range sums {
		tq.Mean /= float64(tq.Sessions)
		out = append(out, *tq)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Mean != out[j].Mean {
			return out[i].Mean < out[j].Mean
		}
		return out[i].Topic < out[j].Topic
	})
	return out, nil
}

func (r *eventRepo) QuerySessionEvents(ctx context.Context, opts QueryOpts) ([]SessionEventRecord, error) {
	b := builder()
	sel := b.Select(sessionEventColumns...).From(b.Table(SessionEventsTable.Name))
	query, args := applyQueryOpts(sel, opts).Query()

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query session events: %w", err)
	}
	defer rows.Close()

	var records []SessionEventRecord
	for rows.Next() {
		var (
			e  SessionEventRecord
			ts string
		)
		if err := rows.Scan(&e.Sequence, &ts, &e.SessionID, &e.Date, &e.Topic, &e.Phase, &e.DayType,
			&e.Understanding, &e.Difficulty, &e.MoodAfter, &e.CompletionRate, &e.Quality,
			&e.XPEarned, &e.Level, &e.Streak); err != nil {
			return nil, fmt.Errorf("scan session event: %w", err)
		}
		e.Timestamp = parseTimestamp(ts)
		records = append(records, e)
	}
	return records, rows.Err()
}

// applyQueryOpts adds QueryOpts filters to an event selector, newest first.
func applyQueryOpts(sel *entsql.Selector, opts QueryOpts) *entsql.Selector {
	var preds []*entsql.Predicate
	if opts.After > 0 {
		preds = append(preds, entsql.GT("sequence", opts.After))
	}
	if opts.Before > 0 {
		preds = append(preds, entsql.LT("sequence", opts.Before))
	}
	if !opts.From.IsZero() {
		preds = append(preds, entsql.GTE("timestamp", formatTimestamp(opts.From)))
	}
	if !opts.To.IsZero() {
		preds = append(preds, entsql.LTE("timestamp", formatTimestamp(opts.To)))
	}
	if len(preds) > 0 {
		sel = sel.Where(entsql.And(preds...))
	}
	sel = sel.OrderBy(entsql.Desc("sequence"))
	if opts.Limit > 0 {
		sel = sel.Limit(opts.Limit)
	}
	return sel
}
