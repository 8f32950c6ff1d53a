package store

import (
	"context"
	"database/sql"
	"fmt"
	"sort"

	entsql "entgo.io/ent/dialect/sql"
)

// eventRepo implements EventRepo on the event tables.
type eventRepo struct {
	db  *sql.DB
	seq *sequenceCounter
}

// appendRow inserts one event row, prefixing the shared sequence and
// timestamp columns.
func (r *eventRepo) appendRow(ctx context.Context, table string, columns []string, values []any) error {
	seqNum, err := r.seq.Next(ctx)
	if err != nil {
		return fmt.Errorf("next sequence: %w", err)
	}

	query, args := builder().Insert(table).
		Columns(append([]string{"sequence", "timestamp"}, columns...)...).
		Values(append([]any{seqNum, formatTimestamp(nowFunc())}, values...)...).
		Query()
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("insert %s: %w", table, err)
	}
	return nil
}

func (r *eventRepo) LatestSequence(ctx context.Context) (int64, error) {
	return r.seq.Current(ctx)
}

var dayEventColumns = []string{"sequence", "timestamp", "date", "day_type", "rule", "requested_energy", "energy", "time_budget", "topic"}

func (r *eventRepo) AppendDayEvent(ctx context.Context, data DayEventData) error {
	err := r.appendRow(ctx, DayEventsTable.Name,
		[]string{"date", "day_type", "rule", "requested_energy", "energy", "time_budget", "topic"},
		[]any{data.Date, data.DayType, data.Rule, data.RequestedEnergy, data.Energy, data.TimeBudget, data.Topic},
	)
	if err != nil {
		return fmt.Errorf("save day event: %w", err)
	}
	return nil
}

func (r *eventRepo) RecentDays(ctx context.Context, before string, limit int) ([]DayEventRecord, error) {
	if limit <= 0 {
		return nil, nil
	}
	b := builder()
	query, args := b.Select(dayEventColumns...).
		From(b.Table(DayEventsTable.Name)).
		Where(entsql.LT("date", before)).
		OrderBy(entsql.Desc("sequence")).
		Query()

	all, err := r.scanDayEvents(ctx, query, args)
	if err != nil {
		return nil, fmt.Errorf("query recent days: %w", err)
	}

	// Keep the latest event per date, newest dates first, then reverse.
	seen := make(map[string]bool)
	var days []DayEventRecord
	for _, e := range all {
		if seen[e.Date] {
			continue
		}
		seen[e.Date] = true
		days = append(days, e)
	}
	sort.Slice(days, func(i, j int) bool { return days[i].Date > days[j].Date })
	if len(days) > limit {
		days = days[:limit]
	}
	for i, j := 0, len(days)-1; i < j; i, j = i+1, j-1 {
		days[i], days[j] = days[j], days[i]
	}
	return days, nil
}

func (r *eventRepo) DayEventFor(ctx context.Context, date string) (*DayEventRecord, error) {
	b := builder()
	query, args := b.Select(dayEventColumns...).
		From(b.Table(DayEventsTable.Name)).
		Where(entsql.EQ("date", date)).
		OrderBy(entsql.Desc("sequence")).
		Limit(1).
		Query()

	events, err := r.scanDayEvents(ctx, query, args)
	if err != nil {
		return nil, fmt.Errorf("query day event: %w", err)
	}
	if len(events) == 0 {
		return nil, nil
	}
	return &events[0], nil
}

func (r *eventRepo) EnergyStats(ctx context.Context, before string) (EnergyStats, error) {
	b := builder()
	query, args := b.Select(dayEventColumns...).
		From(b.Table(DayEventsTable.Name)).
		Where(entsql.LT("date", before)).
		OrderBy(entsql.Desc("sequence")).
		Query()

	all, err := r.scanDayEvents(ctx, query, args)
	if err != nil {
		return EnergyStats{}, fmt.Errorf("query energy stats: %w", err)
	}

	// A replanned date counts once, with its latest request.
	seen := make(map[string]bool)
	var (
		sum   float64
		stats EnergyStats
	)
	for _, e := range all {
		if seen[e.Date] {
			continue
		}
		seen[e.Date] = true
		sum += e.RequestedEnergy
		stats.Days++
	}
	if stats.Days > 0 {
		stats.Average = sum / float64(stats.Days)
	}
	return stats, nil
}

func (r *eventRepo) scanDayEvents(ctx context.Context, query string, args []any) ([]DayEventRecord, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []DayEventRecord
	for rows.Next() {
		var (
			e  DayEventRecord
			ts string
		)
		if err := rows.Scan(&e.Sequence, &ts, &e.Date, &e.DayType, &e.Rule,
			&e.RequestedEnergy, &e.Energy, &e.TimeBudget, &e.Topic); err != nil {
			return nil, err
		}
		e.Timestamp = parseTimestamp(ts)
		events = append(events, e)
	}
	return events, rows.Err()
}
