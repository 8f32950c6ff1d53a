package store

import (
	"context"
	"fmt"
)

var reviewEventColumns = []string{
	"sequence", "timestamp", "item_id", "grade", "ease_factor", "interval_days", "repetitions", "next_review_at",
}

func (r *eventRepo) AppendReviewEvent(ctx context.Context, data ReviewEventData) error {
	err := r.appendRow(ctx, ReviewEventsTable.Name, reviewEventColumns[2:], []any{
		data.ItemID, data.Grade, data.EaseFactor, data.IntervalDays, data.Repetitions,
		formatTimestamp(data.NextReviewAt),
	})
	if err != nil {
		return fmt.Errorf("save review event: %w", err)
	}
	return nil
}

func (r *eventRepo) QueryReviewEvents(ctx context.Context, opts QueryOpts) ([]ReviewEventRecord, error) {
	b := builder()
	sel := b.Select(reviewEventColumns...).From(b.Table(ReviewEventsTable.Name))
	query, args := applyQueryOpts(sel, opts).Query()

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query review events: %w", err)
	}
	defer rows.Close()

	var records []ReviewEventRecord
	for rows.Next() {
		var (
			e      ReviewEventRecord
			ts, nr string
		)
		if err := rows.Scan(&e.Sequence, &ts, &e.ItemID, &e.Grade, &e.EaseFactor,
			&e.IntervalDays, &e.Repetitions, &nr); err != nil {
			return nil, fmt.Errorf("scan review event: %w", err)
		}
		e.Timestamp = parseTimestamp(ts)
		e.NextReviewAt = parseTimestamp(nr)
		records = append(records, e)
	}
	return records, rows.Err()
}
